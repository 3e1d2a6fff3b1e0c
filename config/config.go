package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// AppName is used for the config directory and the icon theme name.
const AppName = "zoha"

// DisplayConfig holds window and tab strip settings
type DisplayConfig struct {
	Title   string `toml:"title"`
	Width   Size   `toml:"width"`
	Height  Size   `toml:"height"`
	Monitor int    `toml:"monitor"`
	// Fullscreen starts the window fullscreen
	Fullscreen        bool              `toml:"fullscreen"`
	TabPosition       TabPosition       `toml:"tab_position"`
	TabMode           TabMode           `toml:"tab_mode"`
	TabScrollWrap     bool              `toml:"tab_scroll_wrap"`
	TabExpand         bool              `toml:"tab_expand"`
	ScrollbarPosition ScrollbarPosition `toml:"scrollbar_position"`
	// TabTitleNumCharacters truncates the cwd shown in tab labels.
	// 0 shows the full path, N > 0 keeps the last N characters and
	// N < 0 keeps the first |N| characters.
	TabTitleNumCharacters int  `toml:"tab_title_num_characters"`
	SkipTaskBar           bool `toml:"skip_task_bar"`
	AlwaysOnTop           bool `toml:"always_on_top"`
	Sticky                bool `toml:"sticky"`
}

// TerminalConfig holds settings applied to every terminal widget
type TerminalConfig struct {
	ScrollbackLines    int          `toml:"scrollback_lines"`
	CursorShape        CursorShape  `toml:"cursor_shape"`
	CursorBlink        CursorBlink  `toml:"cursor_blink"`
	ScrollOnKeystroke  bool         `toml:"scroll_on_keystroke"`
	ScrollOnOutput     bool         `toml:"scroll_on_output"`
	BackspaceBinding   EraseBinding `toml:"backspace_binding"`
	DeleteBinding      EraseBinding `toml:"delete_binding"`
	MouseAutoHide      bool         `toml:"mouse_auto_hide"`
	AudibleBell        bool         `toml:"audible_bell"`
	AllowHyperlink     bool         `toml:"allow_hyperlink"`
	WordCharExceptions string       `toml:"word_char_exceptions"`
}

// FontConfig holds the font description, e.g. "Monospace 12"
type FontConfig struct {
	Font string `toml:"font"`
}

// ColorConfig holds terminal colours
type ColorConfig struct {
	Foreground Color `toml:"fg"`
	Background Color `toml:"bg"`
	Cursor     Color `toml:"cursor"`
	// CursorForeground is the colour of the character under the cursor
	CursorForeground Color `toml:"cursor_fg"`
	// Opacity is the background alpha used while transparency is enabled
	Opacity float64 `toml:"opacity"`
	// Palette names a built-in palette, see PaletteOptions
	Palette string `toml:"palette"`
	// CustomPalette overrides Palette when it holds 16 colours
	CustomPalette []Color `toml:"custom_palette"`
}

// ProcessConfig describes the command started in new tabs
type ProcessConfig struct {
	// Command to run (empty = user's login shell)
	Command    string            `toml:"command"`
	Args       []string          `toml:"args"`
	WorkingDir string            `toml:"working_dir"`
	Env        map[string]string `toml:"env"`
}

// BehaviorConfig holds tab lifecycle policies
type BehaviorConfig struct {
	TerminalExit TerminalExitBehavior `toml:"terminal_exit"`
	LastTabExit  LastTabExitBehavior  `toml:"last_tab_exit"`
}

// KeysConfig holds GTK accelerators per action. An empty list unbinds the action.
type KeysConfig struct {
	AddTab             []string   `toml:"add_tab"`
	CloseTab           []string   `toml:"close_tab"`
	Copy               []string   `toml:"copy"`
	Paste              []string   `toml:"paste"`
	NextTab            []string   `toml:"next_tab"`
	PreviousTab        []string   `toml:"previous_tab"`
	MoveForward        []string   `toml:"move_forward"`
	MoveBackward       []string   `toml:"move_backward"`
	GotoLast           []string   `toml:"goto_last"`
	GotoN              [][]string `toml:"goto_n"`
	FontInc            []string   `toml:"font_inc"`
	FontDec            []string   `toml:"font_dec"`
	FontReset          []string   `toml:"font_reset"`
	ToggleTransparency []string   `toml:"toggle_transparency"`
	ToggleFullscreen   []string   `toml:"toggle_fullscreen"`
	ToggleVisibility   []string   `toml:"toggle_visibility"`
}

// Config holds the terminal configuration
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Terminal TerminalConfig `toml:"terminal"`
	Font     FontConfig     `toml:"font"`
	Color    ColorConfig    `toml:"color"`
	Process  ProcessConfig  `toml:"process"`
	Behavior BehaviorConfig `toml:"behavior"`
	Keys     KeysConfig     `toml:"keys"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Display: DisplayConfig{
			Title:             "zoha",
			Width:             Percent(100),
			Height:            Percent(40),
			TabPosition:       TabPositionTop,
			TabMode:           TabModeAuto,
			TabScrollWrap:     true,
			ScrollbarPosition: ScrollbarRight,
		},
		Terminal: TerminalConfig{
			ScrollbackLines:   10000,
			CursorShape:       CursorShapeBlock,
			CursorBlink:       CursorBlinkSystem,
			ScrollOnKeystroke: true,
			BackspaceBinding:  EraseAuto,
			DeleteBinding:     EraseAuto,
			MouseAutoHide:     true,
			AllowHyperlink:    true,
		},
		Font: FontConfig{Font: "Monospace 12"},
		Color: ColorConfig{
			Foreground:       MustParseColor("#d3d7cf"),
			Background:       MustParseColor("#000000"),
			Cursor:           MustParseColor("#d3d7cf"),
			CursorForeground: MustParseColor("#000000"),
			Opacity:          0.9,
			Palette:          "tango",
		},
		Process: ProcessConfig{
			WorkingDir: home,
			Env:        map[string]string{},
		},
		Behavior: BehaviorConfig{
			TerminalExit: TerminalExitClose,
			LastTabExit:  LastTabExitRestart,
		},
		Keys: defaultKeys(),
	}
}

func defaultKeys() KeysConfig {
	gotoN := make([][]string, 9)
	for i := range gotoN {
		gotoN[i] = []string{fmt.Sprintf("<Alt>%d", i+1)}
	}
	return KeysConfig{
		AddTab:             []string{"<Ctrl><Shift>t"},
		CloseTab:           []string{"<Ctrl><Shift>w"},
		Copy:               []string{"<Ctrl><Shift>c"},
		Paste:              []string{"<Ctrl><Shift>v"},
		NextTab:            []string{"<Ctrl>Page_Down"},
		PreviousTab:        []string{"<Ctrl>Page_Up"},
		MoveForward:        []string{"<Ctrl><Shift>Page_Down"},
		MoveBackward:       []string{"<Ctrl><Shift>Page_Up"},
		GotoLast:           []string{"<Alt>0"},
		GotoN:              gotoN,
		FontInc:            []string{"<Ctrl>plus", "<Ctrl>equal"},
		FontDec:            []string{"<Ctrl>minus"},
		FontReset:          []string{"<Ctrl>0"},
		ToggleTransparency: []string{"<Ctrl><Shift>u"},
		ToggleFullscreen:   []string{"F11"},
		ToggleVisibility:   []string{"F12"},
	}
}

// GetConfigDir returns the configuration directory
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", AppName)
	}
	return filepath.Join(homeDir, ".config", AppName)
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), AppName+".toml")
}

// Load reads the config at path over the defaults. An empty path means the
// default location, where a missing file yields the defaults. A missing file
// at an explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a TOML document over the defaults
func Decode(data string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Validate checks values the decoder cannot check on its own
func (c *Config) Validate() error {
	if c.Color.Opacity < 0 || c.Color.Opacity > 1 {
		return fmt.Errorf("color.opacity %v out of range [0, 1]", c.Color.Opacity)
	}
	if n := len(c.Color.CustomPalette); n != 0 && n != PaletteSize {
		return fmt.Errorf("color.custom_palette has %d colours, want %d", n, PaletteSize)
	}
	if len(c.Color.CustomPalette) == 0 {
		if _, ok := Palette(c.Color.Palette); !ok {
			return fmt.Errorf("color.palette %q unknown", c.Color.Palette)
		}
	}
	if c.Terminal.ScrollbackLines < -1 {
		return fmt.Errorf("terminal.scrollback_lines %d invalid, use -1 for unlimited", c.Terminal.ScrollbackLines)
	}
	if len(c.Keys.GotoN) > 9 {
		return fmt.Errorf("keys.goto_n has %d entries, at most 9 allowed", len(c.Keys.GotoN))
	}
	return nil
}

// Encode writes the configuration as TOML
func (c *Config) Encode(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	return encoder.Encode(c)
}

// Save writes the configuration to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// PaletteColors returns the 16 colour palette in effect
func (c *ColorConfig) PaletteColors() []Color {
	if len(c.CustomPalette) == PaletteSize {
		return append([]Color(nil), c.CustomPalette...)
	}
	colors, _ := Palette(c.Palette)
	return colors
}

// EnvList returns the extra environment as sorted KEY=VALUE pairs
func (p *ProcessConfig) EnvList() []string {
	env := make([]string, 0, len(p.Env))
	for k, v := range p.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}
