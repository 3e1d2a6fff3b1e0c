package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, TabModeAuto, cfg.Display.TabMode)
	assert.Equal(t, LastTabExitRestart, cfg.Behavior.LastTabExit)
	assert.Equal(t, TerminalExitClose, cfg.Behavior.TerminalExit)
	assert.Len(t, cfg.Color.PaletteColors(), PaletteSize)
	assert.Len(t, cfg.Keys.GotoN, 9)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
[display]
width = 800
height = "35%"
tab_mode = "always"
tab_title_num_characters = -12

[color]
bg = "#102030"
palette = "solarized"

[behavior]
terminal_exit = "restart_command"
last_tab_exit = "restart_terminal_and_hide"

[process]
command = "/bin/zsh"
env = { EDITOR = "vim", A = "1" }
`)
	require.NoError(t, err)

	assert.Equal(t, Pixels(800), cfg.Display.Width)
	assert.Equal(t, Percent(35), cfg.Display.Height)
	assert.Equal(t, TabModeAlways, cfg.Display.TabMode)
	assert.Equal(t, -12, cfg.Display.TabTitleNumCharacters)
	assert.Equal(t, "#102030", cfg.Color.Background.Hex())
	assert.Equal(t, TerminalExitRestart, cfg.Behavior.TerminalExit)
	assert.Equal(t, LastTabExitRestartAndHide, cfg.Behavior.LastTabExit)
	assert.Equal(t, []string{"A=1", "EDITOR=vim"}, cfg.Process.EnvList())

	// untouched groups keep their defaults
	assert.Equal(t, DefaultConfig().Terminal, cfg.Terminal)
}

func TestDecodeRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"enum":       "[display]\ntab_mode = \"sometimes\"",
		"colour":     "[color]\nfg = \"green\"",
		"palette":    "[color]\npalette = \"nope\"",
		"opacity":    "[color]\nopacity = 1.5",
		"custom":     "[color]\ncustom_palette = [\"#000000\"]",
		"size":       "[display]\nheight = \"140%\"",
		"unknown":    "[display]\ncolour = 1",
		"scrollback": "[terminal]\nscrollback_lines = -5",
		"backspace":  "[terminal]\nbackspace_binding = \"ctrl_h\"",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(doc)
			assert.Error(t, err)
		})
	}
}

func TestDecodeEraseBindingsAndCursorForeground(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, EraseAuto, cfg.Terminal.BackspaceBinding)
	assert.Equal(t, EraseAuto, cfg.Terminal.DeleteBinding)
	assert.Equal(t, cfg.Color.Background, cfg.Color.CursorForeground)

	cfg, err := Decode(`
[terminal]
backspace_binding = "ascii_delete"
delete_binding = "delete_sequence"

[color]
cursor_fg = "#ffeedd"
`)
	require.NoError(t, err)
	assert.Equal(t, EraseASCIIDelete, cfg.Terminal.BackspaceBinding)
	assert.Equal(t, EraseDeleteSequence, cfg.Terminal.DeleteBinding)
	assert.Equal(t, "#ffeedd", cfg.Color.CursorForeground.Hex())
}

func TestCustomPaletteWins(t *testing.T) {
	doc := "[color]\ncustom_palette = ["
	for i := 0; i < PaletteSize; i++ {
		if i > 0 {
			doc += ", "
		}
		doc += `"#010203"`
	}
	doc += "]\n"

	cfg, err := Decode(doc)
	require.NoError(t, err)
	colors := cfg.Color.PaletteColors()
	require.Len(t, colors, PaletteSize)
	for _, c := range colors {
		assert.Equal(t, "#010203", c.Hex())
	}
}

func TestLoadMissingDefaultPathGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "zoha.toml")
	cfg := DefaultConfig()
	cfg.Display.Height = Pixels(420)
	cfg.Font.Font = "Iosevka 11"
	cfg.Color.Opacity = 0.75
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Pixels(420), loaded.Display.Height)
	assert.Equal(t, "Iosevka 11", loaded.Font.Font)
	assert.InDelta(t, 0.75, loaded.Color.Opacity, 1e-9)
	assert.Equal(t, cfg.Color.Foreground.Hex(), loaded.Color.Foreground.Hex())
}

func TestEncodeWritesGroups(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultConfig().Encode(&buf))
	out := buf.String()
	for _, group := range []string{"[display]", "[terminal]", "[font]", "[color]", "[process]", "[behavior]", "[keys]"} {
		assert.Contains(t, out, group)
	}
	assert.Contains(t, out, `height = "40%"`)
}

func TestSizeResolve(t *testing.T) {
	assert.Equal(t, 432, Percent(40).Resolve(1080))
	assert.Equal(t, 700, Pixels(700).Resolve(1080))

	s, err := ParseSize(" 25% ")
	require.NoError(t, err)
	assert.Equal(t, Percent(25), s)
	_, err = ParseSize("0")
	assert.Error(t, err)
}

func TestPaletteLookup(t *testing.T) {
	for _, opt := range PaletteOptions() {
		colors, ok := Palette(opt.Name)
		require.True(t, ok, opt.Name)
		assert.Len(t, colors, PaletteSize)
		assert.Equal(t, opt.Label, PaletteLabel(opt.Name))
	}
	_, ok := Palette("missing")
	assert.False(t, ok)
	assert.Equal(t, "missing", PaletteLabel("missing"))
}
