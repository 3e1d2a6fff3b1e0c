package config

// PaletteSize is the number of colours in a terminal palette
const PaletteSize = 16

// PaletteOption describes a built-in palette.
type PaletteOption struct {
	Name  string
	Label string
}

// PaletteOptions lists the built-in palettes.
func PaletteOptions() []PaletteOption {
	return []PaletteOption{
		{Name: "tango", Label: "Tango"},
		{Name: "linux", Label: "Linux console"},
		{Name: "xterm", Label: "XTerm"},
		{Name: "rxvt", Label: "Rxvt"},
		{Name: "solarized", Label: "Solarized"},
	}
}

var palettes = map[string][PaletteSize]string{
	"tango": {
		"#2e3436", "#cc0000", "#4e9a06", "#c4a000", "#3465a4", "#75507b", "#06989a", "#d3d7cf",
		"#555753", "#ef2929", "#8ae234", "#fce94f", "#729fcf", "#ad7fa8", "#34e2e2", "#eeeeec",
	},
	"linux": {
		"#000000", "#aa0000", "#00aa00", "#aa5500", "#0000aa", "#aa00aa", "#00aaaa", "#aaaaaa",
		"#555555", "#ff5555", "#55ff55", "#ffff55", "#5555ff", "#ff55ff", "#55ffff", "#ffffff",
	},
	"xterm": {
		"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
		"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
	},
	"rxvt": {
		"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000cd", "#cd00cd", "#00cdcd", "#faebd7",
		"#404040", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
	},
	"solarized": {
		"#073642", "#dc322f", "#859900", "#b58900", "#268bd2", "#d33682", "#2aa198", "#eee8d5",
		"#002b36", "#cb4b16", "#586e75", "#657b83", "#839496", "#6c71c4", "#93a1a1", "#fdf6e3",
	},
}

// Palette returns the colours of a built-in palette
func Palette(name string) ([]Color, bool) {
	hexes, ok := palettes[name]
	if !ok {
		return nil, false
	}
	colors := make([]Color, 0, PaletteSize)
	for _, h := range hexes {
		colors = append(colors, MustParseColor(h))
	}
	return colors, true
}

// PaletteLabel returns the display label for a palette name.
func PaletteLabel(name string) string {
	for _, opt := range PaletteOptions() {
		if opt.Name == name {
			return opt.Label
		}
	}
	return name
}
