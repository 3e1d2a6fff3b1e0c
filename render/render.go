// Package render derives the window chrome from the configuration: the
// stylesheet applied to the window and notebook, and the window geometry.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/javanhut/Zoha/config"
)

const (
	// TransparentClass lets the terminal background alpha show through
	TransparentClass = "transparent-bg"
	// NotebookClass styles the tab strip
	NotebookClass = "notebook"
)

// Theme colors for the window chrome
type Theme struct {
	Background config.Color
	Foreground config.Color
	TabBar     config.Color
	TabActive  config.Color
}

// ThemeFor builds the chrome theme from the colour config. The tab bar takes
// the terminal background at the configured opacity.
func ThemeFor(c config.ColorConfig) Theme {
	return Theme{
		Background: c.Background.WithAlpha(c.Opacity),
		Foreground: c.Foreground.WithAlpha(1),
		TabBar:     c.Background.WithAlpha(c.Opacity),
		TabActive:  c.Cursor.WithAlpha(1),
	}
}

// CSS returns the application stylesheet
func CSS(cfg *config.Config) string {
	theme := ThemeFor(cfg.Color)
	var b strings.Builder

	fmt.Fprintf(&b, ".%s {\n  background-color: transparent;\n}\n\n", TransparentClass)

	fmt.Fprintf(&b, "notebook.%s > header {\n", NotebookClass)
	fmt.Fprintf(&b, "  background-color: %s;\n", cssColor(theme.TabBar))
	b.WriteString("  border: none;\n  box-shadow: none;\n}\n\n")

	fmt.Fprintf(&b, "notebook.%s > header tab {\n", NotebookClass)
	fmt.Fprintf(&b, "  color: %s;\n", cssColor(theme.Foreground.WithAlpha(0.6)))
	b.WriteString("  padding: 2px 10px;\n  min-height: 0;\n}\n\n")

	fmt.Fprintf(&b, "notebook.%s > header tab:checked {\n", NotebookClass)
	fmt.Fprintf(&b, "  color: %s;\n", cssColor(theme.Foreground))
	fmt.Fprintf(&b, "  box-shadow: inset 0 -2px %s;\n", cssColor(theme.TabActive))
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "notebook.%s > stack {\n  background-color: transparent;\n}\n", NotebookClass)
	return b.String()
}

func cssColor(c config.Color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", channel(c.R), channel(c.G), channel(c.B), c.A)
}

func channel(v float64) int {
	return int(math.Round(math.Min(1, math.Max(0, v)) * 255))
}

// Fallback monitor extent used when no monitor can be queried
const (
	FallbackMonitorWidth  = 1280
	FallbackMonitorHeight = 800
)

// WindowSize resolves the configured window size against a monitor
func WindowSize(d config.DisplayConfig, monitorWidth, monitorHeight int) (int, int) {
	if monitorWidth <= 0 || monitorHeight <= 0 {
		monitorWidth, monitorHeight = FallbackMonitorWidth, FallbackMonitorHeight
	}
	w := d.Width.Resolve(monitorWidth)
	h := d.Height.Resolve(monitorHeight)
	return max(1, w), max(1, h)
}
