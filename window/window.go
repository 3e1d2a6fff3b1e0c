package window

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/render"
)

// Window wraps the application window
type Window struct {
	win *gtk.ApplicationWindow
}

// NewWindow creates the undecorated drop-down window sized against the
// configured monitor.
func NewWindow(app *gtk.Application, cfg *config.Config, log pslog.Logger) *Window {
	win := gtk.NewApplicationWindow(app)
	win.SetTitle(cfg.Display.Title)
	win.SetDecorated(false)
	win.AddCSSClass(render.TransparentClass)

	monW, monH := 0, 0
	if mon, ok := MonitorAt(cfg.Display.Monitor); ok {
		monW, monH = mon.Width, mon.Height
	} else {
		log.Warn("monitor not found, using fallback size", "monitor", cfg.Display.Monitor)
	}
	width, height := render.WindowSize(cfg.Display, monW, monH)
	win.SetDefaultSize(width, height)
	log.Debug("window created", "width", width, "height", height)

	warnUnsupported(cfg.Display, log)
	return &Window{win: win}
}

// warnUnsupported reports window manager hints GTK 4 has no portable API for
func warnUnsupported(d config.DisplayConfig, log pslog.Logger) {
	features := map[string]bool{
		"skip_task_bar": d.SkipTaskBar,
		"always_on_top": d.AlwaysOnTop,
		"sticky":        d.Sticky,
	}
	for name, on := range features {
		if on {
			log.Warn("window feature not supported, ignoring", "feature", name)
		}
	}
}

// SetChild sets the window content
func (w *Window) SetChild(child gtk.Widgetter) {
	w.win.SetChild(child)
}

// GTK returns the underlying window
func (w *Window) GTK() *gtk.ApplicationWindow {
	return w.win
}

// IsVisible implements tab.Window
func (w *Window) IsVisible() bool {
	return w.win.IsVisible()
}

// Show implements tab.Window
func (w *Window) Show() {
	w.win.SetVisible(true)
	w.win.Present()
}

// Hide implements tab.Window
func (w *Window) Hide() {
	w.win.SetVisible(false)
}

// Fullscreen implements tab.Window
func (w *Window) Fullscreen() {
	w.win.Fullscreen()
}

// Unfullscreen implements tab.Window
func (w *Window) Unfullscreen() {
	w.win.Unfullscreen()
}

// Close implements tab.Window. Closing the only window ends the application.
func (w *Window) Close() {
	w.win.Close()
}
