package window

import (
	"errors"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// ErrNoDisplay is returned when GTK has no default display
var ErrNoDisplay = errors.New("window: no display")

// Monitor describes one connected monitor
type Monitor struct {
	Index        int
	Connector    string
	Manufacturer string
	Model        string
	X, Y         int
	Width        int
	Height       int
}

// ListMonitors returns the monitors of the default display. GTK must be
// initialised.
func ListMonitors() ([]Monitor, error) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, ErrNoDisplay
	}
	model := display.Monitors()
	var out []Monitor
	for i := uint(0); i < model.NItems(); i++ {
		mon, ok := model.Item(i).Cast().(*gdk.Monitor)
		if !ok {
			continue
		}
		geo := mon.Geometry()
		out = append(out, Monitor{
			Index:        int(i),
			Connector:    mon.Connector(),
			Manufacturer: mon.Manufacturer(),
			Model:        mon.Model(),
			X:            geo.X(),
			Y:            geo.Y(),
			Width:        geo.Width(),
			Height:       geo.Height(),
		})
	}
	return out, nil
}

// MonitorAt returns monitor index, falling back to the first monitor
func MonitorAt(index int) (Monitor, bool) {
	monitors, err := ListMonitors()
	if err != nil || len(monitors) == 0 {
		return Monitor{}, false
	}
	if index >= 0 && index < len(monitors) {
		return monitors[index], true
	}
	return monitors[0], true
}
