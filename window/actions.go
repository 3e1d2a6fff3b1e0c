package window

import (
	glibv2 "github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/keybindings"
)

// installActions registers one application action per binding and maps its
// accelerators.
func installActions(app *gtk.Application, target keybindings.Target, bindings []keybindings.Binding, log pslog.Logger) {
	for _, b := range bindings {
		b := b
		action := gio.NewSimpleAction(b.Name(), nil)
		action.ConnectActivate(func(_ *glibv2.Variant) {
			log.Trace("action activated", "action", b.Name())
			keybindings.Dispatch(target, b)
		})
		app.AddAction(action)
		app.SetAccelsForAction("app."+b.Name(), b.Accels)
		log.Debug("action installed", "action", b.Name(), "accels", b.Accels)
	}
}
