// Package window hosts the GTK side of zoha: the VTE terminal, notebook and
// window adapters and the application bootstrap.
package window

import (
	"context"
	"errors"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/assets"
	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/ipc"
	"github.com/javanhut/Zoha/keybindings"
	"github.com/javanhut/Zoha/logx"
	"github.com/javanhut/Zoha/render"
	"github.com/javanhut/Zoha/shell"
	"github.com/javanhut/Zoha/tab"
)

// Run starts the GTK application and blocks until it quits. Cancelling ctx
// quits the application.
func Run(ctx context.Context, cfg *config.Config) int {
	log := logx.Ctx(ctx)
	app := gtk.NewApplication(ipc.AppID, gio.ApplicationFlagsNone)

	var ctl *tab.Controller
	app.ConnectActivate(func() {
		if ctl != nil {
			log.Debug("activated again, toggling visibility")
			ctl.ToggleVisibility()
			return
		}
		var err error
		ctl, err = activate(ctx, app, cfg)
		if err != nil {
			log.Error("startup failed", "err", err)
			app.Quit()
		}
	})
	app.ConnectShutdown(func() {
		if ctl != nil {
			ctl.Shutdown()
		}
		log.Info("shutdown")
	})

	go func() {
		<-ctx.Done()
		glib.IdleAdd(app.Quit)
	}()

	return app.Run([]string{config.AppName})
}

func activate(ctx context.Context, app *gtk.Application, cfg *config.Config) (*tab.Controller, error) {
	log := logx.Ctx(ctx)

	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, ErrNoDisplay
	}
	css := gtk.NewCSSProvider()
	css.LoadFromData(render.CSS(cfg))
	gtk.StyleContextAddProviderForDisplay(display, css, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	installIcon(display, log)

	win := NewWindow(app, cfg, log)
	nb := NewNotebook(cfg.Display, log)
	win.SetChild(nb.Widget())

	state := tab.NewState(cfg)
	if err := errors.Join(state.SetWindow(win), state.SetNotebook(nb)); err != nil {
		return nil, err
	}
	ctl, err := tab.NewController(state, tab.Deps{
		Provider:  NewProvider(cfg, log),
		Cwd:       shell.Cwd,
		FindShell: shell.FindShell,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	nb.ConnectReordered(ctl.PageReordered)
	installActions(app, ctl, keybindings.Bindings(cfg.Keys), log)
	win.GTK().NotifyProperty("is-active", func() {
		if win.GTK().IsActive() {
			ctl.Focus()
		}
	})

	go func() {
		err := ipc.Listen(ctx, func() {
			glib.IdleAdd(ctl.ToggleVisibility)
		})
		if err != nil {
			log.Warn("toggle signal unavailable", "err", err)
		}
	}()

	ctl.Add(true)
	if cfg.Display.Fullscreen {
		win.Fullscreen()
	}
	win.Show()
	log.Info("started", "monitor", cfg.Display.Monitor, "tabs", nb.NPages())
	return ctl, nil
}

func installIcon(display *gdk.Display, log pslog.Logger) {
	root := assets.DefaultIconRoot()
	if _, err := assets.InstallIcons(root); err != nil {
		log.Warn("icon install failed", "err", err)
		return
	}
	gtk.IconThemeGetForDisplay(display).AddSearchPath(root)
	gtk.WindowSetDefaultIconName(assets.IconName)
}
