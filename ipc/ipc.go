// Package ipc carries the toggle signal between zoha processes over the
// D-Bus session bus.
package ipc

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/javanhut/Zoha/logx"
)

const (
	// AppID is the application id, also used as the D-Bus interface
	AppID = "io.github.javanhut.zoha"
	// ObjectPath is the path the toggle signal is emitted on
	ObjectPath = dbus.ObjectPath("/io/github/javanhut/zoha")
	// ToggleMember is the signal member name
	ToggleMember = "toggle"
)

// SendToggle emits the toggle signal on the session bus
func SendToggle(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	if err := conn.Emit(ObjectPath, AppID+"."+ToggleMember); err != nil {
		return fmt.Errorf("emit toggle: %w", err)
	}
	logx.Ctx(ctx).Debug("toggle signal sent", "path", ObjectPath)
	return nil
}

// Listen calls onToggle for every toggle signal until ctx is done. onToggle
// runs on the listener goroutine.
func Listen(ctx context.Context, onToggle func()) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(AppID),
		dbus.WithMatchMember(ToggleMember),
	); err != nil {
		return fmt.Errorf("match toggle signal: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	logx.Ctx(ctx).Info("listening for toggle signal", "interface", AppID, "path", ObjectPath)
	serve(ctx, signals, onToggle)
	return nil
}

func serve(ctx context.Context, signals <-chan *dbus.Signal, onToggle func()) {
	log := logx.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				log.Debug("signal channel closed")
				return
			}
			if !isToggle(sig) {
				log.Trace("ignoring signal", "name", sig.Name, "path", sig.Path)
				continue
			}
			log.Debug("toggle signal received", "sender", sig.Sender)
			onToggle()
		}
	}
}

func isToggle(sig *dbus.Signal) bool {
	return sig != nil && sig.Path == ObjectPath && sig.Name == AppID+"."+ToggleMember
}
