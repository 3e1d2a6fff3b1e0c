package window

import (
	"context"
	"fmt"
	"os"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	glibv2 "github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/jgillich/gotk4-vte/pkg/vte/v3"
	"golang.org/x/sys/unix"
	"pkt.systems/pslog"

	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/logx"
	"github.com/javanhut/Zoha/render"
	"github.com/javanhut/Zoha/shell"
	"github.com/javanhut/Zoha/tab"
)

// Terminal is a VTE terminal and its scrollbar packed in a box. The box is
// the notebook page and carries the session id in its widget name.
type Terminal struct {
	id  tab.SessionID
	box *gtk.Box
	vte *vte.Terminal
	log pslog.Logger

	pid        int
	closed     bool
	pending    *shell.Pending
	handlers   map[tab.SignalHandle]glib.SignalHandle
	nextHandle tab.SignalHandle
}

// Provider creates VTE terminals configured from cfg
type Provider struct {
	cfg *config.Config
	log pslog.Logger
}

// NewProvider creates a terminal provider
func NewProvider(cfg *config.Config, log pslog.Logger) *Provider {
	return &Provider{cfg: cfg, log: logx.OrDefault(log)}
}

// NewTerminal implements tab.Provider
func (p *Provider) NewTerminal(id tab.SessionID) (tab.Terminal, error) {
	term := vte.NewTerminal()
	if term == nil {
		return nil, fmt.Errorf("session %d: vte terminal unavailable", id)
	}
	term.SetHExpand(true)
	term.SetVExpand(true)
	applyTerminalConfig(term, p.cfg)

	box := gtk.NewBox(gtk.OrientationHorizontal, 0)
	box.SetName(id.WidgetName())
	box.AddCSSClass(render.TransparentClass)
	switch p.cfg.Display.ScrollbarPosition {
	case config.ScrollbarLeft:
		box.Append(gtk.NewScrollbar(gtk.OrientationVertical, term.VAdjustment()))
		box.Append(term)
	case config.ScrollbarHidden:
		box.Append(term)
	default:
		box.Append(term)
		box.Append(gtk.NewScrollbar(gtk.OrientationVertical, term.VAdjustment()))
	}

	return &Terminal{
		id:       id,
		box:      box,
		vte:      term,
		log:      logx.WithSession(p.log, uint64(id), 0),
		handlers: map[tab.SignalHandle]glib.SignalHandle{},
	}, nil
}

func applyTerminalConfig(term *vte.Terminal, cfg *config.Config) {
	tc := cfg.Terminal
	setInt(term.SetScrollbackLines, tc.ScrollbackLines)
	term.SetScrollOnKeystroke(tc.ScrollOnKeystroke)
	term.SetScrollOnOutput(tc.ScrollOnOutput)
	term.SetBackspaceBinding(eraseBinding(tc.BackspaceBinding))
	term.SetDeleteBinding(eraseBinding(tc.DeleteBinding))
	term.SetMouseAutohide(tc.MouseAutoHide)
	term.SetAudibleBell(tc.AudibleBell)
	term.SetAllowHyperlink(tc.AllowHyperlink)
	if tc.WordCharExceptions != "" {
		term.SetWordCharExceptions(tc.WordCharExceptions)
	}

	switch tc.CursorShape {
	case config.CursorShapeIBeam:
		term.SetCursorShape(vte.CursorShapeIbeam)
	case config.CursorShapeUnderline:
		term.SetCursorShape(vte.CursorShapeUnderline)
	default:
		term.SetCursorShape(vte.CursorShapeBlock)
	}
	switch tc.CursorBlink {
	case config.CursorBlinkOn:
		term.SetCursorBlinkMode(vte.CursorBlinkOn)
	case config.CursorBlinkOff:
		term.SetCursorBlinkMode(vte.CursorBlinkOff)
	default:
		term.SetCursorBlinkMode(vte.CursorBlinkSystem)
	}

	if cfg.Font.Font != "" {
		term.SetFont(pango.FontDescriptionFromString(cfg.Font.Font))
	}
}

func eraseBinding(b config.EraseBinding) vte.EraseBinding {
	switch b {
	case config.EraseASCIIBackspace:
		return vte.EraseASCIIBackspace
	case config.EraseASCIIDelete:
		return vte.EraseASCIIDelete
	case config.EraseDeleteSequence:
		return vte.EraseDeleteSequence
	case config.EraseTTY:
		return vte.EraseTty
	default:
		return vte.EraseAuto
	}
}

// setInt adapts an int config value to whatever integer width the binding takes
func setInt[T ~int | ~int32 | ~int64](set func(T), v int) {
	set(T(v))
}

// ID implements tab.Terminal
func (t *Terminal) ID() tab.SessionID {
	return t.id
}

// Widget returns the notebook page widget
func (t *Terminal) Widget() *gtk.Box {
	return t.box
}

// Spawn starts the child on a new pty off the main loop and hands the pty to
// VTE once the result is back on the main loop.
func (t *Terminal) Spawn(req tab.SpawnRequest, done tab.SpawnDone) {
	if t.closed {
		done(0, os.ErrClosed)
		return
	}
	shellReq := shell.Request{
		Argv: req.Argv,
		Dir:  req.WorkingDir,
		Env:  req.Env,
		Cols: uint16(t.vte.ColumnCount()),
		Rows: uint16(t.vte.RowCount()),
	}
	var pending *shell.Pending
	pending = shell.StartAsync(shellReq, idle, func(s *shell.PtySession, err error) {
		if t.pending == pending {
			t.pending = nil
		}
		if err != nil {
			done(0, err)
			return
		}
		if t.closed {
			s.Close()
			done(0, os.ErrClosed)
			return
		}
		if err := t.attach(s); err != nil {
			s.Close()
			done(0, err)
			return
		}
		done(s.Pid(), nil)
	})
	t.pending = pending
}

func (t *Terminal) attach(s *shell.PtySession) error {
	fd, err := s.DupFd()
	if err != nil {
		return err
	}
	pty, err := vte.NewPtyForeignSync(context.Background(), fd)
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("vte pty: %w", err)
	}
	t.vte.SetPty(pty)
	t.vte.WatchChild(glibv2.Pid(s.Pid()))
	t.pid = s.Pid()
	if err := s.Detach(); err != nil {
		t.log.Warn("pty detach failed", "pid", t.pid, "err", err)
	}
	return nil
}

func idle(fn func()) {
	glib.IdleAdd(fn)
}

// ConnectChildExited implements tab.Terminal
func (t *Terminal) ConnectChildExited(fn func(status int)) tab.SignalHandle {
	h := t.vte.ConnectChildExited(func(status int) {
		t.pid = 0
		fn(status)
	})
	t.nextHandle++
	t.handlers[t.nextHandle] = h
	return t.nextHandle
}

// Disconnect implements tab.Terminal
func (t *Terminal) Disconnect(h tab.SignalHandle) {
	gh, ok := t.handlers[h]
	if !ok {
		return
	}
	t.vte.HandlerDisconnect(gh)
	delete(t.handlers, h)
}

// SetFontScale implements tab.Terminal
func (t *Terminal) SetFontScale(scale float64) error {
	t.vte.SetFontScale(scale)
	return nil
}

// SetColors implements tab.Terminal
func (t *Terminal) SetColors(c tab.Colors) error {
	if len(c.Palette) != 0 && len(c.Palette) != config.PaletteSize {
		return fmt.Errorf("palette has %d colours", len(c.Palette))
	}
	fg := rgba(c.Foreground)
	bg := rgba(c.Background)
	palette := make([]gdk.RGBA, 0, len(c.Palette))
	for _, p := range c.Palette {
		palette = append(palette, rgba(p))
	}
	t.vte.SetColors(&fg, &bg, palette)

	cursor := rgba(c.Cursor)
	t.vte.SetColorCursor(&cursor)
	cursorFg := rgba(c.CursorForeground)
	t.vte.SetColorCursorForeground(&cursorFg)
	return nil
}

func rgba(c config.Color) gdk.RGBA {
	return gdk.NewRGBA(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

// GrabFocus implements tab.Terminal
func (t *Terminal) GrabFocus() {
	t.vte.GrabFocus()
}

// Copy implements tab.Terminal
func (t *Terminal) Copy() {
	t.vte.CopyClipboardFormat(vte.FormatText)
}

// Paste implements tab.Terminal
func (t *Terminal) Paste() {
	t.vte.PasteClipboard()
}

// Close hangs up the child's process group, or cancels a spawn still in
// flight. The page itself is removed by the notebook.
func (t *Terminal) Close() {
	t.closed = true
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
	if t.pid <= 0 {
		return
	}
	if err := unix.Kill(-t.pid, unix.SIGHUP); err != nil && err != unix.ESRCH {
		t.log.Warn("hangup failed", "pid", t.pid, "err", err)
	}
	t.pid = 0
}
