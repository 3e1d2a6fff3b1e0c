package tab

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/javanhut/Zoha/config"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"
)

type fakeTerminal struct {
	id       SessionID
	provider *fakeProvider

	spawns     []SpawnRequest
	handlers   map[SignalHandle]func(int)
	nextHandle SignalHandle
	fontScale  float64
	colors     Colors
	fontErr    error
	colorsErr  error
	focus      int
	copies     int
	pastes     int
	closed     bool
}

func (t *fakeTerminal) ID() SessionID { return t.id }

func (t *fakeTerminal) Spawn(req SpawnRequest, done SpawnDone) {
	t.spawns = append(t.spawns, req)
	pid := int(t.id)*100 + len(t.spawns)
	err := t.provider.spawnErr
	finish := func() {
		if err != nil {
			done(0, err)
			return
		}
		done(pid, nil)
	}
	if t.provider.async {
		t.provider.pending = append(t.provider.pending, finish)
		return
	}
	finish()
}

func (t *fakeTerminal) ConnectChildExited(fn func(int)) SignalHandle {
	t.nextHandle++
	t.handlers[t.nextHandle] = fn
	return t.nextHandle
}

func (t *fakeTerminal) Disconnect(h SignalHandle) {
	delete(t.handlers, h)
}

func (t *fakeTerminal) SetFontScale(scale float64) error {
	if t.fontErr != nil {
		return t.fontErr
	}
	t.fontScale = scale
	return nil
}

func (t *fakeTerminal) SetColors(c Colors) error {
	if t.colorsErr != nil {
		return t.colorsErr
	}
	t.colors = c
	return nil
}

func (t *fakeTerminal) GrabFocus() { t.focus++ }
func (t *fakeTerminal) Copy() { t.copies++ }
func (t *fakeTerminal) Paste() { t.pastes++ }
func (t *fakeTerminal) Close() { t.closed = true }

// exit emulates the child exiting
func (t *fakeTerminal) exit(status int) {
	for _, fn := range t.handlers {
		fn(status)
	}
}

// lastPID is the pid handed out by the most recent spawn
func (t *fakeTerminal) lastPID() int {
	return int(t.id)*100 + len(t.spawns)
}

type fakeProvider struct {
	terms    []*fakeTerminal
	byID     map[SessionID]*fakeTerminal
	err      error
	spawnErr error
	async    bool
	pending  []func()
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{byID: map[SessionID]*fakeTerminal{}}
}

func (p *fakeProvider) NewTerminal(id SessionID) (Terminal, error) {
	if p.err != nil {
		return nil, p.err
	}
	t := &fakeTerminal{id: id, provider: p, handlers: map[SignalHandle]func(int){}}
	p.terms = append(p.terms, t)
	p.byID[id] = t
	return t, nil
}

func (p *fakeProvider) flush() {
	pending := p.pending
	p.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fakeNotebook struct {
	pages    []Terminal
	labels   []string
	current  int
	showTabs []bool
	// onReorder emulates the page-reordered signal firing synchronously
	onReorder func(id SessionID, pos int)
}

func newFakeNotebook() *fakeNotebook {
	return &fakeNotebook{current: -1}
}

func (n *fakeNotebook) NPages() int { return len(n.pages) }
func (n *fakeNotebook) CurrentPage() int { return n.current }

func (n *fakeNotebook) SetCurrentPage(pos int) {
	if pos >= 0 && pos < len(n.pages) {
		n.current = pos
	}
}

func (n *fakeNotebook) InsertPage(t Terminal, pos int) int {
	if pos < 0 || pos > len(n.pages) {
		pos = len(n.pages)
	}
	n.pages = append(n.pages, nil)
	copy(n.pages[pos+1:], n.pages[pos:])
	n.pages[pos] = t
	n.labels = append(n.labels, "")
	copy(n.labels[pos+1:], n.labels[pos:])
	n.labels[pos] = ""
	switch {
	case n.current < 0:
		n.current = pos
	case n.current >= pos:
		n.current++
	}
	return pos
}

func (n *fakeNotebook) RemovePage(pos int) {
	n.pages = append(n.pages[:pos], n.pages[pos+1:]...)
	n.labels = append(n.labels[:pos], n.labels[pos+1:]...)
	switch {
	case len(n.pages) == 0:
		n.current = -1
	case n.current > pos:
		n.current--
	case n.current >= len(n.pages):
		n.current = len(n.pages) - 1
	}
}

func (n *fakeNotebook) ReorderPage(from, to int) {
	moved := n.pages[from]
	pages := make([]Terminal, len(n.pages))
	labels := make([]string, len(n.labels))
	for i := range n.pages {
		j := ReorderedSlot(i, from, to)
		pages[j] = n.pages[i]
		labels[j] = n.labels[i]
	}
	n.pages, n.labels = pages, labels
	n.current = ReorderedSlot(n.current, from, to)
	if n.onReorder != nil {
		n.onReorder(moved.ID(), to)
	}
}

func (n *fakeNotebook) SetTabLabel(pos int, text string) { n.labels[pos] = text }

func (n *fakeNotebook) SetShowTabs(show bool) { n.showTabs = append(n.showTabs, show) }

func (n *fakeNotebook) tabsShown() bool {
	return n.showTabs[len(n.showTabs)-1]
}

type fakeWindow struct {
	visible      bool
	shows, hides int
	closes       int
	fullscreens  int
	restores     int
}

func (w *fakeWindow) IsVisible() bool { return w.visible }

func (w *fakeWindow) Show() {
	w.visible = true
	w.shows++
}

func (w *fakeWindow) Hide() {
	w.visible = false
	w.hides++
}

func (w *fakeWindow) Fullscreen() { w.fullscreens++ }
func (w *fakeWindow) Unfullscreen() { w.restores++ }
func (w *fakeWindow) Close() { w.closes++ }

type harness struct {
	ctl   *Controller
	state *State
	nb    *fakeNotebook
	win   *fakeWindow
	prov  *fakeProvider
	cwds  map[int]string
	logs  *bytes.Buffer
}

func newHarness(t *testing.T, mutate func(cfg *config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Process.WorkingDir = "/home/user"
	cfg.Process.Command = "/bin/sh"
	if mutate != nil {
		mutate(cfg)
	}

	h := &harness{
		state: NewState(cfg),
		nb:    newFakeNotebook(),
		win:   &fakeWindow{visible: true},
		prov:  newFakeProvider(),
		cwds:  map[int]string{},
		logs:  &bytes.Buffer{},
	}
	require.NoError(t, h.state.SetNotebook(h.nb))
	require.NoError(t, h.state.SetWindow(h.win))

	logger := pslog.NewWithOptions(h.logs, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	ctl, err := NewController(h.state, Deps{
		Provider: h.prov,
		Cwd: func(pid int) (string, error) {
			dir, ok := h.cwds[pid]
			if !ok {
				return "", errors.New("no such process")
			}
			return dir, nil
		},
		FindShell: func() string { return "/bin/login-shell" },
		Logger:    logger,
	})
	require.NoError(t, err)
	h.ctl = ctl
	return h
}

// addTabs opens n tabs and points every new child at /tmp/<counter>
func (h *harness) addTabs(n int) {
	for i := 0; i < n; i++ {
		h.ctl.Add(true)
		term := h.prov.terms[len(h.prov.terms)-1]
		h.cwds[term.lastPID()] = fmt.Sprintf("/tmp/%d", len(h.prov.terms))
	}
}

// ids returns the session ids by slot
func (h *harness) ids() []SessionID {
	var ids []SessionID
	h.state.Registry().Each(func(_ int, s *Session) {
		ids = append(ids, s.ID())
	})
	return ids
}

// requireConsistent checks that registry slots and notebook pages agree
func (h *harness) requireConsistent(t *testing.T) {
	t.Helper()
	reg := h.state.Registry()
	require.Equal(t, h.nb.NPages(), reg.Len())
	for i, page := range h.nb.pages {
		s, ok := reg.At(i)
		require.True(t, ok, "slot %d missing", i)
		require.Equal(t, page.ID(), s.ID(), "slot %d", i)
		require.Equal(t, s.Terminal(), page)
	}
}
