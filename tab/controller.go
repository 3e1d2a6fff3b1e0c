package tab

import (
	"errors"
	"fmt"

	"github.com/javanhut/Zoha/config"
	"github.com/javanhut/Zoha/logx"
	"pkt.systems/pslog"
)

// Deps are the collaborators of a Controller
type Deps struct {
	Provider Provider
	// Cwd resolves a pid's working directory; nil disables cwd lookup
	Cwd CwdFunc
	// FindShell returns the user's login shell
	FindShell func() string
	Logger    pslog.Logger
}

// Controller runs tab operations against the State, keeping the registry,
// the notebook pages and the tab labels in step.
type Controller struct {
	state     *State
	provider  Provider
	cwd       CwdFunc
	findShell func() string
	log       pslog.Logger
}

// NewController creates a controller over state
func NewController(state *State, deps Deps) (*Controller, error) {
	if state == nil {
		return nil, errors.New("tab: nil state")
	}
	if deps.Provider == nil {
		return nil, errors.New("tab: nil terminal provider")
	}
	findShell := deps.FindShell
	if findShell == nil {
		findShell = func() string { return "/bin/sh" }
	}
	return &Controller{
		state:     state,
		provider:  deps.Provider,
		cwd:       deps.Cwd,
		findShell: findShell,
		log:       logx.OrDefault(deps.Logger),
	}, nil
}

// Add opens a new tab after the active one, or at slot 0 when there is none.
// The child starts in the active tab's cwd when known.
func (c *Controller) Add(grabFocus bool) {
	release := c.state.Borrow()
	defer release()
	c.addLocked(grabFocus)
}

func (c *Controller) addLocked(grabFocus bool) {
	log := logx.WithOp(c.log, "add")
	nb, err := c.state.notebookHandle()
	if err != nil {
		log.Warn("tab add skipped", "err", err)
		return
	}
	log.Trace("tab add start", "pages", nb.NPages())

	pos, dir := 0, ""
	if n := nb.NPages(); n > 0 {
		pos = n
		cur := nb.CurrentPage()
		if active, ok := c.state.registry.At(cur); ok {
			pos = cur + 1
			if cwd, ok := active.Cwd(); ok {
				dir = cwd
			}
		} else {
			log.Warn("tab add without active session", "slot", cur, "err", ErrNoActivePage)
		}
	}

	id := c.state.nextID()
	term, err := c.provider.NewTerminal(id)
	if err != nil {
		log.Error("tab add terminal create failed", "err", err)
		return
	}
	sess := NewSession(id, c.state.nextCounter(), term, c.cwd, c.log)
	sess.ConnectExit(func(status int) {
		c.ChildExited(id, status)
	})

	pos = nb.InsertPage(term, pos)
	if pos < 0 {
		log.Error("tab add page insert failed", "session", id)
		sess.Kill()
		return
	}
	if err := c.state.registry.Insert(pos, sess); err != nil {
		log.Error("tab add registry insert failed", "err", err)
		nb.RemovePage(pos)
		sess.Kill()
		return
	}
	nb.SetCurrentPage(pos)

	c.applySettingsLocked(sess)
	c.spawnLocked(sess, c.commandArgv(), dir)
	c.relabelLocked()
	c.adjustTabBarLocked()
	if grabFocus {
		sess.Focus()
	}
	log.Debug("tab added", "session", id, "slot", pos, "counter", sess.Counter(), "dir", dir)
}

// Close closes the active tab
func (c *Controller) Close() {
	release := c.state.Borrow()
	defer release()

	log := logx.WithOp(c.log, "close")
	sess, slot, err := c.activeLocked()
	if err != nil {
		log.Warn("tab close skipped", "err", err)
		return
	}
	sess.Kill()
	if !c.removeLocked(slot) {
		c.focusLocked()
	}
	log.Debug("tab closed", "session", sess.ID(), "slot", slot)
}

// ChildExited handles the exit of the child in session id according to
// behavior.terminal_exit.
func (c *Controller) ChildExited(id SessionID, status int) {
	log := logx.WithOp(c.log, "child-exited").With("session", id, "status", status)
	release, ok := c.state.TryBorrow()
	if !ok {
		log.Warn("child exit skipped", "err", ErrBusy)
		return
	}
	defer release()

	slot, ok := c.state.registry.SlotOf(id)
	if !ok {
		log.Warn("child exit for unknown session", "err", ErrNoSession)
		return
	}
	sess, _ := c.state.registry.At(slot)

	switch c.state.cfg.Behavior.TerminalExit {
	case config.TerminalExitRestart:
		log.Debug("restarting command")
		c.spawnLocked(sess, c.commandArgv(), "")
		c.relabelLocked()
	case config.TerminalExitShell:
		log.Debug("dropping to default shell")
		c.spawnLocked(sess, []string{c.findShell()}, "")
		c.relabelLocked()
	default:
		sess.Kill()
		if !c.removeLocked(slot) {
			c.focusLocked()
		}
		log.Debug("tab closed on exit", "slot", slot)
	}
}

// MoveForward moves the active tab one slot right, wrapping to the front
func (c *Controller) MoveForward() {
	c.move(true)
}

// MoveBackward moves the active tab one slot left, wrapping to the back
func (c *Controller) MoveBackward() {
	c.move(false)
}

func (c *Controller) move(forward bool) {
	release := c.state.Borrow()
	defer release()

	log := logx.WithOp(c.log, "move")
	nb, err := c.state.notebookHandle()
	if err != nil {
		log.Warn("tab move skipped", "err", err)
		return
	}
	n := nb.NPages()
	cur := nb.CurrentPage()
	if n < 1 || cur < 0 {
		log.Debug("tab move skipped", "pages", n, "err", ErrNoActivePage)
		return
	}

	to := (cur + 1) % n
	if !forward {
		to = (cur - 1 + n) % n
	}
	if to != cur {
		nb.ReorderPage(cur, to)
		c.reorderLocked(cur, to)
		nb.SetCurrentPage(to)
	}
	c.focusLocked()
	log.Debug("tab moved", "from", cur, "to", to)
}

// PageReordered syncs the registry after the notebook moved the page of
// session id to newPos, e.g. by drag and drop. Reorders started by the
// controller itself are already applied and are skipped.
func (c *Controller) PageReordered(id SessionID, newPos int) {
	log := logx.WithOp(c.log, "reorder").With("session", id, "to", newPos)
	release, ok := c.state.TryBorrow()
	if !ok {
		log.Debug("page reorder left to owning operation", "err", ErrBusy)
		return
	}
	defer release()

	from, ok := c.state.registry.SlotOf(id)
	if !ok {
		log.Warn("page reorder for unknown session", "err", ErrNoSession)
		return
	}
	if from == newPos {
		return
	}
	c.reorderLocked(from, newPos)
}

// GotoNext activates the next tab, wrapping when display.tab_scroll_wrap is set
func (c *Controller) GotoNext() {
	c.gotoRelative(1)
}

// GotoPrevious activates the previous tab, wrapping when display.tab_scroll_wrap is set
func (c *Controller) GotoPrevious() {
	c.gotoRelative(-1)
}

func (c *Controller) gotoRelative(delta int) {
	release := c.state.Borrow()
	defer release()

	nb, err := c.state.notebookHandle()
	if err != nil {
		c.log.Warn("tab goto skipped", "err", err)
		return
	}
	n := nb.NPages()
	if n == 0 {
		return
	}
	next := nb.CurrentPage() + delta
	if nb.CurrentPage() < 0 {
		next = 0
	}
	wrap := c.state.cfg.Display.TabScrollWrap
	switch {
	case next >= n && wrap:
		next = 0
	case next >= n:
		next = n - 1
	case next < 0 && wrap:
		next = n - 1
	case next < 0:
		next = 0
	}
	nb.SetCurrentPage(next)
	c.focusLocked()
}

// GotoLast activates the last tab
func (c *Controller) GotoLast() {
	release := c.state.Borrow()
	defer release()

	nb, err := c.state.notebookHandle()
	if err != nil {
		c.log.Warn("tab goto last skipped", "err", err)
		return
	}
	if n := nb.NPages(); n > 0 {
		nb.SetCurrentPage(n - 1)
		c.focusLocked()
	}
}

// GotoN activates tab n, counted from 1. Out of range n is ignored.
func (c *Controller) GotoN(n int) {
	release := c.state.Borrow()
	defer release()

	nb, err := c.state.notebookHandle()
	if err != nil {
		c.log.Warn("tab goto skipped", "err", err)
		return
	}
	if n < 1 || n > nb.NPages() {
		c.log.Trace("tab goto out of range", "n", n, "pages", nb.NPages())
		return
	}
	nb.SetCurrentPage(n - 1)
	c.focusLocked()
}

// Copy copies the active terminal's selection
func (c *Controller) Copy() {
	c.withActive("copy", (*Session).Copy)
}

// Paste pastes into the active terminal
func (c *Controller) Paste() {
	c.withActive("paste", (*Session).Paste)
}

// Focus gives keyboard focus to the active terminal
func (c *Controller) Focus() {
	release, ok := c.state.TryBorrow()
	if !ok {
		c.log.Debug("focus skipped", "err", ErrBusy)
		return
	}
	defer release()
	c.focusLocked()
}

func (c *Controller) withActive(op string, fn func(*Session)) {
	release := c.state.Borrow()
	defer release()

	sess, _, err := c.activeLocked()
	if err != nil {
		logx.WithOp(c.log, op).Warn("no active tab", "err", err)
		return
	}
	fn(sess)
}

// ToggleVisibility hides a visible window and shows a hidden one
func (c *Controller) ToggleVisibility() {
	release := c.state.Borrow()
	defer release()
	c.toggleVisibilityLocked()
}

func (c *Controller) toggleVisibilityLocked() {
	w, err := c.state.windowHandle()
	if err != nil {
		c.log.Warn("toggle visibility skipped", "err", err)
		return
	}
	if w.IsVisible() {
		w.Hide()
		c.log.Debug("window hidden")
		return
	}
	w.Show()
	if c.state.fullscreen {
		w.Fullscreen()
	}
	c.focusLocked()
	c.log.Debug("window shown")
}

// ToggleFullscreen flips the fullscreen flag and applies it to the window
func (c *Controller) ToggleFullscreen() {
	release := c.state.Borrow()
	defer release()

	w, err := c.state.windowHandle()
	if err != nil {
		c.log.Warn("toggle fullscreen skipped", "err", err)
		return
	}
	c.state.fullscreen = !c.state.fullscreen
	if c.state.fullscreen {
		w.Fullscreen()
	} else {
		w.Unfullscreen()
	}
}

// Shutdown kills every session and clears the registry
func (c *Controller) Shutdown() {
	release := c.state.Borrow()
	defer release()

	for _, sess := range c.state.registry.Clear() {
		sess.Kill()
	}
	c.log.Debug("sessions shut down")
}

func (c *Controller) activeLocked() (*Session, int, error) {
	nb, err := c.state.notebookHandle()
	if err != nil {
		return nil, -1, err
	}
	cur := nb.CurrentPage()
	if cur < 0 {
		return nil, -1, ErrNoActivePage
	}
	sess, ok := c.state.registry.At(cur)
	if !ok {
		return nil, cur, fmt.Errorf("slot %d: %w", cur, ErrNoSession)
	}
	return sess, cur, nil
}

func (c *Controller) focusLocked() {
	nb, err := c.state.notebookHandle()
	if err != nil {
		c.log.Warn("focus skipped", "err", err)
		return
	}
	if nb.NPages() == 0 {
		return
	}
	sess, _, err := c.activeLocked()
	if err != nil {
		c.log.Warn("focus skipped", "err", err)
		return
	}
	sess.Focus()
}

// removeLocked drops slot from the notebook and the registry, then relabels.
// It reports whether the notebook emptied and the last-tab policy ran.
func (c *Controller) removeLocked(slot int) bool {
	nb, err := c.state.notebookHandle()
	if err != nil {
		c.log.Warn("tab remove skipped", "err", err)
		return false
	}
	if _, err := c.state.registry.Remove(slot); err != nil {
		c.log.Warn("tab remove skipped", "err", err)
		return false
	}
	nb.RemovePage(slot)
	c.relabelLocked()
	return c.adjustTabBarLocked()
}

func (c *Controller) reorderLocked(from, to int) {
	if err := c.state.registry.Reorder(from, to); err != nil {
		c.log.Warn("tab reorder skipped", "err", err)
		return
	}
	c.relabelLocked()
}

func (c *Controller) relabelLocked() {
	nb, err := c.state.notebookHandle()
	if err != nil {
		return
	}
	c.state.registry.Each(func(slot int, s *Session) {
		nb.SetTabLabel(slot, c.labelFor(slot, s))
	})
}

func (c *Controller) labelFor(slot int, s *Session) string {
	cwd, ok := s.Cwd()
	return FormatLabel(slot, s.Counter(), cwd, ok, c.state.cfg.Display.TabTitleNumCharacters)
}

// adjustTabBarLocked derives tab strip visibility from the page count and
// fires the empty notebook policy once the last page is gone.
func (c *Controller) adjustTabBarLocked() (emptied bool) {
	nb, err := c.state.notebookHandle()
	if err != nil {
		return false
	}
	n := nb.NPages()
	switch c.state.cfg.Display.TabMode {
	case config.TabModeAlways:
		nb.SetShowTabs(true)
	case config.TabModeNever:
		nb.SetShowTabs(false)
	default:
		nb.SetShowTabs(n >= 2)
	}
	if n == 0 {
		c.emptyNotebookLocked()
		return true
	}
	return false
}

func (c *Controller) emptyNotebookLocked() {
	log := logx.WithOp(c.log, "last-tab-exit")
	switch c.state.cfg.Behavior.LastTabExit {
	case config.LastTabExitRestartAndHide:
		log.Debug("restarting terminal hidden")
		c.addLocked(false)
		c.toggleVisibilityLocked()
	case config.LastTabExitQuit:
		w, err := c.state.windowHandle()
		if err != nil {
			log.Error("cannot close window", "err", err)
			return
		}
		log.Debug("closing window")
		w.Close()
	default:
		log.Debug("restarting terminal")
		c.addLocked(true)
	}
}

func (c *Controller) spawnLocked(sess *Session, argv []string, dir string) {
	if dir == "" {
		dir = c.state.cfg.Process.WorkingDir
	}
	req := SpawnRequest{
		Argv:       argv,
		WorkingDir: dir,
		Env:        c.state.cfg.Process.EnvList(),
	}
	id := sess.ID()
	sess.Spawn(req, func() { c.sessionSpawned(id) })
}

// sessionSpawned relabels a session once its pid, and so its cwd, is known
func (c *Controller) sessionSpawned(id SessionID) {
	release, ok := c.state.TryBorrow()
	if !ok {
		// the operation holding the borrow relabels when it finishes
		c.log.Debug("spawn relabel skipped", "session", id, "err", ErrBusy)
		return
	}
	defer release()

	slot, ok := c.state.registry.SlotOf(id)
	if !ok {
		return
	}
	nb, err := c.state.notebookHandle()
	if err != nil {
		return
	}
	sess, _ := c.state.registry.At(slot)
	nb.SetTabLabel(slot, c.labelFor(slot, sess))
}

func (c *Controller) commandArgv() []string {
	p := c.state.cfg.Process
	if p.Command == "" {
		return []string{c.findShell()}
	}
	return append([]string{p.Command}, p.Args...)
}
