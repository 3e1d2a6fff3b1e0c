package tab

import (
	"fmt"

	"github.com/javanhut/Zoha/logx"
	"pkt.systems/pslog"
)

// Session is one terminal page and the process running in it. Its slot is
// not stored here; the Registry owns positions.
type Session struct {
	id      SessionID
	counter int
	term    Terminal
	cwd     CwdFunc
	log     pslog.Logger

	pid     int
	hasPID  bool
	exit    SignalHandle
	hasExit bool
	// spawnGen discards completions of spawns superseded by a respawn
	spawnGen uint64
}

// NewSession wraps term. counter is the display number shown in the label.
func NewSession(id SessionID, counter int, term Terminal, cwd CwdFunc, log pslog.Logger) *Session {
	return &Session{
		id:      id,
		counter: counter,
		term:    term,
		cwd:     cwd,
		log:     logx.WithSession(logx.OrDefault(log), uint64(id), counter),
	}
}

// ID returns the session id
func (s *Session) ID() SessionID {
	return s.id
}

// Counter returns the tab counter issued at creation
func (s *Session) Counter() int {
	return s.counter
}

// Terminal returns the terminal widget
func (s *Session) Terminal() Terminal {
	return s.term
}

// PID returns the child pid once the spawn has completed
func (s *Session) PID() (int, bool) {
	return s.pid, s.hasPID
}

// Spawn starts req in the terminal. Any previous pid is forgotten. onSpawned
// runs after a successful spawn has recorded the pid.
func (s *Session) Spawn(req SpawnRequest, onSpawned func()) {
	s.pid, s.hasPID = 0, false
	s.spawnGen++
	gen := s.spawnGen
	s.log.Trace("session spawn start", "argv", req.Argv, "dir", req.WorkingDir)

	s.term.Spawn(req, func(pid int, err error) {
		if gen != s.spawnGen {
			s.log.Debug("session spawn superseded", "pid", pid)
			return
		}
		if err != nil {
			logx.WithErr(s.log, fmt.Errorf("%w: %w", ErrSpawn, err)).
				Error("session spawn failed", "argv", req.Argv, "dir", req.WorkingDir)
			return
		}
		s.pid, s.hasPID = pid, true
		s.log.Debug("session spawned", "pid", pid)
		if onSpawned != nil {
			onSpawned()
		}
	})
}

// ConnectExit subscribes fn to child exit, replacing an earlier subscription
func (s *Session) ConnectExit(fn func(status int)) {
	if s.hasExit {
		s.term.Disconnect(s.exit)
	}
	s.exit = s.term.ConnectChildExited(fn)
	s.hasExit = true
}

// DisconnectExit drops the exit subscription. A missing one is reported.
func (s *Session) DisconnectExit() {
	if !s.hasExit {
		s.log.Warn("session exit handler missing")
		return
	}
	s.term.Disconnect(s.exit)
	s.exit, s.hasExit = 0, false
}

// Cwd returns the working directory of the child process
func (s *Session) Cwd() (string, bool) {
	if !s.hasPID {
		return "", false
	}
	if s.cwd == nil {
		return "", false
	}
	dir, err := s.cwd(s.pid)
	if err != nil {
		s.log.Warn("session cwd unavailable", "pid", s.pid, "err", err)
		return "", false
	}
	return dir, true
}

// Kill stops watching the child and closes the terminal
func (s *Session) Kill() {
	s.DisconnectExit()
	s.spawnGen++
	s.term.Close()
	s.pid, s.hasPID = 0, false
}

// Copy copies the terminal selection to the clipboard
func (s *Session) Copy() {
	s.term.Copy()
}

// Paste pastes the clipboard into the terminal
func (s *Session) Paste() {
	s.term.Paste()
}

// Focus gives the terminal keyboard focus
func (s *Session) Focus() {
	s.term.GrabFocus()
}

// ApplyFontScale sets the terminal font scale
func (s *Session) ApplyFontScale(scale float64) error {
	if err := s.term.SetFontScale(scale); err != nil {
		return fmt.Errorf("session %d font scale: %w", s.id, err)
	}
	return nil
}

// ApplyColors sets the terminal colours
func (s *Session) ApplyColors(c Colors) error {
	if err := s.term.SetColors(c); err != nil {
		return fmt.Errorf("session %d colors: %w", s.id, err)
	}
	return nil
}
