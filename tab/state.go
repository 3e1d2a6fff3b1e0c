package tab

import (
	"math"
	"sync"

	"github.com/javanhut/Zoha/config"
)

const (
	// DefaultFontScale is the scale restored by FontReset
	DefaultFontScale = 1.0
	MinFontScale     = 0.25
	MaxFontScale     = 4.0
	FontScaleStep    = 0.1
)

// State is the process-wide application state: the config snapshot, the
// window and notebook handles, the registry and the global settings.
//
// Fields are only touched while borrowed. Entry points call Borrow for their
// whole duration; callbacks that can fire inside another operation use
// TryBorrow and give up when it fails.
type State struct {
	mu sync.Mutex

	cfg      *config.Config
	window   Window
	notebook Notebook
	registry *Registry

	fontScale    float64
	transparency bool
	fullscreen   bool

	lastCounter int
	lastID      SessionID
}

// NewState creates the state for cfg
func NewState(cfg *config.Config) *State {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &State{
		cfg:          cfg,
		registry:     NewRegistry(),
		fontScale:    DefaultFontScale,
		transparency: true,
		fullscreen:   cfg.Display.Fullscreen,
	}
}

// Borrow takes exclusive access and returns the release func
func (s *State) Borrow() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// TryBorrow takes exclusive access if nobody holds it
func (s *State) TryBorrow() (func(), bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	return s.mu.Unlock, true
}

// Config returns the config snapshot. It is never mutated.
func (s *State) Config() *config.Config {
	return s.cfg
}

// SetWindow sets the window handle once
func (s *State) SetWindow(w Window) error {
	release := s.Borrow()
	defer release()
	if s.window != nil {
		return ErrAlreadySet
	}
	s.window = w
	return nil
}

// SetNotebook sets the notebook handle once
func (s *State) SetNotebook(n Notebook) error {
	release := s.Borrow()
	defer release()
	if s.notebook != nil {
		return ErrAlreadySet
	}
	s.notebook = n
	return nil
}

// Registry returns the registry. Callers hold the borrow.
func (s *State) Registry() *Registry {
	return s.registry
}

// FontScale returns the current font scale. Callers hold the borrow.
func (s *State) FontScale() float64 {
	return s.fontScale
}

// Transparency reports whether transparency is enabled. Callers hold the borrow.
func (s *State) Transparency() bool {
	return s.transparency
}

// Fullscreen reports the fullscreen flag. Callers hold the borrow.
func (s *State) Fullscreen() bool {
	return s.fullscreen
}

func (s *State) notebookHandle() (Notebook, error) {
	if s.notebook == nil {
		return nil, ErrNoNotebook
	}
	return s.notebook, nil
}

func (s *State) windowHandle() (Window, error) {
	if s.window == nil {
		return nil, ErrNoWindow
	}
	return s.window, nil
}

func (s *State) nextCounter() int {
	s.lastCounter++
	return s.lastCounter
}

func (s *State) nextID() SessionID {
	s.lastID++
	return s.lastID
}

func (s *State) setFontScale(v float64) {
	v = math.Round(v*100) / 100
	s.fontScale = math.Min(MaxFontScale, math.Max(MinFontScale, v))
}
