package tab

import "errors"

var (
	// ErrNoNotebook is reported when an operation runs before the notebook is set
	ErrNoNotebook = errors.New("tab: notebook not set")
	// ErrNoWindow is reported when a window operation runs before the window is set
	ErrNoWindow = errors.New("tab: window not set")
	// ErrNoActivePage is reported when the notebook has no current page
	ErrNoActivePage = errors.New("tab: no active page")
	// ErrNoSession is reported when a slot or id resolves to no session
	ErrNoSession = errors.New("tab: no session")
	// ErrSpawn wraps child process start failures
	ErrSpawn = errors.New("tab: spawn failed")
	// ErrBusy is reported when a callback finds the state already borrowed
	ErrBusy = errors.New("tab: state busy")
	// ErrSlotRange is returned for slots outside the registry
	ErrSlotRange = errors.New("tab: slot out of range")
	// ErrAlreadySet is returned when a set-once handle is set twice
	ErrAlreadySet = errors.New("tab: already set")
)
