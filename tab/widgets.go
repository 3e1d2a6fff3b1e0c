package tab

import (
	"strconv"
	"strings"

	"github.com/javanhut/Zoha/config"
)

// SessionID identifies a session for its whole lifetime. Widgets carry it so
// signal handlers can find their session without comparing widget handles.
type SessionID uint64

const widgetNamePrefix = "zoha-session-"

// WidgetName returns the widget name carrying the id
func (id SessionID) WidgetName() string {
	return widgetNamePrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseWidgetName recovers the session id from a widget name
func ParseWidgetName(name string) (SessionID, bool) {
	rest, ok := strings.CutPrefix(name, widgetNamePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return SessionID(n), true
}

// SignalHandle identifies a connected child-exit handler
type SignalHandle uint64

// SpawnRequest describes the child process started inside a terminal
type SpawnRequest struct {
	Argv       []string
	WorkingDir string
	Env        []string
}

// SpawnDone receives the outcome of an asynchronous spawn on the UI thread
type SpawnDone func(pid int, err error)

// Colors is the colour set pushed to a terminal
type Colors struct {
	Foreground config.Color
	Background config.Color
	Cursor     config.Color
	// CursorForeground colours the character under the cursor
	CursorForeground config.Color
	Palette          []config.Color
}

// Terminal is the terminal widget hosted by one notebook page
type Terminal interface {
	ID() SessionID
	// Spawn starts req and reports the result through done, never inline
	// with an error return.
	Spawn(req SpawnRequest, done SpawnDone)
	ConnectChildExited(fn func(status int)) SignalHandle
	Disconnect(h SignalHandle)
	SetFontScale(scale float64) error
	SetColors(c Colors) error
	GrabFocus()
	Copy()
	Paste()
	Close()
}

// Notebook is the tabbed container. Pages are addressed by position only.
type Notebook interface {
	NPages() int
	// CurrentPage returns -1 when no page is active
	CurrentPage() int
	SetCurrentPage(pos int)
	// InsertPage inserts t at pos and returns the position it landed at
	InsertPage(t Terminal, pos int) int
	RemovePage(pos int)
	ReorderPage(from, to int)
	SetTabLabel(pos int, text string)
	SetShowTabs(show bool)
}

// Window is the top-level window
type Window interface {
	IsVisible() bool
	Show()
	Hide()
	Fullscreen()
	Unfullscreen()
	Close()
}

// Provider creates terminal widgets for new sessions
type Provider interface {
	NewTerminal(id SessionID) (Terminal, error)
}

// CwdFunc resolves the working directory of a process
type CwdFunc func(pid int) (string, error)
