package keybindings

import (
	"fmt"

	"github.com/javanhut/Zoha/config"
)

// KeyAction represents the action bound to an accelerator
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionNewTab
	ActionCloseTab
	ActionCopy
	ActionPaste
	ActionNextTab
	ActionPrevTab
	ActionMoveTabForward
	ActionMoveTabBackward
	ActionGotoLastTab
	ActionGotoTab
	ActionFontInc
	ActionFontDec
	ActionFontReset
	ActionToggleTransparency
	ActionToggleFullscreen
	ActionToggleVisibility
)

var actionNames = map[KeyAction]string{
	ActionNewTab:             "add-tab",
	ActionCloseTab:           "close-tab",
	ActionCopy:               "copy",
	ActionPaste:              "paste",
	ActionNextTab:            "next-tab",
	ActionPrevTab:            "previous-tab",
	ActionMoveTabForward:     "move-forward",
	ActionMoveTabBackward:    "move-backward",
	ActionGotoLastTab:        "goto-last",
	ActionGotoTab:            "goto",
	ActionFontInc:            "font-inc",
	ActionFontDec:            "font-dec",
	ActionFontReset:          "font-reset",
	ActionToggleTransparency: "toggle-transparency",
	ActionToggleFullscreen:   "toggle-fullscreen",
	ActionToggleVisibility:   "toggle-visibility",
}

func (a KeyAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Binding ties an action to its accelerators. N is the 1-based tab number
// for ActionGotoTab.
type Binding struct {
	Action KeyAction
	N      int
	Accels []string
}

// Name returns the application action name, e.g. "goto-3"
func (b Binding) Name() string {
	if b.Action == ActionGotoTab {
		return fmt.Sprintf("%s-%d", b.Action, b.N)
	}
	return b.Action.String()
}

// Bindings builds the binding table from the [keys] config group. Actions
// without accelerators are left out.
func Bindings(keys config.KeysConfig) []Binding {
	table := []Binding{
		{Action: ActionNewTab, Accels: keys.AddTab},
		{Action: ActionCloseTab, Accels: keys.CloseTab},
		{Action: ActionCopy, Accels: keys.Copy},
		{Action: ActionPaste, Accels: keys.Paste},
		{Action: ActionNextTab, Accels: keys.NextTab},
		{Action: ActionPrevTab, Accels: keys.PreviousTab},
		{Action: ActionMoveTabForward, Accels: keys.MoveForward},
		{Action: ActionMoveTabBackward, Accels: keys.MoveBackward},
		{Action: ActionGotoLastTab, Accels: keys.GotoLast},
		{Action: ActionFontInc, Accels: keys.FontInc},
		{Action: ActionFontDec, Accels: keys.FontDec},
		{Action: ActionFontReset, Accels: keys.FontReset},
		{Action: ActionToggleTransparency, Accels: keys.ToggleTransparency},
		{Action: ActionToggleFullscreen, Accels: keys.ToggleFullscreen},
		{Action: ActionToggleVisibility, Accels: keys.ToggleVisibility},
	}
	for i, accels := range keys.GotoN {
		table = append(table, Binding{Action: ActionGotoTab, N: i + 1, Accels: accels})
	}

	out := table[:0]
	for _, b := range table {
		if len(b.Accels) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Target receives dispatched actions
type Target interface {
	Add(grabFocus bool)
	Close()
	Copy()
	Paste()
	GotoNext()
	GotoPrevious()
	MoveForward()
	MoveBackward()
	GotoLast()
	GotoN(n int)
	FontInc()
	FontDec()
	FontReset()
	ToggleTransparency()
	ToggleFullscreen()
	ToggleVisibility()
}

// Dispatch runs the action of b on t
func Dispatch(t Target, b Binding) {
	switch b.Action {
	case ActionNewTab:
		t.Add(true)
	case ActionCloseTab:
		t.Close()
	case ActionCopy:
		t.Copy()
	case ActionPaste:
		t.Paste()
	case ActionNextTab:
		t.GotoNext()
	case ActionPrevTab:
		t.GotoPrevious()
	case ActionMoveTabForward:
		t.MoveForward()
	case ActionMoveTabBackward:
		t.MoveBackward()
	case ActionGotoLastTab:
		t.GotoLast()
	case ActionGotoTab:
		t.GotoN(b.N)
	case ActionFontInc:
		t.FontInc()
	case ActionFontDec:
		t.FontDec()
	case ActionFontReset:
		t.FontReset()
	case ActionToggleTransparency:
		t.ToggleTransparency()
	case ActionToggleFullscreen:
		t.ToggleFullscreen()
	case ActionToggleVisibility:
		t.ToggleVisibility()
	}
}
