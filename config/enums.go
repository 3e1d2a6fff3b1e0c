package config

import "fmt"

// TabPosition places the tab strip around the notebook
type TabPosition string

const (
	TabPositionTop    TabPosition = "top"
	TabPositionBottom TabPosition = "bottom"
	TabPositionLeft   TabPosition = "left"
	TabPositionRight  TabPosition = "right"
)

// TabMode controls tab strip visibility
type TabMode string

const (
	// TabModeAuto hides the strip while fewer than two tabs are open
	TabModeAuto   TabMode = "auto"
	TabModeAlways TabMode = "always"
	TabModeNever  TabMode = "never"
)

// ScrollbarPosition places the terminal scrollbar
type ScrollbarPosition string

const (
	ScrollbarLeft   ScrollbarPosition = "left"
	ScrollbarRight  ScrollbarPosition = "right"
	ScrollbarHidden ScrollbarPosition = "hidden"
)

// CursorShape is the terminal cursor shape
type CursorShape string

const (
	CursorShapeBlock     CursorShape = "block"
	CursorShapeIBeam     CursorShape = "ibeam"
	CursorShapeUnderline CursorShape = "underline"
)

// CursorBlink is the terminal cursor blink mode
type CursorBlink string

const (
	CursorBlinkSystem CursorBlink = "system"
	CursorBlinkOn     CursorBlink = "on"
	CursorBlinkOff    CursorBlink = "off"
)

// EraseBinding is what the terminal sends for backspace or delete
type EraseBinding string

const (
	EraseAuto           EraseBinding = "auto"
	EraseASCIIBackspace EraseBinding = "ascii_backspace"
	EraseASCIIDelete    EraseBinding = "ascii_delete"
	EraseDeleteSequence EraseBinding = "delete_sequence"
	EraseTTY            EraseBinding = "tty"
)

// TerminalExitBehavior decides what happens to a tab whose child exits
type TerminalExitBehavior string

const (
	// TerminalExitClose closes the tab
	TerminalExitClose TerminalExitBehavior = "exit_terminal"
	// TerminalExitRestart runs the configured command again in the same tab
	TerminalExitRestart TerminalExitBehavior = "restart_command"
	// TerminalExitShell runs the user's login shell in the same tab
	TerminalExitShell TerminalExitBehavior = "drop_to_default_shell"
)

// LastTabExitBehavior decides what happens once the last tab is gone
type LastTabExitBehavior string

const (
	LastTabExitRestart        LastTabExitBehavior = "restart_terminal"
	LastTabExitRestartAndHide LastTabExitBehavior = "restart_terminal_and_hide"
	LastTabExitQuit           LastTabExitBehavior = "exit"
)

func (v *TabPosition) UnmarshalText(b []byte) error {
	return parseEnum(v, "tab_position", string(b),
		TabPositionTop, TabPositionBottom, TabPositionLeft, TabPositionRight)
}

func (v *TabMode) UnmarshalText(b []byte) error {
	return parseEnum(v, "tab_mode", string(b), TabModeAuto, TabModeAlways, TabModeNever)
}

func (v *ScrollbarPosition) UnmarshalText(b []byte) error {
	return parseEnum(v, "scrollbar_position", string(b), ScrollbarLeft, ScrollbarRight, ScrollbarHidden)
}

func (v *CursorShape) UnmarshalText(b []byte) error {
	return parseEnum(v, "cursor_shape", string(b), CursorShapeBlock, CursorShapeIBeam, CursorShapeUnderline)
}

func (v *CursorBlink) UnmarshalText(b []byte) error {
	return parseEnum(v, "cursor_blink", string(b), CursorBlinkSystem, CursorBlinkOn, CursorBlinkOff)
}

func (v *EraseBinding) UnmarshalText(b []byte) error {
	return parseEnum(v, "erase binding", string(b),
		EraseAuto, EraseASCIIBackspace, EraseASCIIDelete, EraseDeleteSequence, EraseTTY)
}

func (v *TerminalExitBehavior) UnmarshalText(b []byte) error {
	return parseEnum(v, "terminal_exit", string(b), TerminalExitClose, TerminalExitRestart, TerminalExitShell)
}

func (v *LastTabExitBehavior) UnmarshalText(b []byte) error {
	return parseEnum(v, "last_tab_exit", string(b),
		LastTabExitRestart, LastTabExitRestartAndHide, LastTabExitQuit)
}

func parseEnum[T ~string](dst *T, key, raw string, allowed ...T) error {
	for _, a := range allowed {
		if string(a) == raw {
			*dst = a
			return nil
		}
	}
	return fmt.Errorf("%s: unknown value %q (allowed: %v)", key, raw, allowed)
}
