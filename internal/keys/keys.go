// Package keys translates key events into the editor's named actions.
package keys

import "github.com/gdamore/tcell/v2"

func ctrl(ev *tcell.EventKey) bool {
	return ev.Modifiers()&tcell.ModCtrl != 0
}

// ctrlLetter matches Ctrl+<letter>, which terminals report either as a
// control key or as a rune with the Ctrl modifier.
func ctrlLetter(ev *tcell.EventKey, k tcell.Key, letter rune) bool {
	if ev.Key() == k {
		return true
	}
	return ev.Key() == tcell.KeyRune && ctrl(ev) && (ev.Rune() == letter || ev.Rune() == letter-'a'+'A')
}

// Quit is Ctrl+Q.
func Quit(ev *tcell.EventKey) bool {
	return ctrlLetter(ev, tcell.KeyCtrlQ, 'q')
}

// ToggleTerminal is Ctrl+Space.
func ToggleTerminal(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlSpace {
		return true
	}
	return ev.Key() == tcell.KeyRune && ctrl(ev) && ev.Rune() == ' '
}

// Maximize is Ctrl+Up.
func Maximize(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyUp && ctrl(ev)
}

// RestoreAndMinimize is Ctrl+Down.
func RestoreAndMinimize(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyDown && ctrl(ev)
}

// SubmitCommand is Enter.
func SubmitCommand(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter
}

// UpCommandHistory is Up without Ctrl.
func UpCommandHistory(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyUp && !ctrl(ev)
}

// DownCommandHistory is Down without Ctrl.
func DownCommandHistory(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyDown && !ctrl(ev)
}

// SaveFile is Ctrl+S.
func SaveFile(ev *tcell.EventKey) bool {
	return ctrlLetter(ev, tcell.KeyCtrlS, 's')
}

// NewFile is Ctrl+N.
func NewFile(ev *tcell.EventKey) bool {
	return ctrlLetter(ev, tcell.KeyCtrlN, 'n')
}
