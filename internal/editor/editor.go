// Package editor is the multi-line text area and its unsaved-changes flag.
package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bkmeneguello/tedit/internal/render"
	"github.com/bkmeneguello/tedit/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	defaultShowLineNumbers      = true
	defaultHighlightCurrentLine = true
	defaultSpacesPerTab         = 4
)

// Editor holds the text buffer of the editor pane.
// It owns the unsaved-changes flag; the terminal only reaches the buffer
// through Text and SetText when a file is opened, saved or discarded.
type Editor struct {
	// Text buffer and cursor positions
	lines            [][]rune // Text buffer: each line is a slice of runes
	cursorX, cursorY int      // Cursor position in the buffer
	offsetX, offsetY int      // Viewport offset for scrolling
	w, h             int      // Size of the text area from the last draw

	// Unsaved-changes flag
	dirty bool

	// Settings
	showLineNumbers      bool // True if line numbers should be displayed
	highlightCurrentLine bool // True if the current line should be highlighted
	spacesPerTab         int  // Number of spaces to render for a tab character
}

// New initializes an empty, clean Editor.
func New() *Editor {
	return &Editor{
		lines:                [][]rune{{}}, // Start with one empty line
		showLineNumbers:      defaultShowLineNumbers,
		highlightCurrentLine: defaultHighlightCurrentLine,
		spacesPerTab:         defaultSpacesPerTab,
	}
}

// Text returns the buffer contents. Lines are joined with "\n", so the text
// given to SetText round-trips unchanged.
func (e *Editor) Text() string {
	parts := make([]string, len(e.lines))
	for i, line := range e.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the buffer contents and resets the cursor and viewport.
// It does not touch the unsaved-changes flag.
// Parameters:
// - text: The new contents of the buffer.
func (e *Editor) SetText(text string) {
	split := strings.Split(text, "\n")
	e.lines = make([][]rune, len(split))
	for i, line := range split {
		e.lines[i] = []rune(line)
	}
	e.Focus()
}

// Focus moves the cursor to the start of the buffer and scrolls to the top.
func (e *Editor) Focus() {
	e.cursorX, e.cursorY = 0, 0
	e.offsetX, e.offsetY = 0, 0
}

// MarkDirty flags the buffer as having unsaved changes.
func (e *Editor) MarkDirty() {
	e.dirty = true
}

// MarkClean clears the unsaved-changes flag.
func (e *Editor) MarkClean() {
	e.dirty = false
}

// Dirty reports whether the buffer has unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Cursor returns the cursor position as (column, line) in runes.
func (e *Editor) Cursor() (int, int) {
	return e.cursorX, e.cursorY
}

// ToggleLineNumbers toggles the display of line numbers and reports the new
// setting.
func (e *Editor) ToggleLineNumbers() bool {
	e.showLineNumbers = !e.showLineNumbers
	return e.showLineNumbers
}

// ToggleHighlightCurrentLine toggles the highlighting of the current line and
// reports the new setting.
func (e *Editor) ToggleHighlightCurrentLine() bool {
	e.highlightCurrentLine = !e.highlightCurrentLine
	return e.highlightCurrentLine
}

// TitlePrefix starts every window title. The unsaved marker, when present,
// is the character right after it.
const TitlePrefix = "Text Editor - "

// Title returns the window title for the current file. A leading * on the
// file name marks unsaved changes.
func Title(cwf string, dirty bool) string {
	if dirty {
		return TitlePrefix + "*" + cwf
	}
	return TitlePrefix + cwf
}

// HandleKey applies an editing or movement key to the buffer.
// Parameters:
// - ev: The key event to process.
// Returns: true if the buffer contents changed.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		if r := ev.Rune(); r != 0 {
			e.insertRune(r)
			return true
		}
	case tcell.KeyTab:
		e.insertRune('\t')
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return e.handleBackspace()
	case tcell.KeyDelete:
		return e.handleDelete()
	case tcell.KeyEnter:
		e.handleEnter()
		return true
	case tcell.KeyLeft:
		e.moveLeft()
	case tcell.KeyRight:
		e.moveRight()
	case tcell.KeyUp:
		e.moveVertical(-1)
	case tcell.KeyDown:
		e.moveVertical(1)
	case tcell.KeyPgUp:
		e.moveVertical(-max(e.h-1, 1))
	case tcell.KeyPgDn:
		e.moveVertical(max(e.h-1, 1))
	case tcell.KeyHome:
		e.cursorX = 0
	case tcell.KeyEnd:
		e.cursorX = len(e.lines[e.cursorY])
	}
	return false
}

// insertRune inserts r at the cursor position.
func (e *Editor) insertRune(r rune) {
	e.lines[e.cursorY] = slices.Insert(e.lines[e.cursorY], e.cursorX, r)
	e.cursorX++
}

// handleBackspace removes the character before the cursor position.
// If the cursor is at the beginning of the line, it merges the current line with the previous line.
func (e *Editor) handleBackspace() bool {
	if e.cursorX > 0 {
		e.lines[e.cursorY] = slices.Delete(e.lines[e.cursorY], e.cursorX-1, e.cursorX)
		e.cursorX--
		return true
	}
	if e.cursorY > 0 {
		prevLine := e.lines[e.cursorY-1]
		e.cursorX = len(prevLine)
		e.lines[e.cursorY-1] = append(prevLine, e.lines[e.cursorY]...)
		e.lines = slices.Delete(e.lines, e.cursorY, e.cursorY+1)
		e.cursorY--
		return true
	}
	return false
}

// handleDelete removes the character at the cursor position.
// If the cursor is at the end of the line, it merges the current line with the next line.
func (e *Editor) handleDelete() bool {
	line := e.lines[e.cursorY]
	if e.cursorX < len(line) {
		e.lines[e.cursorY] = slices.Delete(line, e.cursorX, e.cursorX+1)
		return true
	}
	if e.cursorY < len(e.lines)-1 {
		e.lines[e.cursorY] = append(line, e.lines[e.cursorY+1]...)
		e.lines = slices.Delete(e.lines, e.cursorY+1, e.cursorY+2)
		return true
	}
	return false
}

// handleEnter splits the current line at the cursor position.
// The text after the cursor is moved to a new line.
func (e *Editor) handleEnter() {
	line := e.lines[e.cursorY]
	rest := slices.Clone(line[e.cursorX:])
	e.lines[e.cursorY] = line[:e.cursorX]
	e.lines = slices.Insert(e.lines, e.cursorY+1, rest)
	e.cursorY++
	e.cursorX = 0
}

func (e *Editor) moveLeft() {
	if e.cursorX > 0 {
		e.cursorX--
	} else if e.cursorY > 0 {
		e.cursorY--
		e.cursorX = len(e.lines[e.cursorY])
	}
}

func (e *Editor) moveRight() {
	if e.cursorX < len(e.lines[e.cursorY]) {
		e.cursorX++
	} else if e.cursorY < len(e.lines)-1 {
		e.cursorY++
		e.cursorX = 0
	}
}

// moveVertical moves the cursor n lines, clamping to the buffer and to the
// length of the destination line.
func (e *Editor) moveVertical(n int) {
	e.cursorY = min(max(e.cursorY+n, 0), len(e.lines)-1)
	e.cursorX = min(e.cursorX, len(e.lines[e.cursorY]))
}

// column returns the screen column of rune index x on line y.
func (e *Editor) column(y, x int) int {
	col := 0
	for _, r := range e.lines[y][:x] {
		col += e.runeWidth(r)
	}
	return col
}

func (e *Editor) runeWidth(r rune) int {
	if r == '\t' {
		return e.spacesPerTab
	}
	return runewidth.RuneWidth(r)
}

// adjustOffsets ensures the cursor is always visible in the viewport.
// It adjusts the horizontal and vertical offsets based on the cursor position.
func (e *Editor) adjustOffsets() {
	// Ensure the cursor is visible horizontally
	if col := e.column(e.cursorY, e.cursorX); col < e.offsetX {
		e.offsetX = col
	} else if col >= e.offsetX+e.w {
		e.offsetX = col - e.w + 1
	}

	// Ensure the cursor is visible vertically
	if e.cursorY < e.offsetY {
		e.offsetY = e.cursorY
	} else if e.cursorY >= e.offsetY+e.h {
		e.offsetY = e.cursorY - e.h + 1
	}
}

// Draw renders the buffer into r.
// It handles line numbers and current line highlighting, and places the
// terminal cursor when the editor has focus.
// Parameters:
// - s: The screen to draw on.
// - r: The region of the screen reserved for the editor.
// - palette: The active theme.
// - focused: True if the editor owns keyboard focus.
func (e *Editor) Draw(s tcell.Screen, r render.Rect, palette theme.Palette, focused bool) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	render.Fill(s, r, palette.Text)

	// Calculate gutter width once
	gutterWidth := 0
	if e.showLineNumbers {
		gutterWidth = len(fmt.Sprintf("%d", len(e.lines))) + 1
	}
	e.w = max(r.W-gutterWidth, 1)
	e.h = r.H
	e.adjustOffsets()

	for y := 0; y < r.H && y+e.offsetY < len(e.lines); y++ {
		lineIndex := y + e.offsetY
		style := palette.Text
		if e.highlightCurrentLine && focused && lineIndex == e.cursorY {
			style = palette.Accent
		}

		if e.showLineNumbers {
			lineNumber := fmt.Sprintf("%*d ", gutterWidth-1, lineIndex+1)
			render.Print(s, r.X, r.Y+y, gutterWidth, lineNumber, style.Foreground(tcell.ColorGray))
		}

		// Draw line content, skipping the columns scrolled off to the left
		x, col := r.X+gutterWidth, 0
		for _, ch := range e.lines[lineIndex] {
			w := e.runeWidth(ch)
			if ch == '\r' {
				continue
			}
			if col >= e.offsetX {
				if x+w > r.X+r.W {
					break
				}
				if ch == '\t' {
					for i := 0; i < w; i++ {
						s.SetContent(x+i, r.Y+y, ' ', nil, style)
					}
				} else {
					s.SetContent(x, r.Y+y, ch, nil, style)
				}
				x += w
			}
			col += w
		}
		for ; x < r.X+r.W; x++ {
			s.SetContent(x, r.Y+y, ' ', nil, style)
		}
	}

	if focused {
		cursorX := r.X + gutterWidth + e.column(e.cursorY, e.cursorX) - e.offsetX
		s.ShowCursor(cursorX, r.Y+e.cursorY-e.offsetY)
	}
}
