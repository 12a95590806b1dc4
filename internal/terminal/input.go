package terminal

import (
	"slices"

	"github.com/mattn/go-runewidth"
)

// Input is the line buffer of the terminal prompt.
type Input struct {
	buf    []rune
	cursor int
}

// NewInput creates an empty input line.
func NewInput() *Input {
	return &Input{buf: []rune{}}
}

// Text returns the current line.
func (in *Input) Text() string {
	return string(in.buf)
}

// Set replaces the line and moves the cursor to its end.
func (in *Input) Set(text string) {
	in.buf = []rune(text)
	in.cursor = len(in.buf)
}

// Take returns the line and clears it.
func (in *Input) Take() string {
	text := string(in.buf)
	in.Set("")
	return text
}

// Insert adds r at the cursor.
func (in *Input) Insert(r rune) {
	in.buf = slices.Insert(in.buf, in.cursor, r)
	in.cursor++
}

// Backspace removes the rune before the cursor.
func (in *Input) Backspace() {
	if in.cursor == 0 {
		return
	}
	in.buf = slices.Delete(in.buf, in.cursor-1, in.cursor)
	in.cursor--
}

// Delete removes the rune under the cursor.
func (in *Input) Delete() {
	if in.cursor >= len(in.buf) {
		return
	}
	in.buf = slices.Delete(in.buf, in.cursor, in.cursor+1)
}

// Left moves the cursor one rune left.
func (in *Input) Left() {
	if in.cursor > 0 {
		in.cursor--
	}
}

// Right moves the cursor one rune right.
func (in *Input) Right() {
	if in.cursor < len(in.buf) {
		in.cursor++
	}
}

// Home moves the cursor to the start of the line.
func (in *Input) Home() {
	in.cursor = 0
}

// End moves the cursor to the end of the line.
func (in *Input) End() {
	in.cursor = len(in.buf)
}

// Cursor returns the cursor position in runes.
func (in *Input) Cursor() int {
	return in.cursor
}

// window returns the part of the line that fits in w cells with the cursor in
// view, and the cursor column within it.
func (in *Input) window(w int) (string, int) {
	if w <= 0 {
		return "", 0
	}
	start := 0
	for runewidth.StringWidth(string(in.buf[start:in.cursor])) >= w {
		start++
	}
	return string(in.buf[start:]), runewidth.StringWidth(string(in.buf[start:in.cursor]))
}
