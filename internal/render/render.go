// Package render holds the cell-drawing helpers shared by the editor pane and
// the terminal panel.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Fill paints every cell of r with a blank in style.
func Fill(s tcell.Screen, r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Print draws text on row y starting at column x, clipped to w cells. Wide
// runes take two cells. It returns the number of cells used.
func Print(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	used := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if r == '\t' {
			r, rw = ' ', 1
		}
		if rw == 0 {
			continue
		}
		if used+rw > w {
			break
		}
		s.SetContent(x+used, y, r, nil, style)
		used += rw
	}
	return used
}

// Truncate shortens text from the left so that it fits in w cells, marking the
// cut with an ellipsis.
func Truncate(text string, w int) string {
	if runewidth.StringWidth(text) <= w {
		return text
	}
	if w <= 1 {
		return runewidth.Truncate(text, w, "")
	}
	runes := []rune(text)
	width := 1
	i := len(runes)
	for i > 0 && width+runewidth.RuneWidth(runes[i-1]) <= w {
		i--
		width += runewidth.RuneWidth(runes[i])
	}
	return "…" + string(runes[i:])
}
