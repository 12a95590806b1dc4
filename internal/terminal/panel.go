package terminal

import (
	"github.com/bkmeneguello/tedit/internal/render"
	"github.com/bkmeneguello/tedit/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// PromptSuffix separates the prompt path from the input.
const PromptSuffix = " $ "

// Focuser receives input focus when the panel hides.
type Focuser interface {
	Focus()
}

// Panel is the terminal panel: the output log, the prompt input line and the
// visibility state. When the panel is visible it owns keyboard focus.
type Panel struct {
	Output *Output
	Input  *Input

	visible bool
	editor  Focuser
}

// NewPanel creates a hidden panel that hands focus to editor when hidden.
func NewPanel(editor Focuser) *Panel {
	return &Panel{
		Output: NewOutput(),
		Input:  NewInput(),
		editor: editor,
	}
}

// Show makes the panel visible and gives it focus.
func (p *Panel) Show() {
	p.visible = true
}

// Hide hides the panel and focuses the editor.
func (p *Panel) Hide() {
	p.visible = false
	if p.editor != nil {
		p.editor.Focus()
	}
}

// Toggle shows a hidden panel or hides a visible one.
func (p *Panel) Toggle() {
	if p.visible {
		p.Hide()
	} else {
		p.Show()
	}
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Draw renders the log and the prompt into r. The prompt takes the last row.
func (p *Panel) Draw(s tcell.Screen, r render.Rect, palette theme.Palette) {
	if r.H <= 0 || r.W <= 0 {
		return
	}
	render.Fill(s, r, palette.Text)

	logHeight := r.H - 1
	for i, line := range p.Output.Visible(logHeight) {
		style := palette.Text
		if line.Kind == DirectoryLine {
			style = palette.Directory
		}
		render.Print(s, r.X, r.Y+i, r.W, line.Text, style)
	}

	y := r.Y + r.H - 1
	prompt := render.Truncate(p.Output.Cwd(), r.W/2) + PromptSuffix
	x := r.X + render.Print(s, r.X, y, r.W, prompt, palette.Prompt)
	avail := r.X + r.W - x
	text, cursor := p.Input.window(avail)
	render.Print(s, x, y, avail, text, palette.Text)
	s.ShowCursor(x+cursor, y)
}
