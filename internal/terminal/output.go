// Package terminal is the command panel: an output log above a prompt line.
package terminal

// LineKind distinguishes the entries of the output log.
type LineKind int

const (
	TextLine LineKind = iota
	BlankLine
	DirectoryLine
)

// Line is a single entry of the output log.
type Line struct {
	Kind LineKind
	Text string
}

// Output is the scrolling log of the terminal panel and its prompt path.
type Output struct {
	lines  []Line
	cwd    string
	bottom int // Index one past the last line on display
}

// NewOutput creates an empty log.
func NewOutput() *Output {
	return &Output{}
}

// WriteLine appends a text line. An empty string appends a blank line break.
func (o *Output) WriteLine(text string) {
	if text == "" {
		o.lines = append(o.lines, Line{Kind: BlankLine})
		return
	}
	o.lines = append(o.lines, Line{Kind: TextLine, Text: text})
}

// WriteDirectoryLine appends a line styled as a directory.
func (o *Output) WriteDirectoryLine(name string) {
	o.lines = append(o.lines, Line{Kind: DirectoryLine, Text: name})
}

// SetCwd sets the path shown in the prompt.
func (o *Output) SetCwd(path string) {
	o.cwd = path
}

// Cwd returns the path shown in the prompt.
func (o *Output) Cwd() string {
	return o.cwd
}

// Clear discards every line.
func (o *Output) Clear() {
	o.lines = nil
	o.bottom = 0
}

// ScrollToBottom brings the most recent line into view. Writes do not scroll
// on their own; the panel calls this once per submitted command.
func (o *Output) ScrollToBottom() {
	o.bottom = len(o.lines)
}

// ScrollUp moves the view n lines towards the oldest line.
func (o *Output) ScrollUp(n int) {
	o.bottom = max(o.bottom-n, 0)
}

// ScrollDown moves the view n lines towards the newest line.
func (o *Output) ScrollDown(n int) {
	o.bottom = min(o.bottom+n, len(o.lines))
}

// Lines returns a copy of the log.
func (o *Output) Lines() []Line {
	result := make([]Line, len(o.lines))
	copy(result, o.lines)
	return result
}

// Visible returns up to h lines ending at the current scroll position.
func (o *Output) Visible(h int) []Line {
	end := min(o.bottom, len(o.lines))
	start := max(end-h, 0)
	return o.lines[start:end]
}
