package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkmeneguello/tedit/internal/config"
	"github.com/bkmeneguello/tedit/internal/env"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopExplorer struct{ opened []string }

func (n *nopExplorer) Open(dir string) error {
	n.opened = append(n.opened, dir)
	return nil
}

type nopClipboard struct{ text string }

func (n *nopClipboard) WriteAll(text string) error {
	n.text = text
	return nil
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(200, 20)
	return screen
}

func newTestApp(t *testing.T, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t)
	if opts.Cwd == "" {
		opts.Cwd = t.TempDir()
	}
	if opts.Paths.Dir == "" {
		paths, err := config.NewPaths(t.TempDir())
		require.NoError(t, err)
		opts.Paths = paths
	}
	if opts.Explorer == nil {
		opts.Explorer = &nopExplorer{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &nopClipboard{}
	}
	a, err := New(screen, opts)
	require.NoError(t, err)
	return a, screen
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func submit(a *App, line string) {
	typeText(a, line)
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteString(string(cells[y*width+x].Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func lastLine(a *App) string {
	lines := a.panel.Output.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1].Text
}

func TestStartup(t *testing.T) {
	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(paths.Themes, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.Themes, "dark.css"), []byte("--background: black;"), 0644))
	require.NoError(t, os.WriteFile(paths.Config, []byte(`{"theme": "dark"}`), 0644))

	a, _ := newTestApp(t, Options{Paths: paths})

	assert.False(t, a.panel.Visible())
	assert.Equal(t, "dark", a.palette.Name)
	assert.Equal(t, a.env.Cwd, a.panel.Output.Cwd())
	assert.Empty(t, a.env.Cwf)
	assert.False(t, a.editor.Dirty())
}

func TestStartupWithMalformedConfig(t *testing.T) {
	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(paths.Config, []byte(`{"theme":`), 0644))

	a, _ := newTestApp(t, Options{Paths: paths})

	assert.Equal(t, "default", a.palette.Name)
}

func TestStartupRejectsMissingDirectory(t *testing.T) {
	_, err := New(newScreen(t), Options{Cwd: filepath.Join(t.TempDir(), "missing")})

	assert.Error(t, err)
}

func TestStartupFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello\nworld"), 0644))

	a, screen := newTestApp(t, Options{Cwd: dir, File: "notes.txt"})
	a.Draw()

	assert.Equal(t, "hello\nworld", a.editor.Text())
	assert.Equal(t, a.env.Cwd+"/notes.txt", a.env.Cwf)
	assert.Equal(t, "Text Editor - "+a.env.Cwf, row(screen, 0))
}

func TestStartupFileMissing(t *testing.T) {
	a, _ := newTestApp(t, Options{File: "missing.txt"})

	assert.True(t, a.panel.Visible())
	assert.Equal(t, "File not found: "+a.env.Cwd+"/missing.txt", lastLine(a))
	assert.Empty(t, a.env.Cwf)
}

func TestToggleTerminal(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	assert.True(t, a.panel.Visible())

	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	assert.False(t, a.panel.Visible())
}

func TestTypingGoesToFocusedPane(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	typeText(a, "abc")
	assert.Equal(t, "abc", a.editor.Text())
	assert.True(t, a.editor.Dirty())

	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	typeText(a, "xyz")
	assert.Equal(t, "abc", a.editor.Text())
	assert.Equal(t, "xyz", a.panel.Input.Text())
}

func TestMovementKeepsEditorClean(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a.HandleEvent(key(tcell.KeyLeft, tcell.ModNone))
	a.HandleEvent(key(tcell.KeyDown, tcell.ModNone))

	assert.False(t, a.editor.Dirty())
}

func TestDirtyTitle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0644))
	a, screen := newTestApp(t, Options{Cwd: dir, File: "a.txt"})

	typeText(a, "x")
	a.Draw()

	assert.Equal(t, "Text Editor - *"+a.env.Cwd+"/a.txt", row(screen, 0))
}

func TestDirtyMarkerUsesAccent(t *testing.T) {
	paths, err := config.NewPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(paths.Themes, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.Themes, "warm.css"), []byte("--accent: maroon;"), 0644))
	require.NoError(t, os.WriteFile(paths.Config, []byte(`{"theme": "warm"}`), 0644))
	a, screen := newTestApp(t, Options{Paths: paths})

	typeText(a, "x")
	a.Draw()

	cells, _, _ := screen.GetContents()
	marker := cells[len("Text Editor - ")]
	assert.Equal(t, "*", string(marker.Runes))
	_, bg, _ := marker.Style.Decompose()
	assert.Equal(t, tcell.ColorMaroon, bg)
}

func TestSubmitCommand(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))

	submit(a, "mkdir sub")

	assert.DirExists(t, filepath.Join(a.env.Cwd, "sub"))
	assert.Equal(t, "", a.panel.Input.Text())
	assert.Equal(t, 1, a.history.Len())
	assert.Equal(t, 0, a.history.Cursor())
	assert.Equal(t, "Directory created: "+a.env.Cwd+"/sub", lastLine(a))
}

func TestHistoryRecall(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	submit(a, "pwd")
	submit(a, "ls")

	up := key(tcell.KeyUp, tcell.ModNone)
	down := key(tcell.KeyDown, tcell.ModNone)

	a.HandleEvent(up)
	assert.Equal(t, "ls", a.panel.Input.Text())
	a.HandleEvent(up)
	assert.Equal(t, "pwd", a.panel.Input.Text())
	a.HandleEvent(up)
	assert.Equal(t, "pwd", a.panel.Input.Text())
	assert.Equal(t, 2, a.history.Cursor())

	a.HandleEvent(down)
	assert.Equal(t, "ls", a.panel.Input.Text())
	a.HandleEvent(down)
	assert.Equal(t, "", a.panel.Input.Text())
	assert.Equal(t, 0, a.history.Cursor())

	a.HandleEvent(up)
	submit(a, "")
	assert.Equal(t, 0, a.history.Cursor())
	assert.Equal(t, []string{"ls", "ls", "pwd"}, a.history.Entries())
}

func TestSaveShortcut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	a, _ := newTestApp(t, Options{Cwd: dir, File: "a.txt"})

	typeText(a, "a")
	a.HandleEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
	assert.False(t, a.editor.Dirty())
	assert.True(t, a.panel.Visible())
	assert.Equal(t, "File saved: "+a.env.Cwd+"/a.txt", lastLine(a))
}

func TestSaveShortcutWithoutFile(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	typeText(a, "a")

	a.HandleEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))

	assert.True(t, a.editor.Dirty())
	assert.True(t, a.panel.Visible())
	assert.Equal(t, "No file is open", lastLine(a))
}

func TestNewShortcut(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a.HandleEvent(key(tcell.KeyCtrlN, tcell.ModCtrl))

	assert.True(t, a.panel.Visible())
	assert.Equal(t, "new", a.panel.Input.Text())
}

func TestMaximizeAndRestore(t *testing.T) {
	a, screen := newTestApp(t, Options{})
	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	maximize := key(tcell.KeyUp, tcell.ModCtrl)
	restore := key(tcell.KeyDown, tcell.ModCtrl)

	a.HandleEvent(maximize)
	assert.Equal(t, env.Maximized, a.env.Window)
	a.Draw()
	_, h := screen.Size()
	assert.Equal(t, h-1, a.terminalHeight)

	a.HandleEvent(restore)
	assert.Equal(t, env.Normal, a.env.Window)
	assert.True(t, a.panel.Visible())

	a.HandleEvent(restore)
	assert.False(t, a.panel.Visible())
}

func TestExitCommandHidesTerminal(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))

	submit(a, "exit")

	assert.False(t, a.panel.Visible())
}

func TestDrawTerminal(t *testing.T) {
	a, screen := newTestApp(t, Options{})
	a.HandleEvent(key(tcell.KeyCtrlSpace, tcell.ModCtrl))
	typeText(a, "ls")
	a.Draw()

	_, h := screen.Size()
	assert.Equal(t, a.env.Cwd+" $ ls", row(screen, h-1))
}

func TestRunQuitsAndSavesHistory(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "history")
	a, screen := newTestApp(t, Options{HistoryFile: historyFile})

	screen.InjectKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl)
	for _, r := range "pwd" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	require.NoError(t, a.Run())

	data, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "pwd\n", string(data))

	b, _ := newTestApp(t, Options{HistoryFile: historyFile})
	assert.Equal(t, []string{"pwd"}, b.history.Entries())
}
