package command

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkmeneguello/tedit/internal/editor"
	"github.com/bkmeneguello/tedit/internal/env"
	"github.com/bkmeneguello/tedit/internal/history"
	"github.com/bkmeneguello/tedit/internal/logging"
	"github.com/bkmeneguello/tedit/internal/terminal"
	"github.com/bkmeneguello/tedit/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	hidden  int
	quit    bool
	applied []string
}

func (w *fakeWindow) HideTerminal()              { w.hidden++ }
func (w *fakeWindow) Quit()                      { w.quit = true }
func (w *fakeWindow) ApplyTheme(p theme.Palette) { w.applied = append(w.applied, p.Name) }

type fakeLauncher struct {
	opened []string
	err    error
}

func (l *fakeLauncher) Open(dir string) error {
	l.opened = append(l.opened, dir)
	return l.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fixture struct {
	dispatcher *Dispatcher
	env        *env.Environment
	out        *terminal.Output
	buffer     *editor.Editor
	window     *fakeWindow
	launcher   *fakeLauncher
	clipboard  *fakeClipboard
	history    *history.History
	dataDir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	e, err := env.New(t.TempDir())
	require.NoError(t, err)

	dataDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "themes"), 0755))

	f := &fixture{
		env:       e,
		out:       terminal.NewOutput(),
		buffer:    editor.New(),
		window:    &fakeWindow{},
		launcher:  &fakeLauncher{},
		clipboard: &fakeClipboard{},
		history:   history.New(),
		dataDir:   dataDir,
	}
	f.out.SetCwd(e.Cwd)
	ctx := &Context{
		Env:        f.env,
		Out:        f.out,
		Buffer:     f.buffer,
		Window:     f.window,
		History:    f.history,
		Themes:     theme.NewStore(filepath.Join(dataDir, "themes")),
		ConfigPath: filepath.Join(dataDir, "config.json"),
		HelpPath:   filepath.Join(dataDir, "help.txt"),
		Explorer:   f.launcher,
		Clipboard:  f.clipboard,
		Log:        logging.NewDisabledLogger(),
	}
	f.dispatcher = NewDispatcher(NewBuiltinRegistry(), ctx)
	return f
}

func (f *fixture) run(lines ...string) {
	for _, line := range lines {
		f.dispatcher.Submit(line)
	}
}

// texts returns the log text, leaving out the prompt echoes.
func (f *fixture) texts() []string {
	var result []string
	for _, l := range f.out.Lines() {
		if strings.HasPrefix(l.Text, "/") && strings.Contains(l.Text, " $ ") {
			continue
		}
		result = append(result, l.Text)
	}
	return result
}

func (f *fixture) writeTheme(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(f.dataDir, "themes", name+theme.Extension)
	require.NoError(t, os.WriteFile(path, []byte("--foreground: white;"), 0644))
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		name string
		args []string
	}{
		{"ls", "ls", []string{}},
		{"  cd sub  ", "cd", []string{"sub"}},
		{"open  a.txt", "open", []string{"", "a.txt"}},
		{"theme dark --save", "theme", []string{"dark", "--save"}},
		{"", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, args := Parse(tt.raw)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewBuiltinRegistry()

	for _, name := range []string{"exit", "quit", "help", "cls", "clear", "ls", "cd", "open", "save", "rm", "mkdir", "rmdir", "explorer", "themes", "theme", "new", "ln", "hl"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := r.Lookup("bogus")
	assert.False(t, ok)
	assert.IsIncreasing(t, r.Names())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(newClearCommand("cls"), newClearCommand("cls"))
	})
}

func TestSubmitEchoesAndRecords(t *testing.T) {
	f := newFixture(t)

	f.run("pwd")

	lines := f.out.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, f.env.Cwd+" $ pwd", lines[0].Text)
	assert.Equal(t, f.env.Cwd, lines[1].Text)
	assert.Equal(t, []string{"pwd"}, f.history.Entries())
}

func TestSubmitUnknownCommand(t *testing.T) {
	f := newFixture(t)

	f.run("  frobnicate now ")

	assert.Equal(t, []string{"Command not found: frobnicate"}, f.texts())
	assert.Equal(t, []string{"  frobnicate now "}, f.history.Entries())
}

func TestEverySubmissionGrowsHistoryByOne(t *testing.T) {
	f := newFixture(t)

	for i, line := range []string{"ls", "bogus", "", "cd nowhere", "pwd"} {
		f.history.RecallOlder()
		f.run(line)
		assert.Equal(t, i+1, f.history.Len())
		assert.Equal(t, 0, f.history.Cursor())
	}
}

func TestMkdirCdLsScenario(t *testing.T) {
	f := newFixture(t)
	orig := f.env.Cwd

	f.run("mkdir sub", "cd sub", "ls")

	assert.DirExists(t, filepath.Join(orig, "sub"))
	assert.Equal(t, orig+"/sub", f.env.Cwd)
	assert.Equal(t, orig+"/sub", f.out.Cwd())
	assert.Equal(t, []string{
		"Directory created: " + orig + "/sub",
		"Directory changed: " + orig + "/sub",
	}, f.texts())
}

func TestCdRoundTrip(t *testing.T) {
	f := newFixture(t)
	orig := f.env.Cwd
	require.NoError(t, os.Mkdir(filepath.Join(orig, "d"), 0755))

	f.run("cd d", "cd ..")

	assert.Equal(t, orig, f.env.Cwd)
}

func TestCdFailureLeavesEnvironment(t *testing.T) {
	f := newFixture(t)
	orig := f.env.Cwd

	f.run("cd missing")

	assert.Equal(t, orig, f.env.Cwd)
	assert.Equal(t, []string{"Directory not found: " + orig + "/missing"}, f.texts())
}

func TestLsStylesDirectories(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(f.env.Cwd, "dir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.env.Cwd, "file.txt"), nil, 0644))

	f.run("ls")

	lines := f.out.Lines()[1:]
	assert.Equal(t, []terminal.Line{
		{Kind: terminal.DirectoryLine, Text: "dir"},
		{Kind: terminal.TextLine, Text: "file.txt"},
	}, lines)
}

func TestOpenMissingScenario(t *testing.T) {
	f := newFixture(t)
	f.buffer.SetText("unsaved work")
	f.buffer.MarkDirty()
	f.env.Cwf = "/somewhere/else.txt"

	f.run("open missing.txt")

	assert.Equal(t, "unsaved work", f.buffer.Text())
	assert.True(t, f.buffer.Dirty())
	assert.Equal(t, "/somewhere/else.txt", f.env.Cwf)
	assert.Equal(t, []string{"File not found: " + f.env.Cwd + "/missing.txt"}, f.texts())
}

func TestSaveOpenRoundTrip(t *testing.T) {
	f := newFixture(t)
	text := "first line\n\tsecond line\n"
	f.buffer.SetText(text)
	f.buffer.MarkDirty()

	f.run("save notes.txt")
	assert.False(t, f.buffer.Dirty())
	assert.Equal(t, f.env.Cwd+"/notes.txt", f.env.Cwf)

	f.run("new")
	assert.Equal(t, "", f.buffer.Text())

	f.buffer.MarkDirty()
	f.run("open notes.txt")
	assert.Equal(t, text, f.buffer.Text())
	assert.False(t, f.buffer.Dirty())
	assert.Equal(t, f.env.Cwd+"/notes.txt", f.env.Cwf)
}

func TestNewSaveRmScenario(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.env.Cwd, "a.txt")

	f.run("new", "save a.txt")
	assert.FileExists(t, path)

	f.run("rm a.txt")
	assert.NoFileExists(t, path)
	assert.Empty(t, f.env.Cwf)
	assert.Equal(t, []string{
		"File saved: " + f.env.Cwd + "/a.txt",
		"File removed: " + f.env.Cwd + "/a.txt",
	}, f.texts())
}

func TestNewClearsState(t *testing.T) {
	f := newFixture(t)
	f.buffer.SetText("text")
	f.buffer.MarkDirty()
	f.env.Cwf = "/a.txt"

	f.run("new")

	assert.Equal(t, "", f.buffer.Text())
	assert.Empty(t, f.env.Cwf)
	assert.False(t, f.buffer.Dirty())
}

func TestMissingArguments(t *testing.T) {
	f := newFixture(t)

	f.run("cd", "open  a.txt", "save", "rm", "mkdir", "rmdir")

	assert.Equal(t, []string{
		"Missing argument: cd <dir>",
		"Missing argument: open <file>",
		"Missing argument: save <file>",
		"Missing argument: rm <file>",
		"Missing argument: mkdir <dir>",
		"Missing argument: rmdir <dir>",
	}, f.texts())
}

func TestRmdir(t *testing.T) {
	f := newFixture(t)

	f.run("mkdir d", "rmdir d", "rmdir d")

	assert.NoDirExists(t, filepath.Join(f.env.Cwd, "d"))
	assert.Equal(t, "Directory not found: "+f.env.Cwd+"/d", f.texts()[2])
}

func TestClear(t *testing.T) {
	for _, name := range []string{"cls", "clear"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.run("pwd", name)
			assert.Empty(t, f.out.Lines())
			assert.Equal(t, 2, f.history.Len())
		})
	}
}

func TestExitAndQuit(t *testing.T) {
	f := newFixture(t)

	f.run("exit")
	assert.Equal(t, 1, f.window.hidden)
	assert.False(t, f.window.quit)

	f.run("quit")
	assert.True(t, f.window.quit)
	assert.Equal(t, 2, f.history.Len())
}

func TestHelp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "help.txt"), []byte("usage\r\n\r\nls lists"), 0644))

	f.run("help")

	lines := f.out.Lines()[1:]
	assert.Equal(t, []terminal.Line{
		{Kind: terminal.TextLine, Text: "usage"},
		{Kind: terminal.BlankLine},
		{Kind: terminal.TextLine, Text: "ls lists"},
		{Kind: terminal.BlankLine},
		{Kind: terminal.TextLine, Text: "Terminal commands:"},
	}, lines[:5])

	texts := f.texts()
	assert.Len(t, texts, 5+len(NewBuiltinRegistry().Names()))
	assert.Contains(t, texts, "  cd <dir>               Change the current directory")
	assert.Contains(t, texts, "  ln                     Show or hide line numbers")
}

func TestToggleEditorDisplay(t *testing.T) {
	f := newFixture(t)

	f.run("ln", "ln", "hl", "hl")

	assert.Equal(t, []string{
		"Line numbers off",
		"Line numbers on",
		"Current line highlight off",
		"Current line highlight on",
	}, f.texts())
}

func TestHelpDefault(t *testing.T) {
	f := newFixture(t)

	f.run("help")

	assert.Greater(t, len(f.out.Lines()), 10)
}

func TestExplorer(t *testing.T) {
	f := newFixture(t)

	f.run("explorer")
	assert.Equal(t, []string{f.env.Cwd}, f.launcher.opened)
	assert.Empty(t, f.texts())

	f.launcher.err = errors.New("no browser")
	f.run("explorer")
	assert.Equal(t, []string{"Could not open file browser: " + f.env.Cwd}, f.texts())
}

func TestThemes(t *testing.T) {
	f := newFixture(t)
	f.writeTheme(t, "light")
	f.writeTheme(t, "dark")

	f.run("themes")

	assert.Equal(t, []string{"dark", "light"}, f.texts())
}

func TestThemeNotFound(t *testing.T) {
	f := newFixture(t)

	f.run("theme neon")

	assert.Empty(t, f.window.applied)
	assert.Equal(t, []string{"Theme not found: neon"}, f.texts())
	assert.NoFileExists(t, filepath.Join(f.dataDir, "config.json"))
}

func TestThemeApply(t *testing.T) {
	f := newFixture(t)
	f.writeTheme(t, "dark")

	f.run("theme dark")

	assert.Equal(t, []string{"dark"}, f.window.applied)
	assert.Empty(t, f.texts())
	assert.NoFileExists(t, filepath.Join(f.dataDir, "config.json"))
}

func TestThemeSave(t *testing.T) {
	f := newFixture(t)
	f.writeTheme(t, "dark")
	configPath := filepath.Join(f.dataDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"theme":"light","width":80}`), 0644))

	f.run("theme dark --save")

	assert.Equal(t, []string{"dark"}, f.window.applied)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, map[string]any{"theme": "dark", "width": float64(80)}, fields)
}

func TestHistoryCommand(t *testing.T) {
	f := newFixture(t)

	f.run("pwd", "bogus", "history")

	texts := f.texts()
	assert.Equal(t, []string{"   1  pwd", "   2  bogus"}, texts[len(texts)-2:])
}

func TestCopy(t *testing.T) {
	f := newFixture(t)
	f.buffer.SetText("clip me")

	f.run("copy")
	assert.Equal(t, "clip me", f.clipboard.text)
	assert.Equal(t, []string{"Copied to clipboard"}, f.texts())

	f.clipboard.err = errors.New("no clipboard")
	f.run("copy")
	assert.Equal(t, "Could not copy to clipboard", f.texts()[1])
}
