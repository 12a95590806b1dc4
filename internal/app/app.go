// Package app runs the editor: one tcell screen, the editor pane, the
// terminal panel and the event loop that ties them together.
package app

import (
	"fmt"

	"github.com/bkmeneguello/tedit/internal/command"
	"github.com/bkmeneguello/tedit/internal/config"
	"github.com/bkmeneguello/tedit/internal/editor"
	"github.com/bkmeneguello/tedit/internal/env"
	"github.com/bkmeneguello/tedit/internal/fsops"
	"github.com/bkmeneguello/tedit/internal/history"
	"github.com/bkmeneguello/tedit/internal/keys"
	"github.com/bkmeneguello/tedit/internal/logging"
	"github.com/bkmeneguello/tedit/internal/render"
	"github.com/bkmeneguello/tedit/internal/terminal"
	"github.com/bkmeneguello/tedit/internal/theme"
	"github.com/gdamore/tcell/v2"
)

const (
	historyLimit      = 500
	minTerminalHeight = 3
)

// Options configures an App.
type Options struct {
	Cwd         string       // Starting directory
	File        string       // File to open at startup, relative to Cwd
	HistoryFile string       // Where command history persists; empty disables it
	Paths       config.Paths // Data directory layout
	Log         logging.Logger
	Explorer    command.Launcher  // Defaults to the system file browser
	Clipboard   command.Clipboard // Defaults to the system clipboard
}

// App holds all state for one editor window.
type App struct {
	screen     tcell.Screen
	env        *env.Environment
	editor     *editor.Editor
	panel      *terminal.Panel
	history    *history.History
	dispatcher *command.Dispatcher
	palette    theme.Palette
	log        logging.Logger

	historyFile    string
	terminalHeight int // Rows of the terminal panel at the last draw
	quit           bool
}

// New wires an App to screen, which must already be initialized.
func New(screen tcell.Screen, opts Options) (*App, error) {
	e, err := env.New(opts.Cwd)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = logging.NewDisabledLogger()
	}
	if opts.Explorer == nil {
		opts.Explorer = systemExplorer{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}

	ed := editor.New()
	a := &App{
		screen:      screen,
		env:         e,
		editor:      ed,
		panel:       terminal.NewPanel(ed),
		history:     history.New(),
		palette:     theme.Default(),
		log:         log,
		historyFile: opts.HistoryFile,
	}

	if a.historyFile != "" {
		if err := a.history.Load(a.historyFile); err != nil {
			log.Warn("loading command history failed", "path", a.historyFile, "error", err)
		}
	}

	themes := theme.NewStore(opts.Paths.Themes)
	a.dispatcher = command.NewDispatcher(command.NewBuiltinRegistry(), &command.Context{
		Env:        e,
		Out:        a.panel.Output,
		Buffer:     ed,
		Window:     a,
		History:    a.history,
		Themes:     themes,
		ConfigPath: opts.Paths.Config,
		HelpPath:   opts.Paths.Help,
		Explorer:   opts.Explorer,
		Clipboard:  opts.Clipboard,
		Log:        log,
	})

	a.panel.Output.SetCwd(e.Cwd)
	a.panel.Hide()
	a.applyConfiguredTheme(opts.Paths.Config, themes)

	if opts.File != "" {
		a.openStartupFile(opts.File)
	}
	return a, nil
}

// applyConfiguredTheme applies the theme named in the settings file. Startup
// continues with the built-in palette when anything is wrong.
func (a *App) applyConfiguredTheme(path string, themes *theme.Store) {
	cfg, err := config.Load(path)
	if err != nil {
		a.log.Error("loading config failed", "path", path, "error", err)
	}
	if !themes.Exists(cfg.Theme) {
		if cfg.Theme != config.DefaultTheme {
			a.log.Warn("configured theme not found", "theme", cfg.Theme)
		}
		return
	}
	palette, err := themes.Load(cfg.Theme)
	if err != nil {
		a.log.Error("loading theme failed", "theme", cfg.Theme, "error", err)
		return
	}
	a.ApplyTheme(palette)
}

func (a *App) openStartupFile(file string) {
	text, res := fsops.OpenFile(a.env, file)
	if !res.OK() {
		a.log.Warn("opening startup file failed", "path", res.Path, "error", res.Err)
		a.panel.Output.WriteLine(res.Line())
		a.panel.Show()
		return
	}
	a.editor.SetText(text)
	a.editor.MarkClean()
}

// HideTerminal hides the terminal panel and focuses the editor.
func (a *App) HideTerminal() {
	a.panel.Hide()
}

// Quit ends the event loop after the current event.
func (a *App) Quit() {
	a.quit = true
}

// ApplyTheme switches the palette everything draws with.
func (a *App) ApplyTheme(p theme.Palette) {
	a.log.Debug("applying theme", "theme", p.Name)
	a.palette = p
}

// Run polls and handles events until Quit. The command history is saved on
// the way out.
func (a *App) Run() error {
	a.Draw()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.HandleEvent(ev)
		a.Draw()
	}
	return a.saveHistory()
}

func (a *App) saveHistory() error {
	if a.historyFile == "" {
		return nil
	}
	if err := a.history.Save(a.historyFile, historyLimit); err != nil {
		return fmt.Errorf("error saving command history: %w", err)
	}
	return nil
}

// HandleEvent processes one screen event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch {
	case keys.Quit(ev):
		a.Quit()
	case keys.ToggleTerminal(ev):
		a.panel.Toggle()
	case keys.Maximize(ev):
		a.env.Maximize()
	case keys.RestoreAndMinimize(ev):
		if a.env.Window == env.Maximized {
			a.env.Restore()
		} else {
			a.panel.Hide()
		}
	case a.panel.Visible():
		a.handleTerminalKey(ev)
	default:
		a.handleEditorKey(ev)
	}
}

// handleEditorKey processes key events while the editor has focus.
func (a *App) handleEditorKey(ev *tcell.EventKey) {
	switch {
	case keys.SaveFile(ev):
		res := fsops.SaveCurrent(a.env, a.editor.Text())
		if res.OK() {
			a.editor.MarkClean()
		} else {
			a.log.Warn("saving current file failed", "path", res.Path, "error", res.Err)
		}
		a.panel.Output.WriteLine(res.Line())
		a.panel.Output.ScrollToBottom()
		a.panel.Show()
	case keys.NewFile(ev):
		a.panel.Input.Set("new")
		a.panel.Show()
	default:
		if a.editor.HandleKey(ev) {
			a.editor.MarkDirty()
		}
	}
}

// handleTerminalKey processes key events while the terminal has focus.
func (a *App) handleTerminalKey(ev *tcell.EventKey) {
	in := a.panel.Input
	switch {
	case keys.SubmitCommand(ev):
		a.dispatcher.Submit(in.Take())
		a.panel.Output.ScrollToBottom()
		a.history.ResetCursor()
	case keys.UpCommandHistory(ev):
		if text, ok := a.history.RecallOlder(); ok {
			in.Set(text)
		}
	case keys.DownCommandHistory(ev):
		if text, ok := a.history.RecallNewer(); ok {
			in.Set(text)
		}
	default:
		switch ev.Key() {
		case tcell.KeyRune:
			in.Insert(ev.Rune())
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			in.Backspace()
		case tcell.KeyDelete:
			in.Delete()
		case tcell.KeyLeft:
			in.Left()
		case tcell.KeyRight:
			in.Right()
		case tcell.KeyHome:
			in.Home()
		case tcell.KeyEnd:
			in.End()
		case tcell.KeyPgUp:
			a.panel.Output.ScrollUp(max(a.terminalHeight-2, 1))
		case tcell.KeyPgDn:
			a.panel.Output.ScrollDown(max(a.terminalHeight-2, 1))
		case tcell.KeyEsc:
			a.panel.Hide()
		}
	}
}

// Draw renders the title bar, the editor and, when visible, the terminal.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	a.screen.HideCursor()

	title := render.Rect{X: 0, Y: 0, W: w, H: 1}
	render.Fill(a.screen, title, a.palette.Status)
	render.Print(a.screen, 0, 0, w, editor.Title(a.env.Cwf, a.editor.Dirty()), a.palette.Status)
	if a.editor.Dirty() {
		render.Print(a.screen, len(editor.TitlePrefix), 0, w-len(editor.TitlePrefix), "*", a.palette.Accent)
	}

	body := render.Rect{X: 0, Y: 1, W: w, H: h - 1}
	editorArea, terminalArea := a.layout(body)
	a.terminalHeight = terminalArea.H

	a.editor.Draw(a.screen, editorArea, a.palette, !a.panel.Visible())
	if a.panel.Visible() {
		a.panel.Draw(a.screen, terminalArea, a.palette)
	}
	a.screen.Show()
}

// layout splits body between the editor and the terminal. A maximized
// window gives the terminal the whole body.
func (a *App) layout(body render.Rect) (render.Rect, render.Rect) {
	if !a.panel.Visible() {
		return body, render.Rect{}
	}
	if a.env.Window == env.Maximized {
		return render.Rect{}, body
	}
	th := min(max(body.H/3, minTerminalHeight), body.H)
	editorArea := render.Rect{X: body.X, Y: body.Y, W: body.W, H: body.H - th}
	terminalArea := render.Rect{X: body.X, Y: body.Y + body.H - th, W: body.W, H: th}
	return editorArea, terminalArea
}
