package command

import (
	"github.com/bkmeneguello/tedit/internal/config"
)

// SaveFlag makes the theme command persist its choice.
const SaveFlag = "--save"

type listThemesCommand struct{ BaseCommand }

func newListThemesCommand() Command {
	return &listThemesCommand{BaseCommand{"themes", "themes", "List the available themes"}}
}

func (c *listThemesCommand) Execute(ctx *Context, args []string) {
	names, err := ctx.Themes.List()
	if err != nil {
		ctx.Log.Warn("listing themes failed", "error", err)
		ctx.Out.WriteLine("Could not read themes: " + ctx.Themes.Dir())
		return
	}
	for _, name := range names {
		ctx.Out.WriteLine(name)
	}
}

type themeCommand struct{ BaseCommand }

func newThemeCommand() Command {
	return &themeCommand{BaseCommand{"theme", "theme <name> [--save]", "Apply a theme"}}
}

func (c *themeCommand) Execute(ctx *Context, args []string) {
	name := arg(args, 0)
	if !ctx.Themes.Exists(name) {
		ctx.Out.WriteLine("Theme not found: " + name)
		return
	}
	palette, err := ctx.Themes.Load(name)
	if err != nil {
		ctx.Log.Warn("loading theme failed", "theme", name, "error", err)
		ctx.Out.WriteLine("Could not load theme: " + name)
		return
	}
	ctx.Window.ApplyTheme(palette)

	if arg(args, 1) == SaveFlag {
		if err := config.SaveTheme(ctx.ConfigPath, name); err != nil {
			ctx.Log.Warn("saving theme failed", "path", ctx.ConfigPath, "error", err)
			ctx.Out.WriteLine("Could not save config: " + ctx.ConfigPath)
		}
	}
}
