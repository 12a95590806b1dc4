package command

import (
	"strings"
)

// Parse splits a raw line into a command name and its arguments. The line is
// trimmed and then split on single spaces, so consecutive spaces produce
// empty arguments. There is no quoting.
func Parse(raw string) (string, []string) {
	tokens := strings.Split(strings.TrimSpace(raw), " ")
	return tokens[0], tokens[1:]
}

// Dispatcher runs submitted lines against a registry.
type Dispatcher struct {
	registry *Registry
	ctx      *Context
}

// NewDispatcher binds a registry to the context of one editor instance.
func NewDispatcher(registry *Registry, ctx *Context) *Dispatcher {
	ctx.Registry = registry
	return &Dispatcher{registry: registry, ctx: ctx}
}

// Submit echoes raw with the prompt, runs the named command, and records raw
// in the history whether or not the command exists.
func (d *Dispatcher) Submit(raw string) {
	d.ctx.Out.WriteLine(d.ctx.Env.Cwd + " $ " + raw)

	name, args := Parse(raw)
	if cmd, ok := d.registry.Lookup(name); ok {
		d.ctx.Log.Debug("running command", "name", name, "args", args)
		cmd.Execute(d.ctx, args)
	} else {
		d.ctx.Log.Debug("unknown command", "name", name)
		d.ctx.Out.WriteLine("Command not found: " + name)
	}

	d.ctx.History.Record(raw)
}
