package shell

import (
	"context"
	"fmt"
	"strings"
)

const (
	helpName = "help"
	helpDoc  = "Show help"
	helpHint = "\nhelp command for details about a command\n"
)

// Registry is a declarative command table. It is populated through
// Register before the first session starts and is read-only afterwards,
// so concurrent sessions resolve commands without locking.
//
// The help command is not stored: it is generated on every resolve so
// its listing always reflects the current table.
type Registry struct {
	commands map[string]Command
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command to the table. Names are case-sensitive, must
// not contain whitespace and must be unique; "help" is reserved.
func (r *Registry) Register(name, doc string, h Handler) error {
	if name == "" {
		return fmt.Errorf("command name is empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("command name %q contains whitespace", name)
	}
	if name == helpName {
		return fmt.Errorf("command name %q is reserved", name)
	}
	if h == nil {
		return fmt.Errorf("command %q has no handler", name)
	}
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = Command{Name: name, Doc: doc, Handler: h}
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for tables built at program start.
func (r *Registry) MustRegister(name, doc string, h Handler) {
	if err := r.Register(name, doc, h); err != nil {
		panic(err)
	}
}

// Resolve looks a command up by exact name. The generated help command
// always resolves.
func (r *Registry) Resolve(name string) (Command, bool) {
	if c, ok := r.commands[name]; ok {
		return c, true
	}
	if name == helpName {
		return r.helpCommand(), true
	}
	return Command{}, false
}

// List returns every command in registration order, with the generated
// help command last. Front ends use it for the help listing and for
// completion word lists.
func (r *Registry) List() []Command {
	out := make([]Command, 0, len(r.order)+1)
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return append(out, r.helpCommand())
}

func (r *Registry) helpCommand() Command {
	return Command{
		Name: helpName,
		Doc:  helpDoc,
		Handler: func(ctx context.Context, args []string) (string, error) {
			return r.Help(args), nil
		},
	}
}

// Help renders help text. With an argument matching a command it returns
// that command's full documentation; with no argument, or one that
// matches nothing, it lists every command with its short documentation
// plus a hint line.
func (r *Registry) Help(args []string) string {
	if len(args) > 0 {
		if c, ok := r.Resolve(args[0]); ok {
			if c.Doc == "" {
				return c.Name + "\n"
			}
			return c.Name + ": " + c.Doc + "\n"
		}
	}
	var b strings.Builder
	b.WriteString("Help:\n")
	for _, c := range r.List() {
		b.WriteString(c.Name)
		if d := c.ShortDoc(); d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
		b.WriteByte('\n')
	}
	b.WriteString(helpHint)
	return b.String()
}
