package shell

import (
	"context"
	"strings"
)

// Handler executes a command. args are the raw space-split tokens after
// the command name, unquoted and unescaped (there are no shell quoting
// semantics). The returned string is written back to the session
// verbatim; the engine never appends a trailing newline.
type Handler func(ctx context.Context, args []string) (string, error)

// Command is one named entry in a Registry.
type Command struct {
	Name    string
	Doc     string
	Handler Handler
}

// ShortDoc returns the first line of the command documentation.
func (c Command) ShortDoc() string {
	if i := strings.IndexByte(c.Doc, '\n'); i >= 0 {
		return c.Doc[:i]
	}
	return c.Doc
}
