package shell

import "io"

// Prototype carries the pieces a front end clones per session: the
// shared immutable registry plus prompt and welcome text. Front ends
// hold one prototype and mint a fresh engine per connection.
type Prototype struct {
	Registry *Registry
	Prompt   string
	Welcome  string
}

func NewPrototype(reg *Registry) *Prototype {
	return &Prototype{Registry: reg, Prompt: DefaultPrompt}
}

// NewEngine binds a fresh engine for one session. The registry is shared
// and read-only; reader and writer belong to this session alone.
func (p *Prototype) NewEngine(reader LineReader, writer io.Writer) *Engine {
	e := NewEngine(p.Registry, reader, writer)
	if p.Prompt != "" {
		e.Prompt = p.Prompt
	}
	e.Welcome = p.Welcome
	return e
}
