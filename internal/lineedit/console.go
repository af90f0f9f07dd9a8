package lineedit

import "github.com/sandevgo/termshell/pkg/frontend/telnet"

// NewConsole wires an editor, decoder and renderer for one telnet
// connection. It is the ConsoleFactory the demo binary hands to the
// telnet front end.
func NewConsole(cfg telnet.ConsoleConfig) *telnet.Console {
	bell := func() {
		cfg.Sink.Write([]byte{0x07})
		cfg.Sink.Flush()
	}
	editor := NewEditor(cfg.Size(), cfg.Scheduler, bell)
	return &telnet.Console{
		Editor:   editor,
		Decoder:  NewDecoder(editor.HandleKey),
		Renderer: NewRenderer(editor, cfg.Prompt, cfg.Size, cfg.Sink),
	}
}
