package lineedit

import (
	"bytes"
	"fmt"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
)

// Renderer paints the prompt and the editor line onto a VT100 terminal.
// Every redraw rewrites the whole line; with a single edited line that
// keeps the remote screen consistent with the buffer no matter how the
// input was chunked.
type Renderer struct {
	editor *Editor
	prompt string
	size   func() telnet.Size
	sink   telnet.Sink
	origin bool
}

func NewRenderer(editor *Editor, prompt string, size func() telnet.Size, sink telnet.Sink) *Renderer {
	return &Renderer{editor: editor, prompt: prompt, size: size, sink: sink}
}

func (r *Renderer) Redraw() {
	var b bytes.Buffer

	if r.origin {
		// Command output may have left the cursor anywhere on the row.
		// Without cursor position reports, start the next prompt on a
		// fresh line.
		b.WriteString("\r\n")
		r.origin = false
	}

	b.WriteString("\r\x1b[K")
	b.WriteString(r.prompt)

	line := r.editor.Line()
	cursor := r.editor.Cursor()

	// Horizontal scroll when the line outgrows the terminal.
	width := r.size().Columns - len(r.prompt) - 1
	if width < 1 {
		width = 1
	}
	start := 0
	if cursor > width {
		start = cursor - width
	}
	end := start + width
	if end > len(line) {
		end = len(line)
	}
	visible := line[start:end]
	b.WriteString(string(visible))

	if back := len(visible) - (cursor - start); back > 0 {
		fmt.Fprintf(&b, "\x1b[%dD", back)
	}

	if r.editor.Returning() {
		// The line is finished; park the cursor on a fresh row so
		// command output does not overwrite it.
		b.WriteString("\r\n")
	}

	r.sink.Write(b.Bytes())
	r.sink.Flush()
}

func (r *Renderer) Reset() {
	r.origin = false
}

func (r *Renderer) RequestAbsoluteCursorPosition() {
	r.origin = true
}
