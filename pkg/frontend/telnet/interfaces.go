// Package telnet adapts a raw telnet byte stream into line-edited shell
// sessions. The bridge in this package owns the session state machine
// only; option negotiation, key decoding, line editing and screen
// rendering are capability interfaces supplied by the host.
package telnet

import (
	"context"
	"errors"
)

// ErrInterrupt is reported by a line editor when the user aborts the
// line being edited (Ctrl-C). End of input is reported as io.EOF.
// The bridge treats both as a clean disconnect.
var ErrInterrupt = errors.New("interrupted")

// Transport is the write side the telnet layer hands each connection.
type Transport interface {
	Send(data []byte) error
	Close() error
}

// Handler is the per-connection surface the telnet layer drives. The
// bridge implements it.
type Handler interface {
	Connected(ctx context.Context)
	Disconnected()
	Feed(ctx context.Context, data []byte)
	WindowSizeChanged(columns, rows int)
}

// ConnectionFactory mints one Handler per accepted connection.
type ConnectionFactory func(t Transport) Handler

// Size is the remote terminal geometry, updated by NAWS notifications.
type Size struct {
	Columns int
	Rows    int
}

// Key identifies a decoded key event.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCtrlC
	KeyCtrlD
)

// KeyEvent is one decoded key. Rune is set only for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// KeyDecoder turns decoded text into key events. It is constructed with
// a key-event callback and invokes it synchronously, zero or more times
// per Feed, as it recognizes keys.
type KeyDecoder interface {
	Feed(text string)
}

// Sink is where a renderer writes its escape sequences. The bridge
// implements it on top of the connection's Transport.
type Sink interface {
	Write(data []byte) (int, error)
	Flush() error
}

// Renderer paints the logical editor line onto the remote terminal. It
// is constructed against a size provider and a Sink.
type Renderer interface {
	// Redraw repaints the prompt and the current editor line.
	Redraw()
	// Reset drops any remembered screen state.
	Reset()
	// RequestAbsoluteCursorPosition tells the renderer the cursor must
	// be recomputed from origin on the next redraw, after command
	// output moved it.
	RequestAbsoluteCursorPosition()
}

// LineEditor is the opaque state of the embedded line editor: buffer
// contents, cursor position and the returning flag.
type LineEditor interface {
	// HandleKey applies one decoded key to the buffer.
	HandleKey(ev KeyEvent)
	// Resize informs the editor of new terminal geometry.
	Resize(size Size)
	// Returning reports whether a line has been completed.
	Returning() bool
	// Result extracts the completed line. It returns ErrInterrupt or
	// io.EOF when the user aborted instead of completing a line.
	Result() (string, error)
	// Reset clears the buffer, the cursor and the returning flag.
	Reset()
}

// Scheduler is the narrow surface of the host's shared task scheduler
// that an embedded line editor may use: deferred callbacks and
// background tasks, plus the lifecycle calls a loop-owning editor would
// make and readiness registration, which a guarded scheduler rejects.
type Scheduler interface {
	CallLater(fn func())
	Submit(fn func())
	Stop()
	Close()
	AddReader(fd int, cb func())
	RemoveReader(fd int)
}

// Console bundles the collaborators serving one connection. A
// ConsoleFactory wires the decoder's key callback to the editor and the
// renderer to the editor's state; the bridge only sequences them.
type Console struct {
	Editor   LineEditor
	Decoder  KeyDecoder
	Renderer Renderer
}

// ConsoleConfig is what a ConsoleFactory gets to build a Console for
// one connection.
type ConsoleConfig struct {
	Prompt    string
	Size      func() Size
	Sink      Sink
	Scheduler Scheduler
}

// ConsoleFactory builds the editor, decoder and renderer for one
// connection.
type ConsoleFactory func(cfg ConsoleConfig) *Console
