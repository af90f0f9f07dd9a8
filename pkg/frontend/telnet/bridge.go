package telnet

import (
	"context"

	"github.com/sandevgo/termshell/pkg/log"
	"github.com/sandevgo/termshell/pkg/shell"
)

const (
	defaultColumns = 79
	defaultRows    = 40
)

// Bridge is the per-connection state machine that turns a raw telnet
// byte stream into line-edited shell input. It feeds incoming bytes to
// the key decoder, forces a redraw after every feed so the remote
// screen tracks the editor buffer, and dispatches a line to the engine
// only once the editor reports it complete.
//
// A bridge handles one command at a time: the editor buffer is reset
// only after the result of the previous dispatch has been written.
type Bridge struct {
	engine    *shell.Engine
	transport Transport
	consoles  ConsoleFactory
	sched     *SchedulerGuard

	console *Console
	size    Size
	closed  bool
}

func NewBridge(proto *shell.Prototype, consoles ConsoleFactory, sched *SchedulerGuard, t Transport) *Bridge {
	return &Bridge{
		// The engine reads nothing itself on the telnet path; the
		// bridge hands it completed lines and writes results through
		// the transport.
		engine:    proto.NewEngine(nil, transportWriter{t}),
		transport: t,
		consoles:  consoles,
		sched:     sched,
		size:      Size{Columns: defaultColumns, Rows: defaultRows},
	}
}

// Connected initializes the embedded line editor against the current
// terminal size and paints the first prompt. The welcome message, if
// any, is sent before the first redraw so it appears above the prompt.
func (b *Bridge) Connected(ctx context.Context) {
	b.console = b.consoles(ConsoleConfig{
		Prompt:    b.engine.Prompt,
		Size:      b.terminalSize,
		Sink:      bridgeSink{b.transport},
		Scheduler: b.sched,
	})

	if b.engine.Welcome != "" {
		if err := b.transport.Send([]byte(b.engine.Welcome)); err != nil {
			log.FromCtx(ctx).Debug().Err(err).Msg("welcome write failed")
		}
	}
	b.console.Renderer.Redraw()
}

// Disconnected is part of Handler. The bridge holds no resources of its
// own; the owning transport performs all cleanup.
func (b *Bridge) Disconnected() {}

// Feed consumes raw bytes from the connection. The decoder fires key
// events synchronously into the editor; a redraw follows every feed,
// whether or not any key completed. When the editor signals a finished
// line the bridge dispatches it, writes the result and resets the
// editor for the next line.
func (b *Bridge) Feed(ctx context.Context, data []byte) {
	if b.closed || b.console == nil {
		return
	}

	b.console.Decoder.Feed(string(data))
	b.console.Renderer.Redraw()

	if !b.console.Editor.Returning() {
		return
	}

	line, err := b.console.Editor.Result()
	if err != nil {
		// Ctrl-C or Ctrl-D while editing: clean disconnect, nothing is
		// sent to the remote side.
		log.FromCtx(ctx).Debug().Err(err).Msg("session closed by user")
		b.closed = true
		_ = b.transport.Close()
		return
	}

	res, err := b.engine.Dispatch(ctx, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("line", line).Msg("command handler failed")
		b.closed = true
		_ = b.transport.Close()
		return
	}
	if err := b.transport.Send([]byte(res)); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("result write failed")
		b.closed = true
		return
	}
	b.reset()
}

// WindowSizeChanged records new geometry from a NAWS notification and
// passes it to the editor. No redraw here: size updates arrive out of
// band and the next key feed repaints anyway.
func (b *Bridge) WindowSizeChanged(columns, rows int) {
	b.size = Size{Columns: columns, Rows: rows}
	if b.console != nil {
		b.console.Editor.Resize(b.size)
	}
}

// reset prepares the editor and renderer for the next line after a
// command's output has been written: empty buffer, cursor recomputed
// from origin, fresh prompt painted.
func (b *Bridge) reset() {
	b.console.Editor.Reset()
	b.console.Renderer.Reset()
	b.console.Renderer.RequestAbsoluteCursorPosition()
	b.console.Renderer.Redraw()
}

func (b *Bridge) terminalSize() Size {
	return b.size
}

// bridgeSink lets the renderer write through the connection transport.
type bridgeSink struct {
	t Transport
}

func (s bridgeSink) Write(data []byte) (int, error) {
	if err := s.t.Send(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (s bridgeSink) Flush() error { return nil }

// transportWriter adapts Transport to io.Writer for the engine.
type transportWriter struct {
	t Transport
}

func (w transportWriter) Write(data []byte) (int, error) {
	if err := w.t.Send(data); err != nil {
		return 0, err
	}
	return len(data), nil
}
