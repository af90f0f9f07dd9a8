// Package stdin wires a shell prototype to the process's own terminal.
// No terminal bridge is involved: readline does the local line editing
// and the engine is fed complete lines through an in-process pipe.
package stdin

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/chzyer/readline"
	"github.com/sandevgo/termshell/pkg/log"
	"github.com/sandevgo/termshell/pkg/shell"
)

// Frontend runs one local interactive session. It implements
// srv.Service.
type Frontend struct {
	proto *shell.Prototype
	rl    *readline.Instance
}

func New(proto *shell.Prototype) (*Frontend, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          proto.Prompt,
		AutoComplete:    newCompleter(proto.Registry),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &Frontend{proto: proto, rl: rl}, nil
}

// Start joins three tasks: a producer reading edited lines from the
// terminal into the engine's reader, the engine run loop, and a
// consumer mirroring the engine's writer to the terminal byte by byte.
//
// The tasks are deliberately unsupervised: one finishing or failing
// does not cancel the others. In practice closing stdin (Ctrl-D)
// unwinds all three through pipe EOFs, but a handler error leaves the
// producer blocked on the terminal until the next line. This mirrors
// the original fan-in design and is a documented limitation.
func (f *Frontend) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("interactive shell started")

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	engine := f.proto.NewEngine(shell.NewStreamReader(inR), outW)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	fail := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		fail(f.produce(inW))
	}()
	go func() {
		defer wg.Done()
		fail(f.consume(outR))
	}()
	go func() {
		defer wg.Done()
		// Closing the writer end lets the consumer drain out once the
		// engine is done.
		defer outW.Close()
		fail(engine.Run(ctx))
	}()
	wg.Wait()
	return first
}

func (f *Frontend) Shutdown(ctx context.Context) error {
	return f.rl.Close()
}

// produce reads interactive lines and feeds them, newline-terminated,
// into the engine's reader. Closing the pipe on exit is what tells the
// engine its transport is gone.
func (f *Frontend) produce(pw *io.PipeWriter) error {
	defer pw.Close()
	for {
		line, err := f.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if _, err := io.WriteString(pw, line+"\n"); err != nil {
			return err
		}
	}
}

// consume drains the engine's writer one byte at a time and mirrors it
// to the terminal.
func (f *Frontend) consume(r io.Reader) error {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := f.rl.Stdout().Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// newCompleter seeds tab completion with every registered command name.
func newCompleter(reg *shell.Registry) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(reg.List()))
	for _, c := range reg.List() {
		items = append(items, readline.PcItem(c.Name))
	}
	return readline.NewPrefixCompleter(items...)
}
