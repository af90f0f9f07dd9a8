package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sandevgo/termshell/pkg/log"
)

// DefaultPrompt is used when a prototype or engine does not override it.
const DefaultPrompt = "> "

// LineReader yields one newline-terminated line per call, blocking until
// a full line is available. An implementation is owned by exactly one
// session and is never shared.
type LineReader interface {
	ReadLine() (string, error)
}

// Engine sequences one interactive session: prompt, read, dispatch,
// write. It knows nothing about the transport beyond LineReader and
// io.Writer; the telnet bridge and the stdin front end both feed it.
type Engine struct {
	reg    *Registry
	reader LineReader
	writer io.Writer

	// Prompt and Welcome may be changed before Run; Prompt may also be
	// changed by a handler mid-session.
	Prompt  string
	Welcome string
}

func NewEngine(reg *Registry, reader LineReader, writer io.Writer) *Engine {
	return &Engine{reg: reg, reader: reader, writer: writer, Prompt: DefaultPrompt}
}

func (e *Engine) Registry() *Registry { return e.reg }

// Dispatch parses one raw input line and runs the matching command.
//
// The line is split on single spaces; the first token names the command
// ("?" is an alias for help). A blank line is a no-op and yields "".
// An unknown command is not an error: the result is a "Command not
// found" line followed by the full help listing. A handler error
// propagates to the caller.
func (e *Engine) Dispatch(ctx context.Context, line string) (string, error) {
	tokens := strings.Split(line, " ")
	if tokens[0] == "?" {
		tokens[0] = helpName
	}
	if strings.TrimSpace(tokens[0]) == "" {
		return "", nil
	}
	cmd, ok := e.reg.Resolve(tokens[0])
	if !ok {
		return "Command not found " + tokens[0] + "\n" + e.reg.Help(nil), nil
	}
	return cmd.Handler(ctx, tokens[1:])
}

// Run drives the session until its transport is exhausted. The welcome
// message, if any, is written once up front. The loop is strictly
// sequential: the next line is not read until the previous result has
// been written.
//
// Run returns nil when the reader reports io.EOF (closed transport),
// and the first write or handler error otherwise.
func (e *Engine) Run(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if e.Welcome != "" {
		if err := e.write(e.Welcome); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.write(e.Prompt); err != nil {
			return err
		}

		line, err := e.reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		res, err := e.Dispatch(ctx, line)
		if err != nil {
			logger.Error().Err(err).Str("line", line).Msg("command handler failed")
			return fmt.Errorf("command failed: %w", err)
		}
		if err := e.write(res); err != nil {
			return err
		}
	}
}

func (e *Engine) write(s string) error {
	_, err := io.WriteString(e.writer, s)
	return err
}

// StreamReader adapts a byte stream into a LineReader. A partial line
// at end of stream is delivered before the EOF.
type StreamReader struct {
	br *bufio.Reader
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{br: bufio.NewReader(r)}
}

func (s *StreamReader) ReadLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
