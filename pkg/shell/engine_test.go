package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelloRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register("hello",
		"Hello world\n\nThis command accepts arguments: hello tutu will display tutu",
		func(ctx context.Context, args []string) (string, error) {
			if len(args) > 0 {
				return strings.Join(args, " "), nil
			}
			return "world\n", nil
		}))
	return reg
}

// scriptReader serves a fixed set of lines, then EOF.
type scriptReader struct {
	lines  []string
	mu     sync.Mutex
	onRead func()
}

func (s *scriptReader) ReadLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onRead != nil {
		s.onRead()
	}
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestDispatchHello(t *testing.T) {
	eng := NewEngine(newHelloRegistry(t), nil, io.Discard)
	ctx := context.Background()

	out, err := eng.Dispatch(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "world\n", out)

	out, err = eng.Dispatch(ctx, "hello a b")
	require.NoError(t, err)
	assert.Equal(t, "a b", out)
}

func TestDispatchArgumentsArePassedRaw(t *testing.T) {
	reg := NewRegistry()
	var got []string
	require.NoError(t, reg.Register("record", "", func(ctx context.Context, args []string) (string, error) {
		got = args
		return "", nil
	}))
	eng := NewEngine(reg, nil, io.Discard)

	_, err := eng.Dispatch(context.Background(), `record x "y z"`)
	require.NoError(t, err)
	// no shell quoting semantics: tokens split on single spaces only
	assert.Equal(t, []string{"x", `"y`, `z"`}, got)
}

func TestDispatchWhitespaceOnly(t *testing.T) {
	eng := NewEngine(newHelloRegistry(t), nil, io.Discard)
	for _, line := range []string{"", " ", "   ", "\t", " \t "} {
		out, err := eng.Dispatch(context.Background(), line)
		require.NoError(t, err)
		assert.Equal(t, "", out, "line %q", line)
	}
}

func TestDispatchQuestionMarkIsHelp(t *testing.T) {
	eng := NewEngine(newHelloRegistry(t), nil, io.Discard)
	ctx := context.Background()

	qm, err := eng.Dispatch(ctx, "?")
	require.NoError(t, err)
	help, err := eng.Dispatch(ctx, "help")
	require.NoError(t, err)
	assert.Equal(t, help, qm)
}

func TestDispatchUnknownCommand(t *testing.T) {
	eng := NewEngine(newHelloRegistry(t), nil, io.Discard)

	out, err := eng.Dispatch(context.Background(), "nosuchcmd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Command not found nosuchcmd\n"))
	assert.Equal(t, "Command not found nosuchcmd\n"+eng.Registry().Help(nil), out)
}

func TestDispatchHandlerErrorPropagates(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.Register("fail", "", func(ctx context.Context, args []string) (string, error) {
		return "", boom
	}))
	eng := NewEngine(reg, nil, io.Discard)

	_, err := eng.Dispatch(context.Background(), "fail")
	assert.ErrorIs(t, err, boom)
}

func TestRunWritesWelcomeOnceAndPrompts(t *testing.T) {
	var out bytes.Buffer
	eng := NewEngine(newHelloRegistry(t), &scriptReader{lines: []string{"hello a b\n"}}, &out)
	eng.Welcome = "Welcome!\n"

	require.NoError(t, eng.Run(context.Background()))
	// welcome, prompt, result written verbatim (no added newline), final
	// prompt before EOF
	assert.Equal(t, "Welcome!\n> a b> ", out.String())
}

func TestRunStopsOnHandlerError(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("fail", "", func(ctx context.Context, args []string) (string, error) {
		return "", errors.New("boom")
	}))
	var out bytes.Buffer
	eng := NewEngine(reg, &scriptReader{lines: []string{"fail\n", "fail\n"}}, &out)

	err := eng.Run(context.Background())
	require.Error(t, err)
	// the second line was never read
	assert.Equal(t, "> ", out.String())
}

// orderWriter tags written results into a shared event log.
type orderWriter struct {
	mu     *sync.Mutex
	events *[]string
}

func (w orderWriter) Write(p []byte) (int, error) {
	if s := string(p); s == "done" {
		w.mu.Lock()
		*w.events = append(*w.events, "write")
		w.mu.Unlock()
	}
	return len(p), nil
}

func TestRunIsStrictlySequential(t *testing.T) {
	var (
		mu     sync.Mutex
		events []string
	)
	record := func(ev string) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}

	reg := NewRegistry()
	require.NoError(t, reg.Register("slow", "", func(ctx context.Context, args []string) (string, error) {
		record("handler-start")
		// a concurrent second read would slot in here
		time.Sleep(20 * time.Millisecond)
		record("handler-end")
		return "done", nil
	}))

	reader := &scriptReader{lines: []string{"slow\n", "slow\n"}}
	reader.onRead = func() { record("read") }
	eng := NewEngine(reg, reader, orderWriter{mu: &mu, events: &events})

	require.NoError(t, eng.Run(context.Background()))

	want := []string{
		"read", "handler-start", "handler-end", "write",
		"read", "handler-start", "handler-end", "write",
		"read", // the EOF read
	}
	assert.Equal(t, want, events)
}

func TestStreamReader(t *testing.T) {
	sr := NewStreamReader(strings.NewReader("one\ntwo\npartial"))

	line, err := sr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one\n", line)

	line, err = sr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "two\n", line)

	// a partial final line is delivered before the EOF
	line, err = sr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "partial", line)

	_, err = sr.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}
