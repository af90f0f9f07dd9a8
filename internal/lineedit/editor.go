// Package lineedit implements the line-editing collaborators the telnet
// bridge consumes: a single-line editor, an escape-sequence key decoder
// and a VT100 renderer. Together they fill the role a full terminal
// toolkit would on the remote end of the connection.
package lineedit

import (
	"io"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
)

// Editor is a single-line editor driven by decoded key events. It holds
// the buffer, the cursor and the returning flag the bridge polls after
// every feed.
type Editor struct {
	buf       []rune
	cursor    int
	size      telnet.Size
	returning bool
	result    string
	err       error
	sched     telnet.Scheduler
	bell      func()
}

func NewEditor(size telnet.Size, sched telnet.Scheduler, bell func()) *Editor {
	return &Editor{size: size, sched: sched, bell: bell}
}

func (e *Editor) HandleKey(ev telnet.KeyEvent) {
	if e.returning {
		// The completed line has not been collected yet; ignore input
		// until the bridge resets us.
		return
	}
	switch ev.Key {
	case telnet.KeyRune:
		e.buf = append(e.buf, 0)
		copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
		e.buf[e.cursor] = ev.Rune
		e.cursor++
	case telnet.KeyEnter:
		e.finish(string(e.buf), nil)
	case telnet.KeyBackspace:
		if e.cursor == 0 {
			e.ringBell()
			return
		}
		e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
		e.cursor--
	case telnet.KeyDelete:
		if e.cursor >= len(e.buf) {
			e.ringBell()
			return
		}
		e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
	case telnet.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case telnet.KeyRight:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case telnet.KeyHome:
		e.cursor = 0
	case telnet.KeyEnd:
		e.cursor = len(e.buf)
	case telnet.KeyCtrlC:
		e.finish("", telnet.ErrInterrupt)
	case telnet.KeyCtrlD:
		if len(e.buf) == 0 {
			e.finish("", io.EOF)
		} else if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
		}
	}
}

// finish marks the line complete. An editor that owned its event loop
// would stop it here to hand control back to the caller; on the telnet
// path the guarded scheduler turns that into a no-op.
func (e *Editor) finish(result string, err error) {
	e.result = result
	e.err = err
	e.returning = true
	e.sched.Stop()
}

// ringBell defers the bell through the scheduler so it is written after
// the redraw triggered by the same feed.
func (e *Editor) ringBell() {
	if e.bell == nil {
		return
	}
	e.sched.CallLater(e.bell)
}

func (e *Editor) Resize(size telnet.Size) {
	e.size = size
}

func (e *Editor) Returning() bool {
	return e.returning
}

func (e *Editor) Result() (string, error) {
	return e.result, e.err
}

func (e *Editor) Reset() {
	e.buf = e.buf[:0]
	e.cursor = 0
	e.returning = false
	e.result = ""
	e.err = nil
}

// Line and Cursor expose buffer state for the renderer.
func (e *Editor) Line() []rune { return e.buf }
func (e *Editor) Cursor() int  { return e.cursor }
