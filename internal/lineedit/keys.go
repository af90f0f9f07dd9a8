package lineedit

import (
	"strings"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
)

// Decoder turns terminal input text into key events. A telnet peer
// delivers bytes in arbitrary chunks, so a partial escape sequence is
// kept across feeds and completed by the next one.
type Decoder struct {
	cb     func(telnet.KeyEvent)
	esc    []rune
	lastCR bool
}

func NewDecoder(cb func(telnet.KeyEvent)) *Decoder {
	return &Decoder{cb: cb}
}

func (d *Decoder) Feed(text string) {
	for _, r := range text {
		if len(d.esc) > 0 {
			d.feedEscape(r)
			continue
		}

		// A CR is followed by LF or NUL depending on the peer's mode;
		// swallow the trailer so Enter fires once.
		wasCR := d.lastCR
		d.lastCR = r == '\r'
		if wasCR && (r == '\n' || r == 0x00) {
			continue
		}

		switch r {
		case 0x1b:
			d.esc = append(d.esc, r)
		case '\r', '\n':
			d.cb(telnet.KeyEvent{Key: telnet.KeyEnter})
		case 0x7f, 0x08:
			d.cb(telnet.KeyEvent{Key: telnet.KeyBackspace})
		case 0x03:
			d.cb(telnet.KeyEvent{Key: telnet.KeyCtrlC})
		case 0x04:
			d.cb(telnet.KeyEvent{Key: telnet.KeyCtrlD})
		case 0x01:
			d.cb(telnet.KeyEvent{Key: telnet.KeyHome})
		case 0x05:
			d.cb(telnet.KeyEvent{Key: telnet.KeyEnd})
		default:
			if r >= 0x20 {
				d.cb(telnet.KeyEvent{Key: telnet.KeyRune, Rune: r})
			}
			// remaining control runes are dropped
		}
	}
}

func (d *Decoder) feedEscape(r rune) {
	d.esc = append(d.esc, r)

	if len(d.esc) == 2 {
		if r == '[' || r == 'O' {
			return
		}
		// Bare ESC followed by an ordinary rune: not a sequence we
		// handle, drop both.
		d.esc = d.esc[:0]
		return
	}

	// CSI parameter bytes keep the sequence open.
	if (r >= '0' && r <= '9') || r == ';' {
		return
	}

	seq := d.esc
	d.esc = d.esc[:0]

	switch r {
	case 'C':
		d.cb(telnet.KeyEvent{Key: telnet.KeyRight})
	case 'D':
		d.cb(telnet.KeyEvent{Key: telnet.KeyLeft})
	case 'H':
		d.cb(telnet.KeyEvent{Key: telnet.KeyHome})
	case 'F':
		d.cb(telnet.KeyEvent{Key: telnet.KeyEnd})
	case '~':
		switch strings.TrimRight(string(seq[2:]), "~") {
		case "1", "7":
			d.cb(telnet.KeyEvent{Key: telnet.KeyHome})
		case "3":
			d.cb(telnet.KeyEvent{Key: telnet.KeyDelete})
		case "4", "8":
			d.cb(telnet.KeyEvent{Key: telnet.KeyEnd})
		}
	default:
		// Unhandled final byte (cursor reports, function keys):
		// sequence dropped.
	}
}
