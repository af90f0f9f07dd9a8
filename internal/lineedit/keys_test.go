package lineedit

import (
	"testing"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
)

func collectKeys(feeds ...string) []telnet.KeyEvent {
	var events []telnet.KeyEvent
	d := NewDecoder(func(ev telnet.KeyEvent) { events = append(events, ev) })
	for _, f := range feeds {
		d.Feed(f)
	}
	return events
}

func TestDecoderPlainText(t *testing.T) {
	events := collectKeys("hi")
	if len(events) != 2 {
		t.Fatalf("events = %v", events)
	}
	if events[0].Key != telnet.KeyRune || events[0].Rune != 'h' {
		t.Fatalf("events[0] = %+v", events[0])
	}
	if events[1].Rune != 'i' {
		t.Fatalf("events[1] = %+v", events[1])
	}
}

func TestDecoderEnterVariants(t *testing.T) {
	// CR LF, CR NUL and bare LF each produce exactly one Enter
	for _, input := range []string{"\r\n", "\r\x00", "\n", "\r"} {
		events := collectKeys(input)
		if len(events) != 1 || events[0].Key != telnet.KeyEnter {
			t.Fatalf("input %q events = %v", input, events)
		}
	}

	// two separate returns stay two
	events := collectKeys("\r\n\r\n")
	if len(events) != 2 {
		t.Fatalf("events = %v", events)
	}
}

func TestDecoderControlKeys(t *testing.T) {
	cases := map[string]telnet.Key{
		"\x7f": telnet.KeyBackspace,
		"\b":   telnet.KeyBackspace,
		"\x03": telnet.KeyCtrlC,
		"\x04": telnet.KeyCtrlD,
		"\x01": telnet.KeyHome,
		"\x05": telnet.KeyEnd,
	}
	for input, want := range cases {
		events := collectKeys(input)
		if len(events) != 1 || events[0].Key != want {
			t.Fatalf("input %q events = %v, want key %v", input, events, want)
		}
	}
}

func TestDecoderEscapeSequences(t *testing.T) {
	cases := map[string]telnet.Key{
		"\x1b[C":  telnet.KeyRight,
		"\x1b[D":  telnet.KeyLeft,
		"\x1b[H":  telnet.KeyHome,
		"\x1b[F":  telnet.KeyEnd,
		"\x1b[1~": telnet.KeyHome,
		"\x1b[3~": telnet.KeyDelete,
		"\x1b[4~": telnet.KeyEnd,
	}
	for input, want := range cases {
		events := collectKeys(input)
		if len(events) != 1 || events[0].Key != want {
			t.Fatalf("input %q events = %v, want key %v", input, events, want)
		}
	}
}

func TestDecoderSequenceSplitAcrossFeeds(t *testing.T) {
	// telnet delivers bytes in arbitrary chunks
	events := collectKeys("\x1b", "[", "C")
	if len(events) != 1 || events[0].Key != telnet.KeyRight {
		t.Fatalf("events = %v", events)
	}
}

func TestDecoderDropsUnknownSequences(t *testing.T) {
	// cursor position report: swallowed, not turned into text
	events := collectKeys("\x1b[12;40R")
	if len(events) != 0 {
		t.Fatalf("events = %v", events)
	}

	// arrow up/down (history) is recognized but unhandled
	events = collectKeys("\x1b[A\x1b[B")
	if len(events) != 0 {
		t.Fatalf("events = %v", events)
	}

	// decoder recovers after a dropped sequence
	events = collectKeys("\x1b[Ax")
	if len(events) != 1 || events[0].Rune != 'x' {
		t.Fatalf("events = %v", events)
	}
}
