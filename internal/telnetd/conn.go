package telnetd

import (
	"net"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
)

// Telnet command and option bytes (RFC 854/856/857/858, RFC 1073).
const (
	cmdSE   = 240
	cmdSB   = 250
	cmdWILL = 251
	cmdWONT = 252
	cmdDO   = 253
	cmdDONT = 254
	cmdIAC  = 255

	optBinary = 0
	optEcho   = 1
	optSGA    = 3
	optNAWS   = 31
)

// parser states for IAC sequences, which may straddle reads.
const (
	stData = iota
	stIAC
	stVerb
	stSB
	stSBIAC
)

// connection wraps one accepted socket and implements telnet.Transport
// for its bridge.
type connection struct {
	conn  net.Conn
	state int
	verb  byte
	sub   []byte
}

// Send writes shell output to the peer. Sessions carry UTF-8 text, which
// never contains the 0xFF IAC byte, so no escaping is needed.
func (c *connection) Send(data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

func (c *connection) Close() error {
	return c.conn.Close()
}

// negotiate announces the session's option profile: binary transparency,
// server-side echo when local echo is suppressed (the bridge echoes by
// rendering), suppress-go-ahead for character mode, and NAWS so the
// peer reports its window size.
func (c *connection) negotiate(opts telnet.AcceptorOptions) error {
	var out []byte
	if opts.Binary {
		out = append(out, cmdIAC, cmdWILL, optBinary, cmdIAC, cmdDO, optBinary)
	}
	if !opts.LocalEcho {
		out = append(out, cmdIAC, cmdWILL, optEcho)
	}
	out = append(out, cmdIAC, cmdWILL, optSGA, cmdIAC, cmdDO, optSGA)
	if opts.NegotiateWindowSize {
		out = append(out, cmdIAC, cmdDO, optNAWS)
	}
	_, err := c.conn.Write(out)
	return err
}

// parse strips telnet commands out of a raw chunk and returns the plain
// payload. Option verbs are swallowed (we only ever act on what we
// requested); NAWS subnegotiations are delivered to the handler as
// window-size changes.
func (c *connection) parse(in []byte, h telnet.Handler) []byte {
	plain := make([]byte, 0, len(in))
	for _, b := range in {
		switch c.state {
		case stData:
			if b == cmdIAC {
				c.state = stIAC
			} else {
				plain = append(plain, b)
			}
		case stIAC:
			switch b {
			case cmdIAC:
				// escaped 0xFF
				plain = append(plain, b)
				c.state = stData
			case cmdWILL, cmdWONT, cmdDO, cmdDONT:
				c.verb = b
				c.state = stVerb
			case cmdSB:
				c.sub = c.sub[:0]
				c.state = stSB
			default:
				c.state = stData
			}
		case stVerb:
			c.state = stData
		case stSB:
			if b == cmdIAC {
				c.state = stSBIAC
			} else {
				c.sub = append(c.sub, b)
			}
		case stSBIAC:
			switch b {
			case cmdIAC:
				c.sub = append(c.sub, b)
				c.state = stSB
			case cmdSE:
				c.endSub(h)
				c.state = stData
			default:
				c.state = stData
			}
		}
	}
	return plain
}

func (c *connection) endSub(h telnet.Handler) {
	// NAWS payload: option byte then two 16-bit big-endian values.
	if len(c.sub) == 5 && c.sub[0] == optNAWS {
		columns := int(c.sub[1])<<8 | int(c.sub[2])
		rows := int(c.sub[3])<<8 | int(c.sub[4])
		h.WindowSizeChanged(columns, rows)
	}
	c.sub = c.sub[:0]
}
