package telnet

import "github.com/sandevgo/termshell/pkg/shell"

// AcceptorOptions is the negotiation profile a telnet acceptor should
// run for bridge-backed sessions: binary transparency on, local echo
// suppressed (the bridge echoes by rendering), window-size negotiation
// on so resize notifications flow.
type AcceptorOptions struct {
	Binary              bool
	LocalEcho           bool
	NegotiateWindowSize bool
}

func DefaultAcceptorOptions() AcceptorOptions {
	return AcceptorOptions{Binary: true, LocalEcho: false, NegotiateWindowSize: true}
}

// NewFrontend returns the connection factory a telnet acceptor plugs
// into. Every accepted connection gets a fresh bridge and a fresh
// engine sharing the prototype's immutable registry; the host scheduler
// is handed to each bridge behind a guard.
func NewFrontend(proto *shell.Prototype, consoles ConsoleFactory, sched Scheduler) ConnectionFactory {
	guard := NewSchedulerGuard(sched)
	return func(t Transport) Handler {
		return NewBridge(proto, consoles, guard, t)
	}
}
