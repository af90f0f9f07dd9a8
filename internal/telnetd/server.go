// Package telnetd is a minimal telnet acceptor for bridge-backed shell
// sessions. It owns the socket and option negotiation; everything above
// the byte stream is delegated to the connection factory's handlers.
package telnetd

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/sandevgo/termshell/pkg/frontend/telnet"
	"github.com/sandevgo/termshell/pkg/log"
)

// Server accepts TCP connections, runs telnet negotiation on each and
// feeds decoded payload bytes to a per-connection handler. It
// implements srv.Service.
type Server struct {
	addr    string
	opts    telnet.AcceptorOptions
	factory telnet.ConnectionFactory

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
}

func NewServer(addr string, opts telnet.AcceptorOptions, factory telnet.ConnectionFactory) *Server {
	return &Server{
		addr:    addr,
		opts:    opts,
		factory: factory,
		conns:   make(map[net.Conn]struct{}),
	}
}

// Start listens and serves until Shutdown closes the listener.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("telnetd: listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	logger := log.FromCtx(ctx)
	logger.Info().Str("addr", ln.Addr().String()).Msg("telnet listener started")

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			logger.Error().Err(err).Msg("accept failed")
			continue
		}
		go s.handle(ctx, conn)
	}
}

// Addr reports the bound listen address, nil until Start has opened it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln := s.listener
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	if ln != nil {
		return ln.Close()
	}
	return nil
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	logger := log.FromCtx(ctx).With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Info().Msg("connection accepted")

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
		logger.Info().Msg("connection closed")
	}()

	c := &connection{conn: conn}
	handler := s.factory(c)

	if err := c.negotiate(s.opts); err != nil {
		logger.Debug().Err(err).Msg("negotiation write failed")
		return
	}

	handler.Connected(ctx)
	defer handler.Disconnected()

	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		plain := c.parse(buf[:n], handler)
		if len(plain) > 0 {
			handler.Feed(ctx, plain)
		}
	}
}
