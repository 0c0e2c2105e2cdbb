package sync

import (
	"bufio"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Server accepts TCP subscribers and feeds them hub broadcasts as
// newline-delimited JSON.
type Server struct {
	Addr string
	Hub  *Hub
	Log  zerolog.Logger

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub, log zerolog.Logger) *Server {
	return &Server{Addr: addr, Hub: hub, Log: log.With().Str("component", "tcp-sync").Logger()}
}

// Run blocks until Close is called or the listener fails.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Log.Warn().Err(err).Msg("accept failed")
			continue
		}

		s.Hub.Add(conn)
		s.Hub.Welcome(conn)
		s.Log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				s.Log.Info().Str("remote", c.RemoteAddr().String()).Msg("client disconnected")
			}()

			// subscribers never send anything meaningful; drain until EOF
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
