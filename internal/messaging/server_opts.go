package messaging

import "time"

type ServerOpt func(*Server)

// WithStartTimeout bounds how long Start waits for the server to accept
// connections.
func WithStartTimeout(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.startupTimeout = d
	}
}

// WithHost sets the interface the server listens on.
func WithHost(host string) ServerOpt {
	return func(s *Server) {
		s.host = host
	}
}

// WithPort sets the listening port. -1 picks a free one.
func WithPort(port int) ServerOpt {
	return func(s *Server) {
		s.port = port
	}
}
