package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

const serverName = "worldcore"

// Server runs an embedded NATS server and holds the in-process connection
// the world publishes on. Publish, Subscribe and Request fail until Start has
// connected; WaitReady blocks until then.
type Server struct {
	srv   *server.Server
	nc    *nats.Conn
	ready chan struct{}

	startupTimeout time.Duration
	host           string
	port           int
}

func NewServer(opts ...ServerOpt) (*Server, error) {
	s := &Server{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		ready:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	srv, err := server.NewServer(&server.Options{
		ServerName: serverName,
		Host:       s.host,
		Port:       s.port,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start satisfies service.Worker. It serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.srv.Start()
	if !s.srv.ReadyForConnections(s.startupTimeout) {
		s.srv.Shutdown()
		return fmt.Errorf("nats server not accepting connections after %s", s.startupTimeout)
	}

	nc, err := nats.Connect(s.srv.ClientURL(), nats.Name(serverName), nats.NoReconnect())
	if err != nil {
		s.srv.Shutdown()
		return fmt.Errorf("connecting to embedded nats: %w", err)
	}
	s.nc = nc
	close(s.ready)

	slog.InfoContext(ctx, "nats server listening", "addr", s.srv.Addr(), "name", serverName)

	<-ctx.Done()

	nc.Close()
	s.srv.Shutdown()
	s.srv.WaitForShutdown()

	slog.Info("nats server stopped")
	return nil
}

// WaitReady blocks until the connection is up or ctx is done.
func (s *Server) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// conn returns the connection once Start has made it.
func (s *Server) conn() (*nats.Conn, error) {
	select {
	case <-s.ready:
		return s.nc, nil
	default:
		return nil, fmt.Errorf("nats server not started")
	}
}

// Subscribe calls handler with the payload of every message on subject. The
// returned func removes the subscription.
func (s *Server) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	nc, err := s.conn()
	if err != nil {
		return nil, err
	}

	sub, err := nc.Subscribe(subject, func(m *nats.Msg) { handler(m.Data) })
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Publish satisfies Publisher.
func (s *Server) Publish(subject string, data []byte) error {
	nc, err := s.conn()
	if err != nil {
		return err
	}
	return nc.Publish(subject, data)
}

// Request satisfies Publisher. It waits up to timeout for one reply.
func (s *Server) Request(subject string, data []byte, timeout time.Duration) ([]byte, error) {
	nc, err := s.conn()
	if err != nil {
		return nil, err
	}

	m, err := nc.Request(subject, data, timeout)
	if err != nil {
		return nil, err
	}
	return m.Data, nil
}
