package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"
)

const (
	// DefaultBindAddress is where the health API listens unless configured otherwise.
	DefaultBindAddress = ":8082"

	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

// Server runs the health API as a manager.Runnable. It serves on every
// replica, leader or not, because it only reads.
type Server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	tlsConfig       *tls.Config

	// listening is closed once the listener is bound.
	listening chan struct{}
	boundAddr net.Addr
}

var (
	_ manager.Runnable               = (*Server)(nil)
	_ manager.LeaderElectionRunnable = (*Server)(nil)
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithTLSConfig serves HTTPS with cfg instead of plain HTTP.
func WithTLSConfig(cfg *tls.Config) ServerOption {
	return func(s *Server) {
		s.tlsConfig = cfg
	}
}

// WithShutdownTimeout bounds how long in-flight responses may take to finish
// once the server is stopping.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handler http.Handler, opts ...ServerOption) *Server {
	if addr == "" {
		addr = DefaultBindAddress
	}
	s := &Server{
		addr:            addr,
		handler:         handler,
		shutdownTimeout: defaultShutdownTimeout,
		listening:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NeedLeaderElection implements manager.LeaderElectionRunnable.
func (s *Server) NeedLeaderElection() bool {
	return false
}

// Addr blocks until the server is listening and returns the bound address,
// or returns nil when ctx ends first.
func (s *Server) Addr(ctx context.Context) net.Addr {
	select {
	case <-s.listening:
		return s.boundAddr
	case <-ctx.Done():
		return nil
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("health-api")

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.boundAddr = ln.Addr()
	close(s.listening)

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return log.IntoContext(context.WithoutCancel(ctx), logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting health API server", "address", ln.Addr().String(), "tls", s.tlsConfig != nil)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("health API server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down health API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down health API server: %w", err)
	}
	return nil
}
