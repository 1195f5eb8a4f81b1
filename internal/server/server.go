package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/guanggu/icollege/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handler http.Handler, binding Binding, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if binding.Address == "" {
		return nil, errNoBinding
	}

	return &server{
		httpServer: newHTTPServer(handler, binding, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	l, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.httpServer.binding, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer(l)
	}()
	s.logger.Info().Str("address", s.httpServer.binding.String()).Msg("HTTP server is listening")

	select {
	case err = <-serveErr:
		if err == nil {
			// stopped through Shutdown
			return nil
		}
		// the socket still has to go
		_ = s.Shutdown(context.Background())
		return fmt.Errorf("error serving HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down HTTP server: %w", err)
	}
	if err = <-serveErr; err != nil {
		return fmt.Errorf("error serving HTTP: %w", err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server Shutdown")
	return s.httpServer.Shutdown(ctx)
}
