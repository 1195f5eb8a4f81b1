package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/guanggu/icollege/internal/logger"
)

// socketMode lets the owner and the group of the process (e.g. a reverse
// proxy) connect to the socket.
const socketMode fs.FileMode = 0o660

type httpServer struct {
	server  *http.Server
	binding Binding

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, binding Binding, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		binding: binding,
		logger:  logger,
	}
}

func (h *httpServer) listen() (net.Listener, error) {
	if h.binding.Network != "unix" {
		return net.Listen(h.binding.Network, h.binding.Address)
	}

	// a socket left behind by a crashed process would fail the bind
	if err := removeSocket(h.binding.Address); err != nil {
		return nil, fmt.Errorf("error removing stale socket: %w", err)
	}

	l, err := net.Listen("unix", h.binding.Address)
	if err != nil {
		return nil, err
	}

	if err = os.Chmod(h.binding.Address, socketMode); err != nil {
		l.Close()
		return nil, fmt.Errorf("error setting socket permissions: %w", err)
	}

	return l, nil
}

func (h *httpServer) RunServer(l net.Listener) error {
	if err := h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	err := h.server.Shutdown(ctx)

	if h.binding.Network == "unix" {
		if rmErr := removeSocket(h.binding.Address); rmErr != nil {
			h.logger.Err(rmErr).Str("socket", h.binding.Address).Msg("error removing socket")
		}
	}

	return err
}

// removeSocket deletes the unix socket at path. A missing file is not an
// error; anything other than a socket is left in place and reported as
// [errNotASocket].
func removeSocket(path string) error {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.Mode().Type() != fs.ModeSocket:
		return fmt.Errorf("%w: %s is %s", errNotASocket, path, info.Mode().Type())
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
