package server

import "context"

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests until ctx is done or a stop signal arrives,
	// then shuts down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
