package config

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/config_mock.go -package=mock

// Reporter receives operator-facing errors and warnings. Formatting and
// output are up to the implementation; *logger.Logger is the production one.
type Reporter interface {
	// LogError reports err with the thing it concerns and a hint on how to
	// fix it.
	LogError(err error, context, help string)

	// LogWarn reports a non-fatal problem.
	LogWarn(text, explanation, help string)
}

// Driver is the document-database driver the manager connects.
type Driver interface {
	// Connect opens the connection and returns once it is usable.
	Connect(ctx context.Context, host, database string, port int, options map[string]any) error

	// Connected reports whether a live connection exists.
	Connected() bool

	// Disconnect closes the connection. It is a no-op when not connected.
	Disconnect(ctx context.Context) error
}
