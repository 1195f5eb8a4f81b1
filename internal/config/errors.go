package config

import "errors"

// Bootstrap errors returned while locating or creating the configuration
// file.
var (
	// ErrConfigNotFound is returned when neither the configuration file nor
	// its template exist.
	ErrConfigNotFound = errors.New("could not locate a configuration file")
	// ErrTemplateRead is returned when the template cannot be opened.
	ErrTemplateRead = errors.New("could not open config.example.yaml for read")
	// ErrConfigWrite is returned when the configuration file cannot be
	// created or written.
	ErrConfigWrite = errors.New("could not open config.yaml for write")
	// ErrConfigRead is returned when the configuration file cannot be read
	// or parsed.
	ErrConfigRead = errors.New("could not read the configuration file")
)

// Validation errors returned by [Manager.Validate].
var (
	// ErrEnvironmentNotFound indicates that the file has no section for the
	// active environment.
	ErrEnvironmentNotFound = errors.New("unable to load config for the current environment")
	// ErrInvalidURL indicates a url that is not an absolute http(s) url.
	ErrInvalidURL = errors.New("invalid site url")
	// ErrReservedSubdir indicates a url whose path uses the reserved
	// "icollege" subdirectory.
	ErrReservedSubdir = errors.New("icollege subdirectory not allowed")
	// ErrInvalidDatabase indicates a missing database.mongodb block.
	ErrInvalidDatabase = errors.New("invalid database configuration")
	// ErrInvalidServer indicates neither host and port nor a socket.
	ErrInvalidServer = errors.New("invalid server configuration")
)

// Error carries operator guidance alongside a sentinel error: Context says
// what the error is about, Help says how to fix it.
type Error struct {
	Err     error
	Context string
	Help    string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(err error, context, help string) *Error {
	return &Error{Err: err, Context: context, Help: help}
}
