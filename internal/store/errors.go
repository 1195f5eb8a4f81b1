package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a lookup expected to match a single
	// user finds none.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUserAlreadyExists is returned when an insert violates the unique
	// index on users.email.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRoleAlreadyExists is returned when an insert reuses the id of a
	// stored role.
	ErrRoleAlreadyExists = errors.New("role already exists")

	// ErrSettingNotFound is returned when no setting has the requested key.
	ErrSettingNotFound = errors.New("setting was not found")
)

// Driver-level errors. These are wrapped around the error returned by the
// MongoDB driver before any domain logic can be applied.
var (
	// ErrNotConnected is returned when the database handle is requested
	// before Connect succeeded.
	ErrNotConnected = errors.New("database is not connected")

	// ErrExecutingQuery is returned when a find fails or its cursor cannot
	// be drained.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrDecodingDocument is returned when a document cannot be decoded into
	// its model.
	ErrDecodingDocument = errors.New("error decoding document")

	// ErrWritingDocuments is returned when an insert, update or delete fails.
	ErrWritingDocuments = errors.New("error writing documents")
)
