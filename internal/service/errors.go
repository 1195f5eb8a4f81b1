package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrUnknownClient       = errors.New("unknown client")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrInvalidAuthConfig     = errors.New("invalid auth configuration")
)

// Database versioning errors.
var (
	// ErrNoDatabaseVersion is returned when the settings collection holds no
	// databaseVersion entry, usually because the database was never
	// initialised.
	ErrNoDatabaseVersion = errors.New("no database version could be found, settings collection does not exist?")

	// ErrUnrecognisedDatabaseVersion is returned when the stored version is
	// not a number.
	ErrUnrecognisedDatabaseVersion = errors.New("database version is not recognised")
)
