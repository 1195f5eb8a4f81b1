package testutils

import "errors"

var (
	// ErrUnknownFixture is returned for a fixture name that is not registered.
	ErrUnknownFixture = errors.New("unknown fixture")
)
