// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnsupportedGrantType is returned by the token endpoint for any
	// grant_type other than "password".
	ErrUnsupportedGrantType = errors.New("unsupported grant type")

	// ErrMalformedTokenRequest is returned when the token request body can
	// be read neither as a form nor as JSON.
	ErrMalformedTokenRequest = errors.New("malformed token request")
)

// Error types reported in the "errorType" field of error responses.
const (
	errorTypeBadRequest     = "BadRequestError"
	errorTypeUnauthorized   = "UnauthorizedError"
	errorTypeNotFound       = "NotFoundError"
	errorTypeInternalServer = "InternalServerError"
)
