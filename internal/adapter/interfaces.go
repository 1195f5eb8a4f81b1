// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client of the icollege admin API.
//
// The primary abstraction is [APIClient], which hides the REST transport
// from callers such as the integration test utilities. Error responses are
// mapped by mapHTTPError to the sentinel values in errors.go so that callers
// can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/guanggu/icollege/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// APIClient talks to a running icollege server.
type APIClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// RequestToken posts req to the token endpoint. On success the access
	// token is stored via SetToken.
	RequestToken(ctx context.Context, req models.TokenRequest) (models.TokenResponse, error)

	// Users lists the users whose name contains name. It requires a token.
	Users(ctx context.Context, name string) ([]models.User, error)

	// Version returns the version reported by the server.
	Version(ctx context.Context) (string, error)
}
