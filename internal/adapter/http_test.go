// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *httpAPIClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPAPIClient(srv.URL, 0, logger.Nop())
	require.NoError(t, err)
	return c.(*httpAPIClient)
}

var ownerTokenRequest = models.TokenRequest{
	GrantType: models.GrantTypePassword,
	Username:  "owner@example.com",
	Password:  "Sl1m3rson99",
	ClientID:  "icollege-admin",
}

// ── RequestToken ────────────────────────────────────────────────────────────

func TestRequestToken_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ghost/api/v0.1/authentication/token/", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "owner@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "Sl1m3rson99", r.PostForm.Get("password"))
		assert.Equal(t, "icollege-admin", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc.def.ghi","token_type":"Bearer","expires_in":3600}`))
	})

	got, err := c.RequestToken(context.Background(), ownerTokenRequest)

	require.NoError(t, err)
	assert.Equal(t, models.TokenResponse{AccessToken: "abc.def.ghi", TokenType: "Bearer", ExpiresIn: 3600}, got)
	assert.Equal(t, "abc.def.ghi", c.Token())
}

func TestRequestToken_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			body:    `{"errors":[{"message":"Invalid username or password","errorType":"UnauthorizedError"}]}`,
			wantErr: ErrUnauthorized,
			wantMsg: "Invalid username or password",
		},
		{
			name:    "bad grant",
			status:  http.StatusBadRequest,
			body:    `{"errors":[{"message":"Unsupported grant type","errorType":"BadRequestError"}]}`,
			wantErr: ErrBadRequest,
			wantMsg: "Unsupported grant type",
		},
		{
			name:    "plain text body",
			status:  http.StatusInternalServerError,
			body:    "internal server error\n",
			wantErr: ErrInternalServerError,
			wantMsg: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.RequestToken(context.Background(), ownerTokenRequest)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, c.Token())
		})
	}
}

func TestRequestToken_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer"}`))
	})

	_, err := c.RequestToken(context.Background(), ownerTokenRequest)

	require.ErrorIs(t, err, ErrNoAccessToken)
}

// ── Users ───────────────────────────────────────────────────────────────────

func TestUsers_SendsTokenAndName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ghost/api/v0.1/users/", r.URL.Path)
		assert.Equal(t, "lihe", r.URL.Query().Get("name"))
		assert.Equal(t, "Bearer abc.def.ghi", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users":[{"id":"ffffffffffffffffffffffff","name":"Lihe"}]}`))
	})
	c.SetToken("  abc.def.ghi ")

	users, err := c.Users(context.Background(), "lihe")

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Lihe", users[0].Name)
	assert.Equal(t, "ffffffffffffffffffffffff", users[0].ID.Hex())
}

func TestUsers_WithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.False(t, r.URL.Query().Has("name"))
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Users(context.Background(), "")

	require.ErrorIs(t, err, ErrUnauthorized)
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ghost/api/v0.1/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("0.5.0"))
	})

	got, err := c.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.5.0", got)
}

func TestVersion_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 503: Service Unavailable")
}

func TestNewHTTPAPIClient_InvalidAddress(t *testing.T) {
	_, err := NewHTTPAPIClient("   ", 0, logger.Nop())

	require.Error(t, err)
}
