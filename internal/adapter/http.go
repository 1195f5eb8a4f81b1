package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
)

const apiPrefix = "/ghost/api/v0.1"

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient returns an [APIClient] for the server at baseURL. A
// scheme-less address is taken as http.
func NewHTTPAPIClient(baseURL string, timeout time.Duration, logger *logger.Logger) (APIClient, error) {
	client, err := utils.NewHTTPClient(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	return &httpAPIClient{client: client, logger: logger}, nil
}

func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// RequestToken posts req form encoded to POST /authentication/token/.
func (h *httpAPIClient) RequestToken(ctx context.Context, req models.TokenRequest) (models.TokenResponse, error) {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type": req.GrantType,
			"username":   req.Username,
			"password":   req.Password,
			"client_id":  req.ClientID,
		}).
		SetResult(&token).
		Post(apiPrefix + "/authentication/token/")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("username", req.Username).Msg("token request rejected")
		return models.TokenResponse{}, err
	}
	if token.AccessToken == "" {
		return models.TokenResponse{}, ErrNoAccessToken
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

// Users calls GET /users/?name=<name>.
func (h *httpAPIClient) Users(ctx context.Context, name string) ([]models.User, error) {
	var result struct {
		Users []models.User `json:"users"`
	}

	req := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token()).
		SetResult(&result)
	if name != "" {
		req.SetQueryParam("name", name)
	}

	resp, err := req.Get(apiPrefix + "/users/")
	if err != nil {
		return nil, fmt.Errorf("users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Users, nil
}

// Version calls GET /version/.
func (h *httpAPIClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(apiPrefix + "/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
