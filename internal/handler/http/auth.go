package http

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
)

const tokenTypeBearer = "Bearer"

// token exchanges the credentials of a user for an access token. Only the
// password grant is supported. The request may be form encoded or JSON.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	req, err := decodeTokenRequest(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if req.GrantType != models.GrantTypePassword {
		writeServiceError(w, r, ErrUnsupportedGrantType)
		return
	}

	if err = h.services.AuthService.ValidateClient(req.ClientID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var expiresIn int64
	if token.ExpiresAt != nil && token.IssuedAt != nil {
		expiresIn = int64(token.ExpiresAt.Sub(token.IssuedAt.Time).Seconds())
	}

	log.Debug().Str("id", user.ID.Hex()).Msg("access token issued")

	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}

func decodeTokenRequest(r *http.Request) (models.TokenRequest, error) {
	var req models.TokenRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return models.TokenRequest{}, ErrMalformedTokenRequest
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.TokenRequest{}, ErrMalformedTokenRequest
	}

	return models.TokenRequest{
		GrantType: r.PostForm.Get("grant_type"),
		Username:  r.PostForm.Get("username"),
		Password:  r.PostForm.Get("password"),
		ClientID:  r.PostForm.Get("client_id"),
	}, nil
}
