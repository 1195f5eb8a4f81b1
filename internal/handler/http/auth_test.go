package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/guanggu/icollege/internal/service"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

const tokenPath = APIPrefix + "/authentication/token/"

var ownerID = primitive.ObjectID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

func tokenForm(grantType string) url.Values {
	return url.Values{
		"grant_type": {grantType},
		"username":   {"owner@example.com"},
		"password":   {"Sl1m3rson99"},
		"client_id":  {"icollege-admin"},
	}
}

func postForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, tokenPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func issueToken(t *testing.T, userID string) models.Token {
	t.Helper()

	token, err := utils.GenerateJWTToken("icollege", userID, time.Hour, "secret")
	require.NoError(t, err)
	return token
}

func TestToken_PasswordGrant(t *testing.T) {
	router, svcs := newTestRouter(t)
	owner := models.User{ID: ownerID, Email: "owner@example.com"}
	token := issueToken(t, ownerID.Hex())

	gomock.InOrder(
		svcs.auth.EXPECT().ValidateClient("icollege-admin").Return(nil),
		svcs.auth.EXPECT().Login(gomock.Any(), "owner@example.com", "Sl1m3rson99").Return(owner, nil),
		svcs.auth.EXPECT().CreateToken(gomock.Any(), owner).Return(token, nil),
	)

	rr := postForm(router, tokenForm(models.GrantTypePassword))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var resp models.TokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, token.SignedString, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestToken_JSONBody(t *testing.T) {
	router, svcs := newTestRouter(t)
	owner := models.User{ID: ownerID}

	svcs.auth.EXPECT().ValidateClient("icollege-admin").Return(nil)
	svcs.auth.EXPECT().Login(gomock.Any(), "owner@example.com", "Sl1m3rson99").Return(owner, nil)
	svcs.auth.EXPECT().CreateToken(gomock.Any(), owner).Return(issueToken(t, ownerID.Hex()), nil)

	body := `{"grant_type":"password","username":"owner@example.com","password":"Sl1m3rson99","client_id":"icollege-admin"}`
	req := httptest.NewRequest(http.MethodPost, tokenPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestToken_MalformedJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, tokenPath, strings.NewReader(`{"grant_type":`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, errorTypeBadRequest, decodeAPIErrors(t, rr)[0].ErrorType)
}

func TestToken_UnsupportedGrantType(t *testing.T) {
	for _, grantType := range []string{"", "refresh_token", "client_credentials", "Password"} {
		t.Run(fmt.Sprintf("grant_type=%q", grantType), func(t *testing.T) {
			router, _ := newTestRouter(t)

			rr := postForm(router, tokenForm(grantType))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			apiErr := decodeAPIErrors(t, rr)[0]
			assert.Equal(t, errorTypeBadRequest, apiErr.ErrorType)
			assert.Equal(t, "Unsupported grant type", apiErr.Message)
		})
	}
}

func TestToken_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		clientErr  error
		loginErr   error
		wantStatus int
		wantType   string
	}{
		{
			name:       "unknown client",
			clientErr:  service.ErrUnknownClient,
			wantStatus: http.StatusUnauthorized,
			wantType:   errorTypeUnauthorized,
		},
		{
			name:       "missing credentials",
			loginErr:   service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantType:   errorTypeBadRequest,
		},
		{
			name:       "no such user",
			loginErr:   fmt.Errorf("user search by email failed: %w", store.ErrNoUserWasFound),
			wantStatus: http.StatusUnauthorized,
			wantType:   errorTypeUnauthorized,
		},
		{
			name:       "wrong password",
			loginErr:   service.ErrWrongPassword,
			wantStatus: http.StatusUnauthorized,
			wantType:   errorTypeUnauthorized,
		},
		{
			name:       "database down",
			loginErr:   fmt.Errorf("user search by email failed: %w", store.ErrExecutingQuery),
			wantStatus: http.StatusInternalServerError,
			wantType:   errorTypeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svcs := newTestRouter(t)

			svcs.auth.EXPECT().ValidateClient(gomock.Any()).Return(tt.clientErr)
			if tt.clientErr == nil {
				svcs.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, tt.loginErr)
			}

			rr := postForm(router, tokenForm(models.GrantTypePassword))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantType, decodeAPIErrors(t, rr)[0].ErrorType)
		})
	}
}

func TestToken_CreationFailure(t *testing.T) {
	router, svcs := newTestRouter(t)

	svcs.auth.EXPECT().ValidateClient(gomock.Any()).Return(nil)
	svcs.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{ID: ownerID}, nil)
	svcs.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{}, fmt.Errorf("%w: %w", service.ErrTokenCreationFailed, errors.New("no key")))

	rr := postForm(router, tokenForm(models.GrantTypePassword))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
