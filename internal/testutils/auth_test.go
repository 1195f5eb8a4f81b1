package testutils

import (
	"context"
	"errors"
	"testing"

	"github.com/guanggu/icollege/internal/adapter"
	"github.com/guanggu/icollege/internal/mock"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var ownerTokenRequest = models.TokenRequest{
	GrantType: models.GrantTypePassword,
	Username:  "jbloggs@example.com",
	Password:  "Sl1m3rson99",
	ClientID:  "icollege-admin",
}

func TestLogin(t *testing.T) {
	f, _ := newTestFixtures(t)
	client := mock.NewMockAPIClient(gomock.NewController(t))

	client.EXPECT().RequestToken(gomock.Any(), ownerTokenRequest).
		Return(models.TokenResponse{AccessToken: "abc.def.ghi", TokenType: "Bearer", ExpiresIn: 600}, nil)

	token, err := f.Login(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestDoAuth_OverridesOwnerThenLogsIn(t *testing.T) {
	f, r := newTestFixtures(t)
	client := mock.NewMockAPIClient(gomock.NewController(t))

	gomock.InOrder(
		r.users.EXPECT().UpdateByID(gomock.Any(), OwnerID, gomock.Any()).Return(nil),
		r.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		client.EXPECT().RequestToken(gomock.Any(), ownerTokenRequest).
			Return(models.TokenResponse{AccessToken: "abc.def.ghi"}, nil),
	)

	token, err := f.DoAuth(context.Background(), client, "users")

	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestDoAuth_FixtureFailureSkipsLogin(t *testing.T) {
	f, r := newTestFixtures(t)
	client := mock.NewMockAPIClient(gomock.NewController(t))
	boom := errors.New("not primary")

	r.users.EXPECT().UpdateByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	_, err := f.DoAuth(context.Background(), client)

	require.ErrorIs(t, err, boom)
}

func TestDoAuth_LoginRejected(t *testing.T) {
	f, r := newTestFixtures(t)
	client := mock.NewMockAPIClient(gomock.NewController(t))

	r.users.EXPECT().UpdateByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().RequestToken(gomock.Any(), gomock.Any()).Return(models.TokenResponse{}, adapter.ErrUnauthorized)

	_, err := f.DoAuth(context.Background(), client)

	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Contains(t, err.Error(), "jbloggs@example.com")
}

func TestDoAuth_UnknownFixture(t *testing.T) {
	f, _ := newTestFixtures(t)
	client := mock.NewMockAPIClient(gomock.NewController(t))

	_, err := f.DoAuth(context.Background(), client, "posts")

	require.ErrorIs(t, err, ErrUnknownFixture)
}
