package testutils

import (
	"context"
	"fmt"

	"github.com/guanggu/icollege/internal/adapter"
	"github.com/guanggu/icollege/models"
)

// DoAuth gives the owner the fixture credentials, runs the extra fixtures
// named and returns an access token for the owner. It does not initialise
// the database.
func (f *Fixtures) DoAuth(ctx context.Context, client adapter.APIClient, names ...string) (string, error) {
	ops, err := f.GetFixtureOps(append([]string{"owner:post"}, names...)...)
	if err != nil {
		return "", err
	}

	if err = f.sequence(ctx, ops); err != nil {
		return "", err
	}

	return f.Login(ctx, client)
}

// Login requests an access token for the owner through client.
func (f *Fixtures) Login(ctx context.Context, client adapter.APIClient) (string, error) {
	owner := Owner()

	token, err := client.RequestToken(ctx, models.TokenRequest{
		GrantType: models.GrantTypePassword,
		Username:  owner.Email,
		Password:  owner.Password,
		ClientID:  f.clientID,
	})
	if err != nil {
		return "", fmt.Errorf("error logging in as %s: %w", owner.Email, err)
	}

	return token.AccessToken, nil
}
