package service

import (
	"context"

	"github.com/guanggu/icollege/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	// ValidateClient checks the client_id sent with a token request.
	ValidateClient(clientID string) error
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type UserService interface {
	FindByName(ctx context.Context, name string) ([]models.User, error)
}

type VersioningService interface {
	// DefaultDatabaseVersion is the version the running code expects the
	// database to be at.
	DefaultDatabaseVersion() string
	// DatabaseVersion is the version the database is currently at.
	DatabaseVersion(ctx context.Context) (string, error)
	// SetDatabaseVersion records DefaultDatabaseVersion in the database.
	SetDatabaseVersion(ctx context.Context) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
