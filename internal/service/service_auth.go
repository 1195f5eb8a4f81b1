package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guanggu/icollege/internal/config"
	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
)

// authService is the concrete implementation of AuthService.
// It verifies user credentials against bcrypt hashes stored by the
// UserRepository and issues HS256 JWT access tokens.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// clientID is the only client allowed to request tokens; empty allows any.
	clientID string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with the auth block of cfg.
//
// A missing sign key or issuer, or a non-positive token duration, yields
// [ErrInvalidAuthConfig].
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) (AuthService, error) {
	switch {
	case cfg.TokenSignKey == "":
		return nil, fmt.Errorf("%w: auth.tokenSignKey is empty", ErrInvalidAuthConfig)
	case cfg.TokenIssuer == "":
		return nil, fmt.Errorf("%w: auth.tokenIssuer is empty", ErrInvalidAuthConfig)
	case cfg.TokenDuration <= 0:
		return nil, fmt.Errorf("%w: auth.tokenDuration must be positive, got %s", ErrInvalidAuthConfig, cfg.TokenDuration)
	}

	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		clientID:       cfg.ClientID,
		logger:         logger,
	}, nil
}

func (a *authService) ValidateClient(clientID string) error {
	if a.clientID != "" && clientID != a.clientID {
		return ErrUnknownClient
	}
	return nil
}

// Login authenticates a user by email and password.
//
// Returns the stored user or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the lookup fails (see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = utils.CheckPassword(foundUser.Password, password); err != nil {
		log.Err(err).
			Str("id", foundUser.ID.Hex()).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID.Hex(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", user.ID.Hex()).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
