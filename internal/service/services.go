package service

import (
	"github.com/guanggu/icollege/internal/config"
	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/store"
)

type Services struct {
	AuthService       AuthService
	UserService       UserService
	VersioningService VersioningService
	AppInfoService    AppInfoService
}

func NewServices(repositories *store.Repositories, cfg config.Config, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, err
	}

	authService, err := NewAuthService(repositories.UserRepository, cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       authService,
		UserService:       NewUserService(repositories.UserRepository, logger),
		VersioningService: NewVersioningService(repositories.SettingsRepository, logger),
		AppInfoService:    appInfoService,
	}, nil
}
