package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/models"
)

const (
	// DefaultDatabaseVersion is the schema version this build migrates to.
	DefaultDatabaseVersion = "003"

	// initialDatabaseVersion is assumed when the stored version is empty.
	initialDatabaseVersion = "000"
)

type versioningService struct {
	settingsRepository store.SettingsRepository
	logger             *logger.Logger
}

func NewVersioningService(settingsRepository store.SettingsRepository, logger *logger.Logger) VersioningService {
	return &versioningService{
		settingsRepository: settingsRepository,
		logger:             logger,
	}
}

func (s *versioningService) DefaultDatabaseVersion() string {
	return DefaultDatabaseVersion
}

// DatabaseVersion reads the databaseVersion setting.
//
// Returns ErrNoDatabaseVersion when the setting is missing and
// ErrUnrecognisedDatabaseVersion when it is not a number. An empty value is
// reported as "000".
func (s *versioningService) DatabaseVersion(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	setting, err := s.settingsRepository.FindByKey(ctx, models.SettingDatabaseVersion)
	if errors.Is(err, store.ErrSettingNotFound) {
		log.Error().Msg("no database version found")
		return "", ErrNoDatabaseVersion
	}
	if err != nil {
		log.Err(err).Msg("error reading database version")
		return "", fmt.Errorf("error reading database version: %w", err)
	}

	version := strings.TrimSpace(setting.Value)
	if version == "" {
		return initialDatabaseVersion, nil
	}

	if n, err := strconv.ParseFloat(version, 64); err != nil || math.IsNaN(n) {
		log.Error().Str("version", setting.Value).Msg("database version is not a number")
		return "", ErrUnrecognisedDatabaseVersion
	}

	return setting.Value, nil
}

func (s *versioningService) SetDatabaseVersion(ctx context.Context) error {
	err := s.settingsRepository.Upsert(ctx, models.Setting{
		Key:   models.SettingDatabaseVersion,
		Value: DefaultDatabaseVersion,
		Type:  "core",
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error writing database version")
		return fmt.Errorf("error writing database version: %w", err)
	}

	return nil
}
