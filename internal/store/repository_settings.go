package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsRepository is the MongoDB-backed implementation of
// [SettingsRepository]. Settings are addressed by their unique key.
type settingsRepository struct {
	settings Collection
	now      func() time.Time
	logger   *logger.Logger
}

func NewSettingsRepository(settings Collection, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		settings: settings,
		now:      time.Now,
		logger:   logger,
	}
}

// FindByKey returns the setting stored under key or [ErrSettingNotFound].
func (r *settingsRepository) FindByKey(ctx context.Context, key string) (models.Setting, error) {
	var setting models.Setting
	err := r.settings.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Setting{}, ErrSettingNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.FindByKey").Str("key", key).Msg("error finding setting")
		return models.Setting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return setting, nil
}

// Upsert sets the value and type of the setting with the same key,
// creating it when missing.
func (r *settingsRepository) Upsert(ctx context.Context, setting models.Setting) error {
	update := bson.M{"$set": bson.M{
		"value":      setting.Value,
		"type":       setting.Type,
		"updated_at": r.now().UTC(),
	}}

	_, err := r.settings.UpdateOne(ctx, bson.M{"key": setting.Key}, update, options.Update().SetUpsert(true))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.Upsert").Str("key", setting.Key).Msg("error upserting setting")
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}

func (r *settingsRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.settings.DeleteMany(ctx, bson.M{}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.DeleteAll").Msg("error deleting settings")
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}
