package store

import (
	"context"
	"fmt"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// roleRepository is the MongoDB-backed implementation of [RoleRepository].
type roleRepository struct {
	roles  Collection
	logger *logger.Logger
}

func NewRoleRepository(roles Collection, logger *logger.Logger) RoleRepository {
	logger.Debug().Msg("creating role repository")
	return &roleRepository{
		roles:  roles,
		logger: logger,
	}
}

func (r *roleRepository) Insert(ctx context.Context, roles ...models.Role) error {
	if len(roles) == 0 {
		return nil
	}

	docs := make([]any, 0, len(roles))
	for _, role := range roles {
		docs = append(docs, role)
	}

	if _, err := r.roles.InsertMany(ctx, docs); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.Insert").Int("count", len(docs)).Msg("error inserting roles")
		if mongo.IsDuplicateKeyError(err) {
			return ErrRoleAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}

func (r *roleRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.roles.DeleteMany(ctx, bson.M{}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*roleRepository.DeleteAll").Msg("error deleting roles")
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}
