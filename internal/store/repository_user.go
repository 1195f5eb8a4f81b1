package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository is the MongoDB-backed implementation of [UserRepository].
// It reads and writes the "users" collection.
//
// Every write stamps updated_at; inserts also stamp created_at when the
// caller left it empty.
type userRepository struct {
	users  Collection
	now    func() time.Time
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] on top of the users
// collection.
func NewUserRepository(users Collection, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		users:  users,
		now:    time.Now,
		logger: logger,
	}
}

// FindByName returns the users whose name contains name, ignoring case.
// name is matched literally.
func (r *userRepository) FindByName(ctx context.Context, name string) ([]models.User, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}

	users, err := r.find(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindByName").Str("name", name).Msg("error finding users")
		return nil, err
	}

	return users, nil
}

// FindSameNames returns every user sharing the exact name of user, user
// itself included.
func (r *userRepository) FindSameNames(ctx context.Context, user models.User) ([]models.User, error) {
	users, err := r.find(ctx, bson.M{"name": user.Name})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindSameNames").Str("name", user.Name).Msg("error finding users")
		return nil, err
	}

	return users, nil
}

// FindByEmail returns the user with the given email or [ErrNoUserWasFound].
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// Insert stores users in a single batch.
func (r *userRepository) Insert(ctx context.Context, users ...models.User) error {
	if len(users) == 0 {
		return nil
	}

	now := r.now().UTC()
	docs := make([]any, 0, len(users))
	for _, user := range users {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		docs = append(docs, user)
	}

	if _, err := r.users.InsertMany(ctx, docs); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.Insert").Int("count", len(docs)).Msg("error inserting users")
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}

// UpdateByID replaces the stored fields of the user with the given id.
// The id and created_at of the stored document are kept.
func (r *userRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, user models.User) error {
	fields := bson.M{
		"name":       user.Name,
		"slug":       user.Slug,
		"email":      user.Email,
		"password":   user.Password,
		"status":     user.Status,
		"roles":      user.Roles,
		"updated_at": r.now().UTC(),
	}

	result, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.UpdateByID").Str("id", id.Hex()).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteAll empties the users collection.
func (r *userRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.users.DeleteMany(ctx, bson.M{}); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.DeleteAll").Msg("error deleting users")
		return fmt.Errorf("%w: %w", ErrWritingDocuments, err)
	}

	return nil
}

func (r *userRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return users, nil
}
