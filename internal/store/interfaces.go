package store

import (
	"context"

	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Collection is the subset of *mongo.Collection the repositories use.
type Collection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertMany(ctx context.Context, documents []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type UserRepository interface {
	FindByName(ctx context.Context, name string) ([]models.User, error)
	FindSameNames(ctx context.Context, user models.User) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, users ...models.User) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, user models.User) error
	DeleteAll(ctx context.Context) error
}

type RoleRepository interface {
	Insert(ctx context.Context, roles ...models.Role) error
	DeleteAll(ctx context.Context) error
}

type SettingsRepository interface {
	FindByKey(ctx context.Context, key string) (models.Setting, error)
	Upsert(ctx context.Context, setting models.Setting) error
	DeleteAll(ctx context.Context) error
}
