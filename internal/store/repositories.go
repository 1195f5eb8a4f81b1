package store

import (
	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups the repositories of one database.
type Repositories struct {
	UserRepository     UserRepository
	RoleRepository     RoleRepository
	SettingsRepository SettingsRepository
}

// NewRepositories binds every repository to its collection in db.
func NewRepositories(db *mongo.Database, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db.Collection(models.User{}.CollectionName()), logger),
		RoleRepository:     NewRoleRepository(db.Collection(models.Role{}.CollectionName()), logger),
		SettingsRepository: NewSettingsRepository(db.Collection(models.Setting{}.CollectionName()), logger),
	}
}
