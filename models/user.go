package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User statuses.
const (
	UserStatusActive         = "active"
	UserStatusInactive       = "inactive"
	UserStatusOnline         = "online"
	UserStatusInvitedPending = "invited-pending"
)

// User is a blog account stored in the "users" collection.
// The password is a bcrypt hash and is never serialized to JSON.
type User struct {
	// ID is the document identifier.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Name is the display name; user lookups by name are case-insensitive.
	Name string `bson:"name" json:"name"`

	// Slug is the url-safe name used in author pages.
	Slug string `bson:"slug" json:"slug"`

	// Email is the login of the user.
	Email string `bson:"email" json:"email"`

	// Password holds the bcrypt hash of the user's password.
	Password string `bson:"password" json:"-"`

	// Status is one of the UserStatus* values.
	Status string `bson:"status" json:"status"`

	// Roles references documents of the "roles" collection.
	Roles []primitive.ObjectID `bson:"roles,omitempty" json:"roles,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the name of the collection users are stored in.
func (u User) CollectionName() string {
	return "users"
}
