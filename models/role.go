package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is a named set of permissions a [User] can hold.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}

// CollectionName returns the name of the collection roles are stored in.
func (r Role) CollectionName() string {
	return "roles"
}
