package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingDatabaseVersion is the key of the setting holding the schema
// version the database is at.
const SettingDatabaseVersion = "databaseVersion"

// Setting is a key/value pair of the "settings" collection.
type Setting struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key   string             `bson:"key" json:"key"`
	Value string             `bson:"value" json:"value"`

	// Type groups settings: "core", "blog", "theme", ...
	Type string `bson:"type" json:"type"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the name of the collection settings are stored in.
func (s Setting) CollectionName() string {
	return "settings"
}
