package structures

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User structure is a MongoDB object in the schema "users"
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`    // ObjectID		primary-key
	Username      string             `bson:"username" json:"username"`             // string		index(username)
	Password      string             `bson:"password" json:"password"`             // string		opaque credential
	PushoverID    string             `bson:"pushover_id" json:"pushover_id"`       // string		notification target
	PushoverToken string             `bson:"pushover_token" json:"pushover_token"` // string		notification target
	Enabled       bool               `bson:"enabled" json:"enabled"`               // boolean
	UserID        string             `bson:"userId,omitempty" json:"-"`            // string		schema v1 mirror of _id
}
