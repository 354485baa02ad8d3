package structures

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreamConfig structure is a MongoDB object in the schema "stream_configs"
type StreamConfig struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"` // ObjectID		primary-key
	Title    string             `bson:"title" json:"title"`                // string		unique display key, join key for worker telemetry
	URI      string             `bson:"uri" json:"uri"`                    // string		source locator
	Audio    bool               `bson:"audio" json:"audio"`                // boolean		audio-only stream when true
	Enabled  bool               `bson:"enabled" json:"enabled"`            // boolean
	StreamID string             `bson:"streamId,omitempty" json:"-"`       // string		schema v1 mirror of _id
}
