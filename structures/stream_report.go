package structures

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreamReport structure is a MongoDB object in the schema "stream_reports".
// Workers upsert at most one report per stream title; the control plane only
// reads them.
type StreamReport struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`      // ObjectID		primary-key
	Title    string             `bson:"title" json:"title"`          // string		joins to StreamConfig.title
	Status   string             `bson:"status" json:"status"`        // string		free-text worker state
	StreamID string             `bson:"streamId,omitempty" json:"-"` // string		schema v1 mirror of the config _id
}
