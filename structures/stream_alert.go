package structures

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreamAlert structure is a MongoDB object in the schema "stream_alerts".
// Append-only: workers insert, the control plane lists newest-first and
// never updates or deletes.
type StreamAlert struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"` // ObjectID		primary-key
	Timestamp string             `bson:"timestamp" json:"timestamp"`        // string		TimeLayout, sort key
	Stream    string             `bson:"stream" json:"stream"`              // string		joins to StreamConfig.title
	Alert     string             `bson:"alert" json:"alert"`                // string		description
	Image     string             `bson:"image" json:"image"`                // string		base64 JPEG snapshot
	StreamID  string             `bson:"streamId,omitempty" json:"-"`       // string		schema v1 mirror of the config _id
}

// Time parses the worker-written timestamp.
func (a StreamAlert) Time() (time.Time, error) {
	return time.Parse(TimeLayout, a.Timestamp)
}
