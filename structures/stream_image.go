package structures

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLayout is the timestamp wire format the workers write on
// stream_images and stream_alerts documents. Lexicographic order of these
// strings equals chronological order, which the alert history sort relies on.
const TimeLayout = "2006-01-02 15:04:05"

// StreamImage structure is a MongoDB object in the schema "stream_images".
// Workers overwrite at most one image per stream in place; the control plane
// only reads them. Data holds base64-encoded JPEG bytes, embedded as-is in
// rendered views.
type StreamImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`      // ObjectID		primary-key
	Stream    string             `bson:"stream" json:"stream"`        // string		joins to StreamConfig.title
	Data      string             `bson:"data" json:"data"`            // string		base64 JPEG
	Timestamp string             `bson:"timestamp" json:"timestamp"`  // string		TimeLayout
	StreamID  string             `bson:"streamId,omitempty" json:"-"` // string		schema v1 mirror of the config _id
}

// Time parses the worker-written timestamp.
func (i StreamImage) Time() (time.Time, error) {
	return time.Parse(TimeLayout, i.Timestamp)
}
