package store

import (
	"context"

	"github.com/streammon/control/structures"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Streams is the stream_configs collection boundary. Update performs a
// partial field replacement over the fixed set {title, uri, audio, enabled};
// fields outside that set on the stored document are left untouched.
type Streams interface {
	List(ctx context.Context) ([]structures.StreamConfig, error)
	Insert(ctx context.Context, cfg structures.StreamConfig) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, cfg structures.StreamConfig) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Users is the users collection boundary. Update replaces the fixed field
// set {enabled, username, pushover_id, pushover_token, password} so legacy
// fields are never dropped by an edit.
type Users interface {
	List(ctx context.Context) ([]structures.User, error)
	FindByLogin(ctx context.Context, username, password string) (structures.User, error)
	Insert(ctx context.Context, u structures.User) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, u structures.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Reports reads worker-written stream_reports. At most one current report
// exists per title; ByTitle returns errors.ErrNotFound when no worker has
// reported yet.
type Reports interface {
	ByTitle(ctx context.Context, title string) (structures.StreamReport, error)
}

// Images reads worker-written stream_images, one per stream title.
type Images interface {
	ByStream(ctx context.Context, title string) (structures.StreamImage, error)
}

// Alerts reads the append-only stream_alerts collection.
type Alerts interface {
	// Latest returns up to limit alerts ordered by timestamp descending.
	Latest(ctx context.Context, limit int64) ([]structures.StreamAlert, error)
}

// Globals owns the global_configs singleton.
type Globals interface {
	Get(ctx context.Context) (structures.GlobalConfig, error)
	// SetRestartDue upserts {restart_due: due} on the singleton, creating it
	// if absent.
	SetRestartDue(ctx context.Context, due bool) error
}

// Stores bundles the per-collection boundaries so services can pick the
// ones they need.
type Stores struct {
	Streams Streams
	Users   Users
	Reports Reports
	Images  Images
	Alerts  Alerts
	Globals Globals
}
