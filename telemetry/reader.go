// Package telemetry composes read-only views over configuration and the
// worker-written status, thumbnail, and alert collections. Nothing is
// cached: every call re-reads current state, bounded by the UI's own
// refresh loop.
package telemetry

import (
	"context"

	"github.com/streammon/control/errors"
	"github.com/streammon/control/store"
	"github.com/streammon/control/structures"
)

// DefaultAlertLimit is how many alerts the history view shows unless the
// caller asks for a different count.
const DefaultAlertLimit int64 = 10

// DashboardRow joins one enabled stream config with whatever the workers
// have reported so far. Status is empty and Thumbnail nil until a worker
// reports under this title; that is "no data yet", not an error.
type DashboardRow struct {
	Stream    structures.StreamConfig `json:"stream"`
	Status    string                  `json:"status"`
	Thumbnail *structures.StreamImage `json:"thumbnail,omitempty"`
}

type Reader struct {
	streams store.Streams
	reports store.Reports
	images  store.Images
	alerts  store.Alerts
}

func NewReader(s store.Streams, r store.Reports, i store.Images, a store.Alerts) *Reader {
	return &Reader{streams: s, reports: r, images: i, alerts: a}
}

// Dashboard returns the enabled stream configs in store order, each joined
// by title with its current report and thumbnail. A just-renamed or
// just-created config legitimately has neither yet.
func (r *Reader) Dashboard(ctx context.Context) ([]DashboardRow, error) {
	configs, err := r.streams.List(ctx)
	if err != nil {
		return nil, err
	}

	// never nil: the view contract promises an array even with no streams
	rows := []DashboardRow{}
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}

		row := DashboardRow{Stream: cfg}

		status, img, err := r.statusAndThumbnail(ctx, cfg.Title)
		if err != nil {
			return nil, err
		}
		row.Status = status
		row.Thumbnail = img

		rows = append(rows, row)
	}

	return rows, nil
}

// StatusAndThumbnail resolves the worker-reported state for one title.
// Missing documents come back as zero values, never as an error.
func (r *Reader) StatusAndThumbnail(ctx context.Context, title string) (string, *structures.StreamImage, error) {
	return r.statusAndThumbnail(ctx, title)
}

func (r *Reader) statusAndThumbnail(ctx context.Context, title string) (string, *structures.StreamImage, error) {
	var status string

	report, err := r.reports.ByTitle(ctx, title)
	switch err {
	case nil:
		status = report.Status
	case errors.ErrNotFound:
		// no worker has reported yet
	default:
		return "", nil, err
	}

	img, err := r.images.ByStream(ctx, title)
	switch err {
	case nil:
		return status, &img, nil
	case errors.ErrNotFound:
		return status, nil, nil
	default:
		return "", nil, err
	}
}

// AlertHistory returns the newest alerts, timestamp descending. A
// non-positive limit falls back to DefaultAlertLimit.
func (r *Reader) AlertHistory(ctx context.Context, limit int64) ([]structures.StreamAlert, error) {
	if limit <= 0 {
		limit = DefaultAlertLimit
	}
	return r.alerts.Latest(ctx, limit)
}
