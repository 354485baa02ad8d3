// Package registry holds the two reconcile services that apply bulk-edit
// row intents to the shared store and broadcast the restart signal to the
// worker fleet afterwards.
package registry

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/streammon/control/errors"
	"github.com/streammon/control/forms"
	"github.com/streammon/control/store"
	"github.com/streammon/control/structures"
	"github.com/streammon/control/utils/uid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Streams struct {
	store store.Streams
	coord Coordinator
}

func NewStreams(s store.Streams, c Coordinator) *Streams {
	return &Streams{store: s, coord: c}
}

// List returns every configured stream in store order.
func (s *Streams) List(ctx context.Context) ([]structures.StreamConfig, error) {
	return s.store.List(ctx)
}

// Reconcile applies one bulk submission of row intents: create for rows
// without an identifier, partial field replacement for rows with one, and
// delete for rows whose title was blanked. Deleting a config does not
// cascade to its stream_reports/stream_images/stream_alerts records; those
// go stale until the workers re-report (explicit policy, see DESIGN.md).
//
// When at least one row was applied the restart coordinator is signalled
// exactly once for the whole submission.
func (s *Streams) Reconcile(ctx context.Context, rows []forms.StreamRow) (Result, error) {
	res := Result{Batch: uid.NewId()}
	log := logrus.WithField("batch", res.Batch)

	for _, row := range rows {
		rr := RowResult{Index: row.Index, Op: row.Op.String(), Key: row.Title, ID: row.ID}

		switch err := s.apply(ctx, row, &rr); err {
		case nil:
			res.Applied++
		case errors.ErrInvalidObjectID:
			rr.Error = err.Error()
			log.WithError(err).WithField("title", row.Title).Warn("stream row rejected")
		default:
			// store failure is fatal for the whole submission
			return res, err
		}

		res.Rows = append(res.Rows, rr)
	}

	if res.Applied > 0 {
		if err := s.coord.SignalRestart(ctx); err != nil {
			return res, fmt.Errorf("signal restart: %w", err)
		}
		log.WithField("applied", res.Applied).Info("stream configs reconciled, restart signalled")
	}

	return res, nil
}

func (s *Streams) apply(ctx context.Context, row forms.StreamRow, rr *RowResult) error {
	cfg := structures.StreamConfig{
		Title:   row.Title,
		URI:     row.URI,
		Audio:   row.Audio,
		Enabled: row.Enabled,
	}

	switch row.Op {
	case forms.OpCreate:
		id, err := s.store.Insert(ctx, cfg)
		if err != nil {
			return err
		}
		rr.ID = id.Hex()
		return nil

	case forms.OpUpdate:
		id, err := primitive.ObjectIDFromHex(row.ID)
		if err != nil {
			return errors.ErrInvalidObjectID
		}
		return s.store.Update(ctx, id, cfg)

	case forms.OpDelete:
		id, err := primitive.ObjectIDFromHex(row.ID)
		if err != nil {
			return errors.ErrInvalidObjectID
		}
		return s.store.Delete(ctx, id)
	}

	return nil
}
