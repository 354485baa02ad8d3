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

type Users struct {
	store store.Users
	coord Coordinator
}

func NewUsers(s store.Users, c Coordinator) *Users {
	return &Users{store: s, coord: c}
}

// List returns every user in store order.
func (u *Users) List(ctx context.Context) ([]structures.User, error) {
	return u.store.List(ctx)
}

// Reconcile mirrors Streams.Reconcile over user documents. Rows that
// arrived invalid from the forms layer (password mismatch) are reported and
// skipped without blocking sibling rows. Any applied row signals the
// restart coordinator once, since notification targets may have changed and
// workers must pick up new credentials.
func (u *Users) Reconcile(ctx context.Context, rows []forms.UserRow) (Result, error) {
	res := Result{Batch: uid.NewId()}
	log := logrus.WithField("batch", res.Batch)

	for _, row := range rows {
		rr := RowResult{Index: row.Index, Op: row.Op.String(), Key: row.Username, ID: row.ID}

		if row.Err != nil {
			rr.Error = row.Err.Error()
			log.WithField("username", row.Username).Warn("user row invalid: ", row.Err)
			res.Rows = append(res.Rows, rr)
			continue
		}

		switch err := u.apply(ctx, row, &rr); err {
		case nil:
			res.Applied++
		case errors.ErrInvalidObjectID:
			rr.Error = err.Error()
			log.WithError(err).WithField("username", row.Username).Warn("user row rejected")
		default:
			// store failure is fatal for the whole submission
			return res, err
		}

		res.Rows = append(res.Rows, rr)
	}

	if res.Applied > 0 {
		if err := u.coord.SignalRestart(ctx); err != nil {
			return res, fmt.Errorf("signal restart: %w", err)
		}
		log.WithField("applied", res.Applied).Info("users reconciled, restart signalled")
	}

	return res, nil
}

func (u *Users) apply(ctx context.Context, row forms.UserRow, rr *RowResult) error {
	usr := structures.User{
		Username:      row.Username,
		Password:      row.Password,
		PushoverID:    row.PushoverID,
		PushoverToken: row.PushoverToken,
		Enabled:       row.Enabled,
	}

	switch row.Op {
	case forms.OpCreate:
		id, err := u.store.Insert(ctx, usr)
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
		return u.store.Update(ctx, id, usr)

	case forms.OpDelete:
		id, err := primitive.ObjectIDFromHex(row.ID)
		if err != nil {
			return errors.ErrInvalidObjectID
		}
		return u.store.Delete(ctx, id)
	}

	return nil
}
