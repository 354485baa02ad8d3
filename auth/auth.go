// Package auth is the boundary collaborator for login: it verifies
// credentials against the user registry and mints the session tokens the
// web layer checks on mutating routes. Session rendering and cookies stay
// outside the core.
package auth

import (
	"context"

	"github.com/streammon/control/errors"
	"github.com/streammon/control/store"
	"github.com/streammon/control/structures"
)

type Verifier struct {
	users store.Users
}

func NewVerifier(users store.Users) *Verifier {
	return &Verifier{users: users}
}

// Verify finds the user whose username and password both match exactly.
func (v *Verifier) Verify(ctx context.Context, username, password string) (structures.User, error) {
	u, err := v.users.FindByLogin(ctx, username, password)
	if err == errors.ErrNotFound {
		return structures.User{}, errors.ErrInvalidCredentials
	}
	if err != nil {
		return structures.User{}, err
	}
	return u, nil
}
