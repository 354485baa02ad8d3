package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/streammon/control/errors"
	"github.com/streammon/control/store"
	"github.com/streammon/control/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemory().Stores()

	_, err := stores.Users.Insert(ctx, structures.User{Username: "ops", Password: "s3cret", Enabled: true})
	require.NoError(t, err)

	v := NewVerifier(stores.Users)

	u, err := v.Verify(ctx, "ops", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", u.Username)

	_, err = v.Verify(ctx, "ops", "wrong")
	assert.Equal(t, errors.ErrInvalidCredentials, err)

	_, err = v.Verify(ctx, "ghost", "s3cret")
	assert.Equal(t, errors.ErrInvalidCredentials, err)
}

func TestJwtRoundTrip(t *testing.T) {
	token, err := EncodeJwt(SessionClaims{
		Username: "ops",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}, "key")
	require.NoError(t, err)

	claims := SessionClaims{}
	require.NoError(t, DecodeJwt(&claims, "key", token))
	assert.Equal(t, "ops", claims.Username)
}

func TestJwtWrongKey(t *testing.T) {
	token, err := EncodeJwt(SessionClaims{Username: "ops"}, "key")
	require.NoError(t, err)

	claims := SessionClaims{}
	assert.Error(t, DecodeJwt(&claims, "other", token))
}

func TestJwtExpired(t *testing.T) {
	token, err := EncodeJwt(SessionClaims{
		Username: "ops",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}, "key")
	require.NoError(t, err)

	claims := SessionClaims{}
	assert.Error(t, DecodeJwt(&claims, "key", token))
}
