package auth

import (
	"github.com/golang-jwt/jwt"
	"github.com/streammon/control/errors"
)

// SessionClaims is the browser session token payload.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

func EncodeJwt(claims jwt.Claims, key string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

func DecodeJwt(claims jwt.Claims, key string, token string) error {
	tkn, err := jwt.ParseWithClaims(token, claims, func(tkn *jwt.Token) (interface{}, error) {
		if _, ok := tkn.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrJwtTokenInvalid
		}

		return []byte(key), nil
	})
	if err != nil {
		return err
	}

	if !tkn.Valid {
		return errors.ErrJwtTokenInvalid
	}

	return nil
}
