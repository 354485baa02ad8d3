package errors

import "fmt"

var (
	ErrNotFound           = fmt.Errorf("document not found")
	ErrPasswordMismatch   = fmt.Errorf("password entries did not match")
	ErrInvalidObjectID    = fmt.Errorf("invalid object id")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrJwtTokenInvalid    = fmt.Errorf("jwt token invalid")
)
