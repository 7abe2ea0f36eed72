package auth

import "errors"

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims representa la información extraída del token.
// Con token estático Subject es fijo ("ingest").
type Claims struct {
	Subject string
}
