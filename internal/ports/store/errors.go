package store

import (
	"errors"
	"fmt"
)

// ExternalServiceError envuelve cualquier falla de una operación contra el store
// (red, permisos, request inválido). El handler la mapea a 502.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("external service error: op=%s", e.Op)
	}
	return fmt.Sprintf("external service error: op=%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Op: op, Err: err}
}

func IsExternal(err error) bool {
	var ext *ExternalServiceError
	return errors.As(err, &ext)
}
