package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrStorageDisabled    = errors.New("image storage is not configured")
	ErrInvalidData        = errors.New("data violates a storage constraint")
)

type Kind string

const (
	SessionNotValid Kind = "SessionNotValid"
	LogNotValid     Kind = "LogNotValid"
	BookNotValid    Kind = "BookNotValid"
	UserNotValid    Kind = "UserNotValid"
	ImageNotValid   Kind = "ImageNotValid"
)

// ValidationError carries every broken rule of one entity, in check order.
type ValidationError struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

func IsKind(err error, kind Kind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	Details   []string `json:"details"`
}
