package validator

import (
	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
)

// Validator checks one entity type and returns an *errs.ValidationError when it is broken.
type Validator[T any] interface {
	Validate(T) error
}

// CheckAccess allows the owner and admins.
func CheckAccess(actor auth.Principal, ownerID string) error {
	if actor.UserID != ownerID && !actor.IsAdmin() {
		return errs.ErrForbidden
	}
	return nil
}

func newError(kind errs.Kind, message string, details []string) error {
	if len(details) == 0 {
		return nil
	}
	return &errs.ValidationError{Kind: kind, Message: message, Details: details}
}
