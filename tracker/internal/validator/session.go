package validator

import (
	"time"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"go.uber.org/zap"
)

type SessionValidator struct {
	log *zap.Logger
	now func() time.Time
}

var _ Validator[model.ReadingSession] = (*SessionValidator)(nil)

func NewSessionValidator(log *zap.Logger, now func() time.Time) *SessionValidator {
	if now == nil {
		now = time.Now
	}
	return &SessionValidator{log: log.Named("session_validator"), now: now}
}

// Validate reports every broken rule at once, in a fixed order.
func (v *SessionValidator) Validate(s model.ReadingSession) error {
	now := v.now()
	var details []string

	if s.Pages <= 0 {
		details = append(details, "pages must be greater than zero")
	}
	if s.TrackingMethod == model.TrackingChapters && (s.Chapters == nil || *s.Chapters <= 0) {
		details = append(details, "cannot track by chapters if the book has no chapters")
	}
	if s.DailyGoal < 0 {
		details = append(details, "cannot have a negative daily goal")
	}
	if s.StartReadingDate.After(now) {
		details = append(details, "cannot start reading a book in the future")
	}
	if s.EstimatedCompletionDate != nil && s.StartReadingDate.After(*s.EstimatedCompletionDate) {
		details = append(details, "estimated completion date invalid")
	}
	if s.EndReadingDate != nil && s.EndReadingDate.After(now) {
		details = append(details, "cannot finish a book in the future")
	}

	if len(details) > 0 {
		v.log.Debug("session rejected", zap.Int64("book_id", s.BookID), zap.Strings("details", details))
	}
	return newError(errs.SessionNotValid, "reading session is not valid", details)
}
