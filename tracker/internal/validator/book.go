package validator

import (
	"strings"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"go.uber.org/zap"
)

type BookValidator struct {
	log *zap.Logger
}

var _ Validator[model.Book] = (*BookValidator)(nil)

func NewBookValidator(log *zap.Logger) *BookValidator {
	return &BookValidator{log: log.Named("book_validator")}
}

func (v *BookValidator) Validate(b model.Book) error {
	var details []string
	if strings.TrimSpace(b.Title) == "" {
		details = append(details, "title cannot be empty")
	}
	if strings.TrimSpace(b.Author) == "" {
		details = append(details, "author cannot be empty")
	}
	if b.Pages <= 0 {
		details = append(details, "pages must be greater than zero")
	}
	if b.Chapters != nil && *b.Chapters < 0 {
		details = append(details, "chapters cannot be negative")
	}
	if len(details) > 0 {
		v.log.Debug("book rejected", zap.Strings("details", details))
	}
	return newError(errs.BookNotValid, "book is not valid", details)
}
