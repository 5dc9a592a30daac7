package validator

import (
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"go.uber.org/zap"
)

type LogValidator struct {
	log *zap.Logger
}

var _ Validator[model.ReadingLog] = (*LogValidator)(nil)

func NewLogValidator(log *zap.Logger) *LogValidator {
	return &LogValidator{log: log.Named("log_validator")}
}

func (v *LogValidator) Validate(l model.ReadingLog) error {
	if l.QuantityRead <= 0 {
		v.log.Debug("reading log rejected", zap.Int64("session_id", l.SessionID), zap.Int("quantity", l.QuantityRead))
		return &errs.ValidationError{Kind: errs.LogNotValid, Message: "amount of reading must be positive"}
	}
	return nil
}
