package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HTTPErrorHandler writes every error as an errs.ErrorResponse.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, message, details := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.String("method", c.Request().Method),
			zap.Error(err))
	}
	if details == nil {
		details = []string{}
	}

	body := errs.ErrorResponse{
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request().URL.Path,
		Details:   details,
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}

func classify(err error) (int, string, []string) {
	var (
		ve  *errs.ValidationError
		he  *echo.HTTPError
		fes validator.ValidationErrors
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message, ve.Details
	case errors.As(err, &fes):
		details := make([]string, 0, len(fes))
		for _, fe := range fes {
			details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return http.StatusBadRequest, "request is not valid", details
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message), nil
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errs.ErrNotFound.Error(), nil
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, errs.ErrForbidden.Error(), nil
	case errors.Is(err, errs.ErrInvalidData):
		return http.StatusBadRequest, errs.ErrInvalidData.Error(), nil
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, errs.ErrConflict.Error(), nil
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, errs.ErrInvalidCredentials.Error(), nil
	case errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized, errs.ErrInvalidToken.Error(), nil
	case errors.Is(err, errs.ErrStorageDisabled):
		return http.StatusServiceUnavailable, errs.ErrStorageDisabled.Error(), nil
	default:
		return http.StatusInternalServerError, "internal server error", nil
	}
}
