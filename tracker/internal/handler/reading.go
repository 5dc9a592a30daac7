package handler

import (
	"net/http"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) StartReading(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}
	var req model.ReadingSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.svc.StartReading(c.Request().Context(), actor, bookID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *Handler) ListSessions(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}
	sessions, err := h.svc.ListSessions(c.Request().Context(), actor, bookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *Handler) GetSession(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "sessionId")
	if err != nil {
		return err
	}
	details, err := h.svc.GetSession(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) AddReading(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "sessionId")
	if err != nil {
		return err
	}
	var req model.AddReadingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.svc.AddReading(c.Request().Context(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

func (h *Handler) DeleteSession(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "sessionId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteSession(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
