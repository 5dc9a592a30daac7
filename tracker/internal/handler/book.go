package handler

import (
	"net/http"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/labstack/echo/v4"
)

type listBooksQuery struct {
	Page      int    `query:"page" validate:"gte=0"`
	Size      int    `query:"size" validate:"gte=0,lte=100"`
	Sort      string `query:"sort" validate:"omitempty,oneof=updatedAt createdAt title author pages"`
	Direction string `query:"direction" validate:"omitempty,oneof=ASC DESC asc desc"`
}

func (h *Handler) CreateBook(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.svc.CreateBook(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) ListBooks(c echo.Context) error {
	var q listBooksQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query is invalid")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	books, err := h.svc.ListBooks(c.Request().Context(), model.BookQuery{
		Page:      q.Page,
		Size:      q.Size,
		Sort:      q.Sort,
		Direction: model.Direction(q.Direction),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var patch model.BookPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	book, err := h.svc.UpdateBook(c.Request().Context(), actor, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBook(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UploadCover(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	img, err := formImage(c, "cover")
	if err != nil {
		return err
	}
	book, err := h.svc.UploadCover(c.Request().Context(), actor, id, img)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}
