package handler

import (
	"io"
	"net/http"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/validator"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user.Response())
}

func (h *Handler) Login(c echo.Context) error {
	var req model.AuthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Refresh(c echo.Context) error {
	var req model.RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.Refresh(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Response())
}

func (h *Handler) UploadProfileImage(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	img, err := formImage(c, "profileImage")
	if err != nil {
		return err
	}
	if err := h.svc.UploadProfileImage(c.Request().Context(), actor, img); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// formImage reads one multipart file. Reading stops one byte past the size
// limit so the validator can still report an oversized upload.
func formImage(c echo.Context, field string) (model.Image, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return model.Image{}, echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return model.Image{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, validator.MaxImageSize+1))
	if err != nil {
		return model.Image{}, err
	}
	return model.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}
