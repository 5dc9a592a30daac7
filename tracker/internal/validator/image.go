package validator

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"go.uber.org/zap"
)

const (
	MaxImageSize = 5 << 20
	minImageSide  = 200
)

type ImageValidator struct {
	log *zap.Logger
}

var _ Validator[model.Image] = (*ImageValidator)(nil)

func NewImageValidator(log *zap.Logger) *ImageValidator {
	return &ImageValidator{log: log.Named("image_validator")}
}

func (v *ImageValidator) Validate(img model.Image) error {
	var details []string
	if len(img.Data) == 0 {
		details = append(details, "image file is empty")
	}
	contentType := img.ContentType
	if contentType == "" && len(img.Data) > 0 {
		contentType = http.DetectContentType(img.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		details = append(details, "file is not an image")
	}
	if len(img.Data) > MaxImageSize {
		details = append(details, "image exceeds the maximum size of 5MB")
	}
	if len(img.Data) > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
		switch {
		case err != nil:
			details = append(details, "unsupported image format")
		case cfg.Width < minImageSide || cfg.Height < minImageSide:
			details = append(details, "image dimensions must be at least 200x200")
		}
	}

	if len(details) > 0 {
		v.log.Debug("image rejected", zap.String("filename", img.Filename), zap.Strings("details", details))
	}
	return newError(errs.ImageNotValid, "image is not valid", details)
}
