package service

import (
	"context"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *Service) Register(ctx context.Context, req model.UserRequest) (model.User, error) {
	if err := s.userValidator.Validate(req); err != nil {
		return model.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	u, err := s.repo.CreateUser(ctx, model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         auth.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user registered", zap.String("id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) UploadProfileImage(ctx context.Context, actor auth.Principal, img model.Image) error {
	if s.images == nil {
		return errs.ErrStorageDisabled
	}
	if err := s.imageValidator.Validate(img); err != nil {
		return err
	}
	url, err := s.images.Put(ctx, storage.FolderProfiles, img.Data)
	if err != nil {
		return err
	}
	return s.repo.UpdateProfileImage(ctx, actor.UserID, url)
}
