package service

import (
	"context"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/storage"
	"github.com/Astemirdum/book-tracker/tracker/internal/validator"
	"go.uber.org/zap"
)

func (s *Service) CreateBook(ctx context.Context, actor auth.Principal, req model.BookRequest) (model.Book, error) {
	b := req.ToBook(actor.UserID).Sanitize()
	if err := s.bookValidator.Validate(b); err != nil {
		return model.Book{}, err
	}
	created, err := s.repo.CreateBook(ctx, b)
	if err != nil {
		return model.Book{}, err
	}
	s.cache.Set(ctx, created)
	s.log.Info("book created", zap.Int64("id", created.ID), zap.String("user_id", actor.UserID))
	return created, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	if b, ok := s.cache.Get(ctx, id); ok {
		return b, nil
	}
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	s.cache.Set(ctx, b)
	return b, nil
}

func (s *Service) ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, q)
}

func (s *Service) UpdateBook(ctx context.Context, actor auth.Principal, id int64, patch model.BookPatch) (model.Book, error) {
	b, err := s.ownedBook(ctx, actor, id)
	if err != nil {
		return model.Book{}, err
	}
	b = b.Apply(patch).Sanitize()
	if err := s.bookValidator.Validate(b); err != nil {
		return model.Book{}, err
	}
	return s.saveBook(ctx, b)
}

func (s *Service) DeleteBook(ctx context.Context, actor auth.Principal, id int64) error {
	if _, err := s.ownedBook(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, id)
	s.log.Info("book deleted", zap.Int64("id", id), zap.String("user_id", actor.UserID))
	return nil
}

func (s *Service) UploadCover(ctx context.Context, actor auth.Principal, id int64, img model.Image) (model.Book, error) {
	if s.images == nil {
		return model.Book{}, errs.ErrStorageDisabled
	}
	b, err := s.ownedBook(ctx, actor, id)
	if err != nil {
		return model.Book{}, err
	}
	if err := s.imageValidator.Validate(img); err != nil {
		return model.Book{}, err
	}
	url, err := s.images.Put(ctx, storage.FolderCovers, img.Data)
	if err != nil {
		return model.Book{}, err
	}
	b.CoverURL = &url
	return s.saveBook(ctx, b)
}

// ownedBook loads a book from the database, bypassing the cache, and checks that actor may change it.
func (s *Service) ownedBook(ctx context.Context, actor auth.Principal, id int64) (model.Book, error) {
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	if err := validator.CheckAccess(actor, b.UserID); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (s *Service) saveBook(ctx context.Context, b model.Book) (model.Book, error) {
	updated, err := s.repo.UpdateBook(ctx, b)
	if err != nil {
		return model.Book{}, err
	}
	s.cache.Set(ctx, updated)
	return updated, nil
}
