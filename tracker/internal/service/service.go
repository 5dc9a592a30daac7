package service

import (
	"context"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/progress"
	"github.com/Astemirdum/book-tracker/tracker/internal/repository"
	"github.com/Astemirdum/book-tracker/tracker/internal/validator"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookCache interface {
	Get(ctx context.Context, id int64) (model.Book, bool)
	Set(ctx context.Context, b model.Book)
	Delete(ctx context.Context, id int64)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev kafka.EventReading) error
}

type ImageStore interface {
	Put(ctx context.Context, folder string, data []byte) (string, error)
}

type TokenManager interface {
	Issue(p auth.Principal, typ auth.TokenType) (string, time.Time, error)
	Parse(token string, typ auth.TokenType) (auth.Principal, error)
}

type Deps struct {
	Repo   repository.Repository
	Cache  BookCache
	Events EventPublisher
	Images ImageStore
	Tokens TokenManager
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	cache  BookCache
	events EventPublisher
	images ImageStore
	tokens TokenManager
	now    func() time.Time

	engine           *progress.Engine
	sessionValidator validator.Validator[model.ReadingSession]
	logValidator     validator.Validator[model.ReadingLog]
	bookValidator    validator.Validator[model.Book]
	userValidator    validator.Validator[model.UserRequest]
	imageValidator   validator.Validator[model.Image]
}

func NewService(d Deps, log *zap.Logger) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:    log,
		repo:   d.Repo,
		cache:  d.Cache,
		events: d.Events,
		images: d.Images,
		tokens: d.Tokens,
		now:    now,

		engine:           progress.NewEngine(now),
		sessionValidator: validator.NewSessionValidator(log, now),
		logValidator:     validator.NewLogValidator(log),
		bookValidator:    validator.NewBookValidator(log),
		userValidator:    validator.NewUserValidator(log),
		imageValidator:   validator.NewImageValidator(log),
	}
}
