package handler

import (
	"context"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	CreateBook(ctx context.Context, actor auth.Principal, req model.BookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error)
	UpdateBook(ctx context.Context, actor auth.Principal, id int64, patch model.BookPatch) (model.Book, error)
	DeleteBook(ctx context.Context, actor auth.Principal, id int64) error
	UploadCover(ctx context.Context, actor auth.Principal, id int64, img model.Image) (model.Book, error)
}

type ReadingService interface {
	StartReading(ctx context.Context, actor auth.Principal, bookID int64, req model.ReadingSessionRequest) (model.ReadingSession, error)
	ListSessions(ctx context.Context, actor auth.Principal, bookID int64) ([]model.ReadingSession, error)
	GetSession(ctx context.Context, actor auth.Principal, id int64) (model.SessionDetails, error)
	AddReading(ctx context.Context, actor auth.Principal, sessionID int64, req model.AddReadingRequest) (model.ReadingSession, error)
	DeleteSession(ctx context.Context, actor auth.Principal, id int64) error
}

type UserService interface {
	Register(ctx context.Context, req model.UserRequest) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UploadProfileImage(ctx context.Context, actor auth.Principal, img model.Image) error
}

type AuthService interface {
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	Refresh(ctx context.Context, req model.RefreshRequest) (model.AuthResponse, error)
}

type TrackerService interface {
	BookService
	ReadingService
	UserService
	AuthService
}

var _ TrackerService = (*service.Service)(nil)
