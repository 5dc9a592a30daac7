package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type BookRepository interface {
	CreateBook(ctx context.Context, b model.Book) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, q model.BookQuery) (model.ListBooks, error)
	UpdateBook(ctx context.Context, b model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// ApplyFunc mutates a locked session and returns the log to store with it.
type ApplyFunc func(s *model.ReadingSession) (model.ReadingLog, error)

type ReadingRepository interface {
	CreateSession(ctx context.Context, s model.ReadingSession) (model.ReadingSession, error)
	GetSession(ctx context.Context, id int64) (model.ReadingSession, error)
	ListSessions(ctx context.Context, bookID int64, userID string) ([]model.ReadingSession, error)
	ListLogs(ctx context.Context, sessionID int64) ([]model.ReadingLog, error)
	DeleteSession(ctx context.Context, id int64) error
	AddReading(ctx context.Context, sessionID int64, apply ApplyFunc) (model.ReadingSession, model.ReadingLog, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateProfileImage(ctx context.Context, id, url string) error
	SaveRefreshToken(ctx context.Context, t model.RefreshToken) error
	GetRefreshToken(ctx context.Context, hash string) (model.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, hash string) error
}

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	BookRepository
	ReadingRepository
	UserRepository
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName         = `books`
	sessionsTableName      = `reading_sessions`
	logsTableName          = `reading_logs`
	usersTableName         = `users`
	refreshTokensTableName = `refresh_tokens`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// mapErr turns driver errors into domain ones.
func mapErr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(errs.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrNotFound, pgErr.ConstraintName)
		case pgerrcode.CheckViolation:
			return errors.Wrap(errs.ErrInvalidData, pgErr.ConstraintName)
		case pgerrcode.StringDataRightTruncation:
			return errors.Wrap(errs.ErrInvalidData, op)
		}
	}
	return errors.Wrap(err, op)
}

func affected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
