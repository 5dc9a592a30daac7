package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/repository"
	"github.com/Astemirdum/book-tracker/tracker/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	repo_mocks "github.com/Astemirdum/book-tracker/tracker/internal/repository/mocks"
	service_mocks "github.com/Astemirdum/book-tracker/tracker/internal/service/mocks"
)

var (
	now    = time.Date(2024, 3, 10, 12, 34, 56, 0, time.UTC)
	minute = now.Truncate(time.Minute)

	owner = auth.Principal{UserID: "u-1", Username: "reader", Role: auth.RoleUser}
	other = auth.Principal{UserID: "u-2", Username: "stranger", Role: auth.RoleUser}
	admin = auth.Principal{UserID: "u-9", Username: "root", Role: auth.RoleAdmin}
)

type deps struct {
	repo   *repo_mocks.MockRepository
	cache  *service_mocks.MockBookCache
	events *service_mocks.MockEventPublisher
	images *service_mocks.MockImageStore
	tokens *service_mocks.MockTokenManager
}

func newService(t *testing.T) (*service.Service, deps) {
	t.Helper()
	c := gomock.NewController(t)
	d := deps{
		repo:   repo_mocks.NewMockRepository(c),
		cache:  service_mocks.NewMockBookCache(c),
		events: service_mocks.NewMockEventPublisher(c),
		images: service_mocks.NewMockImageStore(c),
		tokens: service_mocks.NewMockTokenManager(c),
	}
	svc := service.NewService(service.Deps{
		Repo:   d.repo,
		Cache:  d.cache,
		Events: d.events,
		Images: d.images,
		Tokens: d.tokens,
		Now:    func() time.Time { return now },
	}, zap.NewExample().Named("test"))
	return svc, d
}

func intPtr(v int) *int { return &v }

func session(total int, state model.ReadingState) model.ReadingSession {
	return model.ReadingSession{
		ID:               7,
		BookID:           3,
		UserID:           owner.UserID,
		Pages:            100,
		TrackingMethod:   model.TrackingPages,
		TotalProgress:    total,
		DailyGoal:        0,
		ReadingState:     state,
		StartReadingDate: minute.Add(-48 * time.Hour),
	}
}

func TestService_AddReading(t *testing.T) {
	t.Parallel()
	readDate := minute.Add(-time.Hour)
	completed := session(100, model.StateRead)
	completed.ProgressInPercentage = 100
	completed.EndReadingDate = &readDate
	completed.EstimatedCompletionDate = &readDate

	tests := []struct {
		name       string
		actor      auth.Principal
		stored     model.ReadingSession
		quantity   int
		wantTotal  int
		wantState  model.ReadingState
		wantEvents []kafka.EventType
		wantErr    error
		wantKind   errs.Kind
	}{
		{
			name:       "progress added",
			actor:      owner,
			stored:     session(10, model.StateReading),
			quantity:   15,
			wantTotal:  25,
			wantState:  model.StateReading,
			wantEvents: []kafka.EventType{kafka.ProgressAdded},
		},
		{
			name:       "session completed",
			actor:      owner,
			stored:     session(90, model.StateReading),
			quantity:   20,
			wantTotal:  100,
			wantState:  model.StateRead,
			wantEvents: []kafka.EventType{kafka.ProgressAdded, kafka.SessionCompleted},
		},
		{
			name:       "admin may add",
			actor:      admin,
			stored:     session(0, model.StateReading),
			quantity:   5,
			wantTotal:  5,
			wantState:  model.StateReading,
			wantEvents: []kafka.EventType{kafka.ProgressAdded},
		},
		{
			name:       "read session keeps state",
			actor:      owner,
			stored:     completed,
			quantity:   30,
			wantTotal:  100,
			wantState:  model.StateRead,
			wantEvents: []kafka.EventType{kafka.ProgressAdded},
		},
		{
			name:     "not the owner",
			actor:    other,
			stored:   session(10, model.StateReading),
			quantity: 5,
			wantErr:  errs.ErrForbidden,
		},
		{
			name:     "zero quantity",
			actor:    owner,
			stored:   session(10, model.StateReading),
			quantity: 0,
			wantKind: errs.LogNotValid,
		},
		{
			name:     "negative quantity",
			actor:    owner,
			stored:   session(10, model.StateReading),
			quantity: -3,
			wantKind: errs.LogNotValid,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)

			var (
				storedLog model.ReadingLog
				published []kafka.EventType
			)
			if tt.wantKind == "" {
				d.repo.EXPECT().
					AddReading(gomock.Any(), tt.stored.ID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, apply repository.ApplyFunc) (model.ReadingSession, model.ReadingLog, error) {
						s := tt.stored
						l, err := apply(&s)
						if err != nil {
							return model.ReadingSession{}, model.ReadingLog{}, err
						}
						l.ID = 1
						storedLog = l
						return s, l, nil
					})
			}
			d.events.EXPECT().
				Publish(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, ev kafka.EventReading) error {
					published = append(published, ev.EventType)
					return nil
				}).
				AnyTimes()

			got, err := svc.AddReading(context.Background(), tt.actor, tt.stored.ID, model.AddReadingRequest{QuantityRead: tt.quantity})
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, published)
				return
			case tt.wantKind != "":
				require.True(t, errs.IsKind(err, tt.wantKind))
				require.Empty(t, published)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTotal, got.TotalProgress)
			require.Equal(t, tt.wantState, got.ReadingState)
			require.Equal(t, tt.wantEvents, published)

			require.Equal(t, tt.quantity, storedLog.QuantityRead)
			require.Equal(t, owner.UserID, storedLog.UserID)
			require.Equal(t, tt.stored.ID, storedLog.SessionID)
			require.Equal(t, minute, storedLog.DateOfReading)
		})
	}
}

func TestService_AddReading_ReadSessionUntouched(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	end := minute.Add(-24 * time.Hour)
	stored := session(100, model.StateRead)
	stored.ProgressInPercentage = 100
	stored.EndReadingDate = &end
	stored.EstimatedCompletionDate = &end

	var logs []model.ReadingLog
	d.repo.EXPECT().
		AddReading(gomock.Any(), stored.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply repository.ApplyFunc) (model.ReadingSession, model.ReadingLog, error) {
			s := stored
			l, err := apply(&s)
			require.NoError(t, err)
			logs = append(logs, l)
			return s, l, nil
		})
	d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.AddReading(context.Background(), owner, stored.ID, model.AddReadingRequest{QuantityRead: 12})
	require.NoError(t, err)
	require.Equal(t, stored, got)
	require.Len(t, logs, 1)
	require.Equal(t, 12, logs[0].QuantityRead)
}

func TestService_AddReading_PublishFailureIgnored(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	stored := session(0, model.StateReading)

	d.repo.EXPECT().
		AddReading(gomock.Any(), stored.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, apply repository.ApplyFunc) (model.ReadingSession, model.ReadingLog, error) {
			s := stored
			l, err := apply(&s)
			return s, l, err
		})
	d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errs.ErrConflict)

	got, err := svc.AddReading(context.Background(), owner, stored.ID, model.AddReadingRequest{QuantityRead: 10})
	require.NoError(t, err)
	require.Equal(t, 10, got.TotalProgress)
}

func TestService_StartReading(t *testing.T) {
	t.Parallel()
	book := model.Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Pages: 412, UserID: other.UserID}

	tests := []struct {
		name     string
		book     model.Book
		req      model.ReadingSessionRequest
		wantKind errs.Kind
		details  []string
	}{
		{
			name: "ok",
			book: book,
			req:  model.ReadingSessionRequest{DailyGoal: 20},
		},
		{
			name:     "chapters on a book without chapters",
			book:     book,
			req:      model.ReadingSessionRequest{TrackingMethod: model.TrackingChapters},
			wantKind: errs.SessionNotValid,
			details:  []string{"cannot track by chapters if the book has no chapters"},
		},
		{
			name: "negative goal and future start",
			book: book,
			req: model.ReadingSessionRequest{
				DailyGoal:        -1,
				StartReadingDate: func() *time.Time { t := now.Add(24 * time.Hour); return &t }(),
			},
			wantKind: errs.SessionNotValid,
			details:  []string{"cannot have a negative daily goal", "cannot start reading a book in the future"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			d.cache.EXPECT().Get(gomock.Any(), tt.book.ID).Return(tt.book, true)

			if tt.wantKind != "" {
				_, err := svc.StartReading(context.Background(), owner, tt.book.ID, tt.req)
				var ve *errs.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, tt.wantKind, ve.Kind)
				require.Equal(t, tt.details, ve.Details)
				return
			}

			d.repo.EXPECT().
				CreateSession(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, s model.ReadingSession) (model.ReadingSession, error) {
					require.Equal(t, owner.UserID, s.UserID)
					require.Equal(t, tt.book.Pages, s.Pages)
					require.Equal(t, model.TrackingPages, s.TrackingMethod)
					require.Equal(t, model.StateReading, s.ReadingState)
					require.Equal(t, minute, s.StartReadingDate)
					s.ID = 11
					return s, nil
				})
			d.events.EXPECT().
				Publish(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, ev kafka.EventReading) error {
					require.Equal(t, kafka.SessionStarted, ev.EventType)
					require.Equal(t, int64(11), ev.SessionID)
					return nil
				})

			got, err := svc.StartReading(context.Background(), owner, tt.book.ID, tt.req)
			require.NoError(t, err)
			require.Equal(t, int64(11), got.ID)
			require.Equal(t, 20, got.DailyGoal)
		})
	}
}

func TestService_StartReading_ChaptersSnapshot(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	book := model.Book{ID: 4, Title: "Emma", Author: "Jane Austen", Pages: 300, Chapters: intPtr(55)}

	d.cache.EXPECT().Get(gomock.Any(), book.ID).Return(model.Book{}, false)
	d.repo.EXPECT().GetBook(gomock.Any(), book.ID).Return(book, nil)
	d.cache.EXPECT().Set(gomock.Any(), book)
	d.repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s model.ReadingSession) (model.ReadingSession, error) {
			return s, nil
		})
	d.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.StartReading(context.Background(), owner, book.ID, model.ReadingSessionRequest{TrackingMethod: model.TrackingChapters})
	require.NoError(t, err)
	require.Equal(t, 55, *got.Chapters)

	*book.Chapters = 60
	require.Equal(t, 55, *got.Chapters)
}

func TestService_GetSession(t *testing.T) {
	t.Parallel()
	stored := session(20, model.StateReading)
	logs := []model.ReadingLog{{ID: 1, SessionID: stored.ID, UserID: owner.UserID, DateOfReading: minute, QuantityRead: 20}}

	tests := []struct {
		name    string
		actor   auth.Principal
		wantErr error
	}{
		{name: "owner", actor: owner},
		{name: "admin", actor: admin},
		{name: "stranger", actor: other, wantErr: errs.ErrForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			d.repo.EXPECT().GetSession(gomock.Any(), stored.ID).Return(stored, nil)
			if tt.wantErr == nil {
				d.repo.EXPECT().ListLogs(gomock.Any(), stored.ID).Return(logs, nil)
			}

			got, err := svc.GetSession(context.Background(), tt.actor, stored.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.SessionDetails{Session: stored, Logs: logs}, got)
		})
	}
}

func TestService_GetSession_NotFound(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	d.repo.EXPECT().GetSession(gomock.Any(), int64(404)).Return(model.ReadingSession{}, errs.ErrNotFound)

	_, err := svc.GetSession(context.Background(), owner, 404)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ListSessions(t *testing.T) {
	t.Parallel()
	book := model.Book{ID: 3, Pages: 100}

	svc, d := newService(t)
	d.cache.EXPECT().Get(gomock.Any(), book.ID).Return(book, true).Times(2)
	d.repo.EXPECT().ListSessions(gomock.Any(), book.ID, owner.UserID).Return([]model.ReadingSession{session(0, model.StateReading)}, nil)
	d.repo.EXPECT().ListSessions(gomock.Any(), book.ID, "").Return([]model.ReadingSession{}, nil)

	got, err := svc.ListSessions(context.Background(), owner, book.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.ListSessions(context.Background(), admin, book.ID)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestService_DeleteSession(t *testing.T) {
	t.Parallel()
	stored := session(0, model.StateReading)

	svc, d := newService(t)
	d.repo.EXPECT().GetSession(gomock.Any(), stored.ID).Return(stored, nil).Times(2)
	d.repo.EXPECT().DeleteSession(gomock.Any(), stored.ID).Return(nil)

	require.ErrorIs(t, svc.DeleteSession(context.Background(), other, stored.ID), errs.ErrForbidden)
	require.NoError(t, svc.DeleteSession(context.Background(), owner, stored.ID))
}

func TestService_CreateBook(t *testing.T) {
	t.Parallel()
	blank := "  "
	publisher := " Ace "

	svc, d := newService(t)
	d.repo.EXPECT().
		CreateBook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			require.Equal(t, owner.UserID, b.UserID)
			require.Nil(t, b.Synopsis)
			require.Equal(t, "Ace", *b.Publisher)
			require.Equal(t, model.Genres{"sci-fi", "classic"}, b.Genres)
			b.ID = 3
			return b, nil
		})
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any())

	got, err := svc.CreateBook(context.Background(), owner, model.BookRequest{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Pages:     412,
		Synopsis:  &blank,
		Publisher: &publisher,
		Genres:    []string{"sci-fi", "classic", "sci-fi", " "},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ID)

	_, err = svc.CreateBook(context.Background(), owner, model.BookRequest{Title: " ", Pages: 0, Chapters: intPtr(-1)})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, errs.BookNotValid, ve.Kind)
	require.Equal(t, []string{
		"title cannot be empty",
		"author cannot be empty",
		"pages must be greater than zero",
		"chapters cannot be negative",
	}, ve.Details)
}

func TestService_CreateBook_ZeroChapters(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	d.repo.EXPECT().
		CreateBook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
			require.Equal(t, intPtr(0), b.Chapters)
			b.ID = 4
			return b, nil
		})
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any())

	got, err := svc.CreateBook(context.Background(), owner, model.BookRequest{
		Title:    "t",
		Author:   "a",
		Pages:    10,
		Chapters: intPtr(0),
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), got.ID)
}

func TestService_GetBook_CacheHit(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	book := model.Book{ID: 3, Title: "Dune"}
	d.cache.EXPECT().Get(gomock.Any(), book.ID).Return(book, true)

	got, err := svc.GetBook(context.Background(), book.ID)
	require.NoError(t, err)
	require.Equal(t, book, got)
}

func TestService_UpdateBook(t *testing.T) {
	t.Parallel()
	stored := model.Book{ID: 3, Title: "Dune", Author: "Frank Herbert", Pages: 412, UserID: owner.UserID}
	title := "Dune Messiah"

	tests := []struct {
		name    string
		actor   auth.Principal
		wantErr error
	}{
		{name: "owner", actor: owner},
		{name: "admin", actor: admin},
		{name: "stranger", actor: other, wantErr: errs.ErrForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			d.repo.EXPECT().GetBook(gomock.Any(), stored.ID).Return(stored, nil)
			if tt.wantErr == nil {
				d.repo.EXPECT().
					UpdateBook(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Book) (model.Book, error) {
						require.Equal(t, title, b.Title)
						require.Equal(t, stored.Author, b.Author)
						return b, nil
					})
				d.cache.EXPECT().Set(gomock.Any(), gomock.Any())
			}

			got, err := svc.UpdateBook(context.Background(), tt.actor, stored.ID, model.BookPatch{Title: &title})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, title, got.Title)
		})
	}
}

func TestService_DeleteBook(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	stored := model.Book{ID: 3, UserID: owner.UserID}
	d.repo.EXPECT().GetBook(gomock.Any(), stored.ID).Return(stored, nil)
	d.repo.EXPECT().DeleteBook(gomock.Any(), stored.ID).Return(nil)
	d.cache.EXPECT().Delete(gomock.Any(), stored.ID)

	require.NoError(t, svc.DeleteBook(context.Background(), owner, stored.ID))
}

func TestService_UploadCover_StorageDisabled(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	svc := service.NewService(service.Deps{
		Repo:   repo_mocks.NewMockRepository(c),
		Cache:  service_mocks.NewMockBookCache(c),
		Events: service_mocks.NewMockEventPublisher(c),
		Tokens: service_mocks.NewMockTokenManager(c),
	}, zap.NewExample().Named("test"))

	_, err := svc.UploadCover(context.Background(), owner, 3, model.Image{})
	require.ErrorIs(t, err, errs.ErrStorageDisabled)
	require.ErrorIs(t, svc.UploadProfileImage(context.Background(), owner, model.Image{}), errs.ErrStorageDisabled)
}

func TestService_UploadCover_InvalidImage(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	d.repo.EXPECT().GetBook(gomock.Any(), int64(3)).Return(model.Book{ID: 3, UserID: owner.UserID}, nil)

	_, err := svc.UploadCover(context.Background(), owner, 3, model.Image{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hi")})
	require.True(t, errs.IsKind(err, errs.ImageNotValid))
}

func TestService_Register(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	req := model.UserRequest{Username: "reader", Email: "reader@mail.com", Password: "Secr3t!pass"}

	d.repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.NotEmpty(t, u.ID)
			require.Equal(t, auth.RoleUser, u.Role)
			require.True(t, u.IsActive)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
			return u, nil
		})

	u, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "reader", u.Username)

	_, err = svc.Register(context.Background(), model.UserRequest{Username: "reader", Email: "reader@mail.com", Password: "weak"})
	require.True(t, errs.IsKind(err, errs.UserNotValid))
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secr3t!pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{ID: owner.UserID, Username: owner.Username, PasswordHash: string(hash), Role: auth.RoleUser, IsActive: true}

	tests := []struct {
		name     string
		req      model.AuthRequest
		behavior func(d deps)
		wantErr  error
	}{
		{
			name: "ok",
			req:  model.AuthRequest{Username: "reader", Password: "Secr3t!pass"},
			behavior: func(d deps) {
				d.repo.EXPECT().GetUserByUsername(gomock.Any(), "reader").Return(user, nil)
				d.tokens.EXPECT().Issue(owner, auth.AccessToken).Return("access", now.Add(15*time.Minute), nil)
				d.tokens.EXPECT().Issue(owner, auth.RefreshToken).Return("refresh", now.Add(time.Hour), nil)
				d.repo.EXPECT().
					SaveRefreshToken(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rt model.RefreshToken) error {
						require.Equal(t, owner.UserID, rt.UserID)
						require.Len(t, rt.TokenHash, 64)
						require.NotEqual(t, "refresh", rt.TokenHash)
						return nil
					})
			},
		},
		{
			name: "unknown user",
			req:  model.AuthRequest{Username: "ghost", Password: "Secr3t!pass"},
			behavior: func(d deps) {
				d.repo.EXPECT().GetUserByUsername(gomock.Any(), "ghost").Return(model.User{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  model.AuthRequest{Username: "reader", Password: "nope"},
			behavior: func(d deps) {
				d.repo.EXPECT().GetUserByUsername(gomock.Any(), "reader").Return(user, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			tt.behavior(d)

			got, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				TokenType:    "Bearer",
				ExpiresIn:    900,
			}, got)
		})
	}
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()
	user := model.User{ID: owner.UserID, Username: owner.Username, Role: auth.RoleUser, IsActive: true}
	valid := model.RefreshToken{UserID: owner.UserID, ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name     string
		behavior func(d deps)
		wantErr  error
	}{
		{
			name: "ok",
			behavior: func(d deps) {
				d.tokens.EXPECT().Parse("old", auth.RefreshToken).Return(owner, nil)
				d.repo.EXPECT().GetRefreshToken(gomock.Any(), gomock.Any()).Return(valid, nil)
				d.repo.EXPECT().GetUser(gomock.Any(), owner.UserID).Return(user, nil)
				d.repo.EXPECT().RevokeRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
				d.tokens.EXPECT().Issue(owner, auth.AccessToken).Return("access", now.Add(time.Minute), nil)
				d.tokens.EXPECT().Issue(owner, auth.RefreshToken).Return("new", now.Add(time.Hour), nil)
				d.repo.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "bad signature",
			behavior: func(d deps) {
				d.tokens.EXPECT().Parse("old", auth.RefreshToken).Return(auth.Principal{}, auth.ErrInvalidToken)
			},
			wantErr: errs.ErrInvalidToken,
		},
		{
			name: "revoked",
			behavior: func(d deps) {
				revoked := valid
				revoked.Revoked = true
				d.tokens.EXPECT().Parse("old", auth.RefreshToken).Return(owner, nil)
				d.repo.EXPECT().GetRefreshToken(gomock.Any(), gomock.Any()).Return(revoked, nil)
			},
			wantErr: errs.ErrInvalidToken,
		},
		{
			name: "unknown token",
			behavior: func(d deps) {
				d.tokens.EXPECT().Parse("old", auth.RefreshToken).Return(owner, nil)
				d.repo.EXPECT().GetRefreshToken(gomock.Any(), gomock.Any()).Return(model.RefreshToken{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidToken,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			tt.behavior(d)

			got, err := svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: "old"})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "access", got.AccessToken)
			require.Equal(t, "new", got.RefreshToken)
		})
	}
}
