package service

import (
	"context"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/validator"
	"go.uber.org/zap"
)

func (s *Service) StartReading(ctx context.Context, actor auth.Principal, bookID int64, req model.ReadingSessionRequest) (model.ReadingSession, error) {
	book, err := s.GetBook(ctx, bookID)
	if err != nil {
		return model.ReadingSession{}, err
	}
	session := model.NewReadingSession(book, actor.UserID, req, s.now())
	if err := s.sessionValidator.Validate(session); err != nil {
		return model.ReadingSession{}, err
	}
	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return model.ReadingSession{}, err
	}
	s.publish(ctx, kafka.SessionStarted, created, 0)
	return created, nil
}

// ListSessions returns the actor's sessions of a book; admins see every owner's.
func (s *Service) ListSessions(ctx context.Context, actor auth.Principal, bookID int64) ([]model.ReadingSession, error) {
	if _, err := s.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	owner := actor.UserID
	if actor.IsAdmin() {
		owner = ""
	}
	return s.repo.ListSessions(ctx, bookID, owner)
}

// GetSession returns a session with its logs. Logs are read only once access is granted.
func (s *Service) GetSession(ctx context.Context, actor auth.Principal, id int64) (model.SessionDetails, error) {
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return model.SessionDetails{}, err
	}
	if err := validator.CheckAccess(actor, session.UserID); err != nil {
		return model.SessionDetails{}, err
	}
	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		return model.SessionDetails{}, err
	}
	return model.SessionDetails{Session: session, Logs: logs}, nil
}

// AddReading stores one reading log and advances the session. A session that is
// already READ keeps its state; the log is stored anyway.
func (s *Service) AddReading(ctx context.Context, actor auth.Principal, sessionID int64, req model.AddReadingRequest) (model.ReadingSession, error) {
	now := s.now()
	entry := model.ReadingLog{
		SessionID:     sessionID,
		DateOfReading: model.TruncateMinute(now),
		QuantityRead:  req.QuantityRead,
	}
	if err := s.logValidator.Validate(entry); err != nil {
		return model.ReadingSession{}, err
	}

	var completed bool
	session, saved, err := s.repo.AddReading(ctx, sessionID, func(rs *model.ReadingSession) (model.ReadingLog, error) {
		if err := validator.CheckAccess(actor, rs.UserID); err != nil {
			return model.ReadingLog{}, err
		}
		wasRead := rs.ReadingState == model.StateRead
		s.engine.AddProgress(rs, entry.QuantityRead)
		completed = !wasRead && rs.ReadingState == model.StateRead

		entry.UserID = rs.UserID
		return entry, nil
	})
	if err != nil {
		return model.ReadingSession{}, err
	}

	s.publish(ctx, kafka.ProgressAdded, session, saved.QuantityRead)
	if completed {
		s.publish(ctx, kafka.SessionCompleted, session, 0)
	}
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, actor auth.Principal, id int64) error {
	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if err := validator.CheckAccess(actor, session.UserID); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, id)
}

// publish is best effort: the change is already committed.
func (s *Service) publish(ctx context.Context, typ kafka.EventType, rs model.ReadingSession, quantity int) {
	ev := kafka.EventReading{
		Timestamp:            s.now().UTC(),
		UserID:               rs.UserID,
		SessionID:            rs.ID,
		BookID:               rs.BookID,
		EventType:            typ,
		QuantityRead:         quantity,
		TotalProgress:        rs.TotalProgress,
		ProgressInPercentage: rs.ProgressInPercentage,
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish reading event",
			zap.String("type", string(typ)),
			zap.Int64("session_id", rs.ID),
			zap.Error(err))
	}
}
