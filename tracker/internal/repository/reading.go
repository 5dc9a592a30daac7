package repository

import (
	"context"
	"strings"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var sessionColumns = []string{
	"id", "book_id", "user_id", "pages", "chapters", "tracking_method", "total_progress",
	"progress_in_percentage", "daily_goal", "reading_state", "start_reading_date", "end_reading_date",
	"estimated_completion_date",
}

var logColumns = []string{"id", "session_id", "user_id", "date_of_reading", "quantity_read"}

func (r *repository) CreateSession(ctx context.Context, s model.ReadingSession) (model.ReadingSession, error) {
	query, args, err := qb.Insert(sessionsTableName).
		Columns("book_id", "user_id", "pages", "chapters", "tracking_method", "total_progress",
			"progress_in_percentage", "daily_goal", "reading_state", "start_reading_date", "end_reading_date",
			"estimated_completion_date").
		Values(s.BookID, s.UserID, s.Pages, s.Chapters, s.TrackingMethod, s.TotalProgress,
			s.ProgressInPercentage, s.DailyGoal, s.ReadingState, s.StartReadingDate, s.EndReadingDate,
			s.EstimatedCompletionDate).
		Suffix("returning " + strings.Join(sessionColumns, ", ")).
		ToSql()
	if err != nil {
		return model.ReadingSession{}, err
	}

	var created model.ReadingSession
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateSession", zap.String("q", query), zap.Error(err))
		return model.ReadingSession{}, mapErr(err, "CreateSession")
	}
	return created, nil
}

func (r *repository) GetSession(ctx context.Context, id int64) (model.ReadingSession, error) {
	query, args, err := qb.Select(sessionColumns...).
		From(sessionsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.ReadingSession{}, err
	}

	var s model.ReadingSession
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		return model.ReadingSession{}, mapErr(err, "GetSession")
	}
	return s, nil
}

// ListSessions returns the sessions of a book; an empty userID means every owner.
func (r *repository) ListSessions(ctx context.Context, bookID int64, userID string) ([]model.ReadingSession, error) {
	q := qb.Select(sessionColumns...).
		From(sessionsTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("start_reading_date desc", "id")
	if userID != "" {
		q = q.Where(sq.Eq{"user_id": userID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.ReadingSession, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, mapErr(err, "ListSessions")
	}
	return items, nil
}

func (r *repository) ListLogs(ctx context.Context, sessionID int64) ([]model.ReadingLog, error) {
	query, args, err := qb.Select(logColumns...).
		From(logsTableName).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("date_of_reading", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]model.ReadingLog, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, mapErr(err, "ListLogs")
	}
	return items, nil
}

func (r *repository) DeleteSession(ctx context.Context, id int64) error {
	query, args, err := qb.Delete(sessionsTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "DeleteSession")
	}
	return affected(res, "DeleteSession")
}

// AddReading locks the session row, lets apply mutate it and stores the
// returned log together with the new session state in one transaction.
func (r *repository) AddReading(ctx context.Context, sessionID int64, apply ApplyFunc) (model.ReadingSession, model.ReadingLog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, errors.Wrap(err, "AddReading begin")
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := qb.Select(sessionColumns...).
		From(sessionsTableName).
		Where(sq.Eq{"id": sessionID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, err
	}
	var s model.ReadingSession
	if err := tx.GetContext(ctx, &s, query, args...); err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, mapErr(err, "AddReading lock")
	}

	l, err := apply(&s)
	if err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, err
	}

	query, args, err = qb.Insert(logsTableName).
		Columns("session_id", "user_id", "date_of_reading", "quantity_read").
		Values(s.ID, l.UserID, l.DateOfReading, l.QuantityRead).
		Suffix("returning " + strings.Join(logColumns, ", ")).
		ToSql()
	if err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, err
	}
	var saved model.ReadingLog
	if err := tx.GetContext(ctx, &saved, query, args...); err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, mapErr(err, "AddReading log")
	}

	query, args, err = qb.Update(sessionsTableName).
		SetMap(map[string]interface{}{
			"total_progress":            s.TotalProgress,
			"progress_in_percentage":    s.ProgressInPercentage,
			"daily_goal":                s.DailyGoal,
			"reading_state":             s.ReadingState,
			"end_reading_date":          s.EndReadingDate,
			"estimated_completion_date": s.EstimatedCompletionDate,
		}).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, mapErr(err, "AddReading session")
	}

	if err := tx.Commit(); err != nil {
		return model.ReadingSession{}, model.ReadingLog{}, errors.Wrap(err, "AddReading commit")
	}
	r.log.Debug("reading added",
		zap.Int64("session_id", s.ID),
		zap.Int("quantity", saved.QuantityRead),
		zap.Int("total", s.TotalProgress))
	return s, saved, nil
}
