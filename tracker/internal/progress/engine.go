package progress

import (
	"math"
	"time"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
)

type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// AddProgress applies quantityRead to s in place. The quantity must already be
// validated as positive and the session as having a non-zero denominator.
// Calls on a READ session change nothing. Calls are additive, not idempotent.
func (e *Engine) AddProgress(s *model.ReadingSession, quantityRead int) {
	if s.ReadingState == model.StateRead {
		return
	}
	s.TotalProgress += quantityRead

	denominator := s.Denominator()
	now := e.now()

	if s.DailyGoal != 0 {
		remaining := denominator - s.TotalProgress
		daysLeft := math.Ceil(float64(remaining) / float64(s.DailyGoal))
		est := model.TruncateMinute(now.AddDate(0, 0, int(daysLeft)))
		s.EstimatedCompletionDate = &est
	}

	s.ProgressInPercentage = float64(s.TotalProgress) / float64(denominator) * 100

	if s.ProgressInPercentage >= 100.0 {
		done := model.TruncateMinute(now)
		end, est := done, done
		s.ProgressInPercentage = 100.0
		s.TotalProgress = denominator
		s.DailyGoal = 0
		s.ReadingState = model.StateRead
		s.EndReadingDate = &end
		s.EstimatedCompletionDate = &est
	}
}
