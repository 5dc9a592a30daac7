package progress_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/Astemirdum/book-tracker/tracker/internal/progress"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2024, 3, 10, 12, 34, 56, 789, time.UTC)

func fixedNow() time.Time { return clock }

func intPtr(v int) *int { return &v }

func newSession(pages int, goal int) *model.ReadingSession {
	return &model.ReadingSession{
		ID:               1,
		BookID:           1,
		UserID:           "u-1",
		Pages:            pages,
		TrackingMethod:   model.TrackingPages,
		DailyGoal:        goal,
		ReadingState:     model.StateReading,
		StartReadingDate: clock.Add(-72 * time.Hour).Truncate(time.Minute),
	}
}

func TestEngine_AddProgress(t *testing.T) {
	t.Parallel()
	minute := clock.Truncate(time.Minute)

	type want struct {
		total     int
		percent   float64
		goal      int
		state     model.ReadingState
		end       *time.Time
		estimated *time.Time
	}
	oneDay := minute.AddDate(0, 0, 1)
	twoDays := minute.AddDate(0, 0, 2)

	tests := []struct {
		name    string
		session func() *model.ReadingSession
		qty     int
		want    want
	}{
		{
			name:    "exact completion",
			session: func() *model.ReadingSession { return newSession(200, 0) },
			qty:     200,
			want:    want{total: 200, percent: 100, goal: 0, state: model.StateRead, end: &minute, estimated: &minute},
		},
		{
			name:    "overshoot clamps",
			session: func() *model.ReadingSession { return newSession(200, 0) },
			qty:     250,
			want:    want{total: 200, percent: 100, goal: 0, state: model.StateRead, end: &minute, estimated: &minute},
		},
		{
			name: "projection rounds days up",
			session: func() *model.ReadingSession {
				s := newSession(100, 3)
				s.TotalProgress = 95
				s.ProgressInPercentage = 95
				return s
			},
			qty:  1,
			want: want{total: 96, percent: 96, goal: 3, state: model.StateReading, estimated: &twoDays},
		},
		{
			name: "zero goal keeps previous projection",
			session: func() *model.ReadingSession {
				s := newSession(100, 0)
				s.EstimatedCompletionDate = &twoDays
				return s
			},
			qty:  10,
			want: want{total: 10, percent: 10, goal: 0, state: model.StateReading, estimated: &twoDays},
		},
		{
			name: "completion overrides projection",
			session: func() *model.ReadingSession {
				s := newSession(100, 5)
				s.TotalProgress = 90
				return s
			},
			qty:  10,
			want: want{total: 100, percent: 100, goal: 0, state: model.StateRead, end: &minute, estimated: &minute},
		},
		{
			name: "chapters denominator",
			session: func() *model.ReadingSession {
				s := newSession(300, 0)
				s.TrackingMethod = model.TrackingChapters
				s.Chapters = intPtr(10)
				return s
			},
			qty:  5,
			want: want{total: 5, percent: 50, goal: 0, state: model.StateReading},
		},
		{
			name: "chapters projection counts remaining chapters",
			session: func() *model.ReadingSession {
				s := newSession(300, 4)
				s.TrackingMethod = model.TrackingChapters
				s.Chapters = intPtr(10)
				s.TotalProgress = 4
				s.ProgressInPercentage = 40
				return s
			},
			qty:  2,
			want: want{total: 6, percent: 60, goal: 4, state: model.StateReading, estimated: &oneDay},
		},
		{
			name: "chapters completion clamps to chapters",
			session: func() *model.ReadingSession {
				s := newSession(300, 0)
				s.TrackingMethod = model.TrackingChapters
				s.Chapters = intPtr(10)
				return s
			},
			qty:  12,
			want: want{total: 10, percent: 100, goal: 0, state: model.StateRead, end: &minute, estimated: &minute},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := progress.NewEngine(fixedNow)
			s := tt.session()
			e.AddProgress(s, tt.qty)

			require.Equal(t, tt.want.total, s.TotalProgress)
			require.InDelta(t, tt.want.percent, s.ProgressInPercentage, 1e-9)
			require.Equal(t, tt.want.goal, s.DailyGoal)
			require.Equal(t, tt.want.state, s.ReadingState)
			require.Equal(t, tt.want.end, s.EndReadingDate)
			require.Equal(t, tt.want.estimated, s.EstimatedCompletionDate)
		})
	}
}

func TestEngine_AddProgress_Accumulates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		pages int
		steps []int
	}{
		{name: "below target", pages: 100, steps: []int{10, 20, 30}},
		{name: "reaches target", pages: 100, steps: []int{40, 60}},
		{name: "passes target midway", pages: 50, steps: []int{30, 30, 5, 1}},
		{name: "single page steps", pages: 7, steps: []int{1, 1, 1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := progress.NewEngine(fixedNow)
			s := newSession(tt.pages, 0)

			sum, reached := 0, false
			for _, q := range tt.steps {
				e.AddProgress(s, q)
				sum += q
				if sum >= tt.pages {
					reached = true
				}

				require.GreaterOrEqual(t, s.ProgressInPercentage, 0.0)
				require.LessOrEqual(t, s.ProgressInPercentage, 100.0)
				require.Equal(t, s.ProgressInPercentage == 100.0, s.ReadingState == model.StateRead)
			}

			expected := sum
			if expected > tt.pages {
				expected = tt.pages
			}
			require.Equal(t, expected, s.TotalProgress)
			require.Equal(t, reached, s.ReadingState == model.StateRead)
		})
	}
}

func TestEngine_AddProgress_ReadSessionIsFrozen(t *testing.T) {
	t.Parallel()
	now := clock
	e := progress.NewEngine(func() time.Time { return now })
	s := newSession(100, 4)
	e.AddProgress(s, 100)
	require.Equal(t, model.StateRead, s.ReadingState)

	before := *s
	now = now.Add(48 * time.Hour)
	e.AddProgress(s, 5)
	e.AddProgress(s, 500)

	require.Equal(t, before, *s)
}

func TestEngine_AddProgress_NotIdempotent(t *testing.T) {
	t.Parallel()
	e := progress.NewEngine(fixedNow)
	s := newSession(100, 0)

	e.AddProgress(s, 10)
	e.AddProgress(s, 10)

	require.Equal(t, 20, s.TotalProgress)
	require.InDelta(t, 20.0, s.ProgressInPercentage, 1e-9)
}
