package model

import "time"

type TrackingMethod string

const (
	TrackingPages    TrackingMethod = "PAGES"
	TrackingChapters TrackingMethod = "CHAPTERS"
)

type ReadingState string

const (
	StateToRead  ReadingState = "TO_READ"
	StateReading ReadingState = "READING"
	StateRead    ReadingState = "READ"
)

type ReadingSession struct {
	ID                      int64          `json:"id" db:"id"`
	BookID                  int64          `json:"bookId" db:"book_id"`
	UserID                  string         `json:"userId" db:"user_id"`
	Pages                   int            `json:"pages" db:"pages"`
	Chapters                *int           `json:"chapters,omitempty" db:"chapters"`
	TrackingMethod          TrackingMethod `json:"trackingMethod" db:"tracking_method"`
	TotalProgress           int            `json:"totalProgress" db:"total_progress"`
	ProgressInPercentage    float64        `json:"progressInPercentage" db:"progress_in_percentage"`
	DailyGoal               int            `json:"dailyGoal" db:"daily_goal"`
	ReadingState            ReadingState   `json:"readingState" db:"reading_state"`
	StartReadingDate        time.Time      `json:"startReadingDate" db:"start_reading_date"`
	EndReadingDate          *time.Time     `json:"endReadingDate,omitempty" db:"end_reading_date"`
	EstimatedCompletionDate *time.Time     `json:"estimatedCompletionDate,omitempty" db:"estimated_completion_date"`
}

// Denominator is the unit count that stands for 100% under the session's tracking method.
func (s *ReadingSession) Denominator() int {
	if s.TrackingMethod == TrackingChapters {
		if s.Chapters == nil {
			return 0
		}
		return *s.Chapters
	}
	return s.Pages
}

type ReadingSessionRequest struct {
	TrackingMethod          TrackingMethod `json:"trackingMethod" validate:"omitempty,oneof=PAGES CHAPTERS"`
	DailyGoal               int            `json:"dailyGoal"`
	StartReadingDate        *time.Time     `json:"startReadingDate"`
	EstimatedCompletionDate *time.Time     `json:"estimatedCompletionDate"`
}

// NewReadingSession snapshots the book size into a fresh session owned by userID.
func NewReadingSession(book Book, userID string, req ReadingSessionRequest, now time.Time) ReadingSession {
	method := req.TrackingMethod
	if method == "" {
		method = TrackingPages
	}
	start := now
	if req.StartReadingDate != nil {
		start = *req.StartReadingDate
	}
	var chapters *int
	if book.Chapters != nil {
		c := *book.Chapters
		chapters = &c
	}
	s := ReadingSession{
		BookID:           book.ID,
		UserID:           userID,
		Pages:            book.Pages,
		Chapters:         chapters,
		TrackingMethod:   method,
		DailyGoal:        req.DailyGoal,
		ReadingState:     StateReading,
		StartReadingDate: TruncateMinute(start),
	}
	if req.EstimatedCompletionDate != nil {
		est := TruncateMinute(*req.EstimatedCompletionDate)
		s.EstimatedCompletionDate = &est
	}
	return s
}

type ReadingLog struct {
	ID            int64     `json:"id" db:"id"`
	SessionID     int64     `json:"sessionId" db:"session_id"`
	UserID        string    `json:"userId" db:"user_id"`
	DateOfReading time.Time `json:"dateOfReading" db:"date_of_reading"`
	QuantityRead  int       `json:"quantityRead" db:"quantity_read"`
}

type AddReadingRequest struct {
	QuantityRead int `json:"quantityRead"`
}

type SessionDetails struct {
	Session ReadingSession `json:"session"`
	Logs    []ReadingLog   `json:"logs"`
}

// TruncateMinute drops seconds and below, in UTC.
func TruncateMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
