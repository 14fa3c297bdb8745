package model

import (
	"fmt"
	"strings"
	"time"

	"calentry/internal/segfield"
)

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

func NewDate(day, month, year int) DateTime {
	return DateTime{Date: fmt.Sprintf("%04d-%02d-%02d", year, month, day)}
}

func NewDateTime(day, month, year, hours, minutes int) DateTime {
	dt := NewDate(day, month, year)
	hm := fmt.Sprintf("%02d:%02d", hours, minutes)
	dt.Time = &hm
	return dt
}

func (dt DateTime) AllDay() bool {
	return dt.Time == nil || strings.TrimSpace(*dt.Time) == ""
}

// In resolves dt to an instant in loc. All-day values resolve to midnight.
func (dt DateTime) In(loc *time.Location) (time.Time, error) {
	if dt.AllDay() {
		return time.ParseInLocation("2006-01-02", strings.TrimSpace(dt.Date), loc)
	}
	return time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(dt.Date)+" "+strings.TrimSpace(*dt.Time), loc)
}

func (dt DateTime) String() string {
	if dt.AllDay() {
		return dt.Date
	}
	return dt.Date + " " + *dt.Time
}

// Display renders the date in a date pattern ("%d/%m/%Y"), followed by the
// time when there is one. Unparseable values fall back to String.
func (dt DateTime) Display(pattern string) string {
	t, err := dt.In(time.UTC)
	if err != nil {
		return dt.String()
	}
	f, err := segfield.NewDate(pattern)
	if err != nil {
		return dt.String()
	}
	if dt.AllDay() {
		return f.Format(t)
	}
	return f.Format(t) + " " + t.Format("15:04")
}

// Event is a locally drafted calendar event.
type Event struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Notes     string    `json:"notes,omitempty"`
	Start     DateTime  `json:"start"`
	CreatedAt time.Time `json:"createdAt"`
}
