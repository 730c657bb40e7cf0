package domain

import (
	"time"

	"github.com/mentorhub/MH-SessionService/pkg/types"
)

// AvailabilityTemplate represents one recurring weekly availability window of a mentor
// Шаблон задаёт день недели и интервал времени стены в таймзоне ментора.
// Шаблоны деактивируются, а не удаляются физически.
type AvailabilityTemplate struct {
	ID        int64
	MentorID  int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday, как time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Timezone  string // IANA, например "Europe/Berlin"
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the template timezone
func (t *AvailabilityTemplate) Location() (*time.Location, error) {
	return time.LoadLocation(t.Timezone)
}

// IsEmptyWindow returns true if the window cannot produce any slot
// Интервалы через полночь (end <= start) считаются пустыми
func (t *AvailabilityTemplate) IsEmptyWindow() bool {
	return !t.StartTime.IsBefore(t.EndTime)
}

// MatchesDay returns true if the template applies to the given weekday
func (t *AvailabilityTemplate) MatchesDay(day time.Weekday) bool {
	return t.DayOfWeek == int(day)
}
