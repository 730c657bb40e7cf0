package domain

import "time"

// SessionStatus represents the status of a mentoring session
type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
	StatusNoShow    SessionStatus = "no_show"
)

// Session represents a 1:1 mentoring session between a mentor and a student
// ScheduledAt неизменяемо после создания: переноса не существует,
// единственный путь — отмена и новое бронирование
type Session struct {
	ID              int64
	MentorID        int64
	StudentID       int64
	ScheduledAt     time.Time
	DurationMinutes int
	Status          SessionStatus
	Topic           string

	// MeetingURL ссылка на видеокомнату; nil, пока комната не создана
	// (создание комнаты не фатально для бронирования и догоняется при join)
	MeetingURL *string

	Notes          *string
	StudentNotes   *string
	MentorFeedback *string
	Rating         *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the end instant of the session interval
func (s *Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsActive returns true if the session still occupies its time interval
func (s *Session) IsActive() bool {
	return s.Status == StatusScheduled
}

// IsParticipant returns true if the user is the mentor or the student of the session
func (s *Session) IsParticipant(userID int64) bool {
	return s.MentorID == userID || s.StudentID == userID
}

// CanTransitionTo проверяет допустимость перехода статуса
// scheduled -> completed | cancelled | no_show; терминальные статусы неизменяемы
func (s *Session) CanTransitionTo(next SessionStatus) bool {
	if s.Status != StatusScheduled {
		return false
	}
	switch next {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// Overlaps returns true if the session interval strictly overlaps [start, end)
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (s *Session) Overlaps(start, end time.Time) bool {
	return s.ScheduledAt.Before(end) && s.EndsAt().After(start)
}

// SessionUpdate набор изменяемых полей сессии для PATCH
// nil-поле означает "не менять"
type SessionUpdate struct {
	Status         *SessionStatus
	Rating         *int
	Notes          *string
	StudentNotes   *string
	MentorFeedback *string
}

// IsEmpty returns true if the update does not change anything
func (u *SessionUpdate) IsEmpty() bool {
	return u.Status == nil && u.Rating == nil && u.Notes == nil &&
		u.StudentNotes == nil && u.MentorFeedback == nil
}

// UserSessionsFilter фильтр для получения сессий пользователя
type UserSessionsFilter struct {
	UserID    int64          // Обязательный параметр
	AsMentor  bool           // true - сессии, где пользователь ментор; false - где студент
	Status    *SessionStatus // Фильтр по статусу (опционально)
	StartDate *time.Time     // Начало периода по scheduled_at (опционально)
	EndDate   *time.Time     // Конец периода по scheduled_at (опционально)
}
