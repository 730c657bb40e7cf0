package create_session

import (
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// Request запрос на бронирование сессии
type Request struct {
	StudentID       int64
	MentorID        int64
	ScheduledAt     time.Time
	DurationMinutes int
	Topic           string
	Notes           *string
}

// Response результат бронирования
type Response struct {
	Session *domain.Session
}
