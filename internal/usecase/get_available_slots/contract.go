package get_available_slots

import (
	"context"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// GetActiveByMentorBetween получает активные сессии ментора, пересекающие [from, to)
	GetActiveByMentorBetween(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.Session, error)
}

// AvailabilityRepository интерфейс репозитория шаблонов доступности
type AvailabilityRepository interface {
	GetActiveByMentorAndDay(ctx context.Context, mentorID int64, dayOfWeek int) ([]*domain.AvailabilityTemplate, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetMentorByID(ctx context.Context, id int64) (*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
