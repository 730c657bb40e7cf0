package availability

import (
	"context"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория шаблонов доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	GetActiveByMentor(ctx context.Context, mentorID int64) ([]*domain.AvailabilityTemplate, error)
	Deactivate(ctx context.Context, id int64) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetMentorByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
