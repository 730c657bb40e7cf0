package run_reminder_sweep

import (
	"context"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	Send(ctx context.Context, to string, template mailer.Template, data map[string]interface{}) error
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
