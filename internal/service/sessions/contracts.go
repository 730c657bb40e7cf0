package sessions

import (
	"context"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByUserWithFilter(ctx context.Context, filter domain.UserSessionsFilter) ([]*domain.Session, error)
	Update(ctx context.Context, id int64, update domain.SessionUpdate) error
	SetMeetingURL(ctx context.Context, id int64, url string) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// VideoRoomsClient интерфейс клиента провайдера видеокомнат
type VideoRoomsClient interface {
	EnsureRoom(ctx context.Context, name string, expiry time.Time, maxParticipants int) (*videorooms.Room, error)
	CreateJoinToken(ctx context.Context, roomName, userName string, isOwner bool, expiry time.Time) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
