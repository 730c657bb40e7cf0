package create_session

import (
	"context"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
	"github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetActiveByMentorBetween(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.Session, error)
	CountQuotaSessionsInPeriod(ctx context.Context, studentID int64, from, to time.Time) (int, error)
	GetLastCreatedAtWithMentor(ctx context.Context, studentID, mentorID int64) (*time.Time, error)
	SetMeetingURL(ctx context.Context, id int64, url string) error
}

// ConnectionRepository интерфейс репозитория связей ментор-студент
type ConnectionRepository interface {
	GetByMentorAndStudent(ctx context.Context, mentorID, studentID int64) (*domain.Connection, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetMentorByID(ctx context.Context, id int64) (*domain.User, error)
}

// VideoRoomsClient интерфейс клиента провайдера видеокомнат
type VideoRoomsClient interface {
	EnsureRoom(ctx context.Context, name string, expiry time.Time, maxParticipants int) (*videorooms.Room, error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	Send(ctx context.Context, to string, template mailer.Template, data map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
