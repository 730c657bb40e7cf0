package run_reminder_sweep

import (
	"context"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
)

// UseCase периодический прогон напоминаний о предстоящих сессиях.
// Журнала отправленных напоминаний нет: повторный прогон в пределах
// одного окна отправит письма повторно, поэтому интервал запуска
// планировщика должен быть не меньше ширины окна
type UseCase struct {
	sessionRepo  SessionRepository
	userRepo     UserRepository
	mailer       MailerClient
	timeProvider TimeProvider
	log          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	userRepo UserRepository,
	mailerClient MailerClient,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		mailer:       mailerClient,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute обходит окна напоминаний и рассылает письма обоим участникам
// каждой запланированной сессии, попавшей в окно. Ошибки по отдельным
// сессиям не прерывают прогон
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	resp := &Response{Windows: make([]WindowResult, 0, len(domain.ReminderWindows))}

	for _, window := range domain.ReminderWindows {
		from, to := window.Bounds(now)
		result := WindowResult{Type: window.Type}

		sessions, err := uc.sessionRepo.GetScheduledBetween(ctx, from, to)
		if err != nil {
			uc.log.Error("ReminderSweep: failed to query %s window [%s, %s): %v",
				window.Type, from.Format(time.RFC3339), to.Format(time.RFC3339), err)
			resp.Windows = append(resp.Windows, result)
			continue
		}

		result.SessionsFound = len(sessions)

		for _, session := range sessions {
			sent, failed := uc.remindParticipants(ctx, session, window.Type)
			result.EmailsSent += sent
			result.EmailsFailed += failed
		}

		uc.log.Info("ReminderSweep: %s window: %d sessions, %d emails sent, %d failed",
			window.Type, result.SessionsFound, result.EmailsSent, result.EmailsFailed)

		resp.Windows = append(resp.Windows, result)
	}

	return resp, nil
}

// remindParticipants отправляет напоминание студенту и ментору одной
// сессии, возвращает счётчики успешных и неуспешных отправок
func (uc *UseCase) remindParticipants(ctx context.Context, session *domain.Session, reminderType domain.ReminderType) (sent, failed int) {
	mentor, err := uc.userRepo.GetByID(ctx, session.MentorID)
	if err != nil {
		uc.log.Warn("remindParticipants: failed to get mentor %d for session %d: %v",
			session.MentorID, session.ID, err)
		return 0, 2
	}

	student, err := uc.userRepo.GetByID(ctx, session.StudentID)
	if err != nil {
		uc.log.Warn("remindParticipants: failed to get student %d for session %d: %v",
			session.StudentID, session.ID, err)
		return 0, 2
	}

	data := map[string]interface{}{
		"sessionId":       session.ID,
		"topic":           session.Topic,
		"scheduledAt":     session.ScheduledAt.Format(time.RFC3339),
		"durationMinutes": session.DurationMinutes,
		"mentorName":      mentor.Name,
		"studentName":     student.Name,
		"reminderType":    string(reminderType),
	}

	for _, recipient := range []*domain.User{student, mentor} {
		if err := uc.mailer.Send(ctx, recipient.Email, mailer.TemplateSessionReminder, data); err != nil {
			uc.log.Warn("remindParticipants: failed to send %s reminder to user %d for session %d: %v",
				reminderType, recipient.ID, session.ID, err)
			failed++
			continue
		}
		sent++
	}

	return sent, failed
}
