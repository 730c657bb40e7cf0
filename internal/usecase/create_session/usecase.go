package create_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	connectionstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/connection"
	sessionstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/session"
	userstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
	"github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
)

const (
	// roomMaxParticipants в комнате только ментор и студент
	roomMaxParticipants = 2
)

// UseCase бронирование сессии с ментором
type UseCase struct {
	sessionRepo    SessionRepository
	connectionRepo ConnectionRepository
	userRepo       UserRepository
	videoRooms     VideoRoomsClient
	mailer         MailerClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	log            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	connectionRepo ConnectionRepository,
	userRepo UserRepository,
	videoRooms VideoRoomsClient,
	mailerClient MailerClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:    sessionRepo,
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		videoRooms:     videoRooms,
		mailer:         mailerClient,
		txManager:      txManager,
		timeProvider:   timeProvider,
		log:            log,
	}
}

// Execute бронирует сессию: проверяет связь с ментором, лимиты и
// пересечения, создаёт запись в сериализуемой транзакции, после
// коммита заводит видеокомнату и рассылает уведомления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.log.Warn("CreateSession: invalid request: %v", err)
		return nil, err
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultSessionDurationMinutes
	}

	now := uc.timeProvider.Now()

	student, err := uc.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, userstorage.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrStudentNotFound, req.StudentID)
		}
		uc.log.Error("CreateSession: failed to get student %d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	mentor, err := uc.userRepo.GetMentorByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, userstorage.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrMentorNotFound, req.MentorID)
		}
		uc.log.Error("CreateSession: failed to get mentor %d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	conn, err := uc.connectionRepo.GetByMentorAndStudent(ctx, req.MentorID, req.StudentID)
	if err != nil {
		if errors.Is(err, connectionstorage.ErrConnectionNotFound) {
			return nil, fmt.Errorf("%w: mentor %d, student %d", ErrNoAcceptedConnection, req.MentorID, req.StudentID)
		}
		uc.log.Error("CreateSession: failed to get connection: %v", err)
		return nil, fmt.Errorf("%w: failed to get connection: %v", ErrInternal, err)
	}
	if !conn.IsAccepted() {
		return nil, fmt.Errorf("%w: connection status is %s", ErrNoAcceptedConnection, conn.Status)
	}

	var created *domain.Session
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return uc.bookInTx(ctx, req, now, &created)
	})
	if err != nil {
		if errors.Is(err, ErrGuardrailRejected) || errors.Is(err, ErrSlotConflict) {
			uc.log.Info("CreateSession: booking rejected for student %d: %v", req.StudentID, err)
			return nil, err
		}
		uc.log.Error("CreateSession: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: booking transaction failed: %v", ErrInternal, err)
	}

	// Побочные эффекты выполняются после коммита: их сбой не должен
	// откатывать подтверждённое бронирование
	uc.provisionMeetingRoom(ctx, created)
	uc.notifyParticipants(ctx, created, mentor, student)

	uc.log.Info("CreateSession: session %d booked: mentor %d, student %d, at %s",
		created.ID, created.MentorID, created.StudentID, created.ScheduledAt.Format(time.RFC3339))

	return &Response{Session: created}, nil
}

// bookInTx часть бронирования, выполняемая внутри сериализуемой
// транзакции: квоты и cooldown читаются и проверяются атомарно с
// проверкой пересечений и вставкой
func (uc *UseCase) bookInTx(ctx context.Context, req *Request, now time.Time, created **domain.Session) error {
	monthFrom, monthTo := monthBounds(now)
	sessionsThisMonth, err := uc.sessionRepo.CountQuotaSessionsInPeriod(ctx, req.StudentID, monthFrom, monthTo)
	if err != nil {
		return fmt.Errorf("failed to count monthly sessions: %w", err)
	}

	lastWithMentor, err := uc.sessionRepo.GetLastCreatedAtWithMentor(ctx, req.StudentID, req.MentorID)
	if err != nil {
		return fmt.Errorf("failed to get last booking with mentor: %w", err)
	}

	student, err := uc.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return fmt.Errorf("failed to re-read student: %w", err)
	}

	if rejection := CheckGuardrails(GuardrailInput{
		Now:                   now,
		RequestedStart:        req.ScheduledAt,
		RequestedDuration:     req.DurationMinutes,
		SubscriptionTier:      student.SubscriptionTier,
		SessionsThisMonth:     sessionsThisMonth,
		LastBookingWithMentor: lastWithMentor,
	}); rejection != nil {
		return &GuardrailError{Rejection: *rejection}
	}

	// Активные сессии ментора в запрошенном интервале читаются с
	// блокировкой строк, так что конкурирующее бронирование того же
	// слота либо увидит нашу вставку, либо упадёт на 40001 и повторится
	end := req.ScheduledAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
	overlapping, err := uc.sessionRepo.GetActiveByMentorBetween(ctx, req.MentorID, req.ScheduledAt, end)
	if err != nil {
		return fmt.Errorf("failed to check mentor schedule: %w", err)
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("%w: mentor %d already has a session in this interval", ErrSlotConflict, req.MentorID)
	}

	session := &domain.Session{
		MentorID:        req.MentorID,
		StudentID:       req.StudentID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.StatusScheduled,
		Topic:           req.Topic,
		Notes:           req.Notes,
	}

	*created, err = uc.sessionRepo.Create(ctx, session)
	if err != nil {
		if errors.Is(err, sessionstorage.ErrOverlapConstraint) {
			return fmt.Errorf("%w: mentor %d already has a session in this interval", ErrSlotConflict, req.MentorID)
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// provisionMeetingRoom создаёт видеокомнату для сессии. Сбой не
// считается фатальным: комната будет создана лениво при первом join
func (uc *UseCase) provisionMeetingRoom(ctx context.Context, session *domain.Session) {
	roomName := videorooms.RoomName(session.ID)
	expiry := session.EndsAt().Add(domain.JoinWindowAfter)

	room, err := uc.videoRooms.EnsureRoom(ctx, roomName, expiry, roomMaxParticipants)
	if err != nil {
		uc.log.Warn("provisionMeetingRoom: failed to create room for session %d: %v", session.ID, err)
		return
	}

	if err := uc.sessionRepo.SetMeetingURL(ctx, session.ID, room.URL); err != nil {
		uc.log.Warn("provisionMeetingRoom: failed to save meeting url for session %d: %v", session.ID, err)
		return
	}

	session.MeetingURL = &room.URL
}

// notifyParticipants отправляет письма студенту и ментору. Отправка
// best-effort: ошибки логируются и не влияют на результат бронирования
func (uc *UseCase) notifyParticipants(ctx context.Context, session *domain.Session, mentor, student *domain.User) {
	data := map[string]interface{}{
		"sessionId":       session.ID,
		"topic":           session.Topic,
		"scheduledAt":     session.ScheduledAt.Format(time.RFC3339),
		"durationMinutes": session.DurationMinutes,
		"mentorName":      mentor.Name,
		"studentName":     student.Name,
	}

	if err := uc.mailer.Send(ctx, student.Email, mailer.TemplateSessionBookedStudent, data); err != nil {
		uc.log.Warn("notifyParticipants: failed to notify student %d: %v", student.ID, err)
	}

	if err := uc.mailer.Send(ctx, mentor.Email, mailer.TemplateSessionBookedMentor, data); err != nil {
		uc.log.Warn("notifyParticipants: failed to notify mentor %d: %v", mentor.ID, err)
	}
}
