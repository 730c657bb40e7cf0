package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	sessionRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/session"
	"github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
	"github.com/mentorhub/MH-SessionService/internal/service/sessions/models"
)

const roomMaxParticipants = 2

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo  SessionRepository
	userRepo     UserRepository
	videoRooms   VideoRoomsClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	userRepo UserRepository,
	videoRooms VideoRoomsClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		videoRooms:   videoRooms,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает сессию по ID
// Сессия видна только её участникам - ментору и студенту
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !session.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to session id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// GetUserSessions получает историю сессий пользователя
// Опционально фильтрует по статусу и периоду, роль задаётся флагом asMentor
func (s *Service) GetUserSessions(ctx context.Context, req *models.GetUserSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetUserSessions: fetching sessions for user=%d, asMentor=%v, status=%v",
		req.UserID, req.AsMentor, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserSessions: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserSessions: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserSessions: successfully fetched %d sessions for user=%d", len(sessions), req.UserID)
	return models.FromDomainSessionList(sessions), nil
}

// Update частично обновляет сессию
// Статус меняется только из scheduled; оценку ставит студент завершённой
// сессии; studentNotes пишет студент, mentorFeedback - ментор.
// Чтение и запись выполняются в одной транзакции с блокировкой строки,
// чтобы конкурирующие PATCH не затирали чужие переходы статуса
func (s *Service) Update(ctx context.Context, sessionID int64, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Update: updating session id=%d by user=%d", sessionID, req.UserID)

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update for session id=%d", sessionID)
		return nil, ErrEmptyUpdate
	}

	var updated *domain.Session
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}

		if !session.IsParticipant(req.UserID) {
			return ErrAccessDenied
		}

		update, err := s.buildUpdate(session, req)
		if err != nil {
			return err
		}

		if err := s.sessionRepo.Update(ctx, sessionID, update); err != nil {
			return err
		}

		updated, err = s.sessionRepo.GetByID(ctx, sessionID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			s.logger.Warn("Update: session id=%d not found", sessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrInvalidInput),
			errors.Is(err, ErrInvalidStatusTransition):
			s.logger.Warn("Update: rejected for session id=%d: %v", sessionID, err)
			return nil, err
		default:
			s.logger.Error("Update: failed for session id=%d: %v", sessionID, err)
			return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated session id=%d", sessionID)
	return models.FromDomainSession(updated), nil
}

// Join выдаёт данные для подключения к видеокомнате сессии
// Подключение доступно участникам в окне от 24 часов до начала до 2 часов
// после начала. Если комната ещё не создана (создание при бронировании
// упало), она создаётся здесь
func (s *Service) Join(ctx context.Context, sessionID int64, userID int64) (*models.JoinSessionResponse, error) {
	s.logger.Info("Join: user=%d joining session id=%d", userID, sessionID)

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Join: session id=%d not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Join: repository error for session id=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	if !session.IsParticipant(userID) {
		s.logger.Warn("Join: access denied for user=%d to session id=%d", userID, sessionID)
		return nil, ErrAccessDenied
	}

	if !session.IsActive() {
		s.logger.Warn("Join: session id=%d is not joinable, status=%s", sessionID, session.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrSessionNotJoinable, session.Status)
	}

	now := s.timeProvider.Now()
	windowOpen := session.ScheduledAt.Add(-domain.JoinWindowBefore)
	windowClose := session.ScheduledAt.Add(domain.JoinWindowAfter)
	if now.Before(windowOpen) || now.After(windowClose) {
		s.logger.Warn("Join: join window closed for session id=%d (now=%s)", sessionID, now)
		return nil, ErrJoinWindowClosed
	}

	meetingURL, err := s.ensureMeetingURL(ctx, session)
	if err != nil {
		s.logger.Error("Join: failed to ensure room for session id=%d: %v", sessionID, err)
		return nil, ErrMeetingUnavailable
	}

	resp := &models.JoinSessionResponse{MeetingURL: meetingURL}

	// Токен опционален: при сбое выдачи участник получает только URL комнаты
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Join: failed to get user=%d for token, returning url only: %v", userID, err)
		return resp, nil
	}

	token, err := s.videoRooms.CreateJoinToken(ctx, videorooms.RoomName(session.ID), user.Name,
		userID == session.MentorID, windowClose)
	if err != nil {
		s.logger.Warn("Join: failed to create token for user=%d, session id=%d: %v", userID, sessionID, err)
		return resp, nil
	}

	resp.Token = &token
	s.logger.Info("Join: user=%d joined session id=%d", userID, sessionID)
	return resp, nil
}

// Вспомогательные методы

// buildUpdate валидирует запрос на обновление с учётом роли пользователя
// в сессии и собирает domain.SessionUpdate
func (s *Service) buildUpdate(session *domain.Session, req *models.UpdateSessionRequest) (domain.SessionUpdate, error) {
	var update domain.SessionUpdate
	isMentor := req.UserID == session.MentorID

	if req.Status != nil {
		newStatus, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			return update, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		if !session.CanTransitionTo(newStatus) {
			return update, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, session.Status, newStatus)
		}
		// Завершение и неявку фиксирует ментор, отменить может любой участник
		if newStatus != domain.StatusCancelled && !isMentor {
			return update, fmt.Errorf("%w: only the mentor can set status %s", ErrAccessDenied, newStatus)
		}
		update.Status = &newStatus
	}

	if req.Rating != nil {
		if isMentor {
			return update, fmt.Errorf("%w: only the student can rate a session", ErrAccessDenied)
		}
		if *req.Rating < domain.MinRating || *req.Rating > domain.MaxRating {
			return update, fmt.Errorf("%w: rating must be between %d and %d",
				ErrInvalidInput, domain.MinRating, domain.MaxRating)
		}
		// Оценка ставится завершённой сессии, в том числе завершаемой этим же запросом
		effectiveStatus := session.Status
		if update.Status != nil {
			effectiveStatus = *update.Status
		}
		if effectiveStatus != domain.StatusCompleted {
			return update, fmt.Errorf("%w: only completed sessions can be rated", ErrInvalidInput)
		}
		update.Rating = req.Rating
	}

	if req.Notes != nil {
		if len(*req.Notes) > domain.MaxNotesLength {
			return update, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		update.Notes = req.Notes
	}

	if req.StudentNotes != nil {
		if isMentor {
			return update, fmt.Errorf("%w: only the student can edit student notes", ErrAccessDenied)
		}
		if len(*req.StudentNotes) > domain.MaxNotesLength {
			return update, fmt.Errorf("%w: student notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		update.StudentNotes = req.StudentNotes
	}

	if req.MentorFeedback != nil {
		if !isMentor {
			return update, fmt.Errorf("%w: only the mentor can edit feedback", ErrAccessDenied)
		}
		if len(*req.MentorFeedback) > domain.MaxNotesLength {
			return update, fmt.Errorf("%w: mentor feedback must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		update.MentorFeedback = req.MentorFeedback
	}

	return update, nil
}

// ensureMeetingURL возвращает URL видеокомнаты, создавая комнату при
// необходимости и сохраняя URL в сессии
func (s *Service) ensureMeetingURL(ctx context.Context, session *domain.Session) (string, error) {
	if session.MeetingURL != nil {
		return *session.MeetingURL, nil
	}

	expiry := session.EndsAt().Add(domain.JoinWindowAfter)
	room, err := s.videoRooms.EnsureRoom(ctx, videorooms.RoomName(session.ID), expiry, roomMaxParticipants)
	if err != nil {
		return "", err
	}

	if err := s.sessionRepo.SetMeetingURL(ctx, session.ID, room.URL); err != nil {
		// URL уже есть, несохранение не мешает подключению
		s.logger.Warn("ensureMeetingURL: failed to persist url for session id=%d: %v", session.ID, err)
	}

	session.MeetingURL = &room.URL
	return room.URL, nil
}
