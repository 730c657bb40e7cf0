package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	userRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
)

// UseCase use case для получения доступных слотов ментора на дату
type UseCase struct {
	sessionRepo      SessionRepository
	availabilityRepo AvailabilityRepository
	userRepo         UserRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	availabilityRepo AvailabilityRepository,
	userRepo UserRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:      sessionRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d, date=%s, duration=%d",
		req.MentorID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что ментор существует
	if _, err := uc.userRepo.GetMentorByID(ctx, req.MentorID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// 4. Получаем активные шаблоны доступности на день недели даты
	templates, err := uc.availabilityRepo.GetActiveByMentorAndDay(ctx, req.MentorID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if len(templates) == 0 {
		uc.logger.Info("GetAvailableSlots: mentor=%d has no availability on weekday=%d",
			req.MentorID, int(req.Date.Weekday()))
		return &Response{
			MentorID: req.MentorID,
			Date:     req.Date,
			Status:   StatusMentorNotAvailable,
			Slots:    []domain.Slot{},
		}, nil
	}

	// 5. Генерируем кандидатов из окон доступности
	candidates, err := generateCandidates(templates, req.Date, duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	if len(candidates) == 0 {
		return &Response{
			MentorID: req.MentorID,
			Date:     req.Date,
			Timezone: templates[0].Timezone,
			Status:   StatusOK,
			Slots:    []domain.Slot{},
		}, nil
	}

	// 6. Получаем активные сессии ментора, пересекающие окно кандидатов
	from, to := queryWindow(candidates)
	sessions, err := uc.sessionRepo.GetActiveByMentorBetween(ctx, req.MentorID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 7. Размечаем доступность
	slots := markAvailability(candidates, sessions, now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for mentor=%d, date=%s",
		len(slots), req.MentorID, req.Date.Format(domain.DateFormat))

	return &Response{
		MentorID: req.MentorID,
		Date:     req.Date,
		Timezone: templates[0].Timezone,
		Status:   StatusOK,
		Slots:    slots,
	}, nil
}
