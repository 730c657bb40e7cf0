package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	availabilityRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/availability"
	userRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
	"github.com/mentorhub/MH-SessionService/internal/service/availability/models"
	"github.com/mentorhub/MH-SessionService/pkg/types"
)

// Service сервис для работы с шаблонами доступности менторов
type Service struct {
	availabilityRepo AvailabilityRepository
	userRepo         UserRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Create создаёт шаблон доступности
// Шаблон создаёт только сам ментор для себя
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: creating availability template for mentor=%d, day=%d, %s-%s %s",
		req.UserID, req.DayOfWeek, req.StartTime, req.EndTime, req.Timezone)

	if _, err := s.userRepo.GetMentorByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Create: mentor=%d not found", req.UserID)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Create: failed to get mentor=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - failed to get mentor: %v", ErrInternal, err)
	}

	template, err := s.buildTemplate(req)
	if err != nil {
		s.logger.Warn("Create: invalid template for mentor=%d: %v", req.UserID, err)
		return nil, err
	}

	created, err := s.availabilityRepo.Create(ctx, template)
	if err != nil {
		s.logger.Error("Create: repository error for mentor=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created template id=%d for mentor=%d", created.ID, created.MentorID)
	return models.FromDomainTemplate(created), nil
}

// GetMentorTemplates получает активные шаблоны доступности ментора
func (s *Service) GetMentorTemplates(ctx context.Context, mentorID int64) (*models.TemplateListResponse, error) {
	s.logger.Info("GetMentorTemplates: fetching templates for mentor=%d", mentorID)

	if _, err := s.userRepo.GetMentorByID(ctx, mentorID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetMentorTemplates: mentor=%d not found", mentorID)
			return nil, ErrMentorNotFound
		}
		s.logger.Error("GetMentorTemplates: failed to get mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetMentorTemplates - failed to get mentor: %v", ErrInternal, err)
	}

	templates, err := s.availabilityRepo.GetActiveByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("GetMentorTemplates: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetMentorTemplates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorTemplates: successfully fetched %d templates for mentor=%d", len(templates), mentorID)
	return models.FromDomainTemplateList(templates), nil
}

// Deactivate деактивирует шаблон доступности
// Деактивировать шаблон может только его владелец. Уже забронированные
// сессии при этом не отменяются
func (s *Service) Deactivate(ctx context.Context, templateID int64, userID int64) error {
	s.logger.Info("Deactivate: deactivating template id=%d by user=%d", templateID, userID)

	template, err := s.availabilityRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			s.logger.Warn("Deactivate: template id=%d not found", templateID)
			return ErrTemplateNotFound
		}
		s.logger.Error("Deactivate: repository error for template id=%d: %v", templateID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	if template.MentorID != userID {
		s.logger.Warn("Deactivate: access denied for user=%d to template id=%d", userID, templateID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.Deactivate(ctx, templateID); err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("Deactivate: repository error for template id=%d: %v", templateID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated template id=%d", templateID)
	return nil
}

// buildTemplate валидирует запрос и собирает domain модель шаблона
func (s *Service) buildTemplate(req *models.CreateTemplateRequest) (*domain.AvailabilityTemplate, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, req.EndTime)
	}

	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil || req.Timezone == "" {
		return nil, fmt.Errorf("%w: invalid timezone %q", ErrInvalidInput, req.Timezone)
	}

	return &domain.AvailabilityTemplate{
		MentorID:  req.UserID,
		DayOfWeek: req.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		Timezone:  req.Timezone,
		IsActive:  true,
	}, nil
}
