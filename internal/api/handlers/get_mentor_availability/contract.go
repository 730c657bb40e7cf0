package get_mentor_availability

import (
	"context"

	"github.com/mentorhub/MH-SessionService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetMentorTemplates(ctx context.Context, mentorID int64) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
