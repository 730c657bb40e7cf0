package create_availability

import (
	"context"

	"github.com/mentorhub/MH-SessionService/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
