package update_session

import (
	"context"

	"github.com/mentorhub/MH-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	Update(ctx context.Context, sessionID int64, req *models.UpdateSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
