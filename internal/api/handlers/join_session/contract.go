package join_session

import (
	"context"

	"github.com/mentorhub/MH-SessionService/internal/service/sessions/models"
)

type SessionService interface {
	Join(ctx context.Context, sessionID int64, userID int64) (*models.JoinSessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
