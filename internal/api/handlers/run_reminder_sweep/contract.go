package run_reminder_sweep

import (
	"context"

	runReminderSweep "github.com/mentorhub/MH-SessionService/internal/usecase/run_reminder_sweep"
)

type RunReminderSweepUseCase interface {
	Execute(ctx context.Context) (*runReminderSweep.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
