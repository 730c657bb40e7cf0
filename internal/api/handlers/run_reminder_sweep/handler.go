package run_reminder_sweep

import (
	"net/http"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
)

type Handler struct {
	useCase RunReminderSweepUseCase
	logger  Logger
}

func NewHandler(useCase RunReminderSweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// WindowResponse итог обработки одного окна напоминаний
type WindowResponse struct {
	Type          string `json:"type"`
	SessionsFound int    `json:"sessionsFound"`
	EmailsSent    int    `json:"emailsSent"`
	EmailsFailed  int    `json:"emailsFailed"`
}

// SweepResponse HTTP ответ с итогами прогона
type SweepResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Handle POST /internal/v1/reminders/sweep
// Вызывается внешним планировщиком, защищён общим секретом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := SweepResponse{Windows: make([]WindowResponse, 0, len(result.Windows))}
	for _, window := range result.Windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			Type:          string(window.Type),
			SessionsFound: window.SessionsFound,
			EmailsSent:    window.EmailsSent,
			EmailsFailed:  window.EmailsFailed,
		})
	}

	h.logger.Info("POST /internal/reminders/sweep - Sweep completed: windows=%d", len(resp.Windows))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
