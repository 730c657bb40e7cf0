package create_availability

import (
	"errors"
	"net/http"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	"github.com/mentorhub/MH-SessionService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMentorNotFound     = "ментор не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("POST /availability - Mentor not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability - Failed to create template: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Template created: template_id=%d, mentor_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
