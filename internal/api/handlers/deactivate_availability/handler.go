package deactivate_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	"github.com/mentorhub/MH-SessionService/internal/service/availability"
)

const (
	msgInvalidTemplateID = "некорректный ID шаблона"
	msgNotFound          = "шаблон доступности не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/availability/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Deactivate(r.Context(), templateID, userID); err != nil {
		switch {
		case errors.Is(err, availability.ErrTemplateNotFound):
			h.logger.Warn("DELETE /availability/{id} - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: template_id=%d, user_id=%d",
				templateID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to deactivate: template_id=%d, error=%v",
				templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Template deactivated: template_id=%d, user_id=%d",
		templateID, userID)
	w.WriteHeader(http.StatusNoContent)
}
