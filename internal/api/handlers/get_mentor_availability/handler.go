package get_mentor_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/service/availability"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMentorNotFound  = "ментор не найден"
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

// Handle GET /api/v1/mentors/{mentorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.GetMentorTemplates(r.Context(), mentorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/availability - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		default:
			h.logger.Error("GET /mentors/{id}/availability - Failed to get templates: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/availability - Templates retrieved: mentor_id=%d, count=%d",
		mentorID, len(result.Templates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
