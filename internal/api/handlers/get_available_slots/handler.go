package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/domain"
	getAvailableSlots "github.com/mentorhub/MH-SessionService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingDate     = "отсутствует параметр date"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность сессии"
	msgMentorNotFound  = "ментор не найден"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/slots?date=YYYY-MM-DD&durationMinutes=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /mentors/{id}/slots - Missing date: mentor_id=%d", mentorID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationMinutes := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /mentors/{id}/slots - Invalid duration %q: %v", durationStr, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		MentorID:        mentorID,
		Date:            date,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/slots - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /mentors/{id}/slots - Failed to get slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/slots - Slots retrieved: mentor_id=%d, date=%s, slots=%d",
		mentorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
