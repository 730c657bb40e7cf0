package update_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	"github.com/mentorhub/MH-SessionService/internal/service/sessions"
)

const (
	msgInvalidSessionID        = "некорректный ID сессии"
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgNotFound                = "сессия не найдена"
	msgMissingUserID           = "отсутствует ID пользователя"
	msgForbidden               = "доступ запрещен"
	msgEmptyUpdate             = "запрос не содержит полей для обновления"
	msgInvalidStatusTransition = "недопустимая смена статуса"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), sessionID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id} - Access denied: session_id=%d, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrEmptyUpdate):
			h.logger.Warn("PATCH /sessions/{id} - Empty update: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, sessions.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /sessions/{id} - Invalid status transition: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidStatusTransition)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id} - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /sessions/{id} - Failed to update session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id} - Session updated: session_id=%d, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
