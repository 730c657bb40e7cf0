package join_session

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
	msgInvalidSessionID   = "некорректный ID сессии"
	msgNotFound           = "сессия не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgJoinWindowClosed   = "подключение доступно от 24 часов до начала до 2 часов после начала"
	msgNotJoinable        = "сессия отменена или завершена"
	msgMeetingUnavailable = "видеокомната временно недоступна, попробуйте позже"
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

// Handle POST /api/v1/sessions/{sessionId}/join
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/join - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/join - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Join(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/join - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/join - Access denied: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrSessionNotJoinable):
			h.logger.Warn("POST /sessions/{id}/join - Not joinable: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgNotJoinable)

		case errors.Is(err, sessions.ErrJoinWindowClosed):
			h.logger.Warn("POST /sessions/{id}/join - Join window closed: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondBadRequest(w, msgJoinWindowClosed)

		case errors.Is(err, sessions.ErrMeetingUnavailable):
			h.logger.Error("POST /sessions/{id}/join - Meeting unavailable: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgMeetingUnavailable)

		default:
			h.logger.Error("POST /sessions/{id}/join - Failed to join: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/join - User joined: session_id=%d, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
