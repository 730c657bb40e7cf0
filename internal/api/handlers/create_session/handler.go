package create_session

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
	"github.com/mentorhub/MH-SessionService/internal/api/middleware"
	createSession "github.com/mentorhub/MH-SessionService/internal/usecase/create_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат scheduledAt, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgStudentNotFound    = "студент не найден"
	msgMentorNotFound     = "ментор не найден"
	msgNoConnection       = "нет принятой связи с этим ментором"
	msgSlotConflict       = "выбранное время пересекается с другой сессией ментора"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse scheduledAt %q: %v", req.ScheduledAt, err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var guardrailErr *createSession.GuardrailError
		switch {
		case errors.As(err, &guardrailErr):
			h.respondGuardrailRejection(w, guardrailErr, studentID, req.MentorID)

		case errors.Is(err, createSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createSession.ErrStudentNotFound):
			h.logger.Warn("POST /sessions - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createSession.ErrMentorNotFound):
			h.logger.Warn("POST /sessions - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createSession.ErrNoAcceptedConnection):
			h.logger.Warn("POST /sessions - No accepted connection: student_id=%d, mentor_id=%d",
				studentID, req.MentorID)
			handlers.RespondForbidden(w, msgNoConnection)

		case errors.Is(err, createSession.ErrSlotConflict):
			h.logger.Warn("POST /sessions - Slot conflict: student_id=%d, mentor_id=%d, at=%s",
				studentID, req.MentorID, req.ScheduledAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		default:
			h.logger.Error("POST /sessions - Failed to create session: student_id=%d, mentor_id=%d, error=%v",
				studentID, req.MentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%d, student_id=%d, mentor_id=%d",
		result.Session.ID, studentID, req.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondGuardrailRejection мапит отказ бронирования на HTTP ответ:
// временные отказы (квота, cooldown) отдаются как 429 с Retry-After,
// остальные как 400
func (h *Handler) respondGuardrailRejection(w http.ResponseWriter, guardrailErr *createSession.GuardrailError, studentID, mentorID int64) {
	rejection := guardrailErr.Rejection
	h.logger.Warn("POST /sessions - Booking rejected: student_id=%d, mentor_id=%d, reason=%s",
		studentID, mentorID, rejection.Reason)

	status := http.StatusBadRequest
	if rejection.Reason.IsRateLimit() {
		status = http.StatusTooManyRequests
		if rejection.RetryAfter != nil {
			seconds := int(math.Ceil(rejection.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
		}
	}

	handlers.RespondJSON(w, status, RejectionResponse{
		Error:  rejection.Message,
		Reason: string(rejection.Reason),
	})
}
