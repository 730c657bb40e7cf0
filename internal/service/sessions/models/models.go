package models

import (
	"errors"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// UpdateSessionRequest частичное обновление сессии: непустые поля применяются,
// nil-поля не трогаются
type UpdateSessionRequest struct {
	UserID         int64   `json:"userId"`
	Status         *string `json:"status,omitempty"`
	Rating         *int    `json:"rating,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	StudentNotes   *string `json:"studentNotes,omitempty"`
	MentorFeedback *string `json:"mentorFeedback,omitempty"`
}

// IsEmpty проверяет, что запрос не содержит ни одного поля для обновления
func (r *UpdateSessionRequest) IsEmpty() bool {
	return r.Status == nil && r.Rating == nil && r.Notes == nil &&
		r.StudentNotes == nil && r.MentorFeedback == nil
}

// GetUserSessionsRequest запрос на получение сессий пользователя
type GetUserSessionsRequest struct {
	UserID    int64      `json:"userId"`
	AsMentor  bool       `json:"asMentor,omitempty"`
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserSessionsRequest) ToDomainFilter() (domain.UserSessionsFilter, error) {
	filter := domain.UserSessionsFilter{
		UserID:    r.UserID,
		AsMentor:  r.AsMentor,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	StudentID       int64   `json:"studentId"`
	ScheduledAt     string  `json:"scheduledAt"` // ISO 8601
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Topic           string  `json:"topic"`
	MeetingURL      *string `json:"meetingUrl,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	StudentNotes    *string `json:"studentNotes,omitempty"`
	MentorFeedback  *string `json:"mentorFeedback,omitempty"`
	Rating          *int    `json:"rating,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// JoinSessionResponse данные для подключения к видеокомнате сессии
type JoinSessionResponse struct {
	MeetingURL string  `json:"meetingUrl"`
	Token      *string `json:"token,omitempty"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:              s.ID,
		MentorID:        s.MentorID,
		StudentID:       s.StudentID,
		ScheduledAt:     s.ScheduledAt.Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		Topic:           s.Topic,
		MeetingURL:      s.MeetingURL,
		Notes:           s.Notes,
		StudentNotes:    s.StudentNotes,
		MentorFeedback:  s.MentorFeedback,
		Rating:          s.Rating,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, *FromDomainSession(s))
	}
	return resp
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus
func ToDomainSessionStatus(s string) (domain.SessionStatus, error) {
	switch domain.SessionStatus(s) {
	case domain.StatusScheduled:
		return domain.StatusScheduled, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}
