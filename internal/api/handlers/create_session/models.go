package create_session

import (
	"time"

	createSession "github.com/mentorhub/MH-SessionService/internal/usecase/create_session"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	MentorID        int64   `json:"mentorId"`
	ScheduledAt     string  `json:"scheduledAt"` // ISO 8601, например "2026-03-15T10:00:00Z"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Topic           string  `json:"topic"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSessionRequest) ToUseCaseRequest(studentID int64) (*createSession.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createSession.Request{
		StudentID:       studentID,
		MentorID:        r.MentorID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: r.DurationMinutes,
		Topic:           r.Topic,
		Notes:           r.Notes,
	}, nil
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	StudentID       int64   `json:"studentId"`
	ScheduledAt     string  `json:"scheduledAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Topic           string  `json:"topic"`
	MeetingURL      *string `json:"meetingUrl,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// RejectionResponse HTTP модель отказа бронирования
type RejectionResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
	s := resp.Session
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
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}
