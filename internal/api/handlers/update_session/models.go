package update_session

import "github.com/mentorhub/MH-SessionService/internal/service/sessions/models"

// UpdateSessionRequest HTTP request model
type UpdateSessionRequest struct {
	Status         *string `json:"status,omitempty"`
	Rating         *int    `json:"rating,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	StudentNotes   *string `json:"studentNotes,omitempty"`
	MentorFeedback *string `json:"mentorFeedback,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSessionRequest) ToServiceRequest(userID int64) *models.UpdateSessionRequest {
	return &models.UpdateSessionRequest{
		UserID:         userID,
		Status:         r.Status,
		Rating:         r.Rating,
		Notes:          r.Notes,
		StudentNotes:   r.StudentNotes,
		MentorFeedback: r.MentorFeedback,
	}
}
