package create_availability

import "github.com/mentorhub/MH-SessionService/internal/service/availability/models"

// CreateTemplateRequest HTTP request model
type CreateTemplateRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
	Timezone  string `json:"timezone"`  // "Europe/Berlin"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTemplateRequest) ToServiceRequest(userID int64) *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		UserID:    userID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Timezone:  r.Timezone,
	}
}
