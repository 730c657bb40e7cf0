package models

import (
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// Request модели

// CreateTemplateRequest запрос на создание шаблона доступности
type CreateTemplateRequest struct {
	UserID    int64  `json:"userId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Timezone  string `json:"timezone"`  // IANA, например "Europe/Berlin"
}

// Response модели

// TemplateResponse ответ с данными шаблона доступности
type TemplateResponse struct {
	ID        int64  `json:"id"`
	MentorID  int64  `json:"mentorId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`
	IsActive  bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateListResponse ответ со списком шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// Методы конвертации

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	return &TemplateResponse{
		ID:        t.ID,
		MentorID:  t.MentorID,
		DayOfWeek: t.DayOfWeek,
		StartTime: t.StartTime.String(),
		EndTime:   t.EndTime.String(),
		Timezone:  t.Timezone,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.AvailabilityTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
	}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, *FromDomainTemplate(t))
	}
	return resp
}
