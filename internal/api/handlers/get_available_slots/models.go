package get_available_slots

import (
	"github.com/mentorhub/MH-SessionService/internal/domain"
	getAvailableSlots "github.com/mentorhub/MH-SessionService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Available bool   `json:"available"`
}

// SlotsResponse HTTP ответ со слотами ментора на дату
type SlotsResponse struct {
	MentorID int64          `json:"mentorId"`
	Date     string         `json:"date"` // "2026-03-15"
	Timezone string         `json:"timezone,omitempty"`
	Status   string         `json:"status"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		})
	}

	return &SlotsResponse{
		MentorID: resp.MentorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Status:   resp.Status,
		Slots:    slots,
	}
}
