package get_available_slots

import (
	"fmt"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSessionDurationMinutes {
			return fmt.Errorf("%w: duration must be at least %d minutes",
				ErrInvalidInput, domain.MinSessionDurationMinutes)
		}
		if req.DurationMinutes > domain.MaxSessionDurationMinutes {
			return fmt.Errorf("%w: duration must be at most %d minutes",
				ErrInvalidInput, domain.MaxSessionDurationMinutes)
		}
	}

	return nil
}
