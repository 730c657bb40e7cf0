package create_session

import (
	"fmt"
	"strings"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// validateRequest проверяет структурную корректность запроса.
// Бизнес-ограничения (длительность, горизонт, квоты) проверяются
// отдельно в CheckGuardrails.
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.MentorID == req.StudentID {
		return fmt.Errorf("%w: cannot book a session with yourself", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	if len(req.Topic) > domain.MaxTopicLength {
		return fmt.Errorf("%w: topic must not exceed %d characters", ErrInvalidInput, domain.MaxTopicLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
