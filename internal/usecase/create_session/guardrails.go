package create_session

import (
	"fmt"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// RejectionReason машинно-читаемый код отказа бронирования
type RejectionReason string

const (
	ReasonDurationBelowMinimum RejectionReason = "duration_below_minimum"
	ReasonDurationAboveMaximum RejectionReason = "duration_above_maximum"
	ReasonTooFarInAdvance      RejectionReason = "too_far_in_advance"
	ReasonStartInPast          RejectionReason = "start_in_past"
	ReasonMonthlyQuotaExceeded RejectionReason = "monthly_quota_exceeded"
	ReasonMentorCooldownActive RejectionReason = "mentor_cooldown_active"
)

// IsRateLimit сообщает, что отказ носит временный характер (HTTP 429),
// а не является ошибкой запроса (HTTP 400)
func (r RejectionReason) IsRateLimit() bool {
	return r == ReasonMonthlyQuotaExceeded || r == ReasonMentorCooldownActive
}

// GuardrailInput входные данные для проверок лимитов.
// Все обращения к хранилищу выполняет вызывающий: сами проверки чистые
// и детерминированы относительно входа.
type GuardrailInput struct {
	Now               time.Time
	RequestedStart    time.Time
	RequestedDuration int
	SubscriptionTier  domain.SubscriptionTier
	SessionsThisMonth int
	// LastBookingWithMentor время создания последнего бронирования
	// студента с этим ментором, nil если бронирований не было
	LastBookingWithMentor *time.Time
}

// Rejection результат непройденной проверки
type Rejection struct {
	Reason  RejectionReason
	Message string
	// RetryAfter подсказка, через сколько повтор может пройти
	// (заполняется только для временных отказов)
	RetryAfter *time.Duration
}

// CheckGuardrails прогоняет запрос через проверки ограничений бронирования
// в фиксированном порядке и возвращает первую непройденную, nil если все
// проверки пройдены
func CheckGuardrails(in GuardrailInput) *Rejection {
	if in.RequestedDuration < domain.MinSessionDurationMinutes {
		return &Rejection{
			Reason:  ReasonDurationBelowMinimum,
			Message: fmt.Sprintf("session duration must be at least %d minutes", domain.MinSessionDurationMinutes),
		}
	}

	if in.RequestedDuration > domain.MaxSessionDurationMinutes {
		return &Rejection{
			Reason:  ReasonDurationAboveMaximum,
			Message: fmt.Sprintf("session duration must not exceed %d minutes", domain.MaxSessionDurationMinutes),
		}
	}

	horizon := in.Now.AddDate(0, 0, domain.MaxAdvanceBookingDays)
	if in.RequestedStart.After(horizon) {
		return &Rejection{
			Reason:  ReasonTooFarInAdvance,
			Message: fmt.Sprintf("sessions can be booked at most %d days in advance", domain.MaxAdvanceBookingDays),
		}
	}

	if !in.RequestedStart.After(in.Now) {
		return &Rejection{
			Reason:  ReasonStartInPast,
			Message: "session start must be in the future",
		}
	}

	limit := domain.TierSessionLimit(in.SubscriptionTier)
	if in.SessionsThisMonth >= limit {
		retryAfter := untilNextMonth(in.Now)
		return &Rejection{
			Reason:     ReasonMonthlyQuotaExceeded,
			Message:    fmt.Sprintf("monthly limit of %d sessions reached", limit),
			RetryAfter: &retryAfter,
		}
	}

	if in.LastBookingWithMentor != nil {
		elapsed := in.Now.Sub(*in.LastBookingWithMentor)
		if elapsed < domain.MentorCooldown {
			retryAfter := domain.MentorCooldown - elapsed
			return &Rejection{
				Reason:     ReasonMentorCooldownActive,
				Message:    "a session with this mentor was booked less than 24 hours ago",
				RetryAfter: &retryAfter,
			}
		}
	}

	return nil
}

// untilNextMonth время до начала следующего календарного месяца
func untilNextMonth(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return next.Sub(now)
}

// monthBounds границы текущего календарного месяца [from, to)
func monthBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}
