package create_session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/pkg/ptr"
)

var guardrailNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

// validInput вход, проходящий все проверки
func validInput() GuardrailInput {
	return GuardrailInput{
		Now:               guardrailNow,
		RequestedStart:    guardrailNow.Add(48 * time.Hour),
		RequestedDuration: 60,
		SubscriptionTier:  domain.TierFree,
		SessionsThisMonth: 0,
	}
}

func TestCheckGuardrails_Pass(t *testing.T) {
	assert.Nil(t, CheckGuardrails(validInput()))
}

func TestCheckGuardrails_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GuardrailInput)
		reason RejectionReason
	}{
		{
			name:   "duration below minimum",
			mutate: func(in *GuardrailInput) { in.RequestedDuration = 10 },
			reason: ReasonDurationBelowMinimum,
		},
		{
			name:   "duration above maximum",
			mutate: func(in *GuardrailInput) { in.RequestedDuration = 120 },
			reason: ReasonDurationAboveMaximum,
		},
		{
			name:   "too far in advance",
			mutate: func(in *GuardrailInput) { in.RequestedStart = guardrailNow.AddDate(0, 0, 31) },
			reason: ReasonTooFarInAdvance,
		},
		{
			name:   "start in past",
			mutate: func(in *GuardrailInput) { in.RequestedStart = guardrailNow.Add(-time.Hour) },
			reason: ReasonStartInPast,
		},
		{
			name:   "start exactly now",
			mutate: func(in *GuardrailInput) { in.RequestedStart = guardrailNow },
			reason: ReasonStartInPast,
		},
		{
			name:   "free tier quota reached",
			mutate: func(in *GuardrailInput) { in.SessionsThisMonth = domain.FreeTierMonthlySessions },
			reason: ReasonMonthlyQuotaExceeded,
		},
		{
			name: "premium tier quota reached",
			mutate: func(in *GuardrailInput) {
				in.SubscriptionTier = domain.TierPremium
				in.SessionsThisMonth = domain.PremiumTierMonthlySessions
			},
			reason: ReasonMonthlyQuotaExceeded,
		},
		{
			name: "mentor cooldown active",
			mutate: func(in *GuardrailInput) {
				in.LastBookingWithMentor = ptr.Ptr(guardrailNow.Add(-2 * time.Hour))
			},
			reason: ReasonMentorCooldownActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			rejection := CheckGuardrails(in)
			require.NotNil(t, rejection)
			assert.Equal(t, tt.reason, rejection.Reason)
		})
	}
}

func TestCheckGuardrails_FixedOrder(t *testing.T) {
	// При нескольких нарушениях возвращается первое по порядку проверок
	in := validInput()
	in.RequestedDuration = 10
	in.RequestedStart = guardrailNow.Add(-time.Hour)
	in.SessionsThisMonth = 100

	rejection := CheckGuardrails(in)
	require.NotNil(t, rejection)
	assert.Equal(t, ReasonDurationBelowMinimum, rejection.Reason)
}

func TestCheckGuardrails_PremiumQuotaAboveFree(t *testing.T) {
	// Premium студент с израсходованной free-квотой проходит
	in := validInput()
	in.SubscriptionTier = domain.TierPremium
	in.SessionsThisMonth = domain.FreeTierMonthlySessions

	assert.Nil(t, CheckGuardrails(in))
}

func TestCheckGuardrails_CooldownExpired(t *testing.T) {
	in := validInput()
	in.LastBookingWithMentor = ptr.Ptr(guardrailNow.Add(-domain.MentorCooldown))

	assert.Nil(t, CheckGuardrails(in))
}

func TestCheckGuardrails_RetryAfterHints(t *testing.T) {
	// Cooldown: осталось 24h - 2h = 22h
	in := validInput()
	in.LastBookingWithMentor = ptr.Ptr(guardrailNow.Add(-2 * time.Hour))

	rejection := CheckGuardrails(in)
	require.NotNil(t, rejection)
	require.NotNil(t, rejection.RetryAfter)
	assert.Equal(t, 22*time.Hour, *rejection.RetryAfter)

	// Квота: до начала следующего месяца
	in = validInput()
	in.SessionsThisMonth = domain.FreeTierMonthlySessions

	rejection = CheckGuardrails(in)
	require.NotNil(t, rejection)
	require.NotNil(t, rejection.RetryAfter)
	nextMonth := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, nextMonth.Sub(guardrailNow), *rejection.RetryAfter)
}

func TestCheckGuardrails_BoundaryDurations(t *testing.T) {
	in := validInput()
	in.RequestedDuration = domain.MinSessionDurationMinutes
	assert.Nil(t, CheckGuardrails(in))

	in.RequestedDuration = domain.MaxSessionDurationMinutes
	assert.Nil(t, CheckGuardrails(in))
}

func TestCheckGuardrails_HorizonBoundary(t *testing.T) {
	// Ровно 30 дней вперёд допустимо
	in := validInput()
	in.RequestedStart = guardrailNow.AddDate(0, 0, domain.MaxAdvanceBookingDays)
	assert.Nil(t, CheckGuardrails(in))
}

func TestRejectionReason_IsRateLimit(t *testing.T) {
	assert.True(t, ReasonMonthlyQuotaExceeded.IsRateLimit())
	assert.True(t, ReasonMentorCooldownActive.IsRateLimit())
	assert.False(t, ReasonDurationBelowMinimum.IsRateLimit())
	assert.False(t, ReasonStartInPast.IsRateLimit())
	assert.False(t, ReasonTooFarInAdvance.IsRateLimit())
}
