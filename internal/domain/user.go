package domain

import "time"

// UserRole represents the platform role of a user
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleMentor  UserRole = "mentor"
)

// SubscriptionTier represents the subscription level of a student
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// User represents a platform user as seen by the session service
type User struct {
	ID               int64
	Email            string
	Name             string
	Role             UserRole
	SubscriptionTier SubscriptionTier
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsMentor returns true if the user offers mentoring sessions
func (u *User) IsMentor() bool {
	return u.Role == RoleMentor
}

// MonthlySessionLimit returns the booking quota for the user's tier
func (u *User) MonthlySessionLimit() int {
	return TierSessionLimit(u.SubscriptionTier)
}

// TierSessionLimit возвращает месячную квоту сессий для уровня подписки
// Неизвестные уровни трактуются как free
func TierSessionLimit(tier SubscriptionTier) int {
	switch tier {
	case TierPremium:
		return PremiumTierMonthlySessions
	default:
		return FreeTierMonthlySessions
	}
}
