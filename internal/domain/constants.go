package domain

import "time"

// Business validation constants
const (
	MinSessionDurationMinutes     = 15
	MaxSessionDurationMinutes     = 90
	DefaultSessionDurationMinutes = 60

	// SlotStepMinutes шаг генерации кандидатов в окне доступности
	SlotStepMinutes = 30

	// MaxAdvanceBookingDays максимальный горизонт бронирования
	MaxAdvanceBookingDays = 30

	// MentorCooldown минимальный интервал между созданием двух сессий
	// одного студента с одним ментором
	MentorCooldown = 24 * time.Hour

	// Месячные квоты сессий по уровню подписки
	FreeTierMonthlySessions    = 4
	PremiumTierMonthlySessions = 20

	MaxTopicLength = 200
	MaxNotesLength = 2000

	MinRating = 1
	MaxRating = 5
)

// Join window: окно, в котором участники могут получить ссылку на видеокомнату
const (
	JoinWindowBefore = 24 * time.Hour
	JoinWindowAfter  = 2 * time.Hour
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих временной интервал
// Используется при подсчёте конфликтов и доступных слотов
var InactiveStatuses = []SessionStatus{
	StatusCancelled,
	StatusNoShow,
}

// QuotaStatuses список статусов, учитываемых в месячной квоте студента
// (активные и завершённые; отменённые и no-show квоту не расходуют)
var QuotaStatuses = []SessionStatus{
	StatusScheduled,
	StatusCompleted,
}
