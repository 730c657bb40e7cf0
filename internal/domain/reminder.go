package domain

import "time"

// ReminderType тип напоминания по lead time
type ReminderType string

const (
	Reminder24h ReminderType = "24h"
	Reminder1h  ReminderType = "1h"
)

// ReminderWindow окно scheduled_at, в котором сессия получает напоминание
// данного типа. Окна шире интервала запуска sweep, чтобы сессии не терялись
// между запусками; дедупликации нет, поэтому возможны повторные напоминания
// у границ окна.
type ReminderWindow struct {
	Type   ReminderType
	Offset time.Duration // смещение вперёд от "сейчас" до начала окна
	Width  time.Duration // ширина окна
}

// Bounds returns the [from, to) interval of the window relative to now
func (w ReminderWindow) Bounds(now time.Time) (time.Time, time.Time) {
	from := now.Add(w.Offset)
	return from, from.Add(w.Width)
}

// ReminderWindows окна напоминаний: 23-25 часов и 30-90 минут вперёд
var ReminderWindows = []ReminderWindow{
	{Type: Reminder24h, Offset: 23 * time.Hour, Width: 2 * time.Hour},
	{Type: Reminder1h, Offset: 30 * time.Minute, Width: time.Hour},
}
