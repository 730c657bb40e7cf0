package run_reminder_sweep

import "github.com/mentorhub/MH-SessionService/internal/domain"

// WindowResult итог обработки одного окна напоминаний
type WindowResult struct {
	Type          domain.ReminderType
	SessionsFound int
	EmailsSent    int
	EmailsFailed  int
}

// Response сводка по прогону всех окон
type Response struct {
	Windows []WindowResult
}
