package run_reminder_sweep

import "errors"

var (
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
