package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrOverlapConstraint возвращается, когда БД отклонила вставку из-за
	// exclusion constraint на пересекающиеся активные сессии ментора
	ErrOverlapConstraint = errors.New("session.repository: overlapping active session")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")

	// ErrEmptyUpdate возвращается при попытке обновления без изменяемых полей
	ErrEmptyUpdate = errors.New("session.repository: empty update")
)
