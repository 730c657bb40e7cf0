package connection

import "errors"

var (
	// ErrConnectionNotFound возвращается, когда связь ментор-студент не найдена
	ErrConnectionNotFound = errors.New("connection.repository: connection not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("connection.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("connection.repository: failed to scan row")
)
