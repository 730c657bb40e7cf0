package videorooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не существует у провайдера
	ErrRoomNotFound = errors.New("videorooms client: room not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("videorooms client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("videorooms client: invalid response")

	// ErrServiceDegraded возвращается при недоступности провайдера
	// Бронирование при этом не падает: комната догоняется лениво при join
	ErrServiceDegraded = errors.New("videorooms unavailable: graceful degradation applied")
)
