package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrAccessDenied возвращается, когда пользователь не является участником сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrEmptyUpdate возвращается, когда запрос на обновление не содержит полей
	ErrEmptyUpdate = errors.New("update request has no fields")

	// ErrJoinWindowClosed возвращается при попытке подключиться вне окна подключения
	ErrJoinWindowClosed = errors.New("join window is closed")

	// ErrSessionNotJoinable возвращается при попытке подключиться к неактивной сессии
	ErrSessionNotJoinable = errors.New("session is not joinable")

	// ErrMeetingUnavailable возвращается, когда видеокомнату не удалось получить
	ErrMeetingUnavailable = errors.New("meeting room is unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
