package availability

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrTemplateNotFound возвращается, когда шаблон доступности не найден
	ErrTemplateNotFound = errors.New("availability template not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет шаблоном
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
