package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrSendFailed возвращается, когда провайдер отклонил отправку
	// Письма отправляются best-effort: вызывающий код логирует ошибку
	// и никогда не откатывает из-за неё бронирование
	ErrSendFailed = errors.New("mailer client: failed to send email")
)
