package create_session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrStudentNotFound студент не найден
	ErrStudentNotFound = errors.New("student not found")
	// ErrMentorNotFound ментор не найден
	ErrMentorNotFound = errors.New("mentor not found")
	// ErrNoAcceptedConnection между студентом и ментором нет принятой связи
	ErrNoAcceptedConnection = errors.New("no accepted connection with mentor")
	// ErrGuardrailRejected бронирование отклонено проверками лимитов
	ErrGuardrailRejected = errors.New("booking rejected by guardrails")
	// ErrSlotConflict слот пересекается с существующей сессией ментора
	ErrSlotConflict = errors.New("slot conflicts with an existing session")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)

// GuardrailError несёт причину отклонения вместе с сентинелом
type GuardrailError struct {
	Rejection Rejection
}

// Error возвращает текст ошибки
func (e *GuardrailError) Error() string {
	return fmt.Sprintf("%v: %s", ErrGuardrailRejected, e.Rejection.Message)
}

// Unwrap позволяет errors.Is находить ErrGuardrailRejected
func (e *GuardrailError) Unwrap() error {
	return ErrGuardrailRejected
}
