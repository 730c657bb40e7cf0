package mailer

// Template идентификатор почтового шаблона на стороне провайдера
type Template string

const (
	TemplateSessionBookedStudent Template = "session-booked-student"
	TemplateSessionBookedMentor  Template = "session-booked-mentor"
	TemplateSessionReminder      Template = "session-reminder"
	TemplateSessionCancelled     Template = "session-cancelled"
)

// sendRequest тело запроса на отправку письма
type sendRequest struct {
	From     string                 `json:"from"`
	To       []string               `json:"to"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// sendResponse ответ провайдера на отправку
type sendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
