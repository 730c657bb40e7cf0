package get_available_slots

import (
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
)

// Статусы ответа
const (
	// StatusOK доступность рассчитана штатно
	StatusOK = "ok"

	// StatusMentorNotAvailable у ментора нет активной доступности на этот день недели
	StatusMentorNotAvailable = "mentor not available this day"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MentorID        int64     // ID ментора
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Желаемая длительность сессии; 0 = длительность по умолчанию
}

// Response модель ответа со списком слотов
type Response struct {
	MentorID int64         // ID ментора
	Date     time.Time     // Дата, на которую запрашивались слоты
	Timezone string        // Таймзона доступности (из шаблонов ментора)
	Status   string        // StatusOK или StatusMentorNotAvailable
	Slots    []domain.Slot // Упорядоченный список слотов
}
