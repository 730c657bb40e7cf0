package domain

import "time"

// ConnectionStatus represents the status of a mentor-student connection
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
	ConnectionEnded    ConnectionStatus = "ended"
)

// Connection represents a mentor-student relationship
// Уникальна на пару (mentor_id, student_id); бронирование сессий
// возможно только при статусе accepted
type Connection struct {
	ID        int64
	MentorID  int64
	StudentID int64
	Status    ConnectionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAccepted returns true if the connection allows booking sessions
func (c *Connection) IsAccepted() bool {
	return c.Status == ConnectionAccepted
}
