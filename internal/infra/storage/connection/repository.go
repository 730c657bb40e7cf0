package connection

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/pkg/dbmetrics"
	"github.com/mentorhub/MH-SessionService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для чтения связей ментор-студент
// Жизненным циклом связей управляет другой сервис платформы;
// здесь они нужны только как предусловие бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория связей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentorAndStudent получает связь по паре (mentor_id, student_id)
// Пара уникальна на уровне схемы
func (r *Repository) GetByMentorAndStudent(ctx context.Context, mentorID, studentID int64) (*domain.Connection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"mentor_id",
		"student_id",
		"status",
		"created_at",
		"updated_at",
	).
		From("connections").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorAndStudent - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Connection
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.MentorID,
		&c.StudentID,
		&c.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorAndStudent - scan connection: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
