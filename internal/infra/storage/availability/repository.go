package availability

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

var templateColumns = []string{
	"id",
	"mentor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"timezone",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с шаблонами доступности менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон доступности
func (r *Repository) Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_templates").
		Columns(
			"mentor_id",
			"day_of_week",
			"start_time",
			"end_time",
			"timezone",
			"is_active",
		).
		Values(
			t.MentorID,
			t.DayOfWeek,
			t.StartTime,
			t.EndTime,
			t.Timezone,
			t.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := r.scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	return t, nil
}

// GetActiveByMentorAndDay получает активные шаблоны ментора на день недели
// (0 = воскресенье ... 6 = суббота)
func (r *Repository) GetActiveByMentorAndDay(ctx context.Context, mentorID int64, dayOfWeek int) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// GetActiveByMentor получает все активные шаблоны ментора
func (r *Repository) GetActiveByMentor(ctx context.Context, mentorID int64) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("availability_templates").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// Deactivate выключает шаблон (soft delete - физическое удаление не используется)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_templates").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTemplate(row rowScanner) (*domain.AvailabilityTemplate, error) {
	var t domain.AvailabilityTemplate
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.MentorID,
		&t.DayOfWeek,
		&t.StartTime,
		&t.EndTime,
		&t.Timezone,
		&t.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func (r *Repository) scanTemplates(rows *sql.Rows) ([]*domain.AvailabilityTemplate, error) {
	templates := make([]*domain.AvailabilityTemplate, 0)

	for rows.Next() {
		t, err := r.scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
