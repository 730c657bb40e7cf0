package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/pkg/dbmetrics"
	"github.com/mentorhub/MH-SessionService/pkg/psqlbuilder"
)

// pgExclusionViolation код нарушения exclusion constraint (SQLSTATE 23P01)
const pgExclusionViolation = "23P01"

var sessionColumns = []string{
	"id",
	"mentor_id",
	"student_id",
	"scheduled_at",
	"duration_minutes",
	"status",
	"topic",
	"meeting_url",
	"notes",
	"student_notes",
	"mentor_feedback",
	"rating",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint на пересекающиеся активные сессии
// ментора возвращается как ErrOverlapConstraint: это последний рубеж
// против гонки между проверкой конфликта и вставкой.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"mentor_id",
			"student_id",
			"scheduled_at",
			"duration_minutes",
			"status",
			"topic",
			"meeting_url",
			"notes",
		).
		Values(
			s.MentorID,
			s.StudentID,
			s.ScheduledAt,
			s.DurationMinutes,
			s.Status,
			s.Topic,
			s.MeetingURL,
			s.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrOverlapConstraint
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id})

	// В транзакции читаем с блокировкой, чтобы валидация перехода статуса
	// и запись выполнялись атомарно
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetActiveByMentorBetween получает активные (scheduled) сессии ментора,
// интервал которых пересекает [from, to)
// Внутри транзакции блокирует строки (FOR UPDATE) - используется
// usecase-ом создания сессии для проверки конфликтов
func (r *Repository) GetActiveByMentorBetween(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.Expr("scheduled_at < ?", to)).
		Where(squirrel.Expr("scheduled_at + make_interval(mins => duration_minutes) > ?", from)).
		OrderBy("scheduled_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetByUserWithFilter получает сессии пользователя (как студента или как ментора)
// с опциональной фильтрацией по статусу и периоду
func (r *Repository) GetByUserWithFilter(ctx context.Context, filter domain.UserSessionsFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roleColumn := "student_id"
	if filter.AsMentor {
		roleColumn = "mentor_id"
	}

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{roleColumn: filter.UserID}).
		OrderBy("scheduled_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_at": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// CountQuotaSessionsInPeriod подсчитывает сессии студента, созданные в
// периоде [from, to) и расходующие месячную квоту (scheduled + completed)
func (r *Repository) CountQuotaSessionsInPeriod(ctx context.Context, studentID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	quotaStatusStrings := make([]string, len(domain.QuotaStatuses))
	for i, s := range domain.QuotaStatuses {
		quotaStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("sessions").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Eq{"status": quotaStatusStrings}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountQuotaSessionsInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountQuotaSessionsInPeriod - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetLastCreatedAtWithMentor возвращает время создания последней сессии
// студента с указанным ментором (для проверки cooldown)
// Возвращает nil, если таких сессий не было
func (r *Repository) GetLastCreatedAtWithMentor(ctx context.Context, studentID, mentorID int64) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("created_at").
		From("sessions").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLastCreatedAtWithMentor - build select query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastCreatedAtWithMentor - scan created_at: %v", ErrScanRow, err)
	}

	return &createdAt, nil
}

// GetScheduledBetween получает все scheduled сессии, scheduled_at которых
// попадает в [from, to) - используется reminder sweep-ом
func (r *Repository) GetScheduledBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"scheduled_at": from}).
		Where(squirrel.Lt{"scheduled_at": to}).
		OrderBy("scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// Update применяет частичное обновление сессии (статус, оценка, заметки)
func (r *Repository) Update(ctx context.Context, id int64, update domain.SessionUpdate) error {
	if update.IsEmpty() {
		return ErrEmptyUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("sessions").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
	}
	if update.Rating != nil {
		updateBuilder = updateBuilder.Set("rating", *update.Rating)
	}
	if update.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *update.Notes)
	}
	if update.StudentNotes != nil {
		updateBuilder = updateBuilder.Set("student_notes", *update.StudentNotes)
	}
	if update.MentorFeedback != nil {
		updateBuilder = updateBuilder.Set("mentor_feedback", *update.MentorFeedback)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SetMeetingURL сохраняет ссылку на видеокомнату сессии
// Вызывается после создания комнаты (сразу после бронирования
// или лениво при первом join)
func (r *Repository) SetMeetingURL(ctx context.Context, id int64, url string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("meeting_url", url).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMeetingURL - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMeetingURL - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetMeetingURL - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.MentorID,
		&s.StudentID,
		&s.ScheduledAt,
		&s.DurationMinutes,
		&s.Status,
		&s.Topic,
		&s.MeetingURL,
		&s.Notes,
		&s.StudentNotes,
		&s.MentorFeedback,
		&s.Rating,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
