package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	"github.com/m04kA/CDS-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/CDS-DutyRosterService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"date",
	"location",
	"shift_start",
	"shift_end",
	"description",
	"max_students",
	"status",
	"created_by",
	"approved_by",
	"approved_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями дежурств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание.
// Нарушение уникальности (date, location) транслируется в ErrScheduleExists.
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"date",
			"location",
			"shift_start",
			"shift_end",
			"description",
			"max_students",
			"status",
			"created_by",
		).
		Values(
			schedule.Date,
			schedule.Location,
			schedule.ShiftStart,
			schedule.ShiftEnd,
			schedule.Description,
			schedule.MaxStudents,
			schedule.Status,
			schedule.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrScheduleExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы проверка
// вместимости и вставка бронирования видели согласованное состояние.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	schedule, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// List получает расписания с фильтрацией по периоду, локации и статусу
func (r *Repository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location": *filter.Location})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("date ASC, location ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Approve переводит расписание pending → approved.
// Возвращает ErrNotPending, если расписание уже в терминальном статусе.
func (r *Repository) Approve(ctx context.Context, id int64, adminID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", domain.ScheduleStatusApproved).
		Set("approved_by", adminID).
		Set("approved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ScheduleStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Approve - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalTransition(ctx, executor, id, query, args, "Approve")
}

// MarkCancelled переводит расписание pending → cancelled (отклонение админом).
// Возвращает ErrNotPending, если расписание уже в терминальном статусе.
func (r *Repository) MarkCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", domain.ScheduleStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ScheduleStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalTransition(ctx, executor, id, query, args, "MarkCancelled")
}

// Delete удаляет расписание; бронирования удаляются каскадом по FK
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// execConditionalTransition выполняет условный UPDATE перехода статуса.
// 0 затронутых строк означает либо отсутствие расписания, либо не-pending
// статус - различаем повторным чтением.
func (r *Repository) execConditionalTransition(ctx context.Context, executor DBExecutor, id int64, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrNotPending
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var approvedBy sql.NullInt64
	var approvedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.Date,
		&schedule.Location,
		&schedule.ShiftStart,
		&schedule.ShiftEnd,
		&schedule.Description,
		&schedule.MaxStudents,
		&schedule.Status,
		&schedule.CreatedBy,
		&approvedBy,
		&approvedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if approvedBy.Valid {
		schedule.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		schedule.ApprovedAt = &approvedAt.Time
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
