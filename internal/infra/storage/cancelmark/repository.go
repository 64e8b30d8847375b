package cancelmark

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	"github.com/m04kA/CDS-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/CDS-DutyRosterService/pkg/psqlbuilder"
)

// Repository репозиторий маркеров same-day отмен.
// Маркер хранится в БД, а не в памяти процесса: блокировка повторного
// бронирования должна переживать рестарты и действовать для всех сессий.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория маркеров отмен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record фиксирует маркер отмены (student, duty_date, cancelled_on).
// Повторная запись того же маркера - no-op (ON CONFLICT DO NOTHING).
func (r *Repository) Record(ctx context.Context, mark *domain.CancelMark) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("duty_cancel_marks").
		Columns("student_id", "duty_date", "cancelled_on").
		Values(
			mark.StudentID,
			domain.DateOnly(mark.DutyDate),
			domain.DateOnly(mark.CancelledOn),
		).
		Suffix("ON CONFLICT ON CONSTRAINT duty_cancel_marks_key DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Exists проверяет, отменял ли студент в день today бронирование
// на дату dutyDate
func (r *Repository) Exists(ctx context.Context, studentID int64, dutyDate, today time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("duty_cancel_marks").
		Where(squirrel.Eq{
			"student_id":   studentID,
			"duty_date":    domain.DateOnly(dutyDate),
			"cancelled_on": domain.DateOnly(today),
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Exists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: Exists - rows error: %v", ErrScanRow, err)
	}

	return exists, nil
}
