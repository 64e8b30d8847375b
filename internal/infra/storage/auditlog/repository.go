package auditlog

import (
	"context"
	"fmt"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	"github.com/m04kA/CDS-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/CDS-DutyRosterService/pkg/psqlbuilder"
)

// Repository репозиторий журнала действий (duty_logs).
// Запись best-effort: вызывающая сторона логирует ошибку и не откатывает
// основной переход.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record пишет запись журнала
func (r *Repository) Record(ctx context.Context, entry *domain.DutyLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("duty_logs").
		Columns(
			"schedule_id",
			"schedule_student_id",
			"action",
			"performed_by",
			"target_user",
			"notes",
		).
		Values(
			entry.ScheduleID,
			entry.BookingID,
			entry.Action,
			entry.PerformedBy,
			entry.TargetUser,
			entry.Notes,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
