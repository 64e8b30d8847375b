package reject_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
)

// --- моки ---

type mockScheduleRepo struct {
	getByIDFunc       func(ctx context.Context, id int64) (*domain.Schedule, error)
	markCancelledFunc func(ctx context.Context, id int64) error
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockScheduleRepo) MarkCancelled(ctx context.Context, id int64) error {
	if m.markCancelledFunc != nil {
		return m.markCancelledFunc(ctx, id)
	}
	return nil
}

type mockBookingRepo struct {
	cancelAllBookedFunc func(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) CancelAllBooked(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error) {
	return m.cancelAllBookedFunc(ctx, scheduleID, reason)
}

type mockAuditRepo struct {
	recorded []*domain.DutyLog
	err      error
}

func (m *mockAuditRepo) Record(ctx context.Context, entry *domain.DutyLog) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, entry)
	return nil
}

type mockNotificationRepo struct {
	created []*domain.Notification
	err     error
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, notifications...)
	return nil
}

type mockTxManager struct {
	err error // если задана, транзакция откатывается с этой ошибкой
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// --- фикстуры ---

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:          10,
		Date:        time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Location:    "ISDH - Sinait",
		MaxStudents: 2,
		Status:      domain.ScheduleStatusPending,
	}
}

type fixture struct {
	uc            *UseCase
	schedules     *mockScheduleRepo
	bookings      *mockBookingRepo
	audit         *mockAuditRepo
	notifications *mockNotificationRepo
	tx            *mockTxManager
}

func newFixture() *fixture {
	f := &fixture{
		schedules: &mockScheduleRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
				return testSchedule(), nil
			},
		},
		bookings: &mockBookingRepo{
			cancelAllBookedFunc: func(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error) {
				return []*domain.Booking{
					{ID: 100, ScheduleID: scheduleID, StudentID: 5, Status: domain.BookingStatusCancelled},
					{ID: 101, ScheduleID: scheduleID, StudentID: 6, Status: domain.BookingStatusCancelled},
				}, nil
			},
		},
		audit:         &mockAuditRepo{},
		notifications: &mockNotificationRepo{},
		tx:            &mockTxManager{},
	}

	f.uc = NewUseCase(f.schedules, f.bookings, f.audit, f.notifications, f.tx, noopLogger{})
	return f
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	var cancelReason string
	f.bookings.cancelAllBookedFunc = func(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error) {
		cancelReason = reason
		return []*domain.Booking{
			{ID: 100, ScheduleID: scheduleID, StudentID: 5},
			{ID: 101, ScheduleID: scheduleID, StudentID: 6},
		}, nil
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ScheduleID)
	assert.Equal(t, string(domain.ScheduleStatusCancelled), resp.Status)
	assert.Equal(t, 2, resp.CancelledBookings)
	assert.Equal(t, domain.CancelReasonScheduleRejected, cancelReason)

	// Сводная запись + по записи на каждое отменённое бронирование
	require.Len(t, f.audit.recorded, 3)
	assert.Equal(t, domain.AuditActionStatusCancelled, f.audit.recorded[0].Action)
	assert.Equal(t, domain.AuditActionCancelled, f.audit.recorded[1].Action)
	require.NotNil(t, f.audit.recorded[1].TargetUser)
	assert.Equal(t, int64(5), *f.audit.recorded[1].TargetUser)

	// Каждый затронутый студент получает предупреждение
	require.Len(t, f.notifications.created, 2)
	assert.Equal(t, int64(5), f.notifications.created[0].UserID)
	assert.Equal(t, domain.NotificationWarning, f.notifications.created[0].Type)
}

func TestExecute_NoBookingsToCancel(t *testing.T) {
	f := newFixture()
	f.bookings.cancelAllBookedFunc = func(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error) {
		return nil, nil
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancelledBookings)
	assert.Empty(t, f.notifications.created)
	// Сводная запись журнала пишется всегда
	require.Len(t, f.audit.recorded, 1)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 0, AdminID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		return nil, scheduleRepo.ErrScheduleNotFound
	}

	_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_NotPending(t *testing.T) {
	f := newFixture()
	f.schedules.markCancelledFunc = func(ctx context.Context, id int64) error {
		return scheduleRepo.ErrNotPending
	}

	_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	// До каскада дело не дошло, уведомлений нет
	assert.Empty(t, f.notifications.created)
	assert.Empty(t, f.audit.recorded)
}

func TestExecute_CascadeFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.bookings.cancelAllBookedFunc = func(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error) {
		return nil, errors.New("deadlock detected")
	}

	_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.audit.recorded)
	assert.Empty(t, f.notifications.created)
}

func TestExecute_CommitFailure(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.New("commit failed")

	_, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	require.Error(t, err)
	assert.Empty(t, f.audit.recorded)
}

func TestExecute_AuditAndNotifyFailuresDoNotBlock(t *testing.T) {
	f := newFixture()
	f.audit.err = errors.New("audit unavailable")
	f.notifications.err = errors.New("notifications unavailable")

	resp, err := f.uc.Execute(context.Background(), &Request{ScheduleID: 10, AdminID: 1})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.CancelledBookings)
}
