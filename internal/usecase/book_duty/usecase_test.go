package book_duty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
)

// --- моки ---

type mockBookingRepo struct {
	createFunc                    func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	getByScheduleIDFunc           func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error)
	getBookedByStudentAndDateFunc func(ctx context.Context, studentID int64, date time.Time) (*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return m.createFunc(ctx, b)
}

func (m *mockBookingRepo) GetByScheduleID(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
	if m.getByScheduleIDFunc != nil {
		return m.getByScheduleIDFunc(ctx, scheduleID, includeCancelled)
	}
	return nil, nil
}

func (m *mockBookingRepo) GetBookedByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*domain.Booking, error) {
	if m.getBookedByStudentAndDateFunc != nil {
		return m.getBookedByStudentAndDateFunc(ctx, studentID, date)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type mockScheduleRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Schedule, error)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return m.getByIDFunc(ctx, id)
}

type mockCancelMarkRepo struct {
	existsFunc func(ctx context.Context, studentID int64, dutyDate, today time.Time) (bool, error)
}

func (m *mockCancelMarkRepo) Exists(ctx context.Context, studentID int64, dutyDate, today time.Time) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, studentID, dutyDate, today)
	}
	return false, nil
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

type mockUserRepo struct {
	adminIDs []int64
	err      error
}

func (m *mockUserRepo) GetAdminIDs(ctx context.Context) ([]int64, error) {
	return m.adminIDs, m.err
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// --- фикстуры ---

var testNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:          10,
		Date:        time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Location:    "ISDH - Magsingal",
		ShiftStart:  "08:00",
		ShiftEnd:    "20:00",
		MaxStudents: 2,
		Status:      domain.ScheduleStatusApproved,
	}
}

type fixture struct {
	uc            *UseCase
	bookings      *mockBookingRepo
	schedules     *mockScheduleRepo
	cancelMarks   *mockCancelMarkRepo
	audit         *mockAuditRepo
	notifications *mockNotificationRepo
	users         *mockUserRepo
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{
			createFunc: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
				created := *b
				created.ID = 100
				return &created, nil
			},
		},
		schedules: &mockScheduleRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
				return testSchedule(), nil
			},
		},
		cancelMarks:   &mockCancelMarkRepo{},
		audit:         &mockAuditRepo{},
		notifications: &mockNotificationRepo{},
		users:         &mockUserRepo{adminIDs: []int64{1, 2}},
	}

	f.uc = NewUseCase(
		f.bookings,
		f.schedules,
		f.cancelMarks,
		f.audit,
		f.notifications,
		f.users,
		&mockTxManager{},
		noopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(10), resp.ScheduleID)
	assert.Equal(t, int64(5), resp.StudentID)
	assert.Equal(t, string(domain.BookingStatusBooked), resp.Status)
	assert.Equal(t, "2026-03-05", resp.Date)
	assert.Equal(t, "ISDH - Magsingal", resp.Location)
	assert.Equal(t, "08:00", resp.ShiftStart)
	assert.Equal(t, "20:00", resp.ShiftEnd)
	assert.Equal(t, testNow, resp.BookingTime)

	// Журнал и уведомления админам пишутся после коммита
	require.Len(t, f.audit.recorded, 1)
	assert.Equal(t, domain.AuditActionBooked, f.audit.recorded[0].Action)
	assert.Equal(t, int64(5), f.audit.recorded[0].PerformedBy)

	require.Len(t, f.notifications.created, 2)
	assert.Equal(t, int64(1), f.notifications.created[0].UserID)
	assert.Equal(t, domain.NotificationInfo, f.notifications.created[0].Type)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero student id", req: &Request{StudentID: 0, ScheduleID: 10}},
		{name: "negative schedule id", req: &Request{StudentID: 5, ScheduleID: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		return nil, scheduleRepo.ErrScheduleNotFound
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_ScheduleNotBookable(t *testing.T) {
	tests := []struct {
		name     string
		schedule func() *domain.Schedule
	}{
		{
			name: "cancelled schedule",
			schedule: func() *domain.Schedule {
				s := testSchedule()
				s.Status = domain.ScheduleStatusCancelled
				return s
			},
		},
		{
			name: "past date",
			schedule: func() *domain.Schedule {
				s := testSchedule()
				s.Date = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
				return tt.schedule(), nil
			}

			_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

			assert.ErrorIs(t, err, ErrScheduleNotBookable)
		})
	}
}

func TestExecute_PendingScheduleIsBookable(t *testing.T) {
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		s := testSchedule()
		s.Status = domain.ScheduleStatusPending
		return s, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.NoError(t, err)
}

func TestExecute_SameDayScheduleIsBookable(t *testing.T) {
	// Дата дежурства сегодня - бронировать ещё можно
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		s := testSchedule()
		s.Date = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
		return s, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.NoError(t, err)
}

func TestExecute_ScheduleFull(t *testing.T) {
	f := newFixture()
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{StudentID: 7, Status: domain.BookingStatusBooked},
			{StudentID: 8, Status: domain.BookingStatusCompleted},
		}, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.ErrorIs(t, err, ErrScheduleFull)
	assert.Contains(t, err.Error(), "(2/2)")
}

func TestExecute_CancelledSeatsDoNotCount(t *testing.T) {
	f := newFixture()
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{StudentID: 7, Status: domain.BookingStatusBooked},
			{StudentID: 8, Status: domain.BookingStatusCancelled},
		}, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.NoError(t, err)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	f := newFixture()
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{StudentID: 5, Status: domain.BookingStatusBooked},
		}, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_DateConflict(t *testing.T) {
	f := newFixture()
	f.bookings.getBookedByStudentAndDateFunc = func(ctx context.Context, studentID int64, date time.Time) (*domain.Booking, error) {
		return &domain.Booking{ID: 55, StudentID: studentID}, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestExecute_SameDayRebookBlocked(t *testing.T) {
	f := newFixture()
	f.cancelMarks.existsFunc = func(ctx context.Context, studentID int64, dutyDate, today time.Time) (bool, error) {
		assert.Equal(t, int64(5), studentID)
		assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), dutyDate)
		assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), today)
		return true, nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	assert.ErrorIs(t, err, ErrSameDayRebookBlocked)
}

func TestExecute_ConstraintRaceMapping(t *testing.T) {
	// Пречеки прошли, но конкурентная транзакция успела раньше:
	// ошибки ограничений БД транслируются в те же ошибки usecase
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "duplicate", repoErr: bookingRepo.ErrDuplicateActiveBooking, wantErr: ErrDuplicateBooking},
		{name: "full", repoErr: bookingRepo.ErrScheduleFull, wantErr: ErrScheduleFull},
		{name: "date conflict", repoErr: bookingRepo.ErrDateConflict, wantErr: ErrDateConflict},
		{name: "other errors wrap internal", repoErr: errors.New("connection reset"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.createFunc = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
				return nil, tt.repoErr
			}

			_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_AuditAndNotifyFailuresDoNotBlock(t *testing.T) {
	f := newFixture()
	f.audit.err = errors.New("audit unavailable")
	f.notifications.err = errors.New("notifications unavailable")

	resp, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
}

func TestExecute_AdminLookupFailureDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.users.err = errors.New("profiles unavailable")

	_, err := f.uc.Execute(context.Background(), &Request{StudentID: 5, ScheduleID: 10})

	require.NoError(t, err)
	assert.Empty(t, f.notifications.created)
}
