package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
	"github.com/m04kA/CDS-DutyRosterService/pkg/ptr"
)

// --- моки ---

type mockScheduleRepo struct {
	createFunc  func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	getByIDFunc func(ctx context.Context, id int64) (*domain.Schedule, error)
	listFunc    func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error)
	approveFunc func(ctx context.Context, id int64, adminID int64) error
	deleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, schedule)
	}
	created := *schedule
	created.ID = 10
	return &created, nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockScheduleRepo) Approve(ctx context.Context, id int64, adminID int64) error {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, id, adminID)
	}
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBookingRepo struct {
	getByScheduleIDFunc func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetByScheduleID(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
	if m.getByScheduleIDFunc != nil {
		return m.getByScheduleIDFunc(ctx, scheduleID, includeCancelled)
	}
	return nil, nil
}

type mockAuditRepo struct {
	recorded []*domain.DutyLog
}

func (m *mockAuditRepo) Record(ctx context.Context, entry *domain.DutyLog) error {
	m.recorded = append(m.recorded, entry)
	return nil
}

type mockNotificationRepo struct {
	created []*domain.Notification
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	m.created = append(m.created, notifications...)
	return nil
}

type mockUserRepo struct {
	profiles map[int64]*domain.Profile
	calls    int
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	m.calls++
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, userRepo.ErrProfileNotFound
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
		Location:    "ISDH - Narvacan",
		ShiftStart:  "08:00",
		ShiftEnd:    "20:00",
		MaxStudents: 4,
		Status:      domain.ScheduleStatusPending,
	}
}

type fixture struct {
	svc           *Service
	schedules     *mockScheduleRepo
	bookings      *mockBookingRepo
	audit         *mockAuditRepo
	notifications *mockNotificationRepo
	users         *mockUserRepo
}

func newFixture() *fixture {
	f := &fixture{
		schedules: &mockScheduleRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Schedule, error) {
				return testSchedule(), nil
			},
		},
		bookings:      &mockBookingRepo{},
		audit:         &mockAuditRepo{},
		notifications: &mockNotificationRepo{},
		users:         &mockUserRepo{profiles: map[int64]*domain.Profile{}},
	}

	f.svc = NewService(
		f.schedules,
		f.bookings,
		f.audit,
		f.notifications,
		f.users,
		&fixedTimeProvider{now: testNow},
		noopLogger{},
	)
	return f
}

// --- Create ---

func TestCreate_DefaultsFromLocation(t *testing.T) {
	f := newFixture()

	var created *domain.Schedule
	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		created = schedule
		out := *schedule
		out.ID = 10
		return &out, nil
	}

	resp, err := f.svc.Create(context.Background(), &models.CreateScheduleRequest{
		AdminID:  1,
		Date:     "2026-03-05",
		Location: "ISPH - Gab. Silang",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	// Лимит мест по умолчанию из справочника локации
	assert.Equal(t, 2, created.MaxStudents)
	assert.Equal(t, "08:00", created.ShiftStart.String())
	assert.Equal(t, "20:00", created.ShiftEnd.String())
	assert.Equal(t, domain.ScheduleStatusPending, created.Status)
	assert.Equal(t, int64(1), created.CreatedBy)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	require.Len(t, f.audit.recorded, 1)
	assert.Equal(t, domain.AuditActionScheduleCreated, f.audit.recorded[0].Action)
}

func TestCreate_Overrides(t *testing.T) {
	f := newFixture()

	var created *domain.Schedule
	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		created = schedule
		return schedule, nil
	}

	_, err := f.svc.Create(context.Background(), &models.CreateScheduleRequest{
		AdminID:     1,
		Date:        "2026-03-05",
		Location:    "RHU - Bantay",
		ShiftStart:  ptr.Ptr("09:00"),
		ShiftEnd:    ptr.Ptr("17:00"),
		Description: ptr.Ptr("Night rotation briefing"),
		MaxStudents: ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", created.ShiftStart.String())
	assert.Equal(t, "17:00", created.ShiftEnd.String())
	assert.Equal(t, "Night rotation briefing", created.Description)
	assert.Equal(t, 3, created.MaxStudents)
}

func TestCreate_ValidationErrors(t *testing.T) {
	longDescription := make([]byte, domain.MaxDescriptionLength+1)
	for i := range longDescription {
		longDescription[i] = 'a'
	}

	tests := []struct {
		name    string
		req     *models.CreateScheduleRequest
		wantErr error
	}{
		{
			name:    "bad date format",
			req:     &models.CreateScheduleRequest{AdminID: 1, Date: "05.03.2026", Location: "RHU - Santa"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past date",
			req:     &models.CreateScheduleRequest{AdminID: 1, Date: "2026-03-01", Location: "RHU - Santa"},
			wantErr: ErrPastDate,
		},
		{
			name:    "unknown location",
			req:     &models.CreateScheduleRequest{AdminID: 1, Date: "2026-03-05", Location: "City Clinic"},
			wantErr: ErrUnknownLocation,
		},
		{
			name: "invalid shift start",
			req: &models.CreateScheduleRequest{
				AdminID: 1, Date: "2026-03-05", Location: "RHU - Santa",
				ShiftStart: ptr.Ptr("8am"),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "shift start after end",
			req: &models.CreateScheduleRequest{
				AdminID: 1, Date: "2026-03-05", Location: "RHU - Santa",
				ShiftStart: ptr.Ptr("20:00"), ShiftEnd: ptr.Ptr("08:00"),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "description too long",
			req: &models.CreateScheduleRequest{
				AdminID: 1, Date: "2026-03-05", Location: "RHU - Santa",
				Description: ptr.Ptr(string(longDescription)),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "max students out of range",
			req: &models.CreateScheduleRequest{
				AdminID: 1, Date: "2026-03-05", Location: "RHU - Santa",
				MaxStudents: ptr.Ptr(0),
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_TodayIsAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), &models.CreateScheduleRequest{
		AdminID:  1,
		Date:     "2026-03-02",
		Location: "RHU - Santa",
	})

	assert.NoError(t, err)
}

func TestCreate_DuplicateDateAndLocation(t *testing.T) {
	f := newFixture()
	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		return nil, scheduleRepo.ErrScheduleExists
	}

	_, err := f.svc.Create(context.Background(), &models.CreateScheduleRequest{
		AdminID:  1,
		Date:     "2026-03-05",
		Location: "RHU - Santa",
	})

	assert.ErrorIs(t, err, ErrScheduleExists)
}

// --- BulkCreate ---

func TestBulkCreate_WeekdaysWithRotation(t *testing.T) {
	f := newFixture()

	var created []*domain.Schedule
	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		out := *schedule
		out.ID = int64(len(created) + 1)
		created = append(created, &out)
		return &out, nil
	}

	// 2026-03-02 понедельник, 2026-03-08 воскресенье
	resp, err := f.svc.BulkCreate(context.Background(), &models.BulkCreateRequest{
		AdminID:   1,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
	})

	require.NoError(t, err)
	// По умолчанию только будни: пн-пт
	assert.Len(t, resp.Created, 5)
	assert.Empty(t, resp.SkippedDates)

	// Март - третья площадка ротации, лимит из справочника
	for _, schedule := range created {
		assert.Equal(t, "ISDH - Narvacan", schedule.Location)
		assert.Equal(t, 4, schedule.MaxStudents)
		assert.Equal(t, domain.ScheduleStatusPending, schedule.Status)
	}

	assert.Len(t, f.audit.recorded, 5)
}

func TestBulkCreate_ExplicitDays(t *testing.T) {
	f := newFixture()

	var created []*domain.Schedule
	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		created = append(created, schedule)
		return schedule, nil
	}

	resp, err := f.svc.BulkCreate(context.Background(), &models.BulkCreateRequest{
		AdminID:    1,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-15",
		DaysOfWeek: []string{"Saturday", "sunday"},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Created, 4)
	for _, schedule := range created {
		weekday := schedule.Date.Weekday()
		assert.True(t, weekday == time.Saturday || weekday == time.Sunday)
	}
}

func TestBulkCreate_SkipsPastAndExistingDates(t *testing.T) {
	f := newFixture()

	f.schedules.createFunc = func(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
		// 4 марта уже занято
		if schedule.Date.Day() == 4 {
			return nil, scheduleRepo.ErrScheduleExists
		}
		return schedule, nil
	}

	// Период начинается в прошлом: 25-27 февраля будни и уже прошли
	resp, err := f.svc.BulkCreate(context.Background(), &models.BulkCreateRequest{
		AdminID:   1,
		StartDate: "2026-02-25",
		EndDate:   "2026-03-06",
	})

	require.NoError(t, err)
	assert.Contains(t, resp.SkippedDates, "2026-02-25")
	assert.Contains(t, resp.SkippedDates, "2026-02-26")
	assert.Contains(t, resp.SkippedDates, "2026-02-27")
	assert.Contains(t, resp.SkippedDates, "2026-03-04")
	// 2, 3, 5, 6 марта созданы
	assert.Len(t, resp.Created, 4)
}

func TestBulkCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *models.BulkCreateRequest
	}{
		{
			name: "bad start date",
			req:  &models.BulkCreateRequest{AdminID: 1, StartDate: "bad", EndDate: "2026-03-08"},
		},
		{
			name: "end before start",
			req:  &models.BulkCreateRequest{AdminID: 1, StartDate: "2026-03-08", EndDate: "2026-03-02"},
		},
		{
			name: "period too long",
			req:  &models.BulkCreateRequest{AdminID: 1, StartDate: "2026-03-02", EndDate: "2027-06-01"},
		},
		{
			name: "unknown weekday",
			req: &models.BulkCreateRequest{
				AdminID: 1, StartDate: "2026-03-02", EndDate: "2026-03-08",
				DaysOfWeek: []string{"someday"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.BulkCreate(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// --- List ---

func TestList_AdminSeesBookingsWithNames(t *testing.T) {
	f := newFixture()
	f.schedules.listFunc = func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
		return []*domain.Schedule{testSchedule()}, nil
	}
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: 100, StudentID: 5, Status: domain.BookingStatusBooked},
			{ID: 101, StudentID: 6, Status: domain.BookingStatusCompleted},
		}, nil
	}
	f.users.profiles[5] = &domain.Profile{ID: 5, FullName: "Maria Santos", Role: domain.RoleStudent}
	f.users.profiles[6] = &domain.Profile{ID: 6, FullName: "Jose Cruz", Role: domain.RoleStudent}

	resp, err := f.svc.List(context.Background(), &models.ListSchedulesRequest{
		RequesterID: 1,
		Role:        domain.RoleAdmin,
	})

	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)

	item := resp.Schedules[0]
	assert.Equal(t, 2, item.ActiveCount)
	assert.Equal(t, 2, item.Remaining)
	require.Len(t, item.Bookings, 2)
	assert.Equal(t, "Maria Santos", item.Bookings[0].StudentName)
	assert.Equal(t, "Jose Cruz", item.Bookings[1].StudentName)
	assert.Nil(t, item.MyBooking)
}

func TestList_StudentSeesOnlyOwnBooking(t *testing.T) {
	f := newFixture()
	f.schedules.listFunc = func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
		return []*domain.Schedule{testSchedule()}, nil
	}
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: 100, StudentID: 5, Status: domain.BookingStatusBooked},
			{ID: 101, StudentID: 6, Status: domain.BookingStatusBooked},
		}, nil
	}

	resp, err := f.svc.List(context.Background(), &models.ListSchedulesRequest{
		RequesterID: 5,
		Role:        domain.RoleStudent,
	})

	require.NoError(t, err)
	item := resp.Schedules[0]
	assert.Empty(t, item.Bookings)
	require.NotNil(t, item.MyBooking)
	assert.Equal(t, int64(100), item.MyBooking.ID)
	assert.Equal(t, 2, item.ActiveCount)
}

func TestList_ParentSeesOnlyOccupancy(t *testing.T) {
	f := newFixture()
	f.schedules.listFunc = func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
		return []*domain.Schedule{testSchedule()}, nil
	}
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: 100, StudentID: 5, Status: domain.BookingStatusBooked},
		}, nil
	}

	resp, err := f.svc.List(context.Background(), &models.ListSchedulesRequest{
		RequesterID: 20,
		Role:        domain.RoleParent,
	})

	require.NoError(t, err)
	item := resp.Schedules[0]
	assert.Empty(t, item.Bookings)
	assert.Nil(t, item.MyBooking)
	assert.Equal(t, 1, item.ActiveCount)
	assert.Equal(t, 3, item.Remaining)
}

func TestList_ProfileLookupsAreCached(t *testing.T) {
	f := newFixture()
	f.schedules.listFunc = func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
		first := testSchedule()
		second := testSchedule()
		second.ID = 11
		return []*domain.Schedule{first, second}, nil
	}
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: scheduleID * 10, StudentID: 5, Status: domain.BookingStatusBooked},
		}, nil
	}
	f.users.profiles[5] = &domain.Profile{ID: 5, FullName: "Maria Santos", Role: domain.RoleStudent}

	_, err := f.svc.List(context.Background(), &models.ListSchedulesRequest{
		RequesterID: 1,
		Role:        domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.users.calls)
}

func TestList_InvalidFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), &models.ListSchedulesRequest{
		RequesterID: 1,
		Role:        domain.RoleAdmin,
		Status:      ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- Approve ---

func TestApprove_NotifiesActiveBookings(t *testing.T) {
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		s := testSchedule()
		s.Status = domain.ScheduleStatusApproved
		return s, nil
	}
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: 100, StudentID: 5, Status: domain.BookingStatusBooked},
			{ID: 101, StudentID: 6, Status: domain.BookingStatusBooked},
		}, nil
	}

	resp, err := f.svc.Approve(context.Background(), 10, 1)

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	require.Len(t, f.audit.recorded, 1)
	assert.Equal(t, domain.AuditActionStatusApproved, f.audit.recorded[0].Action)

	require.Len(t, f.notifications.created, 2)
	assert.Equal(t, domain.NotificationSuccess, f.notifications.created[0].Type)
}

func TestApprove_InvalidTransition(t *testing.T) {
	f := newFixture()
	f.schedules.approveFunc = func(ctx context.Context, id int64, adminID int64) error {
		return scheduleRepo.ErrNotPending
	}

	_, err := f.svc.Approve(context.Background(), 10, 1)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.notifications.created)
}

func TestApprove_NotFound(t *testing.T) {
	f := newFixture()
	f.schedules.approveFunc = func(ctx context.Context, id int64, adminID int64) error {
		return scheduleRepo.ErrScheduleNotFound
	}

	_, err := f.svc.Approve(context.Background(), 10, 1)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

// --- Delete ---

func TestDelete_NotifiesActiveBookings(t *testing.T) {
	f := newFixture()
	f.bookings.getByScheduleIDFunc = func(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error) {
		return []*domain.Booking{
			{ID: 100, StudentID: 5, Status: domain.BookingStatusBooked},
		}, nil
	}

	err := f.svc.Delete(context.Background(), 10, 1)

	require.NoError(t, err)
	require.Len(t, f.audit.recorded, 1)
	assert.Equal(t, domain.AuditActionScheduleDeleted, f.audit.recorded[0].Action)

	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, int64(5), f.notifications.created[0].UserID)
	assert.Equal(t, domain.NotificationWarning, f.notifications.created[0].Type)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture()
	f.schedules.getByIDFunc = func(ctx context.Context, id int64) (*domain.Schedule, error) {
		return nil, scheduleRepo.ErrScheduleNotFound
	}

	err := f.svc.Delete(context.Background(), 10, 1)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

// --- Locations ---

func TestLocations(t *testing.T) {
	f := newFixture()

	locations := f.svc.Locations()

	require.Len(t, locations, len(domain.HospitalLocations))
	assert.Equal(t, "ISDH - Magsingal", locations[0].Name)
	assert.Equal(t, 4, locations[0].Capacity)
}
