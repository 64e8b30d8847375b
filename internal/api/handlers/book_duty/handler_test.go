package book_duty

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	bookDuty "github.com/m04kA/CDS-DutyRosterService/internal/usecase/book_duty"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *bookDuty.Request) (*bookDuty.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *bookDuty.Request) (*bookDuty.Response, error) {
	return m.executeFunc(ctx, req)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// doRequest гонит запрос через middleware.Auth, как в боевом роутере
func doRequest(h *Handler, body, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/duties", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(middleware.HeaderUserRole, role)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{
		executeFunc: func(ctx context.Context, req *bookDuty.Request) (*bookDuty.Response, error) {
			assert.Equal(t, int64(5), req.StudentID)
			assert.Equal(t, int64(10), req.ScheduleID)
			return &bookDuty.Response{
				ID:          100,
				ScheduleID:  10,
				StudentID:   5,
				Status:      "booked",
				Date:        "2026-03-05",
				Location:    "RHU - Santa",
				ShiftStart:  "08:00",
				ShiftEnd:    "20:00",
				BookingTime: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(h, `{"scheduleId": 10}`, "5", "student")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":100`)
	assert.Contains(t, rec.Body.String(), `"date":"2026-03-05"`)
}

func TestHandle_MissingIdentity(t *testing.T) {
	h := NewHandler(&mockUseCase{}, noopLogger{})

	rec := doRequest(h, `{"scheduleId": 10}`, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_NonStudentForbidden(t *testing.T) {
	h := NewHandler(&mockUseCase{}, noopLogger{})

	for _, role := range []string{"admin", "parent"} {
		t.Run(role, func(t *testing.T) {
			rec := doRequest(h, `{"scheduleId": 10}`, "1", role)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	h := NewHandler(&mockUseCase{}, noopLogger{})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `schedule=10`},
		{name: "unknown field", body: `{"schedule_id": 10}`},
		{name: "missing schedule id", body: `{}`},
		{name: "non-positive schedule id", body: `{"scheduleId": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.body, "5", "student")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: bookDuty.ErrScheduleNotFound, wantStatus: http.StatusNotFound},
		{name: "not bookable", err: bookDuty.ErrScheduleNotBookable, wantStatus: http.StatusBadRequest},
		{name: "full", err: bookDuty.ErrScheduleFull, wantStatus: http.StatusConflict},
		{name: "duplicate", err: bookDuty.ErrDuplicateBooking, wantStatus: http.StatusConflict},
		{name: "date conflict", err: bookDuty.ErrDateConflict, wantStatus: http.StatusConflict},
		{name: "same-day rebook", err: bookDuty.ErrSameDayRebookBlocked, wantStatus: http.StatusConflict},
		{name: "invalid input", err: bookDuty.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				executeFunc: func(ctx context.Context, req *bookDuty.Request) (*bookDuty.Response, error) {
					return nil, tt.err
				},
			}
			h := NewHandler(uc, noopLogger{})

			rec := doRequest(h, `{"scheduleId": 10}`, "5", "student")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
