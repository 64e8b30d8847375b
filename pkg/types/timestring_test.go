package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:00", want: "08:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "12:60", wantErr: true},
		{name: "missing leading zero", input: "8:00", wantErr: true},
		{name: "with seconds", input: "08:00:00", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	start := TimeString("08:00")
	end := TimeString("20:00")

	assert.True(t, start.IsBefore(end))
	assert.False(t, start.IsAfter(end))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	// Перенос через полночь
	got, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), got)

	_, err = TimeString("oops").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("20:00:00"))
	assert.Equal(t, TimeString("20:00"), ts)

	require.NoError(t, ts.Scan([]byte("12:30:45")))
	assert.Equal(t, TimeString("12:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
