//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) booking.TimeWindow {
	t.Helper()
	s, err := booking.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := booking.ParseTimeOfDay(end)
	require.NoError(t, err)
	w, err := booking.NewTimeWindow(s, e)
	require.NoError(t, err)
	return w
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "morning", in: "09:00", want: "09:00"},
		{name: "midnight", in: "00:00", want: "00:00"},
		{name: "last minute", in: "23:59", want: "23:59"},
		{name: "no seconds allowed", in: "09:00:00", wantErr: true},
		{name: "out of range hour", in: "24:00", wantErr: true},
		{name: "garbage", in: "soon", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := booking.ParseTimeOfDay(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, booking.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestNewTimeWindow(t *testing.T) {
	nine, _ := booking.ParseTimeOfDay("09:00")
	ten, _ := booking.ParseTimeOfDay("10:00")

	_, err := booking.NewTimeWindow(ten, nine)
	assert.ErrorIs(t, err, booking.ErrInvalidWindow)

	_, err = booking.NewTimeWindow(nine, nine)
	assert.ErrorIs(t, err, booking.ErrInvalidWindow)

	w, err := booking.NewTimeWindow(nine, ten)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, w.Duration())
}

func TestTimeWindowOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "identical windows", a: [2]string{"09:00", "10:00"}, b: [2]string{"09:00", "10:00"}, want: true},
		{name: "strict overlap", a: [2]string{"09:00", "10:30"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "containment", a: [2]string{"09:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "back to back is legal", a: [2]string{"09:00", "10:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "disjoint", a: [2]string{"08:00", "09:00"}, b: [2]string{"13:00", "14:00"}, want: false},
		{name: "one minute overlap", a: [2]string{"09:00", "10:01"}, b: [2]string{"10:00", "11:00"}, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustWindow(t, tc.a[0], tc.a[1])
			b := mustWindow(t, tc.b[0], tc.b[1])

			assert.Equal(t, tc.want, a.Overlaps(b))
			// overlap is symmetric
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		})
	}
}

func TestTimeOfDayAdd(t *testing.T) {
	start, _ := booking.ParseTimeOfDay("16:30")

	end, ok := start.Add(30 * time.Minute)
	require.True(t, ok)
	assert.Equal(t, "17:00", end.String())

	_, ok = start.Add(8 * time.Hour)
	assert.False(t, ok, "crossing midnight must be refused")
}
