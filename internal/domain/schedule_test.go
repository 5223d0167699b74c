package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T, days, start, end string) Schedule {
	t.Helper()
	s, err := ParseSchedule(days, start, end)
	require.NoError(t, err)
	return s
}

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"09:00":   NewClock(9, 0),
		"13:30":   NewClock(13, 30),
		"1:00PM":  NewClock(13, 0),
		"1:00pm":  NewClock(13, 0),
		"8:30 AM": NewClock(8, 30),
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ParseClock("nine")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "09:05", NewClock(9, 5).String())
	assert.Equal(t, "17:00", NewClock(17, 0).String())
}

func TestNewPeriod_StartMustPrecedeEnd(t *testing.T) {
	_, err := NewPeriod(NewClock(10, 0), NewClock(10, 0))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewPeriod(NewClock(11, 0), NewClock(10, 0))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	p, err := NewPeriod(NewClock(9, 0), NewClock(10, 0))
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", p.String())
}

func TestPeriod_Overlaps(t *testing.T) {
	base, _ := ParsePeriod("09:00", "10:00")

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"相同时段", "09:00", "10:00", true},
		{"后半重叠", "09:30", "10:30", true},
		{"前半重叠", "08:30", "09:30", true},
		{"包含", "08:00", "11:00", true},
		{"被包含", "09:15", "09:45", true},
		{"首尾相接-之后", "10:00", "11:00", false},
		{"首尾相接-之前", "08:00", "09:00", false},
		{"完全分离", "13:00", "14:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := ParsePeriod(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, base.Overlaps(other))
			assert.Equal(t, tc.want, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestDays_Intersects(t *testing.T) {
	assert.True(t, DaysMTH.Intersects(DaysMTH))
	assert.True(t, DaysMTH.Intersects(DaysMW))  // 周一
	assert.True(t, DaysTF.Intersects(DaysTTH))  // 周二
	assert.True(t, DaysWS.Intersects(DaysMW))   // 周三
	assert.True(t, DaysMTH.Intersects(DaysTTH)) // 周四
	assert.False(t, DaysMTH.Intersects(DaysTF))
	assert.False(t, DaysMTH.Intersects(DaysWS))
	assert.False(t, DaysTF.Intersects(DaysWS))
}

func TestParseDays(t *testing.T) {
	d, err := ParseDays("mth")
	require.NoError(t, err)
	assert.Equal(t, DaysMTH, d)

	_, err = ParseDays("SUN")
	assert.Error(t, err)
}

func TestSchedule_ConflictsWith(t *testing.T) {
	mw0900 := mustSchedule(t, "MW", "09:00", "10:00")

	assert.True(t, mw0900.ConflictsWith(mustSchedule(t, "MW", "09:30", "10:30")))
	assert.False(t, mw0900.ConflictsWith(mustSchedule(t, "MW", "10:00", "11:00")))
	assert.False(t, mw0900.ConflictsWith(mustSchedule(t, "TF", "09:00", "10:00")))
	assert.True(t, mw0900.ConflictsWith(mustSchedule(t, "MTH", "09:00", "10:00")))
}

func TestParseSchedule_Invalid(t *testing.T) {
	_, err := ParseSchedule("XYZ", "09:00", "10:00")
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	_, err = ParseSchedule("MTH", "10:00", "09:00")
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestSchedule_Signature(t *testing.T) {
	s := mustSchedule(t, "tth", "1:00PM", "2:30PM")
	assert.Equal(t, "TTH 13:00-14:30", s.Signature())
}
