package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMonth(t *testing.T) {
	for _, in := range []string{"sept", "Sept.", "SEPTEMBER", " sep ", "september"} {
		got, ok := NormalizeMonth(in)
		assert.True(t, ok, in)
		assert.Equal(t, "September", got, in)
	}

	for _, in := range []string{"", "Septober", "2025-09", "mid-September"} {
		_, ok := NormalizeMonth(in)
		assert.False(t, ok, in)
	}

	got, ok := NormalizeMonth("may")
	assert.True(t, ok)
	assert.Equal(t, "May", got)
}

func TestMonthNumber(t *testing.T) {
	assert.Equal(t, 1, MonthNumber("January"))
	assert.Equal(t, 12, MonthNumber("December"))
	assert.Equal(t, 0, MonthNumber("december"))
	assert.Equal(t, 0, MonthNumber(""))
}

func TestChooseYear(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		month     time.Month
		preferred int
		want      int
	}{
		{name: "later this year", month: time.December, want: 2026},
		{name: "current month", month: time.October, want: 2026},
		{name: "already passed", month: time.April, want: 2027},
		{name: "preferred future", month: time.April, preferred: 2028, want: 2028},
		{name: "preferred past", month: time.December, preferred: 2020, want: 2027},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseYear(tt.month, tt.preferred, now))
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2028, time.February)
	assert.Equal(t, time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2028, time.February, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestParseWhen(t *testing.T) {
	m, y, ok := ParseWhen("Apr")
	assert.True(t, ok)
	assert.Equal(t, time.April, m)
	assert.Equal(t, 0, y)

	m, y, ok = ParseWhen(" 2027-11 ")
	assert.True(t, ok)
	assert.Equal(t, time.November, m)
	assert.Equal(t, 2027, y)

	_, _, ok = ParseWhen("next spring")
	assert.False(t, ok)
}
