package worktime

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"9:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1230", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "07:30", FormatClock(450))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "07:30", Normalize("07:30:00"))
	assert.Equal(t, "07:30", Normalize("07:30"))
	assert.Equal(t, "9:05", Normalize("9:05"))
}

func TestPayableHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{"morning shift, no lunch overlap", "07:30", "09:00", "1.5"},
		{"spans the whole lunch break", "08:00", "17:00", "8"},
		{"ends inside lunch", "10:00", "12:30", "2"},
		{"starts inside lunch", "12:30", "15:00", "2"},
		{"entirely inside lunch", "12:10", "12:50", "0"},
		{"one minute shift", "08:59", "09:00", "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseClock(tt.start)
			require.NoError(t, err)
			end, err := ParseClock(tt.end)
			require.NoError(t, err)

			got := PayableHours(start, end)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s hours, got %s", tt.expected, got)
		})
	}
}
