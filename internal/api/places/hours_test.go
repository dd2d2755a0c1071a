package places

import (
	"testing"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHours(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9:00 AM – 5:00 PM", "9:00 AM - 5:00 PM"},
		{"9:00 – 11:30 AM", "9:00 AM - 11:30 AM"},
		{"10am—6pm", "10 AM - 6 PM"},
		{"  8:00  AM -   10:00 PM ", "8:00 AM - 10:00 PM"},
		{"11:00 AM – 2:30 PM, 5:00 – 10:00 PM", "11:00 AM - 2:30 PM, 5:00 AM - 10:00 PM"},
		{"Café 9:00 AM – 5:00 PM", "Cafe 9:00 AM - 5:00 PM"},
		{"Open 24 hours", "Open 24 hours"},
		{"Closed", "Closed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHours(tt.in))
		})
	}
}

func TestTodayHours(t *testing.T) {
	week := []string{
		"Monday: 9:00 AM – 5:00 PM",
		"Tuesday: Closed",
	}

	got, ok := TodayHours(week, time.Monday)
	require.True(t, ok)
	assert.Equal(t, "9:00 AM - 5:00 PM", got)

	got, ok = TodayHours(week, time.Tuesday)
	require.True(t, ok)
	assert.Equal(t, "Closed", got)

	got, ok = TodayHours(week, time.Sunday)
	assert.False(t, ok)
	assert.Equal(t, DefaultHours, got)
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in    string
		start types.Clock
		end   types.Clock
	}{
		{"9:00 AM - 5:00 PM", 9 * 60, 17 * 60},
		{"10 AM - 6 PM", 10 * 60, 18 * 60},
		{"12:00 PM - 11:30 PM", 12 * 60, 23*60 + 30},
		{"12:00 AM - 6:00 AM", 0, 6 * 60},
		{"11:00 AM - 2:30 PM, 5:00 PM - 10:00 PM", 11 * 60, 22 * 60},
		{"6:00 PM - 2:00 AM", 18 * 60, types.EndOfDay},
		{"Open 24 hours", 0, types.EndOfDay},
		{"18:00 - 22:00", 18 * 60, 22 * 60},
		{DefaultHours, 10 * 60, 18 * 60},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := ParseHours(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
		})
	}
}

func TestParseHours_Unparseable(t *testing.T) {
	for _, s := range []string{"", "Closed", "by appointment", "13:00 PM - 2:00 PM", "9:00 AM"} {
		_, err := ParseHours(s)
		assert.Error(t, err, s)
	}
}
