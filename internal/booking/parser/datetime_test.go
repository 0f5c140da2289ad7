package parser

import (
	"testing"
	"time"

	"github.com/bookative-core/server/internal/booking/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 11 June 2025.
var refNow = time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC)

func day(t time.Time) string {
	return t.Format("2006-01-02")
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      model.Intent
	}{
		{"book keyword", "I want to book something", model.IntentBookAppointment},
		{"schedule keyword", "schedule me in", model.IntentBookAppointment},
		{"appointment keyword", "I need an appointment", model.IntentBookAppointment},
		{"meeting keyword", "set up a meeting", model.IntentBookAppointment},
		{"available keyword", "anything available?", model.IntentCheckAvailability},
		{"free keyword", "what's free on monday", model.IntentCheckAvailability},
		{"open keyword", "any open times", model.IntentCheckAvailability},
		{"booking wins over availability", "schedule me when you're free", model.IntentBookAppointment},
		{"no intent", "hello there", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAt(tt.utterance, refNow)
			assert.Equal(t, tt.want, got.Intent)
		})
	}
}

func TestParseTimePriority(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"full form wins", "let's meet at 2:30 pm sharp", "2:30 pm"},
		{"bare hour with period", "tomorrow at 2 PM", "2 PM"},
		{"compact form", "2pm works", "2pm"},
		{"24 hour fallback", "how about 14:30", "14:30"},
		{"minutes without period", "2:30 in the afternoon", "2:30"},
		{"no time", "sometime tomorrow", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAt(tt.utterance, refNow)
			assert.Equal(t, tt.want, got.Time)
		})
	}
}

func TestParseDateRelativeDays(t *testing.T) {
	got := ParseAt("see you tomorrow", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, day(refNow.AddDate(0, 0, 1)), day(got.Date))

	got = ParseAt("later today please", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, day(refNow), day(got.Date))
}

func TestParseDateWeekdays(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantDays  int
	}{
		// refNow is a Wednesday.
		{"upcoming friday", "friday works", 2},
		{"upcoming monday wraps", "monday works", 5},
		{"same weekday goes to next week", "wednesday works", 7},
		{"next friday lands a week later", "next friday works", 9},
		{"next monday", "next monday works", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAt(tt.utterance, refNow)
			require.True(t, got.HasDate())
			assert.Equal(t, day(refNow.AddDate(0, 0, tt.wantDays)), day(got.Date))
		})
	}
}

func TestParseNextFridayWindow(t *testing.T) {
	// "next friday" always lands on a Friday at least a week out, except from
	// a Saturday where the offset formula yields six days.
	for offset := 0; offset < 7; offset++ {
		now := refNow.AddDate(0, 0, offset)
		got := ParseAt("next friday", now)
		require.True(t, got.HasDate())
		assert.Equal(t, time.Friday, got.Date.Weekday())

		days := int(got.Date.Sub(now).Hours() / 24)
		min := 7
		if now.Weekday() == time.Saturday {
			min = 6
		}
		assert.GreaterOrEqual(t, days, min, "reference %s", now.Weekday())
		assert.LessOrEqual(t, days, 13, "reference %s", now.Weekday())
	}
}

func TestParseBareWeekdayNeverToday(t *testing.T) {
	// A bare weekday equal to today's resolves to the following week.
	for offset := 0; offset < 7; offset++ {
		now := refNow.AddDate(0, 0, offset)
		name := now.Weekday().String()
		got := ParseAt(name, now)
		require.True(t, got.HasDate())
		assert.Equal(t, day(now.AddDate(0, 0, 7)), day(got.Date))
	}
}

func TestParseWeekOverrides(t *testing.T) {
	got := ParseAt("sometime this week", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, time.Saturday, got.Date.Weekday())
	assert.Equal(t, day(refNow.AddDate(0, 0, 3)), day(got.Date))

	got = ParseAt("sometime next week", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, time.Sunday, got.Date.Weekday())
	assert.Equal(t, day(refNow.AddDate(0, 0, 4)), day(got.Date))
}

func TestParseWeekOverrideReplacesEarlierDate(t *testing.T) {
	// The whole-phrase override runs after the positional rules and wins even
	// when a specific day already matched.
	got := ParseAt("tomorrow this week", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, day(refNow.AddDate(0, 0, 3)), day(got.Date))

	got = ParseAt("friday next week", refNow)
	require.True(t, got.HasDate())
	assert.Equal(t, day(refNow.AddDate(0, 0, 4)), day(got.Date))
}

func TestParseNeverFails(t *testing.T) {
	for _, utterance := range []string{"", "   ", "?!#", "abcdefg", "9999999999"} {
		got := ParseAt(utterance, refNow)
		assert.False(t, got.HasIntent())
		assert.False(t, got.HasDate())
	}
}
