package recurrence_test

import (
	"testing"
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/utils/recurrence"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDate(t *testing.T) {
	testCases := []struct {
		name     string
		anchor   time.Time
		freq     domain.Frequency
		expected time.Time
	}{
		{"weekly adds seven days", date(2024, time.March, 1), domain.FrequencyWeekly, date(2024, time.March, 8)},
		{"weekly crosses month boundary", date(2024, time.January, 29), domain.FrequencyWeekly, date(2024, time.February, 5)},
		{"monthly mid-month", date(2024, time.April, 15), domain.FrequencyMonthly, date(2024, time.May, 15)},
		{"monthly clamps Jan 31 to leap Feb 29", date(2024, time.January, 31), domain.FrequencyMonthly, date(2024, time.February, 29)},
		{"monthly clamps Jan 31 to Feb 28", date(2025, time.January, 31), domain.FrequencyMonthly, date(2025, time.February, 28)},
		{"monthly clamps Mar 31 to Apr 30", date(2024, time.March, 31), domain.FrequencyMonthly, date(2024, time.April, 30)},
		{"monthly crosses year boundary", date(2024, time.December, 10), domain.FrequencyMonthly, date(2025, time.January, 10)},
		{"yearly keeps the calendar day", date(2024, time.January, 31), domain.FrequencyYearly, date(2025, time.January, 31)},
		{"yearly clamps leap Feb 29 to Feb 28", date(2024, time.February, 29), domain.FrequencyYearly, date(2025, time.February, 28)},
		{"empty frequency defaults to monthly", date(2024, time.June, 5), domain.Frequency(""), date(2024, time.July, 5)},
		{"unknown frequency defaults to monthly", date(2024, time.June, 5), domain.Frequency("fortnightly"), date(2024, time.July, 5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := recurrence.NextDate(tc.anchor, tc.freq)
			assert.True(t, got.Equal(tc.expected), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestNextDateIsStrictlyAfterAnchor(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.December, 31),
		date(2025, time.June, 15),
	}
	frequencies := []domain.Frequency{
		domain.FrequencyWeekly,
		domain.FrequencyMonthly,
		domain.FrequencyYearly,
	}

	for _, anchor := range anchors {
		for _, freq := range frequencies {
			got := recurrence.NextDate(anchor, freq)
			assert.True(t, got.After(anchor), "NextDate(%s, %s) = %s is not after the anchor", anchor, freq, got)
		}
	}
}

// Chaining from the previous result, not from "now", keeps the cadence free
// of drift no matter when the scheduler gets around to a record.
func TestNextDateChaining(t *testing.T) {
	anchor := date(2024, time.January, 15)

	stepwise := anchor
	for i := 0; i < 24; i++ {
		stepwise = recurrence.NextDate(stepwise, domain.FrequencyMonthly)
	}
	assert.True(t, stepwise.Equal(date(2026, time.January, 15)), "got %s", stepwise)

	weekly := anchor
	for i := 0; i < 52; i++ {
		weekly = recurrence.NextDate(weekly, domain.FrequencyWeekly)
	}
	assert.True(t, weekly.Equal(anchor.AddDate(0, 0, 52*7)), "got %s", weekly)
}

func TestNextDatePreservesTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, time.May, 31, 9, 30, 0, 0, time.UTC)
	got := recurrence.NextDate(anchor, domain.FrequencyMonthly)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.True(t, got.Equal(time.Date(2024, time.June, 30, 9, 30, 0, 0, time.UTC)))
}
