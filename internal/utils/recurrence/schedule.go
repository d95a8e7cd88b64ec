// Package recurrence computes the next occurrence date of a recurring
// document series. The functions here are pure and carry the whole
// calendar-arithmetic policy for the scheduler.
package recurrence

import (
	"time"

	"github.com/bizopshq/bizops_backend/internal/core/domain"
)

// NextDate returns the next occurrence after anchor for the given frequency.
// Unrecognized frequency values fall back to monthly. The result is always
// strictly after anchor.
//
// Month and year increments are calendar-correct, not fixed day counts.
// End-of-month rollover policy: when the anchor day does not exist in the
// target month, the result is clamped to the last valid day of that month
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year). Note this differs
// from time.AddDate, which would normalize Jan 31 + 1 month into early March.
func NextDate(anchor time.Time, freq domain.Frequency) time.Time {
	switch freq.Normalize() {
	case domain.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7)
	case domain.FrequencyYearly:
		return addMonthsClamped(anchor, 12)
	default:
		return addMonthsClamped(anchor, 1)
	}
}

// addMonthsClamped adds months to t, clamping the day of month to the last
// valid day of the target month instead of spilling into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
