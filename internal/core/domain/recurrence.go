package domain

import "time"

// Frequency is the cadence at which a recurring document regenerates.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Normalize maps unknown or empty frequency values to the monthly default.
func (f Frequency) Normalize() Frequency {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f
	default:
		return FrequencyMonthly
	}
}

// RecurringSeries carries the fields that drive automatic regeneration of a
// document. NextRunDate is non-nil whenever IsRecurring is true; generated
// copies always have IsRecurring=false and a nil NextRunDate.
type RecurringSeries struct {
	IsRecurring bool       `json:"isRecurring"`
	Frequency   Frequency  `json:"frequency"`
	NextRunDate *time.Time `json:"nextRunDate,omitempty"`
}
