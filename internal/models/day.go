package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
)

// DateID identifies a calendar date in a specific timezone.
// Its string form is the ISO-8601 "YYYY-MM-DD" key used by per-date mappings.
type DateID struct {
	Zone  string
	Year  int
	Month time.Month
	Day   int
}

func (d DateID) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d DateID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a YYYY-MM-DD key. The zone is not part of the text form
// and is left empty.
func (d *DateID) UnmarshalText(text []byte) error {
	t, err := time.Parse(constants.DateFormat, string(text))
	if err != nil {
		return fmt.Errorf("invalid date id %q: %w", text, err)
	}
	*d = DateID{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	return nil
}

// Start returns the first instant of the date in loc, normally midnight.
func (d DateID) Start(loc *time.Location) time.Time {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	if t.Day() != d.Day {
		// midnight skipped by a DST jump: the day starts at the transition
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end
		}
	}
	return t
}

// Weekday is the day of the week of the calendar date.
func (d DateID) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Before orders dates on the calendar, ignoring the zone.
func (d DateID) Before(o DateID) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// RangeSource tells which input decided a resolved range's seat count.
type RangeSource string

const (
	SourceNone      RangeSource = ""
	SourcePlan      RangeSource = "plan"
	SourceException RangeSource = "exception"
)

// Range is one resolved piece of a day's availability timeline.
type Range struct {
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Seats  int         `json:"seats"`
	Source RangeSource `json:"source,omitempty"`
}

// DayAvailability is the plan and exceptions reconciled for one calendar day.
type DayAvailability struct {
	ID              DateID                  `json:"id"`
	PlanEntries     []PlanEntry             `json:"planEntries"`
	Exceptions      []AvailabilityException `json:"exceptions"`
	Ranges          []Range                 `json:"ranges"`
	HasAvailability bool                    `json:"hasAvailability"`
}

// DateTimeSlotBucket holds the time slots touching one calendar day.
type DateTimeSlotBucket struct {
	ID              DateID     `json:"id"`
	TimeSlots       []TimeSlot `json:"timeSlots"`
	HasAvailability bool       `json:"hasAvailability"`
}

// TimeOption is a selectable booking time: the instant and its HH:MM label in the listing timezone.
type TimeOption struct {
	Timestamp time.Time `json:"timestamp"`
	TimeOfDay string    `json:"timeOfDay"`
}
