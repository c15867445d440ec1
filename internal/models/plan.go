package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
)

// DayOfWeek is the three-letter lowercase weekday key used by availability plans.
type DayOfWeek string

const (
	Sunday    DayOfWeek = "sun"
	Monday    DayOfWeek = "mon"
	Tuesday   DayOfWeek = "tue"
	Wednesday DayOfWeek = "wed"
	Thursday  DayOfWeek = "thu"
	Friday    DayOfWeek = "fri"
	Saturday  DayOfWeek = "sat"
)

// DaysOfWeek lists the plan weekday keys indexed by time.Weekday (0=Sunday).
var DaysOfWeek = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var dayMap = map[string]DayOfWeek{
	"sun":       Sunday,
	"sunday":    Sunday,
	"mon":       Monday,
	"monday":    Monday,
	"tue":       Tuesday,
	"tuesday":   Tuesday,
	"wed":       Wednesday,
	"wednesday": Wednesday,
	"thu":       Thursday,
	"thursday":  Thursday,
	"fri":       Friday,
	"friday":    Friday,
	"sat":       Saturday,
	"saturday":  Saturday,
}

// ParseDayOfWeek accepts short or long weekday names in any case.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	if d, ok := dayMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("invalid day of week: %q", s)
}

// DayOfWeekFor returns the plan key for a time.Weekday.
func DayOfWeekFor(wd time.Weekday) DayOfWeek {
	return DaysOfWeek[wd]
}

func (d DayOfWeek) index() int {
	for i, v := range DaysOfWeek {
		if v == d {
			return i
		}
	}
	return -1
}

// Weekday converts the key to a time.Weekday. ok is false for unknown keys.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	i := d.index()
	if i < 0 {
		return 0, false
	}
	return time.Weekday(i), true
}

// PlanEntry is one recurring weekly availability window.
type PlanEntry struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	StartTime string    `json:"startTime"` // HH:MM format
	EndTime   string    `json:"endTime"`   // HH:MM format, "00:00" runs to the next midnight
	Seats     int       `json:"seats"`
}

// EndsAtMidnight reports whether the entry runs through the end of its day.
func (e PlanEntry) EndsAtMidnight() bool {
	return e.EndTime == constants.Midnight
}

func (e PlanEntry) Validate() error {
	if _, ok := e.DayOfWeek.Weekday(); !ok {
		return fmt.Errorf("invalid day of week %q", e.DayOfWeek)
	}
	start, err := time.Parse(constants.TimeFormat, e.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	end, err := time.Parse(constants.TimeFormat, e.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
	}
	if !e.EndsAtMidnight() && !end.After(start) {
		return fmt.Errorf("end time %s must be after start time %s", e.EndTime, e.StartTime)
	}
	if e.Seats < 0 {
		return fmt.Errorf("seats cannot be negative (got %d)", e.Seats)
	}
	return nil
}

// AvailabilityPlan is a provider's recurring weekly availability template.
type AvailabilityPlan struct {
	Timezone string      `json:"timezone"` // IANA timezone name, e.g. "Europe/Helsinki"
	Entries  []PlanEntry `json:"entries"`
}

// EntriesFor returns the entries defined for the given weekday, in plan order.
func (p AvailabilityPlan) EntriesFor(wd time.Weekday) []PlanEntry {
	key := DayOfWeekFor(wd)
	entries := []PlanEntry{}
	for _, e := range p.Entries {
		if e.DayOfWeek == key {
			entries = append(entries, e)
		}
	}
	return entries
}
