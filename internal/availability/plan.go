package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// ValidatePlan checks the plan timezone and entries. Entries sharing a weekday
// must not overlap.
func ValidatePlan(plan models.AvailabilityPlan) error {
	if _, err := zone.LoadLocation(plan.Timezone); err != nil {
		return err
	}
	for i, e := range plan.Entries {
		if err := e.Validate(); err != nil {
			return errors.Precondition("ValidatePlan", "entry %d: %v", i, err)
		}
	}

	for _, wd := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		entries := plan.EntriesFor(wd)
		sort.Slice(entries, func(i, j int) bool {
			return minutesOf(entries[i].StartTime) < minutesOf(entries[j].StartTime)
		})
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1], entries[i]
			if minutesOf(cur.StartTime) < endMinutesOf(prev) {
				return errors.Precondition("ValidatePlan", "overlapping %s entries %s-%s and %s-%s",
					cur.DayOfWeek, prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime)
			}
		}
	}
	return nil
}

// EntryInterval places a plan entry on the calendar day starting at dayStart.
// An "00:00" end time resolves to the start of the next day.
func EntryInterval(e models.PlanEntry, dayStart time.Time, loc *time.Location) (models.Interval, error) {
	start, err := atTimeOfDay(dayStart, e.StartTime, loc)
	if err != nil {
		return models.Interval{}, err
	}
	if e.EndsAtMidnight() {
		return models.Interval{Start: start, End: zone.Add(dayStart, 1, zone.Day, loc)}, nil
	}
	end, err := atTimeOfDay(dayStart, e.EndTime, loc)
	if err != nil {
		return models.Interval{}, err
	}
	return models.Interval{Start: start, End: end}, nil
}

func atTimeOfDay(dayStart time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", hhmm, err)
	}
	d := dayStart.In(loc)
	return zone.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func minutesOf(hhmm string) int {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func endMinutesOf(e models.PlanEntry) int {
	if e.EndsAtMidnight() {
		return 24 * 60
	}
	return minutesOf(e.EndTime)
}
