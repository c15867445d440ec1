// Package availability resolves a weekly plan and its exceptions into
// per-day seat timelines.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/dates"
	"github.com/julianstephens/bookable/internal/exceptions"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// PerDate resolves availability for every calendar day in [start, end) in the
// plan's timezone. Exceptions take precedence over plan entries.
func PerDate(start, end time.Time, plan models.AvailabilityPlan, exs []models.AvailabilityException) (*dates.Map[models.DayAvailability], error) {
	loc, err := zone.LoadLocation(plan.Timezone)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	if err := exceptions.Validate(exs); err != nil {
		return nil, err
	}

	days, err := dates.GenerateDates(start, end, loc)
	if err != nil {
		return nil, err
	}

	result := dates.NewMap[models.DayAvailability]()
	for _, day := range days {
		da, err := resolveDay(day, loc, plan, exs)
		if err != nil {
			return nil, err
		}
		result.Set(da.ID, da)
	}
	return result, nil
}

// planWindow is a plan entry placed on a concrete day.
type planWindow struct {
	models.Interval
	entry models.PlanEntry
}

func resolveDay(dayStart time.Time, loc *time.Location, plan models.AvailabilityPlan, exs []models.AvailabilityException) (models.DayAvailability, error) {
	dayEnd := zone.Add(dayStart, 1, zone.Day, loc)
	entries := plan.EntriesFor(dayStart.In(loc).Weekday())
	dayExceptions := exceptions.Overlapping(exs, dayStart, dayEnd)

	windows := make([]planWindow, 0, len(entries))
	for _, e := range entries {
		iv, err := EntryInterval(e, dayStart, loc)
		if err != nil {
			return models.DayAvailability{}, err
		}
		if iv.End.After(iv.Start) {
			windows = append(windows, planWindow{Interval: iv, entry: e})
		}
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start.Before(windows[j].Start) })

	ranges := []models.Range{}
	hasAvailability := false
	for cursor := dayStart; cursor.Before(dayEnd); {
		ex := activeOrNextException(dayExceptions, cursor)
		pw := activeOrNextWindow(windows, cursor)

		r := models.Range{Start: cursor}
		switch {
		case ex != nil && ex.Interval().Contains(cursor):
			r.End = earliest(ex.End, dayEnd)
			r.Seats = ex.Seats
			r.Source = models.SourceException
		case pw != nil && pw.Contains(cursor):
			r.End = earliest(pw.End, dayEnd)
			if ex != nil {
				r.End = earliest(r.End, ex.Start)
			}
			r.Seats = pw.entry.Seats
			r.Source = models.SourcePlan
		default:
			r.End = dayEnd
			if ex != nil {
				r.End = earliest(r.End, ex.Start)
			}
			if pw != nil {
				r.End = earliest(r.End, pw.Start)
			}
		}

		if !r.End.After(cursor) {
			return models.DayAvailability{}, fmt.Errorf("availability: resolution made no progress at %s", cursor.Format(time.RFC3339))
		}
		if r.Seats > 0 {
			hasAvailability = true
		}
		ranges = append(ranges, r)
		cursor = r.End
	}

	return models.DayAvailability{
		ID:              dates.DateIDOf(dayStart, loc),
		PlanEntries:     entries,
		Exceptions:      dayExceptions,
		Ranges:          ranges,
		HasAvailability: hasAvailability,
	}, nil
}

// activeOrNextException returns the exception containing cursor or, failing
// that, the first one starting after it. exs is sorted and non-overlapping.
func activeOrNextException(exs []models.AvailabilityException, cursor time.Time) *models.AvailabilityException {
	for i := range exs {
		if exs[i].End.After(cursor) {
			return &exs[i]
		}
	}
	return nil
}

func activeOrNextWindow(windows []planWindow, cursor time.Time) *planWindow {
	for i := range windows {
		if windows[i].End.After(cursor) {
			return &windows[i]
		}
	}
	return nil
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
