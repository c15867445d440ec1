package booking

import (
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// StartTimes returns the candidate start times on the day containing day.
// A candidate is kept when the whole booking fits inside one run.
func (c *Calculator) StartTimes(day time.Time, slots []models.TimeSlot) []models.TimeOption {
	loc := c.opts.Location
	dayStart := zone.StartOf(day, zone.Day, loc)
	nextDay := zone.Add(dayStart, 1, zone.Day, loc)

	_, runs := c.runs(slots)
	var candidates []time.Time
	for _, r := range runs {
		from, to := latest(dayStart, r.Start), earliest(nextDay, r.End)
		if to.Before(from) {
			continue
		}
		boundaries, err := zone.Boundaries(from, to, c.opts.StartTimeInterval, loc)
		if err != nil {
			continue
		}
		for _, b := range boundaries {
			if !b.Before(nextDay) || c.inPast(b) {
				continue
			}
			if c.bookingEnd(b).After(r.End) {
				continue
			}
			candidates = append(candidates, b)
		}
	}
	return c.options(candidates)
}

// EndDateRange returns the first and last calendar day (as day starts) a booking
// beginning at start may end on. ok is false when no run contains start.
func (c *Calculator) EndDateRange(start time.Time, slots []models.TimeSlot) (time.Time, time.Time, bool) {
	loc := c.opts.Location
	r, ok := c.runContaining(slots, start)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	first := zone.StartOf(start, zone.Day, loc)
	if c.Fixed() {
		end := zone.StartOf(c.bookingEnd(start).Add(-constants.EndOffset), zone.Day, loc)
		return first, end, true
	}
	return first, zone.StartOf(r.End.Add(-constants.EndOffset), zone.Day, loc), true
}

// EndTimes returns the candidate end times for a booking beginning at start.
// With a fixed booking length there is at most one candidate. Otherwise the
// candidates are the interval boundaries on endDate that the run reaches;
// a zero endDate means the day of start.
func (c *Calculator) EndTimes(start, endDate time.Time, slots []models.TimeSlot) []models.TimeOption {
	loc := c.opts.Location
	r, ok := c.runContaining(slots, start)
	if !ok {
		return []models.TimeOption{}
	}

	if c.Fixed() {
		end := c.bookingEnd(start)
		if end.After(r.End) {
			return []models.TimeOption{}
		}
		return c.options([]time.Time{end})
	}

	if endDate.IsZero() {
		endDate = start
	}
	endDayStart := zone.StartOf(endDate, zone.Day, loc)
	limit := earliest(r.End, zone.Add(endDayStart, 1, zone.Day, loc))

	var from time.Time
	if zone.IsSameDay(start, endDate, loc) {
		from = start
	} else {
		from = endDayStart
	}
	if limit.Before(from) {
		return []models.TimeOption{}
	}

	boundaries, err := zone.Boundaries(from, limit, c.opts.StartTimeInterval, loc)
	if err != nil {
		return []models.TimeOption{}
	}
	var candidates []time.Time
	for _, b := range boundaries {
		if b.After(start) {
			candidates = append(candidates, b)
		}
	}
	return c.options(candidates)
}

// options sorts and de-duplicates instants and labels them.
func (c *Calculator) options(ts []time.Time) []models.TimeOption {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	out := []models.TimeOption{}
	for i, t := range ts {
		if i > 0 && t.Equal(ts[i-1]) {
			continue
		}
		out = append(out, c.option(t))
	}
	return out
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
