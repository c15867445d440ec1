package zone

import (
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
)

// Interval is a step between candidate booking times, e.g. 30 minutes or 1 hour.
type Interval struct {
	Amount int
	Unit   Unit
}

// IntervalFromMinutes expresses whole hours as an hour interval and anything else in minutes.
func IntervalFromMinutes(minutes int) Interval {
	if minutes > 0 && minutes%60 == 0 {
		return Interval{Amount: minutes / 60, Unit: Hour}
	}
	return Interval{Amount: minutes, Unit: Minute}
}

func (iv Interval) Validate() error {
	if iv.Amount <= 0 {
		return errors.Precondition("Interval", "amount must be positive (got %d)", iv.Amount)
	}
	switch iv.Unit {
	case Minute, Hour, Day:
		return nil
	}
	return errors.Precondition("Interval", "unsupported unit %q", iv.Unit)
}

// NextBoundary returns the first aligned instant strictly after t:
//   - minutes: multiples of Amount counted from the start of t's day (reset at midnight)
//   - hours: the sharp hour Amount hours after t's hour
//   - days: the start of the day Amount days after t's day
func NextBoundary(t time.Time, iv Interval, loc *time.Location) time.Time {
	switch iv.Unit {
	case Minute:
		day := StartOf(t, Day, loc)
		elapsed := int(t.Sub(day) / time.Minute)
		next := day.Add(time.Duration((elapsed/iv.Amount+1)*iv.Amount) * time.Minute)
		if nextDay := Add(day, 1, Day, loc); next.After(nextDay) {
			return nextDay
		}
		return next
	case Hour:
		return StartOf(t, Hour, loc).Add(time.Duration(iv.Amount) * time.Hour)
	default:
		return Add(StartOf(t, Day, loc), iv.Amount, Day, loc)
	}
}

// Boundaries returns every aligned instant in [start, end], stepping by iv.
// The first boundary is the first aligned instant at or after start: a sharp
// hour for hour intervals, a day start for day intervals.
func Boundaries(start, end time.Time, iv Interval, loc *time.Location) ([]time.Time, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.Precondition("Boundaries", "end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	first := iv
	if iv.Unit != Minute {
		first = Interval{Amount: 1, Unit: iv.Unit}
	}

	boundaries := []time.Time{}
	for cur := NextBoundary(start.Add(-constants.EndOffset), first, loc); !cur.After(end); cur = NextBoundary(cur, iv, loc) {
		boundaries = append(boundaries, cur)
	}
	return boundaries, nil
}
