package booking

import (
	"time"

	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/timeslots"
	"github.com/julianstephens/bookable/internal/zone"
)

// Selection is a consistent set of booking form values for one start date.
// Zero times mean nothing could be selected.
type Selection struct {
	StartTimes []models.TimeOption `json:"startTimes"`
	EndTimes   []models.TimeOption `json:"endTimes"`
	StartTime  time.Time           `json:"startTime"`
	EndDate    time.Time           `json:"endDate"`
	EndTime    time.Time           `json:"endTime"`
	Seats      int                 `json:"seats"`
}

// Bookable reports whether the selection has both a start and an end.
func (s Selection) Bookable() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero()
}

// AllTimeValues resolves the start times for day and then, for the chosen start,
// the end date and end times. selectedStart and selectedEndDate are kept when
// they are still valid; otherwise the earliest candidates are used.
func (c *Calculator) AllTimeValues(day time.Time, slots []models.TimeSlot, selectedStart, selectedEndDate time.Time) Selection {
	sel := Selection{
		StartTimes: c.StartTimes(day, slots),
		EndTimes:   []models.TimeOption{},
	}
	if len(sel.StartTimes) == 0 {
		return sel
	}

	sel.StartTime = sel.StartTimes[0].Timestamp
	for _, o := range sel.StartTimes {
		if o.Timestamp.Equal(selectedStart) {
			sel.StartTime = o.Timestamp
			break
		}
	}

	firstEnd, lastEnd, ok := c.EndDateRange(sel.StartTime, slots)
	if !ok {
		return sel
	}
	sel.EndDate = firstEnd
	if c.Fixed() {
		sel.EndDate = lastEnd
	} else if !selectedEndDate.IsZero() {
		picked := zone.StartOf(selectedEndDate, zone.Day, c.opts.Location)
		if !picked.Before(firstEnd) && !picked.After(lastEnd) {
			sel.EndDate = picked
		}
	}

	sel.EndTimes = c.EndTimes(sel.StartTime, sel.EndDate, slots)
	if len(sel.EndTimes) == 0 {
		return sel
	}
	sel.EndTime = sel.EndTimes[0].Timestamp
	if seats, ok := SeatsForBooking(timeslots.Sorted(slots), sel.StartTime, sel.EndTime); ok {
		sel.Seats = seats
	}
	return sel
}
