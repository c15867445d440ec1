// Package booking derives selectable booking start and end times from the
// time slots available on a date.
package booking

import (
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/timeslots"
	"github.com/julianstephens/bookable/internal/zone"
)

// Options configures a Calculator.
type Options struct {
	// Location is the listing timezone. Required.
	Location *time.Location
	// BookingLengthInMinutes is the fixed duration of one booking.
	// Zero selects unit booking, where the customer picks both ends.
	BookingLengthInMinutes int
	// StartTimeInterval is the spacing of candidate times. Defaults to one hour.
	StartTimeInterval zone.Interval
	// SeatsEnabled makes slots with different seat counts break a run, so no
	// candidate spans a seat change; SeatsForBooking still chains across one.
	SeatsEnabled bool
	// Now drops candidates in the past. The zero value disables the cutoff.
	Now time.Time
}

// Calculator computes booking candidates. It holds no mutable state.
type Calculator struct {
	opts Options
}

func New(opts Options) (*Calculator, error) {
	if opts.Location == nil {
		return nil, errors.Configuration("timezone", "", nil)
	}
	if opts.BookingLengthInMinutes < 0 {
		return nil, errors.Precondition("booking.New", "booking length cannot be negative (got %d)", opts.BookingLengthInMinutes)
	}
	if opts.StartTimeInterval == (zone.Interval{}) {
		opts.StartTimeInterval = zone.IntervalFromMinutes(constants.DefaultStartTimeIntervalMin)
	}
	if err := opts.StartTimeInterval.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{opts: opts}, nil
}

// Fixed reports whether bookings have a fixed length.
func (c *Calculator) Fixed() bool {
	return c.opts.BookingLengthInMinutes > 0
}

func (c *Calculator) Options() Options {
	return c.opts
}

// Placeholder returns the label of the next sharp hour after now, shown before a
// start time is picked.
func (c *Calculator) Placeholder(now time.Time) string {
	if now.IsZero() {
		return constants.PlaceholderTimeOfDay
	}
	return zone.FormatTimeOfDay(zone.NextBoundary(now, zone.Interval{Amount: 1, Unit: zone.Hour}, c.opts.Location), c.opts.Location)
}

func (c *Calculator) option(t time.Time) models.TimeOption {
	return models.TimeOption{Timestamp: t, TimeOfDay: zone.FormatTimeOfDay(t, c.opts.Location)}
}

// bookingEnd is the earliest end a booking starting at t can have.
func (c *Calculator) bookingEnd(t time.Time) time.Time {
	if c.Fixed() {
		return t.Add(time.Duration(c.opts.BookingLengthInMinutes) * time.Minute)
	}
	iv := c.opts.StartTimeInterval
	return zone.Add(t, iv.Amount, iv.Unit, c.opts.Location)
}

func (c *Calculator) inPast(t time.Time) bool {
	return !c.opts.Now.IsZero() && t.Before(c.opts.Now)
}

func (c *Calculator) runs(slots []models.TimeSlot) ([]models.TimeSlot, []Run) {
	sorted := timeslots.Sorted(slots)
	return sorted, Runs(sorted, c.opts.SeatsEnabled)
}

func (c *Calculator) runContaining(slots []models.TimeSlot, t time.Time) (Run, bool) {
	_, runs := c.runs(slots)
	for _, r := range runs {
		if r.Contains(t) {
			return r, true
		}
	}
	return Run{}, false
}
