// Package timeslots buckets fetched time slots by calendar day.
package timeslots

import (
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/dates"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

type options struct {
	minSeats int
}

// Option configures PerDate.
type Option func(*options)

// WithMinSeats keeps only slots with at least n seats. The default is 1.
func WithMinSeats(n int) Option {
	return func(o *options) {
		o.minSeats = n
	}
}

// PerDate buckets slots into every calendar day of [start, end) in loc.
// A slot lands in each day it touches.
func PerDate(start, end time.Time, slots []models.TimeSlot, loc *time.Location, opts ...Option) (*dates.Map[models.DateTimeSlotBucket], error) {
	o := options{minSeats: constants.DefaultMinSeats}
	for _, opt := range opts {
		opt(&o)
	}
	if o.minSeats < 0 {
		return nil, errors.Precondition("TimeSlotsPerDate", "minimum seats cannot be negative (got %d)", o.minSeats)
	}

	days, err := dates.GenerateDates(start, end, loc)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Seats >= o.minSeats {
			eligible = append(eligible, s)
		}
	}

	result := dates.NewMap[models.DateTimeSlotBucket]()
	for _, day := range days {
		daySlots := ForDate(eligible, day, loc)
		id := dates.DateIDOf(day, loc)
		result.Set(id, models.DateTimeSlotBucket{
			ID:              id,
			TimeSlots:       daySlots,
			HasAvailability: len(daySlots) > 0,
		})
	}
	return result, nil
}

// ForDate returns the slots touching the calendar day containing day, in input order.
func ForDate(slots []models.TimeSlot, day time.Time, loc *time.Location) []models.TimeSlot {
	dayStart := zone.StartOf(day, zone.Day, loc)
	dayEnd := zone.Add(dayStart, 1, zone.Day, loc)

	out := []models.TimeSlot{}
	for _, s := range slots {
		lastInstant := s.End.Add(-constants.EndOffset)
		if s.Start.Before(dayEnd) && !lastInstant.Before(dayStart) {
			out = append(out, s)
		}
	}
	return out
}

// Sorted returns a copy of slots ordered by start time.
func Sorted(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
