// Package exceptions computes the parts of a window not covered by
// availability exceptions and validates exception lists at ingestion.
package exceptions

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
)

// AvailableRanges returns the sub-intervals of [start, end) that no exception covers.
//
// exceptions must be sorted by start and pairwise non-overlapping; an invalid
// list is rejected, never re-sorted. The walk stops at the first exception that
// reaches past end, so exceptions after it are not looked at.
func AvailableRanges(start, end time.Time, exceptions []models.AvailabilityException) ([]models.Interval, error) {
	if end.Before(start) {
		return nil, errors.Precondition("AvailableRanges", "end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if err := checkOrder("AvailableRanges", exceptions); err != nil {
		return nil, err
	}

	ranges := []models.Interval{}
	emit := func(from, to time.Time) {
		if to.After(from) {
			ranges = append(ranges, models.Interval{Start: from, End: to})
		}
	}

	cursor := start
	for _, ex := range exceptions {
		switch {
		case !ex.Start.After(cursor) && ex.End.Before(end):
			// Past or inconsequential
			if ex.End.After(cursor) {
				cursor = ex.End
			}
		case ex.Start.After(cursor) && !ex.End.After(end):
			emit(cursor, ex.Start)
			cursor = ex.End
		default:
			// Reaches past the window: close the last gap at the exception
			// start (or the window end) and stop.
			stop := end
			if ex.Start.Before(stop) {
				stop = ex.Start
			}
			emit(cursor, stop)
			return ranges, nil
		}
	}

	emit(cursor, end)
	return ranges, nil
}

// Validate checks every exception and the ordering AvailableRanges relies on.
func Validate(exceptions []models.AvailabilityException) error {
	for i, ex := range exceptions {
		if err := ex.Validate(); err != nil {
			return errors.Precondition("Validate", "exception %d: %v", i, err)
		}
	}
	return checkOrder("Validate", exceptions)
}

// Normalize returns a sorted copy of exceptions and validates it.
// The input slice is not modified.
func Normalize(exceptions []models.AvailabilityException) ([]models.AvailabilityException, error) {
	sorted := make([]models.AvailabilityException, len(exceptions))
	copy(sorted, exceptions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	if err := Validate(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// Overlapping returns the exceptions whose interval intersects [start, end), in order.
func Overlapping(exceptions []models.AvailabilityException, start, end time.Time) []models.AvailabilityException {
	window := models.Interval{Start: start, End: end}
	out := []models.AvailabilityException{}
	for _, ex := range exceptions {
		if ex.Interval().Overlaps(window) {
			out = append(out, ex)
		}
	}
	return out
}

func checkOrder(op string, exceptions []models.AvailabilityException) error {
	for i := 1; i < len(exceptions); i++ {
		prev, cur := exceptions[i-1], exceptions[i]
		if cur.Start.Before(prev.Start) {
			return errors.Precondition(op, "exceptions are not sorted by start (%s)", describe(i-1, i, prev, cur))
		}
		if cur.Start.Before(prev.End) {
			return errors.Precondition(op, "exceptions overlap (%s)", describe(i-1, i, prev, cur))
		}
	}
	return nil
}

func describe(i, j int, a, b models.AvailabilityException) string {
	return fmt.Sprintf("#%d [%s, %s) and #%d [%s, %s)", i,
		a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339), j,
		b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
}
