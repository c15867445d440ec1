package booking

import (
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/models"
)

// Run is a stretch of slots merged by adjacency: each slot ends exactly where
// the next one starts (and, with seat tracking, has the same seat count).
type Run struct {
	Start    time.Time
	End      time.Time
	First    int // index of the first slot in the run
	Last     int // index of the last slot in the run
	MinSeats int
}

// Contains reports whether t falls inside [Start, End).
func (r Run) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Mergeable reports whether b directly continues a.
func Mergeable(a, b models.TimeSlot, seatsEnabled bool) bool {
	if !a.End.Equal(b.Start) {
		return false
	}
	return !seatsEnabled || a.Seats == b.Seats
}

// FindFirstAdjacent returns the index of the first slot of the run containing slots[i].
func FindFirstAdjacent(slots []models.TimeSlot, i int, seatsEnabled bool) int {
	for i > 0 && Mergeable(slots[i-1], slots[i], seatsEnabled) {
		i--
	}
	return i
}

// FindLastAdjacent returns the index of the last slot of the run containing slots[i].
func FindLastAdjacent(slots []models.TimeSlot, i int, seatsEnabled bool) int {
	for i < len(slots)-1 && Mergeable(slots[i], slots[i+1], seatsEnabled) {
		i++
	}
	return i
}

// RunAt returns the run containing slots[i].
func RunAt(slots []models.TimeSlot, i int, seatsEnabled bool) Run {
	first := FindFirstAdjacent(slots, i, seatsEnabled)
	last := FindLastAdjacent(slots, i, seatsEnabled)
	return Run{
		Start:    slots[first].Start,
		End:      slots[last].End,
		First:    first,
		Last:     last,
		MinSeats: MinSeats(slots, first, last),
	}
}

// Runs folds sorted slots into consecutive runs.
func Runs(slots []models.TimeSlot, seatsEnabled bool) []Run {
	runs := []Run{}
	for i := 0; i < len(slots); {
		r := RunAt(slots, i, seatsEnabled)
		runs = append(runs, r)
		i = r.Last + 1
	}
	return runs
}

// MinSeats returns the smallest seat count in slots[first..last].
func MinSeats(slots []models.TimeSlot, first, last int) int {
	min := slots[first].Seats
	for _, s := range slots[first+1 : last+1] {
		if s.Seats < min {
			min = s.Seats
		}
	}
	return min
}

// SeatsForBooking returns the seats guaranteed for [start, end): the minimum
// over every slot from the one containing start to the one containing the
// last instant before end. ok is false unless those slots chain end to start.
func SeatsForBooking(slots []models.TimeSlot, start, end time.Time) (int, bool) {
	if !end.After(start) {
		return 0, false
	}
	first := indexContaining(slots, start)
	last := indexContaining(slots, end.Add(-constants.EndOffset))
	if first < 0 || last < first {
		return 0, false
	}
	for i := first; i < last; i++ {
		if !slots[i].End.Equal(slots[i+1].Start) {
			return 0, false
		}
	}
	return MinSeats(slots, first, last), true
}

func indexContaining(slots []models.TimeSlot, t time.Time) int {
	for i, s := range slots {
		if s.Interval().Contains(t) {
			return i
		}
	}
	return -1
}
