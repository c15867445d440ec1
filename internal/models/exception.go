package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Interval is a half-open [Start, End) span of time.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// AvailabilityException overrides the plan over [Start, End) with its own seat count.
type AvailabilityException struct {
	ID    string    `json:"id,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"` // exclusive
	Seats int       `json:"seats"`
}

func (e AvailabilityException) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

func (e AvailabilityException) Validate() error {
	if err := validateID(e.ID); err != nil {
		return err
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("exception end %s must be after start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if e.Seats < 0 {
		return fmt.Errorf("exception seats cannot be negative (got %d)", e.Seats)
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	return nil
}
