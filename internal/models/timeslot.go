package models

import (
	"fmt"
	"time"
)

// TimeSlot is a server-computed interval of bookable availability.
type TimeSlot struct {
	ID    string    `json:"id,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"` // exclusive
	Seats int       `json:"seats"`
}

func (s TimeSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

func (s TimeSlot) Validate() error {
	if err := validateID(s.ID); err != nil {
		return err
	}
	if !s.End.After(s.Start) {
		return fmt.Errorf("time slot end %s must be after start %s", s.End.Format(time.RFC3339), s.Start.Format(time.RFC3339))
	}
	if s.Seats < 0 {
		return fmt.Errorf("time slot seats cannot be negative (got %d)", s.Seats)
	}
	return nil
}
