// Package source supplies the plan, exceptions and time slots the engine works on.
package source

import (
	"time"

	"github.com/julianstephens/bookable/internal/models"
)

// Provider is a read-only source of fetched availability data.
type Provider interface {
	// Lifecycle
	Load() error

	// Availability
	Plan() (models.AvailabilityPlan, error)
	Location() (*time.Location, error)
	Exceptions(start, end time.Time) ([]models.AvailabilityException, error)
	TimeSlots(start, end time.Time) ([]models.TimeSlot, error)

	// Utils
	GetPath() string
}
