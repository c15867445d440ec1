package source

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/bookable/internal/availability"
	"github.com/julianstephens/bookable/internal/exceptions"
	"github.com/julianstephens/bookable/internal/logger"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/timeslots"
	"github.com/julianstephens/bookable/internal/zone"
)

// idNamespace scopes the deterministic IDs given to records fetched without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/julianstephens/bookable"))

// Snapshot is the on-disk shape of a fetched listing.
type Snapshot struct {
	Version    int                            `json:"version"`
	Plan       models.AvailabilityPlan        `json:"plan"`
	Exceptions []models.AvailabilityException `json:"exceptions"`
	TimeSlots  []models.TimeSlot              `json:"time_slots"`
}

// ReadSnapshot parses a snapshot file without validating it.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found at %s", path)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Exceptions == nil {
		snap.Exceptions = []models.AvailabilityException{}
	}
	if snap.TimeSlots == nil {
		snap.TimeSlots = []models.TimeSlot{}
	}
	if snap.Plan.Entries == nil {
		snap.Plan.Entries = []models.PlanEntry{}
	}
	return snap, nil
}

// JSONSource serves a snapshot file. Load validates and normalizes it; the
// file is never written.
type JSONSource struct {
	path     string
	timezone string
	snap     *Snapshot
	loc      *time.Location
}

// NewJSONSource reads from path. A non-empty timezone overrides the plan's timezone.
func NewJSONSource(path, timezone string) *JSONSource {
	return &JSONSource{
		path:     path,
		timezone: timezone,
	}
}

// NewFromSnapshot serves an in-memory snapshot, e.g. one built by a test.
func NewFromSnapshot(snap Snapshot) (*JSONSource, error) {
	s := &JSONSource{}
	if err := s.ingest(&snap); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONSource) Load() error {
	snap, err := ReadSnapshot(s.path)
	if err != nil {
		return err
	}
	if err := s.ingest(snap); err != nil {
		return fmt.Errorf("invalid snapshot %s: %w", s.path, err)
	}
	logger.Debug("Loaded snapshot", "path", s.path,
		"entries", len(s.snap.Plan.Entries),
		"exceptions", len(s.snap.Exceptions),
		"time_slots", len(s.snap.TimeSlots))
	return nil
}

func (s *JSONSource) ingest(snap *Snapshot) error {
	if s.timezone != "" {
		snap.Plan.Timezone = s.timezone
	}
	loc, err := zone.LoadLocation(snap.Plan.Timezone)
	if err != nil {
		return err
	}
	if err := availability.ValidatePlan(snap.Plan); err != nil {
		return err
	}

	snap.Exceptions = append([]models.AvailabilityException{}, snap.Exceptions...)
	snap.TimeSlots = append([]models.TimeSlot{}, snap.TimeSlots...)

	assigned := 0
	for i := range snap.Exceptions {
		if snap.Exceptions[i].ID == "" {
			snap.Exceptions[i].ID = recordID("exception", snap.Exceptions[i].Start, snap.Exceptions[i].End, snap.Exceptions[i].Seats)
			assigned++
		}
	}
	exs, err := exceptions.Normalize(snap.Exceptions)
	if err != nil {
		return err
	}

	for i := range snap.TimeSlots {
		if snap.TimeSlots[i].ID == "" {
			snap.TimeSlots[i].ID = recordID("time_slot", snap.TimeSlots[i].Start, snap.TimeSlots[i].End, snap.TimeSlots[i].Seats)
			assigned++
		}
		if err := snap.TimeSlots[i].Validate(); err != nil {
			return fmt.Errorf("time slot %d: %w", i, err)
		}
	}
	if assigned > 0 {
		logger.Debug("Assigned IDs to records without one", "count", assigned)
	}

	snap.Exceptions = exs
	snap.TimeSlots = timeslots.Sorted(snap.TimeSlots)
	s.snap = snap
	s.loc = loc
	return nil
}

// recordID derives a stable UUID from a record's contents.
func recordID(kind string, start, end time.Time, seats int) string {
	name := fmt.Sprintf("%s|%s|%s|%d", kind, start.UTC().Format(time.RFC3339Nano), end.UTC().Format(time.RFC3339Nano), seats)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

func (s *JSONSource) Plan() (models.AvailabilityPlan, error) {
	if s.snap == nil {
		return models.AvailabilityPlan{}, fmt.Errorf("snapshot not loaded")
	}
	return s.snap.Plan, nil
}

func (s *JSONSource) Location() (*time.Location, error) {
	if s.snap == nil {
		return nil, fmt.Errorf("snapshot not loaded")
	}
	return s.loc, nil
}

// Exceptions returns the exceptions overlapping [start, end), sorted by start.
func (s *JSONSource) Exceptions(start, end time.Time) ([]models.AvailabilityException, error) {
	if s.snap == nil {
		return nil, fmt.Errorf("snapshot not loaded")
	}
	return exceptions.Overlapping(s.snap.Exceptions, start, end), nil
}

// TimeSlots returns the time slots overlapping [start, end), sorted by start.
func (s *JSONSource) TimeSlots(start, end time.Time) ([]models.TimeSlot, error) {
	if s.snap == nil {
		return nil, fmt.Errorf("snapshot not loaded")
	}
	window := models.Interval{Start: start, End: end}
	slots := []models.TimeSlot{}
	for _, ts := range s.snap.TimeSlots {
		if ts.Interval().Overlaps(window) {
			slots = append(slots, ts)
		}
	}
	return slots, nil
}

func (s *JSONSource) GetPath() string {
	return s.path
}
