package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidTimezone        ConflictType = "invalid_timezone"
	ConflictInvalidPlanEntry       ConflictType = "invalid_plan_entry"
	ConflictOverlappingPlanEntries ConflictType = "overlapping_plan_entries"
	ConflictInvalidException       ConflictType = "invalid_exception"
	ConflictUnsortedExceptions     ConflictType = "unsorted_exceptions"
	ConflictOverlappingExceptions  ConflictType = "overlapping_exceptions"
	ConflictInvalidTimeSlot        ConflictType = "invalid_time_slot"
	ConflictOverlappingTimeSlots   ConflictType = "overlapping_time_slots"
	ConflictDuplicateID            ConflictType = "duplicate_id"
)

// Conflict represents a detected problem in a snapshot
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD in the plan timezone (if applicable)
	Items       []string // IDs or weekday keys involved
	TimeRange   string   // Human-readable time range (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates listing data for conflicts the engine would reject
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidatePlan checks the plan timezone and its weekly entries
func (v *Validator) ValidatePlan(plan models.AvailabilityPlan) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if _, err := zone.LoadLocation(plan.Timezone); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimezone,
			Description: fmt.Sprintf("Plan timezone %q is not a valid IANA timezone", plan.Timezone),
		})
	}

	valid := make([]models.PlanEntry, 0, len(plan.Entries))
	for i, entry := range plan.Entries {
		if err := entry.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPlanEntry,
				Description: fmt.Sprintf("Plan entry %d (%s %s-%s): %v", i, entry.DayOfWeek, entry.StartTime, entry.EndTime, err),
				Items:       []string{string(entry.DayOfWeek)},
				TimeRange:   fmt.Sprintf("%s-%s", entry.StartTime, entry.EndTime),
			})
			continue
		}
		valid = append(valid, entry)
	}

	// O(n²) per weekday - plans hold a handful of entries per day
	for _, day := range models.DaysOfWeek {
		var entries []models.PlanEntry
		for _, e := range valid {
			if e.DayOfWeek == day {
				entries = append(entries, e)
			}
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].StartTime < entries[j].StartTime
		})

		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				e1, e2 := entries[i], entries[j]
				if timesOverlap(e1, e2) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingPlanEntries,
						Description: fmt.Sprintf("%s: plan entries %s-%s and %s-%s overlap",
							day, e1.StartTime, e1.EndTime, e2.StartTime, e2.EndTime),
						Items:     []string{string(day)},
						TimeRange: fmt.Sprintf("%s-%s", e2.StartTime, e1.EndTime),
					})
				}
			}
		}
	}

	return result
}

// ValidateExceptions checks each exception and the sorted, non-overlapping order
// the merge algorithms require. loc is used for dates in descriptions and may be nil.
func (v *Validator) ValidateExceptions(exceptions []models.AvailabilityException, loc *time.Location) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if loc == nil {
		loc = time.UTC
	}

	for i, ex := range exceptions {
		if err := ex.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidException,
				Description: fmt.Sprintf("Exception %d: %v", i, err),
				Date:        zone.StringifyDateToISO8601(ex.Start, loc),
				Items:       idsOf(ex.ID),
				TimeRange:   formatRange(ex.Start, ex.End, loc),
			})
		}
	}

	for i := 1; i < len(exceptions); i++ {
		prev, cur := exceptions[i-1], exceptions[i]
		if cur.Start.Before(prev.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnsortedExceptions,
				Description: fmt.Sprintf("Exception %d starts before exception %d; exceptions must be sorted by start", i, i-1),
				Date:        zone.StringifyDateToISO8601(cur.Start, loc),
				Items:       idsOf(prev.ID, cur.ID),
			})
		}
	}

	sorted := append([]models.AvailabilityException{}, exceptions...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted) && sorted[j].Start.Before(sorted[i].End); j++ {
			a, b := sorted[i], sorted[j]
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingExceptions,
				Description: fmt.Sprintf("%s: exceptions %s and %s overlap",
					zone.StringifyDateToISO8601(b.Start, loc), formatRange(a.Start, a.End, loc), formatRange(b.Start, b.End, loc)),
				Date:      zone.StringifyDateToISO8601(b.Start, loc),
				Items:     idsOf(a.ID, b.ID),
				TimeRange: formatRange(b.Start, a.End, loc),
			})
		}
	}

	return result
}

// ValidateTimeSlots checks each time slot and reports overlapping slots
func (v *Validator) ValidateTimeSlots(slots []models.TimeSlot, loc *time.Location) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if loc == nil {
		loc = time.UTC
	}

	for i, s := range slots {
		if err := s.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimeSlot,
				Description: fmt.Sprintf("Time slot %d: %v", i, err),
				Date:        zone.StringifyDateToISO8601(s.Start, loc),
				Items:       idsOf(s.ID),
				TimeRange:   formatRange(s.Start, s.End, loc),
			})
		}
	}

	sorted := append([]models.TimeSlot{}, slots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted) && sorted[j].Start.Before(sorted[i].End); j++ {
			a, b := sorted[i], sorted[j]
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingTimeSlots,
				Description: fmt.Sprintf("%s: time slots %s and %s overlap",
					zone.StringifyDateToISO8601(b.Start, loc), formatRange(a.Start, a.End, loc), formatRange(b.Start, b.End, loc)),
				Date:  zone.StringifyDateToISO8601(b.Start, loc),
				Items: idsOf(a.ID, b.ID),
			})
		}
	}

	return result
}

// ValidateAll runs every check and reports duplicate IDs across exceptions and time slots
func (v *Validator) ValidateAll(plan models.AvailabilityPlan, exceptions []models.AvailabilityException, slots []models.TimeSlot) ValidationResult {
	loc, _ := zone.LoadLocation(plan.Timezone)

	result := v.ValidatePlan(plan)
	result.Conflicts = append(result.Conflicts, v.ValidateExceptions(exceptions, loc).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateTimeSlots(slots, loc).Conflicts...)

	seen := make(map[string]int)
	var order []string
	for _, ex := range exceptions {
		if ex.ID != "" {
			if seen[ex.ID] == 0 {
				order = append(order, ex.ID)
			}
			seen[ex.ID]++
		}
	}
	for _, s := range slots {
		if s.ID != "" {
			if seen[s.ID] == 0 {
				order = append(order, s.ID)
			}
			seen[s.ID]++
		}
	}
	for _, id := range order {
		if seen[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate ID: %s (used %d times)", id, seen[id]),
				Items:       []string{id},
			})
		}
	}

	return result
}

// Helper functions

func parseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// timesOverlap checks if two plan entries on the same weekday overlap.
// An "00:00" end time counts as the end of the day.
func timesOverlap(e1, e2 models.PlanEntry) bool {
	s1, err := parseTimeToMinutes(e1.StartTime)
	if err != nil {
		return false
	}
	s2, err := parseTimeToMinutes(e2.StartTime)
	if err != nil {
		return false
	}
	end1, end2 := endMinutes(e1), endMinutes(e2)

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < end2 && s2 < end1
}

func endMinutes(e models.PlanEntry) int {
	if e.EndsAtMidnight() {
		return 24 * 60
	}
	m, err := parseTimeToMinutes(e.EndTime)
	if err != nil {
		return 0
	}
	return m
}

func formatRange(start, end time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s-%s", start.In(loc).Format("2006-01-02 15:04"), end.In(loc).Format("2006-01-02 15:04"))
}

func idsOf(ids ...string) []string {
	out := []string{}
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
