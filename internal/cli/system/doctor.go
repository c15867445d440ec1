package system

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/source"
	"github.com/julianstephens/bookable/internal/validation"
	"github.com/julianstephens/bookable/internal/zone"
)

type DoctorCmd struct{}

// check is one diagnostic. A failing warn check does not fail the run;
// needsSnapshot checks are skipped when the snapshot could not be read.
type check struct {
	name          string
	run           func() error
	warn          bool
	needsSnapshot bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	w := ctx.Writer()
	fmt.Fprintln(w, "Running diagnostics...")
	fmt.Fprintln(w)

	var snap *source.Snapshot
	checks := []check{
		{name: "Snapshot readable", run: func() error {
			var err error
			snap, err = readSnapshot(ctx)
			return err
		}},
		{name: "Plan timezone", needsSnapshot: true, run: func() error {
			return checkPlanTimezone(snap)
		}},
		{name: "Timezone database", run: checkTimezoneDatabase},
		{name: "Data validation", needsSnapshot: true, run: func() error {
			return checkValidation(snap)
		}},
		{name: "Snapshot loads", needsSnapshot: true, run: func() error {
			return ctx.Source.Load()
		}},
		{name: "Clock/timezone", run: func() error {
			return checkClockTimezone(ctx.Clock())
		}},
		{name: "Bookable data", warn: true, needsSnapshot: true, run: func() error {
			return checkHasData(snap)
		}},
	}

	hasError := false
	for _, c := range checks {
		if c.needsSnapshot && snap == nil {
			fmt.Fprintf(w, "⊘ %s: SKIPPED (snapshot not readable)\n", c.name)
			continue
		}
		if !report(w, c) {
			hasError = true
		}
	}

	fmt.Fprintln(w)
	if hasError {
		fmt.Fprintln(w, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(w, "All diagnostics passed!")
	return nil
}

// report runs c and prints its outcome. It returns false on a non-warning failure.
func report(w io.Writer, c check) bool {
	err := c.run()
	switch {
	case err == nil:
		fmt.Fprintf(w, "✓ %s: OK\n", c.name)
		return true
	case c.warn:
		fmt.Fprintf(w, "⚠ %s: WARNING\n", c.name)
		fmt.Fprintf(w, "   %v\n", err)
		return true
	default:
		fmt.Fprintf(w, "❌ %s: FAIL\n", c.name)
		fmt.Fprintf(w, "   Error: %v\n", err)
		return false
	}
}

func readSnapshot(ctx *cli.Context) (*source.Snapshot, error) {
	if ctx.Source == nil {
		return nil, fmt.Errorf("no snapshot configured")
	}
	return source.ReadSnapshot(ctx.Source.GetPath())
}

func checkPlanTimezone(snap *source.Snapshot) error {
	_, err := zone.LoadLocation(snap.Plan.Timezone)
	return err
}

// checkTimezoneDatabase makes sure the zone data knows the DST rules the
// calendar math depends on.
func checkTimezoneDatabase() error {
	for _, name := range []string{"UTC", "Europe/Helsinki", "America/New_York", "Australia/Sydney"} {
		if _, err := zone.LoadLocation(name); err != nil {
			return err
		}
	}

	ny, _ := zone.LoadLocation("America/New_York")
	day := time.Date(2026, time.March, 8, 0, 0, 0, 0, ny)
	if length := zone.Add(day, 1, zone.Day, ny).Sub(day); length != 23*time.Hour {
		return fmt.Errorf("America/New_York 2026-03-08 is %s long, want 23h (outdated timezone data?)", length)
	}
	return nil
}

func checkValidation(snap *source.Snapshot) error {
	result := validation.New().ValidateAll(snap.Plan, snap.Exceptions, snap.TimeSlots)
	var blocking []validation.Conflict
	for _, c := range result.Conflicts {
		if c.Type != validation.ConflictUnsortedExceptions {
			blocking = append(blocking, c)
		}
	}
	if len(blocking) > 0 {
		return fmt.Errorf("%d conflict(s), first: %s (run 'bookable validate')", len(blocking), blocking[0].Description)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkHasData(snap *source.Snapshot) error {
	if len(snap.Plan.Entries) == 0 && len(snap.Exceptions) == 0 {
		return fmt.Errorf("plan has no entries and there are no exceptions; every day is unavailable")
	}
	if len(snap.TimeSlots) == 0 {
		return fmt.Errorf("no time slots; no booking candidates can be offered")
	}
	return nil
}
