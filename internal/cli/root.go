package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/bookable/internal/booking"
	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/source"
	"github.com/julianstephens/bookable/internal/zone"
)

type Context struct {
	Source source.Provider
	// Now is the reference instant for "today" and past-candidate cutoffs.
	Now time.Time
	// JSON switches command output from tables to JSON.
	JSON bool
	Out  io.Writer
}

// Writer returns the command output writer, stdout by default.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Clock returns the reference instant, falling back to the wall clock.
func (c *Context) Clock() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// Location returns the listing timezone from the loaded source.
func (c *Context) Location() (*time.Location, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	return c.Source.Location()
}

func (c *Context) ensureLoaded() error {
	if c.Source == nil {
		return fmt.Errorf("no snapshot configured")
	}
	if _, err := c.Source.Plan(); err == nil {
		return nil
	}
	return c.Source.Load()
}

// ParseDate parses "today", "tomorrow" or YYYY-MM-DD as the start of that day in loc.
func (c *Context) ParseDate(s string, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return zone.Today(c.Clock(), loc), nil
	case "tomorrow":
		return zone.Add(zone.Today(c.Clock(), loc), 1, zone.Day, loc), nil
	}
	return zone.ParseDateFromISO8601(s, loc)
}

// ParseDateRange parses an inclusive from/to pair into a half-open day range.
func (c *Context) ParseDateRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := c.ParseDate(from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	last, err := c.ParseDate(to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if last.Before(start) {
		return time.Time{}, time.Time{}, errors.Precondition("date range", "end date %s is before start date %s",
			zone.StringifyDateToISO8601(last, loc), zone.StringifyDateToISO8601(start, loc))
	}
	return start, zone.Add(last, 1, zone.Day, loc), nil
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// ParseDateTime parses an RFC3339 instant or a wall-clock "YYYY-MM-DD HH:MM" in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, use RFC3339 or YYYY-MM-DD HH:MM", s)
}

// BookingFlags configure the booking calculator from the command line.
type BookingFlags struct {
	Length   int  `help:"Fixed booking length in minutes. 0 books whole intervals." default:"0"`
	Interval int  `help:"Minutes between candidate times." default:"60"`
	Seats    bool `help:"Treat slots with different seat counts as separate runs."`
}

// Calculator builds a booking calculator for the listing timezone.
func (c *Context) Calculator(flags BookingFlags) (*booking.Calculator, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return booking.New(booking.Options{
		Location:               loc,
		BookingLengthInMinutes: flags.Length,
		StartTimeInterval:      zone.IntervalFromMinutes(flags.Interval),
		SeatsEnabled:           flags.Seats,
		Now:                    c.Clock(),
	})
}

// SlotWindow returns the fetch window for booking on day: the day itself plus
// the lookahead needed for runs crossing midnight.
func SlotWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	start := zone.StartOf(day, zone.Day, loc)
	return start, zone.Add(start, constants.SlotLookaheadDays+1, zone.Day, loc)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	_, err = fmt.Fprintln(c.Writer(), string(data))
	return err
}
