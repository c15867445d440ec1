// Package dates enumerates calendar days and months in a timezone and keys
// per-date results by an explicit DateID.
package dates

import (
	"fmt"
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// DateIDOf returns the calendar date of t in loc.
func DateIDOf(t time.Time, loc *time.Location) models.DateID {
	y, m, d := t.In(loc).Date()
	return models.DateID{Zone: loc.String(), Year: y, Month: m, Day: d}
}

// ParseDateID parses a YYYY-MM-DD key as a date in loc.
func ParseDateID(s string, loc *time.Location) (models.DateID, error) {
	t, err := zone.ParseDateFromISO8601(s, loc)
	if err != nil {
		return models.DateID{}, err
	}
	return DateIDOf(t, loc), nil
}

// GenerateDates returns the start of every calendar day in loc from the day
// containing start up to, but not including, end. When start and end are day
// starts the count equals zone.DaysBetween; a partial first or last day still
// yields a whole day.
func GenerateDates(start, end time.Time, loc *time.Location) ([]time.Time, error) {
	return generate("GenerateDates", start, end, loc, zone.Day)
}

// GenerateMonths is the month-granularity analogue of GenerateDates.
func GenerateMonths(start, end time.Time, loc *time.Location) ([]time.Time, error) {
	return generate("GenerateMonths", start, end, loc, zone.Month)
}

func generate(op string, start, end time.Time, loc *time.Location, unit zone.Unit) ([]time.Time, error) {
	if loc == nil {
		return nil, errors.Configuration("timezone", "", nil)
	}
	if end.Before(start) {
		return nil, errors.Precondition(op, "end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	out := []time.Time{}
	for cur := zone.StartOf(start, unit, loc); cur.Before(end); cur = zone.Add(cur, 1, unit, loc) {
		out = append(out, cur)
	}
	return out, nil
}

// MonthID formats the month of t in loc as YYYY-MM.
func MonthID(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.MonthFormat)
}

// BookableRange returns the half-open range of days a booking may start in:
// today (per now) and the following dayCount-1 days.
func BookableRange(now time.Time, loc *time.Location, dayCount int) (time.Time, time.Time) {
	start := zone.Today(now, loc)
	if dayCount < 0 {
		dayCount = 0
	}
	return start, zone.Add(start, dayCount, zone.Day, loc)
}

// IsOutsideBookableRange reports whether day falls before today or after the
// last bookable day.
func IsOutsideBookableRange(day, now time.Time, loc *time.Location, dayCount int) bool {
	start, end := BookableRange(now, loc, dayCount)
	return !zone.IsInRange(day, start, end)
}

// DayBounds returns [start, end) of the calendar day identified by id in loc.
func DayBounds(id models.DateID, loc *time.Location) (time.Time, time.Time) {
	start := id.Start(loc)
	return start, zone.Add(start, 1, zone.Day, loc)
}

// FormatRange renders a date range as "from..to" keys for logs and errors.
func FormatRange(start, end time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s..%s", zone.StringifyDateToISO8601(start, loc), zone.StringifyDateToISO8601(end, loc))
}
