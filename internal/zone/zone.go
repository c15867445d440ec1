// Package zone converts instants to and from wall-clock values in IANA timezones.
//
// All calendar arithmetic (truncation to a day, week or month and day/week/month
// offsets) is done on the zoned calendar, so results stay correct across DST
// transitions. Minute and hour arithmetic works on absolute time.
package zone

import (
	"time"

	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
)

// Unit is a calendar or clock unit used for truncation and offsets.
type Unit string

const (
	Minute Unit = "minute"
	Hour   Unit = "hour"
	Day    Unit = "day"
	Week   Unit = "week"
	Month  Unit = "month"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// Empty names, "Local" and unknown names are configuration errors: there is
// no fallback to UTC or the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return nil, errors.Configuration("timezone", timezone, nil)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Configuration("timezone", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is a loadable IANA name.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Date is time.Date that never resolves to an earlier calendar day. Where a DST
// jump skips the requested wall clock right after midnight, time.Date lands on
// the previous evening; Date returns the transition instant instead, which is
// the first instant of the requested day.
func Date(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, min, sec, nsec, loc)
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	ty, tm, td := t.Date()
	if !time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Before(want) {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() && !end.Before(t) {
		return end
	}
	return t
}

// ZonedWallClock returns the instant in loc whose wall clock matches date's wall
// clock in date's own location. It bridges a value picked in the viewer's local
// zone into the listing's zone.
func ZonedWallClock(date time.Time, loc *time.Location) time.Time {
	return Date(date.Year(), date.Month(), date.Day(),
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), loc)
}

// LocalWallClock is the inverse of ZonedWallClock: it returns the instant in
// local whose wall clock matches instant's wall clock in loc.
func LocalWallClock(instant time.Time, loc, local *time.Location) time.Time {
	in := instant.In(loc)
	return Date(in.Year(), in.Month(), in.Day(),
		in.Hour(), in.Minute(), in.Second(), in.Nanosecond(), local)
}

// StartOf truncates t to the start of unit in loc. Weeks start on Sunday.
// Unknown units return t unchanged (in loc).
func StartOf(t time.Time, unit Unit, loc *time.Location) time.Time {
	in := t.In(loc)
	switch unit {
	case Minute:
		return in.Add(-(time.Duration(in.Second())*time.Second + time.Duration(in.Nanosecond())))
	case Hour:
		return in.Add(-(time.Duration(in.Minute())*time.Minute +
			time.Duration(in.Second())*time.Second +
			time.Duration(in.Nanosecond())))
	case Day:
		return Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, loc)
	case Week:
		return Date(in.Year(), in.Month(), in.Day()-int(in.Weekday()), 0, 0, 0, 0, loc)
	case Month:
		return Date(in.Year(), in.Month(), 1, 0, 0, 0, 0, loc)
	}
	return in
}

// StartOfOffset truncates t to unit and then shifts the result by offset offsetUnits,
// e.g. StartOfOffset(t, Day, loc, 1, Day) is the start of the next day.
func StartOfOffset(t time.Time, unit Unit, loc *time.Location, offset int, offsetUnit Unit) time.Time {
	return Add(StartOf(t, unit, loc), offset, offsetUnit, loc)
}

// Add shifts t by amount units. Days, weeks and months keep the wall clock in loc;
// a month shift clamps to the last day of the target month. A day start maps to
// the start of the target day, even where midnight does not exist on either.
func Add(t time.Time, amount int, unit Unit, loc *time.Location) time.Time {
	switch unit {
	case Minute:
		return t.Add(time.Duration(amount) * time.Minute)
	case Hour:
		return t.Add(time.Duration(amount) * time.Hour)
	}

	in := t.In(loc)
	y, m, d := in.Date()
	switch unit {
	case Day:
		d += amount
	case Week:
		d += 7 * amount
	case Month:
		first := time.Date(y, m+time.Month(amount), 1, 0, 0, 0, 0, time.UTC)
		y, m = first.Year(), first.Month()
		if last := daysIn(y, m); d > last {
			d = last
		}
	default:
		return in
	}
	if in.Equal(StartOf(in, Day, loc)) {
		return Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return Date(y, m, d, in.Hour(), in.Minute(), in.Second(), in.Nanosecond(), loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayOfWeekIndex returns the weekday of t in loc, 0=Sunday..6=Saturday.
func DayOfWeekIndex(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday())
}

// Today returns the start of the day containing now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return StartOf(now, Day, loc)
}

// IsSameDay reports whether a and b fall on the same calendar day in loc.
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsInRange reports whether t falls inside the half-open range [start, end).
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// IsDateSameOrAfter reports whether a is at or after b.
func IsDateSameOrAfter(a, b time.Time) bool {
	return !a.Before(b)
}

// DaysBetween returns the number of whole calendar days from start to end in loc.
// It fails if end is before start.
func DaysBetween(start, end time.Time, loc *time.Location) (int, error) {
	if end.Before(start) {
		return 0, errors.Precondition("DaysBetween", "end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	s, e := start.In(loc), end.In(loc)
	sy, sm, sd := s.Date()
	ey, em, ed := e.Date()
	days := int(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Sub(time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	if sinceDayStart(e, loc) < sinceDayStart(s, loc) {
		days--
	}
	return days, nil
}

// sinceDayStart is the wall clock of t in loc, with a day start reading as zero
// on days whose midnight does not exist.
func sinceDayStart(t time.Time, loc *time.Location) time.Duration {
	if t.Equal(StartOf(t, Day, loc)) {
		return 0
	}
	w := t.In(loc)
	return time.Duration(w.Hour())*time.Hour + time.Duration(w.Minute())*time.Minute +
		time.Duration(w.Second())*time.Second + time.Duration(w.Nanosecond())
}

// MinutesBetween returns the number of whole minutes from start to end.
// It fails if end is before start.
func MinutesBetween(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.Precondition("MinutesBetween", "end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return int(end.Sub(start) / time.Minute), nil
}

// ParseDateFromISO8601 parses a YYYY-MM-DD string as the start of that day in loc.
func ParseDateFromISO8601(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, errors.Configuration("timezone", "", nil)
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, errors.Precondition("ParseDateFromISO8601", "invalid date %q (expected YYYY-MM-DD): %v", s, err)
	}
	return Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// StringifyDateToISO8601 formats the calendar date of t in loc as YYYY-MM-DD.
func StringifyDateToISO8601(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// FormatTimeOfDay formats the wall clock of t in loc as HH:MM.
func FormatTimeOfDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.TimeFormat)
}
