package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Midnight as a plan entry end time means the window runs into the next day
	Midnight = "00:00"

	// EndOffset is subtracted from exclusive interval ends before day containment checks,
	// so an interval ending exactly at midnight does not touch the following day.
	EndOffset = time.Millisecond
)
