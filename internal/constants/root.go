package constants

const (
	AppName             = "bookable"
	Version             = "v0.1.0"
	DefaultConfigPath   = "~/.config/bookable/config.json"
	DefaultSnapshotPath = "~/.config/bookable/snapshot.json"
	DefaultLogDir       = "~/.config/bookable"
	LogFileName         = "bookable.log"

	// Log rotation
	LogMaxSizeMB   = 10
	LogMaxBackups  = 3
	LogMaxAgeDays  = 28
	LogCompression = true

	// DefaultMinSeats is the minimum seat count a time slot needs to be listed for a day
	DefaultMinSeats = 1

	// DefaultStartTimeIntervalMin is the granularity of booking start candidates
	DefaultStartTimeIntervalMin = 60

	// PlaceholderTimeOfDay is shown when no start time has been chosen yet and no clock is available
	PlaceholderTimeOfDay = "08:00"
)

const (
	// SlotLookaheadDays is how many days past a selected date are fetched so
	// runs that continue past midnight are complete.
	SlotLookaheadDays = 7

	// DefaultBookableDays is how far ahead a booking may start
	DefaultBookableDays = 90
)
