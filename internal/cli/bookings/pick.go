package bookings

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bookable/internal/booking"
	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/dates"
	"github.com/julianstephens/bookable/internal/logger"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/timeslots"
	"github.com/julianstephens/bookable/internal/zone"
)

// runForm is replaced in tests to skip the terminal.
var runForm = func(f *huh.Form) error { return f.Run() }

type PickCmd struct {
	Date    string           `arg:"" help:"Start date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Booking cli.BookingFlags `embed:""`
}

func (c *PickCmd) Run(ctx *cli.Context) error {
	day, loc, slots, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	calc, err := ctx.Calculator(c.Booking)
	if err != nil {
		return err
	}
	slots = timeslots.Sorted(slots)

	sel := calc.AllTimeValues(day, slots, time.Time{}, time.Time{})
	if len(sel.StartTimes) == 0 {
		return fmt.Errorf("no start times available on %s", zone.StringifyDateToISO8601(day, loc))
	}

	start := sel.StartTime
	if err := runForm(selectForm("Start time", sel.StartTimes, &start)); err != nil {
		return fmt.Errorf("start time selection cancelled: %w", err)
	}
	sel = calc.AllTimeValues(day, slots, start, time.Time{})

	if endDates := endDateOptions(calc, start, slots, loc); len(endDates) > 1 {
		endDate := sel.EndDate
		if err := runForm(selectForm("End date", endDates, &endDate)); err != nil {
			return fmt.Errorf("end date selection cancelled: %w", err)
		}
		sel = calc.AllTimeValues(day, slots, start, endDate)
	}

	if len(sel.EndTimes) > 1 {
		end := sel.EndTime
		if err := runForm(selectForm("End time", sel.EndTimes, &end)); err != nil {
			return fmt.Errorf("end time selection cancelled: %w", err)
		}
		sel.EndTime = end
		sel.Seats, _ = booking.SeatsForBooking(slots, sel.StartTime, sel.EndTime)
	}
	logger.Debug("Booking picked", "start", sel.StartTime, "end", sel.EndTime, "seats", sel.Seats)

	if !sel.Bookable() {
		return fmt.Errorf("no end time available for a booking starting %s", zone.FormatTimeOfDay(sel.StartTime, loc))
	}
	if ctx.JSON {
		return ctx.PrintJSON(sel)
	}

	w := ctx.Writer()
	fmt.Fprintln(w, cli.Title("Booking"))
	fmt.Fprintf(w, "  From:  %s %s\n", zone.StringifyDateToISO8601(sel.StartTime, loc), zone.FormatTimeOfDay(sel.StartTime, loc))
	fmt.Fprintf(w, "  Until: %s %s\n", zone.StringifyDateToISO8601(sel.EndTime, loc), zone.FormatTimeOfDay(sel.EndTime, loc))
	fmt.Fprintf(w, "  Seats: %d\n", sel.Seats)
	return nil
}

func selectForm(title string, opts []models.TimeOption, value *time.Time) *huh.Form {
	options := make([]huh.Option[time.Time], 0, len(opts))
	for _, o := range opts {
		options = append(options, huh.NewOption(o.TimeOfDay, o.Timestamp))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[time.Time]().
				Title(title).
				Options(options...).
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}

// endDateOptions lists the days a booking starting at start may end on.
func endDateOptions(calc *booking.Calculator, start time.Time, slots []models.TimeSlot, loc *time.Location) []models.TimeOption {
	first, last, ok := calc.EndDateRange(start, slots)
	if !ok || calc.Fixed() {
		return nil
	}
	days, err := dates.GenerateDates(first, zone.Add(last, 1, zone.Day, loc), loc)
	if err != nil {
		return nil
	}
	opts := make([]models.TimeOption, 0, len(days))
	for _, d := range days {
		opts = append(opts, models.TimeOption{Timestamp: d, TimeOfDay: zone.StringifyDateToISO8601(d, loc)})
	}
	return opts
}
