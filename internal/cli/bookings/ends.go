package bookings

import (
	"fmt"

	"github.com/julianstephens/bookable/internal/booking"
	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/timeslots"
	"github.com/julianstephens/bookable/internal/zone"
)

type EndsCmd struct {
	Start   string           `arg:"" help:"Booking start (RFC3339 or 'YYYY-MM-DD HH:MM' in the listing timezone)."`
	EndDate string           `help:"End date for multi-day bookings (YYYY-MM-DD)." name:"end-date"`
	Booking cli.BookingFlags `embed:""`
}

type endOption struct {
	models.TimeOption
	Seats int `json:"seats"`
}

func (c *EndsCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	start, err := cli.ParseDateTime(c.Start, loc)
	if err != nil {
		return err
	}
	endDate := start
	if c.EndDate != "" {
		if endDate, err = ctx.ParseDate(c.EndDate, loc); err != nil {
			return err
		}
	}

	calc, err := ctx.Calculator(c.Booking)
	if err != nil {
		return err
	}
	windowStart, windowEnd := cli.SlotWindow(start, loc)
	slots, err := ctx.Source.TimeSlots(windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to get time slots: %w", err)
	}

	sorted := timeslots.Sorted(slots)
	ends := calc.EndTimes(start, endDate, sorted)
	options := make([]endOption, 0, len(ends))
	for _, e := range ends {
		seats, _ := booking.SeatsForBooking(sorted, start, e.Timestamp)
		options = append(options, endOption{TimeOption: e, Seats: seats})
	}

	if ctx.JSON {
		return ctx.PrintJSON(options)
	}

	w := ctx.Writer()
	fmt.Fprintln(w, cli.Title(fmt.Sprintf("End times for a booking starting %s %s",
		zone.StringifyDateToISO8601(start, loc), zone.FormatTimeOfDay(start, loc))))
	if first, last, ok := calc.EndDateRange(start, sorted); ok && !calc.Fixed() {
		fmt.Fprintf(w, "  End dates: %s to %s\n", zone.StringifyDateToISO8601(first, loc), zone.StringifyDateToISO8601(last, loc))
	}
	if len(options) == 0 {
		fmt.Fprintln(w, "  No end times available")
		return nil
	}

	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{zone.StringifyDateToISO8601(o.Timestamp, loc), o.TimeOfDay, fmt.Sprintf("%d", o.Seats)})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"Date", "End", "Seats"}, rows))
	return nil
}
