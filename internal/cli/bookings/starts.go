package bookings

import (
	"fmt"
	"time"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/dates"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

type StartsCmd struct {
	Date    string           `arg:"" help:"Start date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Booking cli.BookingFlags `embed:""`
}

func (c *StartsCmd) Run(ctx *cli.Context) error {
	day, loc, slots, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	calc, err := ctx.Calculator(c.Booking)
	if err != nil {
		return err
	}

	starts := calc.StartTimes(day, slots)
	if ctx.JSON {
		return ctx.PrintJSON(starts)
	}

	w := ctx.Writer()
	fmt.Fprintln(w, cli.Title(fmt.Sprintf("Start times on %s (%s)", zone.StringifyDateToISO8601(day, loc), loc)))
	if len(starts) == 0 {
		fmt.Fprintf(w, "  No start times available (next: %s)\n", calc.Placeholder(ctx.Clock()))
		return nil
	}
	fmt.Fprintf(w, "  %s\n", cli.FormatOptions(starts))
	return nil
}

// loadDay resolves a date argument and fetches the slots needed to book on it.
func loadDay(ctx *cli.Context, date string) (time.Time, *time.Location, []models.TimeSlot, error) {
	loc, err := ctx.Location()
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	day, err := ctx.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	if !ctx.JSON && dates.IsOutsideBookableRange(day, ctx.Clock(), loc, constants.DefaultBookableDays) {
		fmt.Fprintln(ctx.Writer(), cli.Warning(fmt.Sprintf("%s is outside the bookable range", zone.StringifyDateToISO8601(day, loc))))
	}
	start, end := cli.SlotWindow(day, loc)
	slots, err := ctx.Source.TimeSlots(start, end)
	if err != nil {
		return time.Time{}, nil, nil, fmt.Errorf("failed to get time slots: %w", err)
	}
	return day, loc, slots, nil
}
