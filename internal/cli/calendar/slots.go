package calendar

import (
	"fmt"
	"strings"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/logger"
	"github.com/julianstephens/bookable/internal/timeslots"
)

type SlotsCmd struct {
	From     string `arg:"" help:"First date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	To       string `arg:"" help:"Last date, inclusive." optional:""`
	MinSeats int    `help:"Only list slots with at least this many seats." name:"min-seats" default:"1"`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	to := c.To
	if to == "" {
		to = c.From
	}
	start, end, err := ctx.ParseDateRange(c.From, to, loc)
	if err != nil {
		return err
	}

	slots, err := ctx.Source.TimeSlots(start, end)
	if err != nil {
		return fmt.Errorf("failed to get time slots: %w", err)
	}
	result, err := timeslots.PerDate(start, end, slots, loc, timeslots.WithMinSeats(c.MinSeats))
	if err != nil {
		return err
	}
	logger.Debug("Bucketed time slots", "days", result.Len(), "slots", len(slots), "min_seats", c.MinSeats)

	if ctx.JSON {
		return ctx.PrintJSON(result)
	}

	rows := [][]string{}
	for id, bucket := range result.All() {
		labels := make([]string, 0, len(bucket.TimeSlots))
		for _, s := range bucket.TimeSlots {
			labels = append(labels, cli.FormatSlot(s, loc))
		}
		rows = append(rows, []string{id.String(), strings.Join(labels, "\n"), cli.Availability(bucket.HasAvailability)})
	}

	w := ctx.Writer()
	fmt.Fprintln(w, cli.Title(fmt.Sprintf("Time slots with at least %d seat(s)", c.MinSeats)))
	fmt.Fprintln(w, cli.RenderTable([]string{"Date", "Slots", "Available"}, rows))
	return nil
}
