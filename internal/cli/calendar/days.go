package calendar

import (
	"fmt"

	"github.com/julianstephens/bookable/internal/availability"
	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/logger"
	"github.com/julianstephens/bookable/internal/models"
)

type DaysCmd struct {
	From string `arg:"" help:"First date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	To   string `arg:"" help:"Last date, inclusive." optional:""`
}

func (c *DaysCmd) Run(ctx *cli.Context) error {
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

	plan, err := ctx.Source.Plan()
	if err != nil {
		return err
	}
	exs, err := ctx.Source.Exceptions(start, end)
	if err != nil {
		return fmt.Errorf("failed to get exceptions: %w", err)
	}

	result, err := availability.PerDate(start, end, plan, exs)
	if err != nil {
		return err
	}
	logger.Debug("Resolved availability", "days", result.Len(), "exceptions", len(exs))

	if ctx.JSON {
		return ctx.PrintJSON(result)
	}

	rows := [][]string{}
	for id, day := range result.All() {
		rows = append(rows, []string{
			id.String(),
			string(models.DayOfWeekFor(id.Weekday())),
			cli.FormatRanges(day.Ranges, loc),
			cli.Availability(day.HasAvailability),
		})
	}

	w := ctx.Writer()
	fmt.Fprintln(w, cli.Title(fmt.Sprintf("Availability in %s", loc)))
	fmt.Fprintln(w, cli.RenderTable([]string{"Date", "Day", "Ranges", "Available"}, rows))
	return nil
}

