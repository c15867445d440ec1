package calendar

import (
	"fmt"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/exceptions"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

// GapsCmd lists the stretches of a date range no exception covers.
type GapsCmd struct {
	From string `arg:"" help:"First date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	To   string `arg:"" help:"Last date, inclusive." optional:""`
}

func (c *GapsCmd) Run(ctx *cli.Context) error {
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

	exs, err := ctx.Source.Exceptions(start, end)
	if err != nil {
		return fmt.Errorf("failed to get exceptions: %w", err)
	}
	gaps, err := exceptions.AvailableRanges(start, end, exs)
	if err != nil {
		return err
	}

	if ctx.JSON {
		return ctx.PrintJSON(struct {
			Exceptions []models.AvailabilityException `json:"exceptions"`
			Gaps       []models.Interval              `json:"gaps"`
		}{exs, gaps})
	}

	w := ctx.Writer()
	if len(gaps) == 0 {
		fmt.Fprintln(w, "  Exceptions cover the whole range")
		return nil
	}
	rows := make([][]string, 0, len(gaps))
	for _, g := range gaps {
		rows = append(rows, []string{
			zone.StringifyDateToISO8601(g.Start, loc) + " " + zone.FormatTimeOfDay(g.Start, loc),
			zone.StringifyDateToISO8601(g.End, loc) + " " + zone.FormatTimeOfDay(g.End, loc),
		})
	}
	fmt.Fprintln(w, cli.Title(fmt.Sprintf("Not covered by exceptions (%d exceptions in range)", len(exs))))
	fmt.Fprintln(w, cli.RenderTable([]string{"From", "Until"}, rows))
	return nil
}
