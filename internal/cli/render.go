package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	availableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	titleStyle = lipgloss.NewStyle().Bold(true)
)

// RenderTable renders rows under headers with the shared table style.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(blockedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Title renders a bold heading line.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Warning renders a warning line.
func Warning(s string) string {
	return warningStyle.Render(s)
}

// Availability renders a yes/no availability marker.
func Availability(ok bool) string {
	if ok {
		return availableStyle.Render("yes")
	}
	return blockedStyle.Render("no")
}

// FormatRanges renders a day's ranges as "HH:MM-HH:MM seats" pieces.
func FormatRanges(ranges []models.Range, loc *time.Location) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		label := fmt.Sprintf("%s-%s %d", zone.FormatTimeOfDay(r.Start, loc), zone.FormatTimeOfDay(r.End, loc), r.Seats)
		if r.Source != models.SourceNone {
			label += fmt.Sprintf(" (%s)", r.Source)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "\n")
}

// FormatSlot renders a slot as "YYYY-MM-DD HH:MM-HH:MM (n seats)" in loc.
func FormatSlot(s models.TimeSlot, loc *time.Location) string {
	return fmt.Sprintf("%s %s-%s (%d seats)", zone.StringifyDateToISO8601(s.Start, loc),
		zone.FormatTimeOfDay(s.Start, loc), zone.FormatTimeOfDay(s.End, loc), s.Seats)
}

// FormatOptions joins candidate labels.
func FormatOptions(opts []models.TimeOption) string {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.TimeOfDay
	}
	return strings.Join(labels, ", ")
}
