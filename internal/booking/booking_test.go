package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

func newCalculator(t *testing.T, opts Options) *Calculator {
	t.Helper()
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

func labelsOf(opts []models.TimeOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.TimeOfDay
	}
	return out
}

func equalLabels(t *testing.T, got []models.TimeOption, want []string) {
	t.Helper()
	l := labelsOf(got)
	if len(l) != len(want) {
		t.Fatalf("got %v, want %v", l, want)
	}
	for i := range l {
		if l[i] != want[i] {
			t.Fatalf("got %v, want %v", l, want)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		target error
	}{
		{"missing location", Options{}, errors.ErrConfiguration},
		{"negative length", Options{Location: time.UTC, BookingLengthInMinutes: -5}, errors.ErrPrecondition},
		{"unsupported interval", Options{Location: time.UTC, StartTimeInterval: zone.Interval{Amount: 1, Unit: zone.Month}}, errors.ErrPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, tt.target) {
				t.Errorf("New() error = %v, want %v", err, tt.target)
			}
		})
	}

	c := newCalculator(t, Options{})
	if got := c.Options().StartTimeInterval; got != (zone.Interval{Amount: 1, Unit: zone.Hour}) {
		t.Errorf("default interval = %+v, want 1 hour", got)
	}
}

func TestStartTimes(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		slots []models.TimeSlot
		day   time.Time
		want  []string
	}{
		{
			name:  "hourly unit booking",
			slots: []models.TimeSlot{slot(10, 14, 1)},
			day:   day,
			want:  []string{"10:00", "11:00", "12:00", "13:00"},
		},
		{
			name:  "fixed length with half-hour interval",
			opts:  Options{BookingLengthInMinutes: 90, StartTimeInterval: zone.Interval{Amount: 30, Unit: zone.Minute}},
			slots: []models.TimeSlot{slot(10, 12, 1)},
			day:   day,
			want:  []string{"10:00", "10:30"},
		},
		{
			name:  "run crossing midnight, first day",
			slots: []models.TimeSlot{slot(22, 26, 1)},
			day:   day,
			want:  []string{"22:00", "23:00"},
		},
		{
			name:  "run crossing midnight, second day",
			slots: []models.TimeSlot{slot(22, 26, 1)},
			day:   day.AddDate(0, 0, 1),
			want:  []string{"00:00", "01:00"},
		},
		{
			name:  "fixed length reaching past midnight",
			opts:  Options{BookingLengthInMinutes: 180},
			slots: []models.TimeSlot{slot(22, 26, 1)},
			day:   day,
			want:  []string{"22:00", "23:00"},
		},
		{
			name:  "seat change breaks the run",
			opts:  Options{BookingLengthInMinutes: 180, SeatsEnabled: true},
			slots: []models.TimeSlot{slot(10, 12, 2), slot(12, 14, 1)},
			day:   day,
			want:  []string{},
		},
		{
			name:  "seats ignored merges the run",
			opts:  Options{BookingLengthInMinutes: 180},
			slots: []models.TimeSlot{slot(12, 14, 1), slot(10, 12, 2)},
			day:   day,
			want:  []string{"10:00", "11:00"},
		},
		{
			name:  "past candidates dropped",
			opts:  Options{Now: at(11, 30)},
			slots: []models.TimeSlot{slot(10, 14, 1)},
			day:   day,
			want:  []string{"12:00", "13:00"},
		},
		{
			name:  "unaligned slot start",
			slots: []models.TimeSlot{{Start: at(9, 20), End: at(12, 0), Seats: 1}},
			day:   day,
			want:  []string{"10:00", "11:00"},
		},
		{
			name:  "booking does not fit",
			opts:  Options{BookingLengthInMinutes: 300},
			slots: []models.TimeSlot{slot(10, 14, 1)},
			day:   day,
			want:  []string{},
		},
		{
			name: "no slots",
			day:  day,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCalculator(t, tt.opts)
			got := c.StartTimes(tt.day, tt.slots)
			if got == nil {
				t.Fatal("StartTimes() returned nil")
			}
			equalLabels(t, got, tt.want)
		})
	}
}

func TestStartTimes_DST(t *testing.T) {
	ny, err := zone.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	dstDay := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	slots := []models.TimeSlot{{Start: dstDay, End: time.Date(2026, 3, 8, 5, 0, 0, 0, ny), Seats: 1}}

	c := newCalculator(t, Options{Location: ny})
	equalLabels(t, c.StartTimes(dstDay, slots), []string{"00:00", "01:00", "03:00", "04:00"})
}

func TestEndTimes(t *testing.T) {
	hourly := newCalculator(t, Options{})
	equalLabels(t, hourly.EndTimes(at(10, 0), time.Time{}, []models.TimeSlot{slot(10, 14, 1)}),
		[]string{"11:00", "12:00", "13:00", "14:00"})

	fixed := newCalculator(t, Options{BookingLengthInMinutes: 90})
	equalLabels(t, fixed.EndTimes(at(10, 0), time.Time{}, []models.TimeSlot{slot(10, 12, 1)}), []string{"11:30"})
	equalLabels(t, fixed.EndTimes(at(11, 0), time.Time{}, []models.TimeSlot{slot(10, 12, 1)}), []string{})

	equalLabels(t, hourly.EndTimes(at(9, 0), time.Time{}, []models.TimeSlot{slot(10, 14, 1)}), []string{})
}

func TestEndTimes_MultiDay(t *testing.T) {
	c := newCalculator(t, Options{})
	slots := []models.TimeSlot{slot(10, 48+12, 1)}

	first, last, ok := c.EndDateRange(at(10, 0), slots)
	if !ok {
		t.Fatal("EndDateRange() ok = false")
	}
	if !first.Equal(day) || !last.Equal(day.AddDate(0, 0, 2)) {
		t.Errorf("EndDateRange() = %s..%s, want %s..%s", first, last, day, day.AddDate(0, 0, 2))
	}

	got := c.EndTimes(at(10, 0), day.AddDate(0, 0, 1), slots)
	if len(got) != 25 {
		t.Fatalf("EndTimes() returned %d candidates, want 25", len(got))
	}
	if !got[0].Timestamp.Equal(at(24, 0)) || !got[24].Timestamp.Equal(at(48, 0)) {
		t.Errorf("EndTimes() spans %s..%s", got[0].Timestamp, got[24].Timestamp)
	}

	lastDay := c.EndTimes(at(10, 0), day.AddDate(0, 0, 2), slots)
	if n := len(lastDay); n != 13 || !lastDay[n-1].Timestamp.Equal(at(60, 0)) {
		t.Errorf("EndTimes() on last day = %v, want 00:00..12:00", labelsOf(lastDay))
	}

	if _, _, ok := c.EndDateRange(at(8, 0), slots); ok {
		t.Error("EndDateRange() ok = true for a start outside every run")
	}
}

func TestEndDateRange_RunEndingAtMidnight(t *testing.T) {
	c := newCalculator(t, Options{})
	slots := []models.TimeSlot{slot(20, 24, 1)}

	first, last, ok := c.EndDateRange(at(20, 0), slots)
	if !ok {
		t.Fatal("EndDateRange() ok = false")
	}
	if !first.Equal(day) || !last.Equal(day) {
		t.Errorf("EndDateRange() = %s..%s, want %s only", first, last, day)
	}
	equalLabels(t, c.EndTimes(at(20, 0), day, slots), []string{"21:00", "22:00", "23:00", "00:00"})

	sel := c.AllTimeValues(day, slots, at(20, 0), day.AddDate(0, 0, 1))
	if !sel.EndDate.Equal(day) {
		t.Errorf("AllTimeValues() EndDate = %s, want %s", sel.EndDate, day)
	}
}

func TestAllTimeValues(t *testing.T) {
	slots := []models.TimeSlot{slot(10, 14, 1)}
	c := newCalculator(t, Options{})

	tests := []struct {
		name            string
		selectedStart   time.Time
		selectedEndDate time.Time
		wantStart       time.Time
		wantEnd         time.Time
	}{
		{"defaults to earliest", time.Time{}, time.Time{}, at(10, 0), at(11, 0)},
		{"keeps valid selection", at(12, 0), day, at(12, 0), at(13, 0)},
		{"replaces invalid start", at(9, 0), time.Time{}, at(10, 0), at(11, 0)},
		{"ignores end date out of range", at(10, 0), day.AddDate(0, 0, 5), at(10, 0), at(11, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := c.AllTimeValues(day, slots, tt.selectedStart, tt.selectedEndDate)
			if !sel.Bookable() {
				t.Fatalf("AllTimeValues() = %+v, want a bookable selection", sel)
			}
			if !sel.StartTime.Equal(tt.wantStart) || !sel.EndTime.Equal(tt.wantEnd) {
				t.Errorf("AllTimeValues() = %s-%s, want %s-%s", sel.StartTime, sel.EndTime, tt.wantStart, tt.wantEnd)
			}
			if !sel.EndDate.Equal(day) {
				t.Errorf("EndDate = %s, want %s", sel.EndDate, day)
			}
			if sel.Seats != 1 {
				t.Errorf("Seats = %d, want 1", sel.Seats)
			}
		})
	}
}

func TestAllTimeValues_MinimumSeats(t *testing.T) {
	slots := []models.TimeSlot{slot(10, 12, 2), slot(12, 14, 1)}
	c := newCalculator(t, Options{BookingLengthInMinutes: 180})

	sel := c.AllTimeValues(day, slots, at(11, 0), time.Time{})
	if !sel.StartTime.Equal(at(11, 0)) || !sel.EndTime.Equal(at(14, 0)) {
		t.Fatalf("AllTimeValues() = %s-%s, want 11:00-14:00", sel.StartTime, sel.EndTime)
	}
	if sel.Seats != 1 {
		t.Errorf("Seats = %d, want minimum 1", sel.Seats)
	}
}

func TestAllTimeValues_Empty(t *testing.T) {
	c := newCalculator(t, Options{})
	sel := c.AllTimeValues(day, nil, time.Time{}, time.Time{})
	if sel.Bookable() {
		t.Error("empty selection reports bookable")
	}
	if sel.StartTimes == nil || sel.EndTimes == nil {
		t.Error("empty selection has nil candidate lists")
	}
}

func TestPlaceholder(t *testing.T) {
	c := newCalculator(t, Options{})

	if got := c.Placeholder(time.Time{}); got != "08:00" {
		t.Errorf("Placeholder(zero) = %q, want 08:00", got)
	}

	var wg sync.WaitGroup
	results := make([]string, 24)
	for h := 0; h < 24; h++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			results[h] = c.Placeholder(at(h, 15))
		}(h)
	}
	wg.Wait()

	for h, got := range results {
		want := at(h+1, 0).Format("15:04")
		if got != want {
			t.Errorf("Placeholder(%02d:15) = %q, want %q", h, got, want)
		}
	}
}
