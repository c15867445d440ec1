package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/models"
	"github.com/julianstephens/bookable/internal/zone"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := zone.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q) failed: %v", name, err)
	}
	return loc
}

func TestGenerateDates(t *testing.T) {
	helsinki := mustLoad(t, "Europe/Helsinki")
	start := time.Date(2026, 3, 27, 0, 0, 0, 0, helsinki)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, helsinki)

	got, err := GenerateDates(start, end, helsinki)
	if err != nil {
		t.Fatalf("GenerateDates() failed: %v", err)
	}

	want := []string{"2026-03-27", "2026-03-28", "2026-03-29", "2026-03-30"}
	if len(got) != len(want) {
		t.Fatalf("GenerateDates() returned %d days, want %d", len(got), len(want))
	}
	for i, d := range got {
		if s := zone.StringifyDateToISO8601(d, helsinki); s != want[i] {
			t.Errorf("day %d = %s, want %s", i, s, want[i])
		}
		if d.In(helsinki).Hour() != 0 || d.In(helsinki).Minute() != 0 {
			t.Errorf("day %d = %s is not a day start", i, d)
		}
	}
}

func TestGenerateDates_EmptyAndErrors(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := GenerateDates(start, start, time.UTC)
	if err != nil {
		t.Fatalf("GenerateDates() on empty window failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GenerateDates() on empty window = %v, want empty non-nil slice", got)
	}

	if _, err := GenerateDates(start, start.AddDate(0, 0, -1), time.UTC); !errors.Is(err, errors.ErrPrecondition) {
		t.Errorf("GenerateDates() reversed window error = %v, want precondition error", err)
	}
	if _, err := GenerateDates(start, start, nil); !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("GenerateDates() nil location error = %v, want configuration error", err)
	}
}

func TestGenerateDates_BucketCount(t *testing.T) {
	tests := []struct {
		zone  string
		start string
	}{
		{"UTC", "2026-01-15"},
		{"America/New_York", "2026-01-15"},
		{"Europe/Helsinki", "2026-01-15"},
		{"Australia/Lord_Howe", "2026-01-15"},
		{"Asia/Kathmandu", "2026-01-15"},
		{"America/Havana", "2026-03-06"},
		{"America/Santiago", "2026-09-04"},
	}
	for _, tt := range tests {
		loc := mustLoad(t, tt.zone)
		start, err := zone.ParseDateFromISO8601(tt.start, loc)
		if err != nil {
			t.Fatalf("%s: ParseDateFromISO8601() failed: %v", tt.zone, err)
		}
		for _, span := range []int{0, 1, 2, 3, 7, 31, 92, 366} {
			end := zone.Add(start, span, zone.Day, loc)

			got, err := GenerateDates(start, end, loc)
			if err != nil {
				t.Fatalf("%s: GenerateDates() failed: %v", tt.zone, err)
			}
			want, err := zone.DaysBetween(start, end, loc)
			if err != nil {
				t.Fatalf("%s: DaysBetween() failed: %v", tt.zone, err)
			}
			if len(got) != want || want != span {
				t.Errorf("%s span %d: GenerateDates() yielded %d days, DaysBetween = %d", tt.zone, span, len(got), want)
			}
		}
	}
}

func TestGenerateDates_PartialDays(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	start := time.Date(2026, 1, 15, 12, 0, 0, 0, ny)
	end := time.Date(2026, 1, 16, 6, 0, 0, 0, ny)

	got, err := GenerateDates(start, end, ny)
	if err != nil {
		t.Fatalf("GenerateDates() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GenerateDates() yielded %d days, want 2", len(got))
	}
	if n, _ := zone.DaysBetween(start, end, ny); n != 0 {
		t.Errorf("DaysBetween() = %d, want 0", n)
	}
}

func TestGenerateDates_MidnightGap(t *testing.T) {
	tests := []struct {
		zone  string
		start string
		want  []string
		gap   string
	}{
		{"America/Havana", "2026-03-06", []string{"2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"}, "2026-03-08"},
		{"America/Santiago", "2026-09-04", []string{"2026-09-04", "2026-09-05", "2026-09-06", "2026-09-07", "2026-09-08"}, "2026-09-06"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc := mustLoad(t, tt.zone)
			start, _ := zone.ParseDateFromISO8601(tt.start, loc)
			got, err := GenerateDates(start, zone.Add(start, len(tt.want), zone.Day, loc), loc)
			if err != nil {
				t.Fatalf("GenerateDates() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("GenerateDates() returned %d days, want %d", len(got), len(tt.want))
			}
			seen := map[models.DateID]bool{}
			for i, d := range got {
				id := DateIDOf(d, loc)
				if seen[id] {
					t.Errorf("day %d repeats %s", i, id)
				}
				seen[id] = true
				if s := zone.StringifyDateToISO8601(d, loc); s != tt.want[i] {
					t.Errorf("day %d = %s, want %s", i, s, tt.want[i])
				}
				if s, _ := DayBounds(id, loc); !s.Equal(d) {
					t.Errorf("DayBounds(%s) starts at %s, want %s", id, s, d)
				}
				wantClock := "00:00"
				if tt.want[i] == tt.gap {
					wantClock = "01:00"
				}
				if c := zone.FormatTimeOfDay(d, loc); c != wantClock {
					t.Errorf("day %s starts at %s, want %s", tt.want[i], c, wantClock)
				}
			}

			id, err := ParseDateID(tt.gap, loc)
			if err != nil {
				t.Fatalf("ParseDateID() failed: %v", err)
			}
			if id.String() != tt.gap {
				t.Errorf("ParseDateID(%s) = %s", tt.gap, id)
			}
		})
	}
}

func TestGenerateMonths(t *testing.T) {
	loc := mustLoad(t, "America/New_York")
	start := time.Date(2026, 11, 15, 12, 0, 0, 0, loc)
	end := time.Date(2027, 2, 1, 0, 0, 0, 0, loc)

	got, err := GenerateMonths(start, end, loc)
	if err != nil {
		t.Fatalf("GenerateMonths() failed: %v", err)
	}
	want := []string{"2026-11", "2026-12", "2027-01"}
	if len(got) != len(want) {
		t.Fatalf("GenerateMonths() returned %d months, want %d", len(got), len(want))
	}
	for i, m := range got {
		if id := MonthID(m, loc); id != want[i] {
			t.Errorf("month %d = %s, want %s", i, id, want[i])
		}
	}
}

func TestDateIDOf(t *testing.T) {
	helsinki := mustLoad(t, "Europe/Helsinki")
	instant := time.Date(2026, 1, 31, 22, 30, 0, 0, time.UTC)

	id := DateIDOf(instant, helsinki)
	if id.String() != "2026-02-01" {
		t.Errorf("DateIDOf() = %s, want 2026-02-01", id)
	}
	if id.Zone != "Europe/Helsinki" {
		t.Errorf("DateIDOf().Zone = %q, want Europe/Helsinki", id.Zone)
	}
	if utc := DateIDOf(instant, time.UTC); utc.String() != "2026-01-31" {
		t.Errorf("DateIDOf(UTC) = %s, want 2026-01-31", utc)
	}

	parsed, err := ParseDateID("2026-02-01", helsinki)
	if err != nil {
		t.Fatalf("ParseDateID() failed: %v", err)
	}
	if parsed != id {
		t.Errorf("ParseDateID() = %+v, want %+v", parsed, id)
	}
	if _, err := ParseDateID("02/01/2026", helsinki); err == nil {
		t.Error("ParseDateID() expected error for invalid format")
	}
}

func TestDayBounds_DST(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	id := models.DateID{Zone: ny.String(), Year: 2026, Month: time.November, Day: 1}

	start, end := DayBounds(id, ny)
	if got := end.Sub(start); got != 25*time.Hour {
		t.Errorf("DayBounds() span = %s, want 25h", got)
	}
}

func TestBookableRange(t *testing.T) {
	loc := mustLoad(t, "Europe/Helsinki")
	now := time.Date(2026, 5, 10, 15, 4, 0, 0, loc)

	start, end := BookableRange(now, loc, 90)
	if want := time.Date(2026, 5, 10, 0, 0, 0, 0, loc); !start.Equal(want) {
		t.Errorf("BookableRange() start = %s, want %s", start, want)
	}
	if want := time.Date(2026, 8, 8, 0, 0, 0, 0, loc); !end.Equal(want) {
		t.Errorf("BookableRange() end = %s, want %s", end, want)
	}

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"yesterday", time.Date(2026, 5, 9, 0, 0, 0, 0, loc), true},
		{"today", time.Date(2026, 5, 10, 0, 0, 0, 0, loc), false},
		{"last bookable day", time.Date(2026, 8, 7, 0, 0, 0, 0, loc), false},
		{"first day after range", time.Date(2026, 8, 8, 0, 0, 0, 0, loc), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOutsideBookableRange(tt.day, now, loc, 90); got != tt.want {
				t.Errorf("IsOutsideBookableRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMap(t *testing.T) {
	loc := time.UTC
	a := DateIDOf(time.Date(2026, 1, 3, 0, 0, 0, 0, loc), loc)
	b := DateIDOf(time.Date(2026, 1, 1, 0, 0, 0, 0, loc), loc)
	c := DateIDOf(time.Date(2026, 1, 2, 0, 0, 0, 0, loc), loc)

	m := NewMap[int]()
	m.Set(a, 1)
	m.Set(b, 2)
	m.Set(c, 3)
	m.Set(b, 20)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	keys := m.Keys()
	if keys[0] != a || keys[1] != b || keys[2] != c {
		t.Errorf("Keys() = %v, want insertion order", keys)
	}
	if v, ok := m.Get(b); !ok || v != 20 {
		t.Errorf("Get(b) = %d, %v, want 20, true", v, ok)
	}
	if v, ok := m.Lookup("2026-01-02"); !ok || v != 3 {
		t.Errorf("Lookup() = %d, %v, want 3, true", v, ok)
	}
	if _, ok := m.Lookup("2026-01-09"); ok {
		t.Error("Lookup() found a missing key")
	}

	var visited []int
	for _, v := range m.All() {
		visited = append(visited, v)
		if len(visited) == 2 {
			break
		}
	}
	if len(visited) != 2 || visited[0] != 1 || visited[1] != 20 {
		t.Errorf("All() visited %v, want [1 20]", visited)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if want := `{"2026-01-03":1,"2026-01-01":20,"2026-01-02":3}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestToMap_LaterWins(t *testing.T) {
	type item struct {
		day  time.Time
		name string
	}
	loc := time.UTC
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)
	items := []item{{day, "first"}, {day.AddDate(0, 0, 1), "other"}, {day.Add(time.Hour), "second"}}

	m := ToMap(items, func(i item) models.DateID { return DateIDOf(i.day, loc) })
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if v, _ := m.Get(DateIDOf(day, loc)); v.name != "second" {
		t.Errorf("duplicate key kept %q, want the later entry", v.name)
	}
	if m.Keys()[0] != DateIDOf(day, loc) {
		t.Error("overwritten key moved from its insertion position")
	}
}
