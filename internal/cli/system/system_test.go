package system

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/source"
	"github.com/julianstephens/bookable/internal/validation"
)

const healthySnapshot = `{
  "version": 1,
  "plan": {
    "timezone": "Europe/Helsinki",
    "entries": [
      {"dayOfWeek": "mon", "startTime": "09:00", "endTime": "17:00", "seats": 2}
    ]
  },
  "exceptions": [
    {"start": "2026-01-13T10:00:00+02:00", "end": "2026-01-13T12:00:00+02:00", "seats": 0},
    {"start": "2026-01-12T10:00:00+02:00", "end": "2026-01-12T11:00:00+02:00", "seats": 5}
  ],
  "time_slots": [
    {"start": "2026-01-12T09:00:00+02:00", "end": "2026-01-12T12:00:00+02:00", "seats": 2}
  ]
}`

const conflictingSnapshot = `{
  "version": 1,
  "plan": {
    "timezone": "Europe/Helsinki",
    "entries": [
      {"dayOfWeek": "mon", "startTime": "09:00", "endTime": "17:00", "seats": 2},
      {"dayOfWeek": "mon", "startTime": "16:00", "endTime": "18:00", "seats": 1}
    ]
  },
  "exceptions": [
    {"start": "2026-01-12T10:00:00+02:00", "end": "2026-01-12T12:00:00+02:00", "seats": 0},
    {"start": "2026-01-12T11:00:00+02:00", "end": "2026-01-12T13:00:00+02:00", "seats": 1}
  ],
  "time_slots": []
}`

func setupTestContext(t *testing.T, content string, jsonOut bool) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write snapshot: %v", err)
		}
	}

	out := &bytes.Buffer{}
	return &cli.Context{
		Source: source.NewJSONSource(path, ""),
		Now:    time.Date(2026, time.January, 12, 5, 0, 0, 0, time.UTC),
		JSON:   jsonOut,
		Out:    out,
	}, out
}

func TestValidateCmd_Clean(t *testing.T) {
	ctx, out := setupTestContext(t, healthySnapshot, false)

	cmd := &ValidateCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("ValidateCmd.Run() failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestValidateCmd_Strict(t *testing.T) {
	ctx, out := setupTestContext(t, healthySnapshot, true)

	cmd := &ValidateCmd{Strict: true}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("ValidateCmd.Run() in strict mode should report unsorted exceptions")
	}

	var conflicts []validation.Conflict
	if err := json.Unmarshal(out.Bytes(), &conflicts); err != nil {
		t.Fatalf("failed to parse output: %v\n%s", err, out.String())
	}
	if len(conflicts) != 1 || conflicts[0].Type != validation.ConflictUnsortedExceptions {
		t.Errorf("conflicts = %+v, want one unsorted exceptions conflict", conflicts)
	}
}

func TestValidateCmd_Conflicts(t *testing.T) {
	ctx, out := setupTestContext(t, conflictingSnapshot, true)

	cmd := &ValidateCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("ValidateCmd.Run() should fail on conflicts")
	}

	var conflicts []validation.Conflict
	if err := json.Unmarshal(out.Bytes(), &conflicts); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	types := map[validation.ConflictType]bool{}
	for _, c := range conflicts {
		types[c.Type] = true
	}
	for _, want := range []validation.ConflictType{validation.ConflictOverlappingPlanEntries, validation.ConflictOverlappingExceptions} {
		if !types[want] {
			t.Errorf("missing %s conflict in %+v", want, conflicts)
		}
	}
}

func TestValidateCmd_MissingSnapshot(t *testing.T) {
	ctx, _ := setupTestContext(t, "", false)

	cmd := &ValidateCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("ValidateCmd.Run() should fail without a snapshot")
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := setupTestContext(t, healthySnapshot, false)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("doctor command failed on a healthy snapshot: %v\n%s", err, out.String())
	}
	for _, want := range []string{"✓ Snapshot readable: OK", "✓ Timezone database: OK", "✓ Data validation: OK", "All diagnostics passed!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_MissingSnapshot(t *testing.T) {
	ctx, out := setupTestContext(t, "", false)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("doctor command should fail without a snapshot")
	}
	if !strings.Contains(out.String(), "❌ Snapshot readable: FAIL") {
		t.Errorf("output = %s", out.String())
	}
	if !strings.Contains(out.String(), "⊘ Data validation: SKIPPED") {
		t.Errorf("dependent checks should be skipped:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "✓ Clock/timezone: OK") {
		t.Errorf("independent checks should still run:\n%s", out.String())
	}
}

func TestDoctorCmd_Conflicts(t *testing.T) {
	ctx, out := setupTestContext(t, conflictingSnapshot, false)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("doctor command should fail on conflicting data")
	}
	for _, want := range []string{"❌ Data validation: FAIL", "❌ Snapshot loads: FAIL", "⚠ Bookable data: WARNING"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheckClockTimezone(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "current", now: time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)},
		{name: "epoch", now: time.Unix(0, 0), wantErr: true},
		{name: "far future", now: time.Date(2150, time.January, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkClockTimezone(tt.now); (err != nil) != tt.wantErr {
				t.Errorf("checkClockTimezone() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckTimezoneDatabase(t *testing.T) {
	if err := checkTimezoneDatabase(); err != nil {
		t.Errorf("checkTimezoneDatabase() = %v", err)
	}
}
