package main

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/cli/bookings"
	"github.com/julianstephens/bookable/internal/cli/calendar"
	"github.com/julianstephens/bookable/internal/cli/system"
	"github.com/julianstephens/bookable/internal/constants"
	"github.com/julianstephens/bookable/internal/errors"
	"github.com/julianstephens/bookable/internal/logger"
	"github.com/julianstephens/bookable/internal/source"
)

var CLI struct {
	Version  kong.VersionFlag
	Input    string `help:"Snapshot file with the plan, exceptions and time slots." type:"path" default:"${snapshot}" env:"BOOKABLE_INPUT"`
	Timezone string `help:"Override the plan timezone (IANA name)." env:"BOOKABLE_TIMEZONE"`
	Now      string `help:"Reference instant (RFC3339) instead of the system clock."`
	JSON     bool   `help:"Print JSON instead of tables."`
	Debug    bool   `help:"Log debug output to stderr." env:"BOOKABLE_DEBUG"`
	LogDir   string `help:"Directory for log files." type:"path" default:"${logdir}" env:"BOOKABLE_LOG_DIR"`

	Days     calendar.DaysCmd   `cmd:"" help:"Show resolved availability per day."`
	Slots    calendar.SlotsCmd  `cmd:"" help:"Show time slots per day."`
	Gaps     calendar.GapsCmd   `cmd:"" help:"Show the ranges left open between exceptions."`
	Starts   bookings.StartsCmd `cmd:"" help:"List booking start times for a day."`
	Ends     bookings.EndsCmd   `cmd:"" help:"List booking end times for a start."`
	Pick     bookings.PickCmd   `cmd:"" help:"Interactively pick a booking."`
	Validate system.ValidateCmd `cmd:"" help:"Validate the snapshot for conflicts."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	// BOOKABLE_* variables may come from a .env file in the working directory.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Availability and booking time-slot calculator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigPath),
		kong.Vars{
			"version":  constants.Version,
			"snapshot": constants.DefaultSnapshotPath,
			"logdir":   constants.DefaultLogDir,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: CLI.LogDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	var now time.Time
	if CLI.Now != "" {
		t, err := time.Parse(time.RFC3339, CLI.Now)
		if err != nil {
			errors.Fatal(errors.Configuration("now", CLI.Now, fmt.Errorf("want RFC3339: %w", err)))
		}
		now = t
	}

	appCtx := &cli.Context{
		Source: source.NewJSONSource(CLI.Input, CLI.Timezone),
		Now:    now,
		JSON:   CLI.JSON,
	}

	logger.Debug("Running command", "command", ctx.Command(), "input", CLI.Input)
	errors.Fatal(ctx.Run(appCtx))
}
