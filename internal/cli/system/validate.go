package system

import (
	"fmt"

	"github.com/julianstephens/bookable/internal/cli"
	"github.com/julianstephens/bookable/internal/source"
	"github.com/julianstephens/bookable/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Also report exceptions that are out of order in the file."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	if ctx.Source == nil {
		return fmt.Errorf("no snapshot configured")
	}
	snap, err := source.ReadSnapshot(ctx.Source.GetPath())
	if err != nil {
		return err
	}

	w := ctx.Writer()
	if !ctx.JSON {
		fmt.Fprintln(w, "Validating snapshot...")
	}
	result := validation.New().ValidateAll(snap.Plan, snap.Exceptions, snap.TimeSlots)

	// Exceptions are sorted on load, so file order only matters in strict mode.
	if !cmd.Strict {
		kept := result.Conflicts[:0]
		for _, c := range result.Conflicts {
			if c.Type != validation.ConflictUnsortedExceptions {
				kept = append(kept, c)
			}
		}
		result.Conflicts = kept
	}

	if ctx.JSON {
		if err := ctx.PrintJSON(result.Conflicts); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, result.FormatReport())
	}
	if result.HasConflicts() {
		return fmt.Errorf("snapshot has %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
