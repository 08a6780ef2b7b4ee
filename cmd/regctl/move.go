package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/pkg/regmap"
	"github.com/ipcraft/regkit/reg/reorder"
	"github.com/ipcraft/regkit/reg/session"
)

var (
	moveMSB bool
	moveLSB bool
)

func init() {
	cmd := newMoveCmd()
	cmd.Flags().BoolVar(&moveMSB, "msb", false, "Swap the field with its MSB-side neighbor")
	cmd.Flags().BoolVar(&moveLSB, "lsb", false, "Swap the field with its LSB-side neighbor")
	rootCmd.AddCommand(cmd)
}

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <map> <register> <field> [cursor]",
		Short: "Move a field within its register",
		Long: `The move command reorders a field. With a cursor bit it runs the full
drag planner: the field is lifted out of the strip, the rest repacks
toward bit 0, and the field drops at the cursor, splitting a gap when it
lands inside one. With --msb or --lsb it instead swaps the field with
its strip neighbor, the keyboard form of the same edit.

Example:
  regctl move uart.regmap.json CTRL BAUD 6
  regctl move uart.regmap.json CTRL BAUD --msb
  regctl move uart.regmap.json CTRL EN --lsb --json`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(args)
		},
	}
	return cmd
}

func runMove(args []string) error {
	doc, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	fieldIndex, ok := fieldByRef(view.Fields(), args[2])
	if !ok {
		return fmt.Errorf("no field %q in register %s", args[2], view.Def().Name)
	}

	if moveMSB || moveLSB {
		if moveMSB && moveLSB {
			return fmt.Errorf("--msb and --lsb are mutually exclusive")
		}
		if len(args) > 3 {
			return fmt.Errorf("cursor argument and --msb/--lsb are mutually exclusive")
		}

		dir := reorder.TowardLSB
		if moveMSB {
			dir = reorder.TowardMSB
		}
		updates, ok := reorder.Step(view.Fields(), view.Register(), fieldIndex, dir)
		if !ok {
			return fmt.Errorf("field cannot move further toward %s", dir)
		}
		view.SetFieldRanges(updates)
	} else {
		if len(args) < 4 {
			return fmt.Errorf("need a cursor bit or one of --msb/--lsb")
		}
		cursor, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid cursor bit %q", args[3])
		}

		s := session.New(view.Register(), view)
		if !s.StartReorder(view.Fields(), fieldIndex) {
			return fmt.Errorf("field %q has no strip segment to move", args[2])
		}
		s.MoveTo(cursor)
		s.Commit()
	}

	if err := doc.Save(); err != nil {
		return err
	}
	printVerbose("Saved %s\n", doc.Path())

	return reportMove(view, fieldIndex)
}

// reportMove prints the field's landing range after a reorder.
func reportMove(view *regmap.RegisterView, fieldIndex int) error {
	f := view.Fields()[fieldIndex]
	r, ok := f.Bits.Resolve()
	if !ok {
		return fmt.Errorf("field %d lost its range", fieldIndex)
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(map[string]interface{}{
			"register": view.Def().Name,
			"field":    f.Name,
			"index":    fieldIndex,
			"hi":       r.Hi,
			"lo":       r.Lo,
		})
	}

	// Text output
	printInfo("\n✓ %s now at %s\n", f.Name, r)

	return nil
}
