package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/reg/bounds"
	"github.com/ipcraft/regkit/reg/edit"
)

func init() {
	rootCmd.AddCommand(newNudgeCmd())
}

func newNudgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nudge <map> <register> <field> <edge>",
		Short: "Move one edge of a field by one bit",
		Long: `The nudge command moves the msb or lsb edge of a field by a single
bit: outward when the neighboring bit is free, inward when the edge is
pinned against another field or the register boundary. A one-bit field
with a pinned edge cannot nudge at all.

Example:
  regctl nudge uart.regmap.json CTRL BAUD msb
  regctl nudge uart.regmap.json CTRL BAUD lsb --json`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNudge(args)
		},
	}
	return cmd
}

func runNudge(args []string) error {
	doc, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	fieldIndex, ok := fieldByRef(view.Fields(), args[2])
	if !ok {
		return fmt.Errorf("no field %q in register %s", args[2], view.Def().Name)
	}

	var edge bounds.Edge
	switch args[3] {
	case "msb":
		edge = bounds.EdgeMSB
	case "lsb":
		edge = bounds.EdgeLSB
	default:
		return fmt.Errorf("invalid edge %q (must be msb or lsb)", args[3])
	}

	if !edit.Nudge(view.Fields(), view.Register(), fieldIndex, edge, view) {
		return fmt.Errorf("field %q cannot nudge its %s edge", args[2], edge)
	}

	if err := doc.Save(); err != nil {
		return err
	}
	printVerbose("Saved %s\n", doc.Path())

	return reportMove(view, fieldIndex)
}
