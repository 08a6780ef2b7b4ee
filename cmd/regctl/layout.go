package main

import (
	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/pkg/types"
	"github.com/ipcraft/regkit/reg/layout"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <map> <register>",
		Short: "Print a register's bit strip",
		Long: `The layout command partitions a register into an MSB-first strip of
field and gap segments. Fields with unresolvable or out-of-register bit
specs are skipped, so the strip always covers the register exactly.

Example:
  regctl layout uart.regmap.json CTRL
  regctl layout uart.regmap.json 0 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

func runLayout(args []string) error {
	_, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	reg := view.Register()
	segs := layout.Build(view.Fields(), reg)

	// Output as JSON if requested
	if jsonOut {
		records := make([]map[string]interface{}, 0, len(segs))
		for _, seg := range segs {
			r := seg.Range()
			switch s := seg.(type) {
			case types.FieldSegment:
				records = append(records, map[string]interface{}{
					"kind": "field", "hi": r.Hi, "lo": r.Lo,
					"field": s.FieldIndex, "name": s.Name, "color": s.Color,
				})
			case types.GapSegment:
				records = append(records, map[string]interface{}{
					"kind": "gap", "hi": r.Hi, "lo": r.Lo,
				})
			}
		}
		result := map[string]interface{}{
			"map":      args[0],
			"register": view.Def().Name,
			"width":    reg.Width(),
			"segments": records,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\n%s (%d bits):\n", view.Def().Name, reg.Width())
	for _, seg := range segs {
		switch s := seg.(type) {
		case types.FieldSegment:
			printInfo("  %-8s %s\n", s.Bits, s.Name)
		case types.GapSegment:
			printInfo("  %-8s (gap)\n", s.Bits)
		}
	}

	return nil
}
