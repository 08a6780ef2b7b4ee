package main

import (
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/pkg/regmap"
)

func init() {
	rootCmd.AddCommand(newFieldsCmd())
}

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields <map> [register]",
		Short: "List registers or the fields of one register",
		Long: `The fields command lists the registers in a map, or with a register
argument the field records of that register. Records whose bit specs do
not resolve are listed with "?" bits; the engine skips them.

Example:
  regctl fields uart.regmap.json
  regctl fields uart.regmap.json CTRL
  regctl fields uart.regmap.json CTRL --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFieldsRegisters(args[0])
			}
			return runFields(args)
		},
	}
	return cmd
}

func runFieldsRegisters(mapPath string) error {
	printVerbose("Opening register map: %s\n", mapPath)

	doc, err := regmap.Open(mapPath)
	if err != nil {
		return err
	}

	// Output as JSON if requested
	if jsonOut {
		records := make([]map[string]interface{}, 0, len(doc.Map.Registers))
		for _, r := range doc.Map.Registers {
			records = append(records, map[string]interface{}{
				"name":   r.Name,
				"width":  r.Width,
				"fields": len(r.Fields),
			})
		}
		result := map[string]interface{}{
			"map":       mapPath,
			"name":      doc.Map.Name,
			"registers": records,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\nRegisters in %s:\n", doc.Map.Name)
	for _, r := range doc.Map.Registers {
		printInfo("  %-16s %2d bits, %d fields\n", r.Name, r.Width, len(r.Fields))
	}
	printInfo("\nTotal: %d registers\n", len(doc.Map.Registers))

	return nil
}

func runFields(args []string) error {
	_, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	def := view.Def()
	fields := view.Fields()

	// Output as JSON if requested
	if jsonOut {
		records := make([]map[string]interface{}, 0, len(fields))
		for i, f := range fields {
			rec := map[string]interface{}{
				"index": f.Index,
				"name":  f.Name,
			}
			if r, ok := f.Bits.Resolve(); ok {
				rec["hi"] = r.Hi
				rec["lo"] = r.Lo
			}
			if !math.IsNaN(f.Reset) {
				rec["reset"] = f.Reset
			}
			if access := def.Fields[i].Access; access != "" {
				rec["access"] = access
			}
			records = append(records, rec)
		}
		result := map[string]interface{}{
			"map":      args[0],
			"register": def.Name,
			"width":    def.Width,
			"fields":   records,
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\nFields of %s (%d bits):\n", def.Name, def.Width)
	for i, f := range fields {
		bits := "?"
		if r, ok := f.Bits.Resolve(); ok {
			bits = r.String()
		}
		reset := "-"
		if !math.IsNaN(f.Reset) {
			reset = formatReset(f.Reset)
		}
		access := def.Fields[i].Access
		printInfo("  %2d  %-8s %-16s reset=%-6s %s\n", f.Index, bits, f.Name, reset, access)
	}
	printInfo("\nTotal: %d fields\n", len(fields))

	return nil
}

// formatReset renders a stored reset scalar. Values the engine would
// clamp (negative, fractional, out of uint64 range) show as "?".
func formatReset(v float64) string {
	if v == math.Trunc(v) && v >= 0 && v < math.Ldexp(1, 64) {
		return strconv.FormatUint(uint64(v), 10)
	}
	return "?"
}
