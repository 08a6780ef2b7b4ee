package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/pkg/regmap"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <map>",
		Short: "Check a register map for problems",
		Long: `The validate command checks every register and field record of a map.
Errors mark records the editor cannot work with as stored (bad widths,
out-of-register or overlapping ranges); warnings mark cosmetic issues
like missing or duplicate names. Records with unresolvable bit specs
are not findings; the engine skips those.

Example:
  regctl validate uart.regmap.json
  regctl validate uart.regmap.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	mapPath := args[0]

	printVerbose("Opening register map: %s\n", mapPath)

	m, err := regmap.Load(mapPath)
	if err != nil {
		return err
	}

	problems := m.Validate()
	errors := 0
	for _, p := range problems {
		if p.Severity == regmap.SevError {
			errors++
		}
	}

	// Output as JSON if requested
	if jsonOut {
		records := make([]map[string]interface{}, 0, len(problems))
		for _, p := range problems {
			records = append(records, map[string]interface{}{
				"severity": p.Severity.String(),
				"register": p.Register,
				"field":    p.Field,
				"msg":      p.Msg,
			})
		}
		result := map[string]interface{}{
			"map":      mapPath,
			"valid":    errors == 0,
			"problems": records,
		}
		if err := printJSON(result); err != nil {
			return err
		}
		if errors > 0 {
			return fmt.Errorf("%d error(s) in %s", errors, mapPath)
		}
		return nil
	}

	// Text output
	printInfo("\nValidating %s...\n\n", mapPath)

	for _, p := range problems {
		glyph := "✗"
		if p.Severity == regmap.SevWarning {
			glyph = "!"
		}
		printInfo("  %s %s\n", glyph, p)
	}

	if errors > 0 {
		printInfo("\nResult: ✗ INVALID (%d errors, %d warnings)\n", errors, len(problems)-errors)
		return fmt.Errorf("%d error(s) in %s", errors, mapPath)
	}

	if len(problems) > 0 {
		printInfo("\nResult: ✓ VALID (%d warnings)\n", len(problems))
	} else {
		printInfo("Result: ✓ VALID\n")
	}

	return nil
}
