package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/reg/edit"
	"github.com/ipcraft/regkit/reg/value"
)

var valueSet string

func init() {
	cmd := newValueCmd()
	cmd.Flags().StringVar(&valueSet, "set", "", "Write a register value back into the field resets")
	rootCmd.AddCommand(cmd)
}

func newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value <map> <register>",
		Short: "Compose or distribute a register's reset value",
		Long: `The value command composes the register's reset value from its field
resets. With --set it goes the other way: the given value is parsed
(decimal, 0x hex, or float), range-checked against the register width,
sliced into the fields, and saved. Bits under no field are dropped.

Example:
  regctl value uart.regmap.json CTRL
  regctl value uart.regmap.json CTRL --set 0xA5
  regctl value uart.regmap.json CTRL --set 165 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValue(args)
		},
	}
	return cmd
}

func runValue(args []string) error {
	doc, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	reg := view.Register()

	if valueSet != "" {
		parsed, ok := value.Parse(valueSet)
		if !ok {
			return fmt.Errorf("failed to parse value %q", valueSet)
		}
		v, err := value.Check(parsed, reg.Width())
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", valueSet, err)
		}

		edit.SetValue(v, view.Fields(), reg, view)
		if err := doc.Save(); err != nil {
			return err
		}
		printVerbose("Saved %s\n", doc.Path())
	}

	composed := value.Compose(view.Fields(), reg)

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"map":      args[0],
			"register": view.Def().Name,
			"width":    reg.Width(),
			"value":    composed,
			"hex":      fmt.Sprintf("0x%0*X", hexDigits(reg.Width()), composed),
		}
		if valueSet != "" {
			result["set"] = valueSet
		}
		return printJSON(result)
	}

	// Text output
	printInfo("\n%s = 0x%0*X (%d)\n", view.Def().Name, hexDigits(reg.Width()), composed, composed)
	printInfo("  binary: %0*b\n", reg.Width(), composed)

	return nil
}
