package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/reg/bounds"
	"github.com/ipcraft/regkit/reg/edit"
	"github.com/ipcraft/regkit/reg/value"
)

var (
	bitSet    string
	bitToggle bool
)

func init() {
	cmd := newBitCmd()
	cmd.Flags().StringVar(&bitSet, "set", "", "Write the bit (0 or 1)")
	cmd.Flags().BoolVar(&bitToggle, "toggle", false, "Flip the bit")
	rootCmd.AddCommand(cmd)
}

func newBitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bit <map> <register> <bit>",
		Short: "Read or write one bit of the reset value",
		Long: `The bit command reads a single bit of the composed reset value, or
writes it with --set or --toggle. Writes land on the reset of the field
owning that bit; a bit under no field cannot be written.

Example:
  regctl bit uart.regmap.json CTRL 7
  regctl bit uart.regmap.json CTRL 7 --set 0
  regctl bit uart.regmap.json CTRL 3 --toggle`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBit(args)
		},
	}
	return cmd
}

func runBit(args []string) error {
	doc, view, err := openView(args[0], args[1])
	if err != nil {
		return err
	}

	bit, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid bit position %q", args[2])
	}
	reg := view.Register()
	if !reg.Contains(bit) {
		return fmt.Errorf("bit %d outside register width %d", bit, reg.Width())
	}

	if bitSet != "" && bitToggle {
		return fmt.Errorf("--set and --toggle are mutually exclusive")
	}
	if (bitSet != "" || bitToggle) && !bounds.Owners(view.Fields()).Owned(bit) {
		return fmt.Errorf("bit %d is not owned by any field", bit)
	}

	changed := false
	switch {
	case bitSet != "":
		desired := false
		switch bitSet {
		case "0":
		case "1":
			desired = true
		default:
			return fmt.Errorf("invalid bit value %q (must be 0 or 1)", bitSet)
		}
		changed = edit.SetBit(view.Fields(), reg, bit, desired, view)
	case bitToggle:
		changed = edit.Toggle(view.Fields(), reg, bit, view)
	}

	if changed {
		if err := doc.Save(); err != nil {
			return err
		}
		printVerbose("Saved %s\n", doc.Path())
	}

	fields := view.Fields()
	set := value.BitAt(fields, bit)
	owner, owned := bounds.Owners(fields).Owner(bit)

	// Output as JSON if requested
	if jsonOut {
		result := map[string]interface{}{
			"map":      args[0],
			"register": view.Def().Name,
			"bit":      bit,
			"value":    boolBit(set),
			"owned":    owned,
			"changed":  changed,
		}
		if owned {
			result["field"] = fields[owner].Name
		}
		return printJSON(result)
	}

	// Text output
	if owned {
		printInfo("\nbit %d = %d (%s)\n", bit, boolBit(set), fields[owner].Name)
	} else {
		printInfo("\nbit %d = %d (gap)\n", bit, boolBit(set))
	}
	if changed {
		printInfo("✓ Written\n")
	}

	return nil
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
