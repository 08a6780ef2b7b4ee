package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ipcraft/regkit/pkg/regmap"
	"github.com/ipcraft/regkit/pkg/types"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Inspect and edit register map files",
	Long: `regctl is a tool for inspecting and editing register map documents.
It lays out register fields as MSB-first bit strips, composes and decomposes
reset values, and applies resize, reorder, and nudge edits with the same
engine the interactive explorer uses.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Helper functions for documents

// openView opens a register map and returns the engine view of one register,
// addressed by name or by index.
func openView(mapPath, register string) (*regmap.Document, *regmap.RegisterView, error) {
	printVerbose("Opening register map: %s\n", mapPath)

	doc, err := regmap.Open(mapPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open register map: %w", err)
	}

	view, err := doc.ViewNamed(register)
	if err == nil {
		return doc, view, nil
	}
	if i, convErr := strconv.Atoi(register); convErr == nil {
		if view, idxErr := doc.View(i); idxErr == nil {
			return doc, view, nil
		}
	}
	return nil, nil, fmt.Errorf("failed to resolve register: %w", err)
}

// fieldByRef resolves a field reference, by name first and then by index.
func fieldByRef(fields []types.Field, ref string) (int, bool) {
	for _, f := range fields {
		if f.Name == ref {
			return f.Index, true
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(fields) {
		return i, true
	}
	return 0, false
}

// hexDigits returns how many hex digits a value of the given bit width needs.
func hexDigits(width int) int {
	return (width + 3) / 4
}
