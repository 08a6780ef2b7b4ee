package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ipcraft/regkit/cmd/regexplorer/logger"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("regexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	mapPath := filteredArgs[0]
	logger.Info("starting regexplorer", "path", mapPath, "debug", debugMode)

	// Check if file exists
	if _, err := os.Stat(mapPath); err != nil {
		logger.Error("map file not found", "path", mapPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: register map not found: %s\n", mapPath)
		os.Exit(1)
	}

	// Create the TUI model
	m := NewModel(mapPath)

	// Create the Bubbletea program
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("regexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: regexplorer [options] <map-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'regexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("regexplorer - Interactive TUI for Register Map Files")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  regexplorer [options] <map-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI for editing register field layouts.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Bit-level field strip with gaps and per-field colors")
	fmt.Println("    - Drag gestures for resizing, moving, and creating fields")
	fmt.Println("    - One-step field swaps and edge nudges")
	fmt.Println("    - Live register value composition from field resets")
	fmt.Println("    - Atomic, lock-guarded saves back to the map file")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ←/h, →/l    Move the bit cursor")
	fmt.Println("    ↑/k, ↓/j    Switch register / jump a grid row")
	fmt.Println("    Tab         Switch between register list and grid")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.regexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  regexplorer uart.regmap.json")
	fmt.Println("  regexplorer --debug soc.regmap.json")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'regctl' command instead.")
}
