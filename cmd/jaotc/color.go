package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jaotc/internal/diag"
)

// isTerminal reports whether f is attached to a terminal, the way the
// teacher's cmd/surge isTerminal does for its --color=auto default.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// configureColor applies the --color flag the same way the teacher's
// rootCmd does: "auto" colors only when stdout is a terminal, "on"/"off"
// force it either way.
func configureColor(cmd *cobra.Command) {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func colorForSeverity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevFatal:
		return color.New(color.FgRed, color.Bold)
	case diag.SevError:
		return color.New(color.FgRed)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
