// Package main implements the jaotc CLI: layout/trampoline queries and
// whole-manifest diagnosis over this core, in the teacher's cmd/surge
// cobra-tree shape.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"jaotc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jaotc",
	Short: "Bytecode AOT type/layout/trampoline core",
	Long:  `jaotc computes IR type layouts, managed-to-IR mappings, and trampoline symbols for a target triple.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(trampolinesCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("triple", "x86_64-unknown-linux", "target triple")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
