package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jaotc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show jaotc build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "jaotc %s\n", version.Fingerprint())
		return nil
	},
}
