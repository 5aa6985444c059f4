package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jaotc/internal/class"
	"jaotc/internal/compilation"
	"jaotc/internal/target"
)

var diagnoseJobs int

func init() {
	diagnoseCmd.Flags().IntVar(&diagnoseJobs, "jobs", 0, "max parallel per-class workers (0 = GOMAXPROCS)")
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <manifest.toml>",
	Short: "Compute layouts for every class in a manifest and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	configureColor(cmd)

	tripleFlag, err := cmd.Root().PersistentFlags().GetString("triple")
	if err != nil {
		return err
	}
	tgt, err := target.Parse(tripleFlag)
	if err != nil {
		return err
	}

	table, err := class.LoadManifest(args[0])
	if err != nil {
		return err
	}

	work := make([]compilation.ClassWork, 0)
	for _, name := range table.Names() {
		c, _ := table.Lookup(name)
		work = append(work, compilation.ClassWork{Class: c, RawBytes: []byte(name)})
	}

	result, bag := compilation.Compile(context.Background(), table, work, tgt, nil, diagnoseJobs)

	out := cmd.OutOrStdout()
	bag.Sort()
	for _, d := range bag.Items() {
		colorForSeverity(d.Severity).Fprintln(out, d.String())
	}

	for _, c := range result.Classes {
		fmt.Fprintf(out, "%s: instance-layout=#%d static-layout=#%d\n", c.ClassName, c.InstanceLayout, c.StaticLayout)
	}
	fmt.Fprintf(out, "trampolines: %d\n", result.Trampolines.Len())
	fmt.Fprintf(out, "elapsed: %.2fms\n", result.Timing.TotalMS)

	if bag.HasFatal() {
		return fmt.Errorf("diagnose: fatal internal invariant violation")
	}
	return nil
}
