package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jaotc/internal/ir"
	"jaotc/internal/layout"
	"jaotc/internal/mapper"
	"jaotc/internal/target"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <descriptor>",
	Short: "Print store-size, alloc-size, and alignment for a field descriptor",
	Long:  "Print store-size, alloc-size, and alignment of the IR type a managed field descriptor maps to, for the given target triple.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayout,
}

func runLayout(cmd *cobra.Command, args []string) error {
	tripleFlag, err := cmd.Root().PersistentFlags().GetString("triple")
	if err != nil {
		return err
	}
	tgt, err := target.Parse(tripleFlag)
	if err != nil {
		return err
	}

	d, err := mapper.ParseDescriptor(args[0])
	if err != nil {
		return err
	}

	types := ir.NewInterner(nil)
	lay := layout.New(tgt, types)
	m := mapper.New(types, tgt, lay)

	ty := m.StorageType(d)
	l, err := lay.LayoutOf(ty)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "descriptor:  %s\n", d.String())
	fmt.Fprintf(out, "target:      %s\n", tgt.String())
	fmt.Fprintf(out, "store-size:  %d\n", l.StoreSize)
	fmt.Fprintf(out, "alloc-size:  %d\n", l.AllocSize)
	fmt.Fprintf(out, "alignment:   %d\n", l.Align)
	return nil
}
