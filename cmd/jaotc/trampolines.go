package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jaotc/internal/ir"
	"jaotc/internal/layout"
	"jaotc/internal/mapper"
	"jaotc/internal/target"
	"jaotc/internal/trampoline"
)

var trampolineKindNames = map[string]trampoline.Kind{
	"invoke-virtual":   trampoline.InvokeVirtual,
	"invoke-special":   trampoline.InvokeSpecial,
	"invoke-static":    trampoline.InvokeStatic,
	"invoke-interface": trampoline.InvokeInterface,
	"get-field":        trampoline.GetField,
	"put-field":        trampoline.PutField,
	"get-static":       trampoline.GetStatic,
	"put-static":       trampoline.PutStatic,
	"ldc-class":        trampoline.LdcClass,
	"checkcast":        trampoline.Checkcast,
	"instanceof":       trampoline.Instanceof,
	"new":              trampoline.New,
	"new-array":        trampoline.NewArray,
	"bridge-call":      trampoline.BridgeCall,
	"native-call":      trampoline.NativeCall,
}

var (
	trampKind    string
	trampCalling string
	trampTarget  string
	trampMember  string
	trampDesc    string
	trampStatic  bool
)

func init() {
	trampolinesCmd.Flags().StringVar(&trampKind, "kind", "invoke-virtual", "trampoline kind (invoke-virtual|invoke-special|invoke-static|invoke-interface|get-field|put-field|get-static|put-static|ldc-class|checkcast|instanceof|new|new-array|bridge-call|native-call)")
	trampolinesCmd.Flags().StringVar(&trampCalling, "calling", "", "calling class")
	trampolinesCmd.Flags().StringVar(&trampTarget, "target", "", "target class")
	trampolinesCmd.Flags().StringVar(&trampMember, "member", "", "member name")
	trampolinesCmd.Flags().StringVar(&trampDesc, "descriptor", "", "member descriptor")
	trampolinesCmd.Flags().BoolVar(&trampStatic, "static", false, "member is static")
}

var trampolinesCmd = &cobra.Command{
	Use:   "trampolines",
	Short: "Mangle a trampoline symbol and print its IR function signature",
	RunE:  runTrampolines,
}

func runTrampolines(cmd *cobra.Command, args []string) error {
	kind, ok := trampolineKindNames[trampKind]
	if !ok {
		return fmt.Errorf("unknown trampoline kind %q", trampKind)
	}
	tr := trampoline.Make(trampoline.Trampoline{
		Kind:             kind,
		CallingClass:     trampCalling,
		TargetClass:      trampTarget,
		MemberName:       trampMember,
		MemberDescriptor: trampDesc,
		Static:           trampStatic,
	})

	tripleFlag, err := cmd.Root().PersistentFlags().GetString("triple")
	if err != nil {
		return err
	}
	tgt, err := target.Parse(tripleFlag)
	if err != nil {
		return err
	}
	types := ir.NewInterner(nil)
	lay := layout.New(tgt, types)
	m := mapper.New(types, tgt, lay)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind:   %s\n", tr.Kind)
	fmt.Fprintf(out, "symbol: %s\n", tr.Symbol())

	sig, err := tr.Signature(m)
	if err != nil {
		fmt.Fprintf(out, "signature: <unavailable: %v>\n", err)
		return nil
	}
	fi, _ := types.FuncInfo(sig)
	fmt.Fprintf(out, "params: %v\n", fi.Params)
	fmt.Fprintf(out, "result: %v\n", typeName(types, fi.Result))
	return nil
}

func typeName(types *ir.Interner, id ir.TypeID) string {
	t, ok := types.Lookup(id)
	if !ok {
		return "?"
	}
	return t.Kind.String()
}
