package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qpqpin/eldr/internal/loader"
	"github.com/qpqpin/eldr/internal/ui/colorize"
)

func runInfo(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		fmt.Println(colorize.Error("--info requires an <elf> argument"))
		return nil
	}
	path := args[0]
	summary, err := loader.Inspect(path)
	if err != nil {
		fmt.Println(colorize.Error(err.Error()))
		return nil
	}

	rule := colorize.Border("----------------------------------------")

	fmt.Println(rule)
	fmt.Printf("%s %s\n", colorize.Tag("[info]"), colorize.Header("ELF64/x86-64"))
	fmt.Printf("  %s %s\n", colorize.Key("path:"), colorize.String(path))
	fmt.Printf("  %s %s %s\n", colorize.Key("entry:"),
		colorize.Address(fmt.Sprintf("0x%x", summary.Entry)),
		colorize.HexBytes(leHexBytes(summary.Entry)))
	fmt.Printf("  %s %d\n", colorize.Key("PT_LOAD segments:"), summary.LoadSegments)
	fmt.Printf("  %s %d %s\n", colorize.Key("dynamic symbols:"), summary.DynSymCount,
		colorize.Comment("// advisory: no section headers, counted until the scratch image ran dry"))
	for _, name := range summary.SampleSymbols {
		fmt.Printf("    %s\n", colorize.FuncName(name))
	}
	fmt.Println(rule)
	return nil
}

// leHexBytes renders v's low 8 bytes little-endian, the order they
// actually sit in on disk, as a hexdump-style byte sequence.
func leHexBytes(v uint64) string {
	buf := make([]byte, 0, 24)
	for i := 0; i < 8; i++ {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = fmt.Appendf(buf, "%02x", byte(v>>(8*i)))
	}
	return string(buf)
}
