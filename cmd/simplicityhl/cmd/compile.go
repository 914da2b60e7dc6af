package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/internal/config"
	"github.com/elements-project/simplicityhl-go/internal/jsonarg"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var (
	compileArguments    string
	compileDebugSymbols bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Bind parameters and lower a program to a commitment graph",
	Long: `Check a SimplicityHL program, bind its param::name holes against a JSON
arguments file, and lower it to a Simplicity commitment graph. Its
wit::name holes are left free; see the satisfy subcommand for those.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileArguments, "arguments", "a", "", "path to a JSON arguments file (default: .simplicityhl.yaml's arguments_file)")
	compileCmd.Flags().BoolVar(&compileDebugSymbols, "debug-symbols", false, "keep tracked assert!/panic!/unwrap/dbg! call sites reachable")
}

func runCompile(_ *cobra.Command, args []string) error {
	text, _, err := readSource(args)
	if err != nil {
		return err
	}

	cfg := loadProjectConfig()
	useColor := colorEnabled(cfg)

	tmpl, err := simplicityhl.NewTemplateProgram(text)
	if err != nil {
		return reportCompileError(err, useColor)
	}

	argPath := defaultPath(compileArguments, cfg.ArgumentsFile)
	arguments, err := loadArgumentValues(argPath, tmpl.Parameters())
	if err != nil {
		return err
	}

	var opts []simplicityhl.InstantiateOption
	if compileDebugSymbols || cfg.DebugSymbols != config.DebugSymbolsNone {
		opts = append(opts, simplicityhl.WithDebugSymbols())
	}

	compiled, err := tmpl.Instantiate(arguments, opts...)
	if err != nil {
		return err
	}

	if traceID {
		fmt.Fprintf(os.Stdout, "compile-id: %s\n", compiled.CompileID())
	}
	printGraphSummary(os.Stdout, "commitment graph", compiled.Commit())
	if compileDebugSymbols {
		printDebugSymbols(os.Stdout, compiled.DebugSymbols())
	}
	return nil
}

// loadArgumentValues reads and decodes a JSON arguments file against
// declared; an empty path is only valid when declared is empty.
func loadArgumentValues(path string, declared map[string]types.ResolvedType) (map[string]types.Value, error) {
	if path == "" {
		if len(declared) != 0 {
			return nil, fmt.Errorf("this program declares %d parameter(s) but no arguments file was given (use --arguments)", len(declared))
		}
		return map[string]types.Value{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading arguments file %s: %w", path, err)
	}
	return jsonarg.DecodeValues(string(data), declared)
}

func printDebugSymbols(w *os.File, symbols map[tracker.CMR]tracker.TrackedCall) {
	fmt.Fprintln(w, "debug symbols:")
	if len(symbols) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	cmrs := make([]tracker.CMR, 0, len(symbols))
	for cmr := range symbols {
		cmrs = append(cmrs, cmr)
	}
	sort.Slice(cmrs, func(i, j int) bool { return cmrs[i].String() < cmrs[j].String() })
	for _, cmr := range cmrs {
		call := symbols[cmr]
		fmt.Fprintf(w, "  %s  %s\n", cmr, call.Text)
	}
}
