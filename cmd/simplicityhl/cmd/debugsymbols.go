package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var debugSymbolsArguments string

var debugSymbolsCmd = &cobra.Command{
	Use:   "debug-symbols [file]",
	Short: "List every tracked assert!/panic!/unwrap/dbg! call site",
	Long: `Check and instantiate a SimplicityHL program, then list every tracked
call site's Commitment Merkle Root alongside its source text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDebugSymbols,
}

func init() {
	rootCmd.AddCommand(debugSymbolsCmd)
	debugSymbolsCmd.Flags().StringVarP(&debugSymbolsArguments, "arguments", "a", "", "path to a JSON arguments file (default: .simplicityhl.yaml's arguments_file)")
}

func runDebugSymbols(_ *cobra.Command, args []string) error {
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

	argPath := defaultPath(debugSymbolsArguments, cfg.ArgumentsFile)
	arguments, err := loadArgumentValues(argPath, tmpl.Parameters())
	if err != nil {
		return err
	}

	compiled, err := tmpl.Instantiate(arguments, simplicityhl.WithDebugSymbols())
	if err != nil {
		return err
	}

	if traceID {
		fmt.Fprintf(os.Stdout, "compile-id: %s\n", compiled.CompileID())
	}
	printDebugSymbols(os.Stdout, compiled.DebugSymbols())
	return nil
}
