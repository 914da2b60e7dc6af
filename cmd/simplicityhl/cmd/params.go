package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/internal/jsonarg"
	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var paramsWitness bool

var paramsCmd = &cobra.Command{
	Use:   "params [file]",
	Short: "Print a skeleton JSON arguments file for a program",
	Long: `Print a skeleton JSON document naming every param::name hole a program
declares, with its type and a zero-valued placeholder. Pass --witness to
emit a skeleton for the program's wit::name holes instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.Flags().BoolVar(&paramsWitness, "witness", false, "emit a witness skeleton instead of a parameters skeleton")
}

func runParams(_ *cobra.Command, args []string) error {
	text, _, err := readSource(args)
	if err != nil {
		return err
	}

	cfg := loadProjectConfig()
	tmpl, err := simplicityhl.NewTemplateProgram(text)
	if err != nil {
		return reportCompileError(err, colorEnabled(cfg))
	}

	declared := tmpl.Parameters()
	if paramsWitness {
		declared = tmpl.Witnesses()
	}

	doc, err := jsonarg.EmitSkeleton(declared)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, doc)
	return nil
}
