package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var (
	satisfyArguments string
	satisfyWitness   string
)

var satisfyCmd = &cobra.Command{
	Use:   "satisfy [file]",
	Short: "Bind parameters and witnesses and produce a redeem graph",
	Long: `Check a SimplicityHL program, bind its param::name holes and wit::name
holes against JSON files, and produce a Simplicity redeem graph ready to
spend.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSatisfy,
}

func init() {
	rootCmd.AddCommand(satisfyCmd)
	satisfyCmd.Flags().StringVarP(&satisfyArguments, "arguments", "a", "", "path to a JSON arguments file (default: .simplicityhl.yaml's arguments_file)")
	satisfyCmd.Flags().StringVarP(&satisfyWitness, "witness", "w", "", "path to a JSON witness file (default: .simplicityhl.yaml's witness_file)")
}

func runSatisfy(_ *cobra.Command, args []string) error {
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

	argPath := defaultPath(satisfyArguments, cfg.ArgumentsFile)
	arguments, err := loadArgumentValues(argPath, tmpl.Parameters())
	if err != nil {
		return err
	}

	compiled, err := tmpl.Instantiate(arguments)
	if err != nil {
		return err
	}

	witPath := defaultPath(satisfyWitness, cfg.WitnessFile)
	if witPath == "" && len(tmpl.Witnesses()) != 0 {
		return fmt.Errorf("this program declares %d witness(es) but no witness file was given (use --witness)", len(tmpl.Witnesses()))
	}

	wValues, err := loadArgumentValues(witPath, tmpl.Witnesses())
	if err != nil {
		return err
	}

	satisfied, err := compiled.Satisfy(wValues)
	if err != nil {
		return err
	}

	if traceID {
		fmt.Fprintf(os.Stdout, "compile-id: %s\n", compiled.CompileID())
	}
	printGraphSummary(os.Stdout, "redeem graph", satisfied.Redeem())
	return nil
}
