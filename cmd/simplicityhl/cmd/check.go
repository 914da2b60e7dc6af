package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a SimplicityHL program",
	Long: `Parse and type-check a SimplicityHL program, reporting every lex, parse,
scope, and type error found. Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
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

	ok := "ok"
	if useColor {
		ok = color.GreenString("ok")
	}
	fmt.Fprintf(os.Stdout, "%s\n", ok)
	printTypeTable(os.Stdout, "parameters:", tmpl.Parameters(), useColor)
	printTypeTable(os.Stdout, "witnesses:", tmpl.Witnesses(), useColor)
	return nil
}
