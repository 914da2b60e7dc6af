package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	noColor bool
	traceID bool
)

var rootCmd = &cobra.Command{
	Use:   "simplicityhl",
	Short: "SimplicityHL compiler and satisfier",
	Long: `simplicityhl is a compiler for SimplicityHL, a high-level expression
language that lowers to Simplicity combinator graphs for Elements/Liquid
Bitcoin.

A program moves through three stages: check parses and type-checks source
into a template; compile binds its param::name holes and lowers it to a
commitment graph; satisfy binds its wit::name holes and produces a redeem
graph ready to spend.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")
	rootCmd.PersistentFlags().BoolVar(&traceID, "trace-id", false, "print the CompileID minted for this run, for correlating debug symbols across log sinks")
}
