package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/internal/parse"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse SimplicityHL source and list its top-level items",
	Long: `Parse SimplicityHL source into a parse tree without running the type
checker, and list the name and kind of every top-level item found. Parse
errors are reported without stopping at the first one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	text, _, err := readSource(args)
	if err != nil {
		return err
	}

	cfg := loadProjectConfig()
	useColor := colorEnabled(cfg)

	p := parse.New(text)
	tree := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(useColor))
		}
		return fmt.Errorf("failed with %d parse error(s)", len(errs))
	}

	for _, item := range tree.Items {
		fmt.Fprintf(os.Stdout, "%s %s\n", itemKindString(item.Kind), item.Name)
	}
	return nil
}

func itemKindString(k parse.ItemKind) string {
	switch k {
	case parse.ItemTypeAlias:
		return "type"
	case parse.ItemFunction:
		return "fn"
	case parse.ItemModule:
		return "mod"
	}
	return "?"
}
