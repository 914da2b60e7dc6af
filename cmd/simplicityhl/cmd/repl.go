package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively check SimplicityHL programs",
	Long: `Start an interactive session: type a program across one or more lines
and submit it with a blank line to check it. :reset clears the buffer,
:quit exits.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(_ *cobra.Command, _ []string) error {
	cfg := loadProjectConfig()
	useColor := colorEnabled(cfg)

	green := fmt.Sprint
	red := fmt.Sprint
	if useColor {
		green = color.New(color.FgGreen).Sprint
		red = color.New(color.FgRed).Sprint
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".simplicityhl_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(os.Stdout, "simplicityhl repl — blank line checks the buffer, :reset clears it, :quit exits")

	var buf []string
	for {
		prompt := "> "
		if len(buf) > 0 {
			prompt = "... "
		}
		input, err := line.Prompt(prompt)
		if err == io.EOF || input == ":quit" || input == ":q" {
			fmt.Fprintln(os.Stdout, green("goodbye"))
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		line.AppendHistory(input)

		if strings.TrimSpace(input) == ":reset" {
			buf = nil
			continue
		}

		if strings.TrimSpace(input) == "" {
			if len(buf) == 0 {
				continue
			}
			src := strings.Join(buf, "\n")
			buf = nil

			tmpl, err := simplicityhl.NewTemplateProgram(src)
			if err != nil {
				if err := reportCompileError(err, useColor); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				continue
			}
			fmt.Fprintln(os.Stdout, green("ok"))
			printTypeTable(os.Stdout, "parameters:", tmpl.Parameters(), useColor)
			printTypeTable(os.Stdout, "witnesses:", tmpl.Witnesses(), useColor)
			continue
		}

		buf = append(buf, input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}
