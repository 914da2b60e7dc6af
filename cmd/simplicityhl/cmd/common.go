package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/elements-project/simplicityhl-go/internal/config"
	"github.com/elements-project/simplicityhl-go/internal/simplicity"
	"github.com/elements-project/simplicityhl-go/internal/types"
	"github.com/elements-project/simplicityhl-go/pkg/simplicityhl"
)

// readSource loads program text from a file argument, or stdin when no
// argument is given.
func readSource(args []string) (text, name string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

// loadProjectConfig finds and parses .simplicityhl.yaml starting from the
// current directory, returning defaults (debug_symbols: summary) if none
// exists or it fails to load.
func loadProjectConfig() *config.Config {
	path, err := config.FindConfig(".")
	if err != nil || path == "" {
		return &config.Config{DebugSymbols: config.DebugSymbolsSummary}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return &config.Config{DebugSymbols: config.DebugSymbolsSummary}
	}
	return cfg
}

// colorEnabled resolves the effective colorization setting from the
// --no-color flag and the project config's color field.
func colorEnabled(cfg *config.Config) bool {
	if noColor {
		return false
	}
	if cfg.Color != nil {
		return *cfg.Color
	}
	return true
}

func reportCompileError(err error, useColor bool) error {
	var ce *simplicityhl.CompileError
	if as, ok := err.(*simplicityhl.CompileError); ok {
		ce = as
	}
	if ce == nil {
		return err
	}
	for _, d := range ce.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.Format(useColor))
	}
	return fmt.Errorf("failed with %d error(s)", len(ce.Diagnostics()))
}

func printTypeTable(w io.Writer, label string, decls map[string]types.ResolvedType, useColor bool) {
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)

	heading := label
	if useColor {
		heading = color.New(color.Bold).Sprint(label)
	}
	fmt.Fprintln(w, heading)
	if len(names) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, decls[name])
	}
}

func defaultPath(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

// graphSummary counts each combinator kind reachable from n, for a quick
// "did this look like I expected" sanity check without a full graph dump.
func graphSummary(n *simplicity.Node) map[string]int {
	counts := make(map[string]int)
	var walk func(*simplicity.Node)
	walk = func(n *simplicity.Node) {
		if n == nil {
			return
		}
		counts[n.Comb.String()]++
		walk(n.Child0)
		walk(n.Child1)
	}
	walk(n)
	return counts
}

func printGraphSummary(w io.Writer, label string, n *simplicity.Node) {
	fmt.Fprintf(w, "%s: source=%s target=%s\n", label, n.Source, n.Target)
	counts := graphSummary(n)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, counts[name])
	}
}
