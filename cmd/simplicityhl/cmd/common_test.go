package cmd

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/elements-project/simplicityhl-go/internal/types"
)

// TestPrintTypeTableSnapshot pins the plain (non-colorized) rendering of
// a parameters/witnesses table, the golden output `check` and `repl`
// both print.
func TestPrintTypeTableSnapshot(t *testing.T) {
	decls := map[string]types.ResolvedType{
		"idx":    types.UInt(types.U32),
		"secret": types.UInt(types.U256),
	}
	var buf bytes.Buffer
	printTypeTable(&buf, "parameters:", decls, false)
	snaps.MatchSnapshot(t, buf.String())
}

func TestPrintTypeTableEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	printTypeTable(&buf, "witnesses:", map[string]types.ResolvedType{}, false)
	snaps.MatchSnapshot(t, buf.String())
}
