// Package witness binds concrete values against the named holes a typed
// program declares: a function's parameters, resolved once before
// lowering, and a program's witnesses, resolved once after the combinator
// graph has been built. Both follow the same pre-check (every declared
// name has exactly one supplied value, of the declared type) before doing
// anything with the values; the package is grounded on
// internal/ast/scope.go's InsertParameter/InsertWitness bookkeeping and on
// internal/simplicity/node.go's exported Node shape, which it walks
// directly rather than re-deriving.
package witness

import (
	"fmt"

	"github.com/elements-project/simplicityhl-go/internal/simplicity"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// Arguments is a validated Name->Value map, ready to substitute for every
// Parameter leaf a program's combinator graph contains. It is opaque on
// purpose: the only way to build one is ResolveParameters, so a graph
// built against it always has every parameter it needs.
type Arguments struct {
	values map[string]types.Value
}

// Values exposes the bound map for simplicity.LowerProgram, which accepts
// a plain map rather than importing this package back.
func (a Arguments) Values() map[string]types.Value { return a.values }

// ResolveParameters validates supplied against declared (a program's
// Parameters map) and wraps it as Arguments. Every declared name must
// have a supplied value of matching structural type; no extra names are
// allowed.
func ResolveParameters(declared map[string]types.ResolvedType, supplied map[string]types.Value) (Arguments, error) {
	values, err := bindValues(declared, supplied, "parameter")
	if err != nil {
		return Arguments{}, err
	}
	return Arguments{values: values}, nil
}

// Satisfy walks commit, a combinator graph whose CombWitness leaves are
// still named holes, and returns the redeem graph with each one replaced
// by a scribe of its bound value. witnessTypes is the program's
// WitnessTypes map; values must bind every name in it and no others.
// commit itself is left untouched; Satisfy returns a fresh tree.
func Satisfy(commit *simplicity.Node, witnessTypes map[string]types.ResolvedType, values map[string]types.Value) (*simplicity.Node, error) {
	bound, err := bindValues(witnessTypes, values, "witness")
	if err != nil {
		return nil, err
	}
	return fillWitnesses(commit, bound)
}

func bindValues(declared map[string]types.ResolvedType, supplied map[string]types.Value, kind string) (map[string]types.Value, error) {
	for name, ty := range declared {
		v, ok := supplied[name]
		if !ok {
			return nil, fmt.Errorf("witness: no value supplied for %s %q", kind, name)
		}
		if !types.Structural(ty).Equal(types.Structural(v.Ty)) {
			return nil, fmt.Errorf("witness: %s %q expects type %s, got %s", kind, name, ty, v.Ty)
		}
	}
	for name := range supplied {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("witness: value supplied for undeclared %s %q", kind, name)
		}
	}
	return supplied, nil
}

// fillWitnesses copies n, replacing every CombWitness leaf it reaches
// with a CombScribe of its bound value. values is assumed already
// validated by bindValues: every WitnessName it encounters is present.
func fillWitnesses(n *simplicity.Node, values map[string]types.Value) (*simplicity.Node, error) {
	if n == nil {
		return nil, nil
	}
	cp := *n
	if n.Comb == simplicity.CombWitness {
		v, ok := values[n.WitnessName]
		if !ok {
			return nil, fmt.Errorf("witness: no value bound for witness %q (checker invariant broken)", n.WitnessName)
		}
		cp.Comb = simplicity.CombScribe
		cp.ScribeValue = v
		cp.WitnessName = ""
		return &cp, nil
	}
	var err error
	if n.Child0 != nil {
		if cp.Child0, err = fillWitnesses(n.Child0, values); err != nil {
			return nil, err
		}
	}
	if n.Child1 != nil {
		if cp.Child1, err = fillWitnesses(n.Child1, values); err != nil {
			return nil, err
		}
	}
	return &cp, nil
}
