package witness

import (
	"math/big"
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/simplicity"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

func TestResolveParametersOK(t *testing.T) {
	declared := map[string]types.ResolvedType{"idx": types.UInt(32)}
	supplied := map[string]types.Value{"idx": types.UIntValue(32, big.NewInt(7))}
	args, err := ResolveParameters(declared, supplied)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := args.Values()["idx"]
	if !ok {
		t.Fatalf("expected idx to be bound")
	}
	if v.UInt.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("expected 7, got %s", v.UInt)
	}
}

func TestResolveParametersMissing(t *testing.T) {
	declared := map[string]types.ResolvedType{"idx": types.UInt(32)}
	if _, err := ResolveParameters(declared, nil); err == nil {
		t.Fatalf("expected an error for a missing parameter value")
	}
}

func TestResolveParametersUnexpected(t *testing.T) {
	supplied := map[string]types.Value{"idx": types.UIntValue(32, big.NewInt(0))}
	if _, err := ResolveParameters(nil, supplied); err == nil {
		t.Fatalf("expected an error for an undeclared parameter value")
	}
}

func TestResolveParametersTypeMismatch(t *testing.T) {
	declared := map[string]types.ResolvedType{"idx": types.UInt(32)}
	supplied := map[string]types.Value{"idx": types.BoolValue(true)}
	if _, err := ResolveParameters(declared, supplied); err == nil {
		t.Fatalf("expected a structural type mismatch error")
	}
}

func TestSatisfyFillsWitnessLeaf(t *testing.T) {
	commit := &simplicity.Node{
		Comb:        simplicity.CombWitness,
		Source:      types.Unit(),
		Target:      types.UInt(8),
		WitnessName: "secret",
	}
	witnessTypes := map[string]types.ResolvedType{"secret": types.UInt(8)}
	values := map[string]types.Value{"secret": types.UIntValue(8, big.NewInt(42))}

	redeem, err := Satisfy(commit, witnessTypes, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeem.Comb != simplicity.CombScribe {
		t.Fatalf("expected the witness leaf to become a scribe, got %s", redeem.Comb)
	}
	if redeem.ScribeValue.UInt.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected 42, got %s", redeem.ScribeValue.UInt)
	}
	if commit.Comb != simplicity.CombWitness {
		t.Fatalf("Satisfy must not mutate its input graph")
	}
}

func TestSatisfyWalksNestedNodes(t *testing.T) {
	leaf := &simplicity.Node{Comb: simplicity.CombWitness, Source: types.Unit(), Target: types.UInt(8), WitnessName: "secret"}
	unit := &simplicity.Node{Comb: simplicity.CombUnit, Source: types.Unit(), Target: types.Unit()}
	commit := &simplicity.Node{Comb: simplicity.CombPair, Source: types.Unit(), Target: types.Tuple(types.UInt(8), types.Unit()), Child0: leaf, Child1: unit}

	redeem, err := Satisfy(commit, map[string]types.ResolvedType{"secret": types.UInt(8)}, map[string]types.Value{"secret": types.UIntValue(8, big.NewInt(1))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeem.Child0.Comb != simplicity.CombScribe {
		t.Fatalf("expected nested witness leaf to be filled")
	}
	if redeem.Child1.Comb != simplicity.CombUnit {
		t.Fatalf("expected sibling node to be preserved")
	}
}

func TestSatisfyMissingWitnessValue(t *testing.T) {
	commit := &simplicity.Node{Comb: simplicity.CombWitness, Source: types.Unit(), Target: types.UInt(8), WitnessName: "secret"}
	witnessTypes := map[string]types.ResolvedType{"secret": types.UInt(8)}
	if _, err := Satisfy(commit, witnessTypes, nil); err == nil {
		t.Fatalf("expected an error for a missing witness value")
	}
}
