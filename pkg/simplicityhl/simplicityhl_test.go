package simplicityhl

import (
	"math/big"
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/types"
)

func TestNewTemplateProgramRejectsParseErrors(t *testing.T) {
	_, err := NewTemplateProgram(`fn main( { }`)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("expected a *CompileError, got %T", err)
	}
}

func TestTemplateProgramParametersAndInstantiate(t *testing.T) {
	src := `fn main() { assert(jet::eq_32(param::idx, param::idx)); }`
	tmpl, err := NewTemplateProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := tmpl.Parameters()
	idxTy, ok := params["idx"]
	if !ok {
		t.Fatalf("expected a declared parameter named idx, got %v", params)
	}

	compiled, err := tmpl.Instantiate(map[string]types.Value{
		"idx": types.UIntValue(idxTy.Width(), big.NewInt(7)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !compiled.Commit().Target.Equal(types.Unit()) {
		t.Fatalf("expected a unit-typed commitment graph, got %s", compiled.Commit().Target)
	}
	if len(compiled.DebugSymbols()) != 0 {
		t.Fatalf("expected no debug symbols without WithDebugSymbols")
	}
}

func TestCompiledProgramCompileIDIsFreshPerInstantiate(t *testing.T) {
	src := `fn main() { assert(jet::eq_32(param::idx, param::idx)); }`
	tmpl, err := NewTemplateProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args := map[string]types.Value{"idx": types.UIntValue(tmpl.Parameters()["idx"].Width(), big.NewInt(7))}

	first, err := tmpl.Instantiate(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := tmpl.Instantiate(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CompileID() == "" {
		t.Fatalf("expected a non-empty CompileID")
	}
	if first.CompileID() == second.CompileID() {
		t.Fatalf("expected distinct CompileIDs across separate Instantiate calls")
	}
}

func TestTemplateProgramInstantiateRejectsMissingParameter(t *testing.T) {
	src := `fn main() { assert(jet::eq_32(param::idx, param::idx)); }`
	tmpl, err := NewTemplateProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tmpl.Instantiate(map[string]types.Value{}); err == nil {
		t.Fatalf("expected an error for a missing parameter value")
	}
}

func TestCompiledProgramSatisfyProducesRedeemGraph(t *testing.T) {
	src := `fn main() { let s: u256 = wit::secret; assert(jet::eq_32(param::idx, 0)); }`
	tmpl, err := NewTemplateProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idxTy := tmpl.Parameters()["idx"]
	compiled, err := tmpl.Instantiate(map[string]types.Value{
		"idx": types.UIntValue(idxTy.Width(), big.NewInt(0)),
	}, WithDebugSymbols())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	secretTy := tmpl.Witnesses()["secret"]
	satisfied, err := compiled.Satisfy(map[string]types.Value{
		"secret": types.UIntValue(secretTy.Width(), big.NewInt(42)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !satisfied.Redeem().Target.Equal(types.Unit()) {
		t.Fatalf("expected a unit-typed redeem graph, got %s", satisfied.Redeem().Target)
	}
}

func TestCompiledProgramSatisfyRejectsUnknownWitness(t *testing.T) {
	src := `fn main() { let s: u256 = wit::secret; assert(jet::eq_32(param::idx, 0)); }`
	tmpl, err := NewTemplateProgram(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idxTy := tmpl.Parameters()["idx"]
	compiled, err := tmpl.Instantiate(map[string]types.Value{
		"idx": types.UIntValue(idxTy.Width(), big.NewInt(0)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := compiled.Satisfy(map[string]types.Value{
		"secret":  types.UIntValue(256, big.NewInt(1)),
		"mystery": types.UIntValue(8, big.NewInt(1)),
	}); err == nil {
		t.Fatalf("expected an error for an undeclared witness")
	}
}
