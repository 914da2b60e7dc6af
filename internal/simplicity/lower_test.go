package simplicity

import (
	"math/big"
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

func lowerSource(t *testing.T, src string) *Node {
	t.Helper()
	p := parse.New(src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	prog, err := ast.AnalyzeProgram(tree, src)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	n, err := LowerProgram(prog, nil)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}
	return n
}

func TestLowerSimpleAssert(t *testing.T) {
	src := `fn main() { let x: u32 = 32; assert(jet::eq_32(x, 32)); }`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected main to produce unit, got %s", n.Target)
	}
	if !n.Source.Equal(types.Unit()) {
		t.Fatalf("expected main's source to be unit, got %s", n.Source)
	}
}

func TestLowerJetCallIsCMRTagged(t *testing.T) {
	src := `fn main() { let x: u32 = jet::bitwise_and_32(1, 2); assert(jet::eq_32(x, x)); }`
	p := parse.New(src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	prog, err := ast.AnalyzeProgram(tree, src)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	call := prog.Main.Block[0].Expr.Single.Call
	if call.Name.Kind != ast.CallJet || !call.Name.Tracked {
		t.Fatalf("expected a tracked jet call, got %v (tracked=%v)", call.Name.Kind, call.Name.Tracked)
	}

	lw := &Lowerer{}
	n, err := lw.lowerJetCall(newEnv(), call)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}
	if n.Comb != CombAssertL {
		t.Fatalf("expected the jet call to lower to an assertl wrapping its CMR, got comb %v", n.Comb)
	}
	if n.FailCMR != call.Name.CMR {
		t.Fatalf("expected the assertl's FailCMR to match the jet call's tracked CMR")
	}
}

func TestLowerTupleAndCast(t *testing.T) {
	src := `
type TwoU16 = (u16, u16);
fn main() {
    let beefbabe: TwoU16 = (0xbeef, 0xbabe);
    let merged: u32 = beefbabe as u32;
    assert(jet::eq_32(merged, merged));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerArrayAndListLiterals(t *testing.T) {
	src := `
fn main() {
    let a: [u8; 3] = [1, 2, 3];
    let l: List<u8, 4> = [1, 2];
    assert(jet::eq_8(2, 2));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerMatchOnEither(t *testing.T) {
	src := `
fn main() {
    let r: Either<u8, u8> = Left(1);
    let chosen: u8 = match r {
        l: u8 => l,
        r: u8 => r,
    };
    assert(jet::eq_8(chosen, 1));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerOptionUnwrap(t *testing.T) {
	src := `
fn main() {
    let o: Option<u8> = Some(7);
    let v: u8 = unwrap(o);
    assert(jet::eq_8(v, 7));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerCustomFunctionCall(t *testing.T) {
	src := `
fn double(x: u8) -> u8 { jet::bitwise_or_8(x, x) }
fn main() {
    let y: u8 = double(3);
    assert(jet::eq_8(y, y));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerFold(t *testing.T) {
	src := `
fn add(e: u8, acc: u8) -> u8 { jet::bitwise_or_8(e, acc) }
fn main() {
    let total: u8 = fold::<add, 8>([1, 2, 3], 0);
    assert(jet::eq_8(total, total));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerArrayFold(t *testing.T) {
	src := `
fn add(e: u8, acc: u8) -> u8 { jet::bitwise_or_8(e, acc) }
fn main() {
    let total: u8 = array_fold::<add, 3>([1, 2, 3], 0);
    assert(jet::eq_8(total, total));
}
`
	n := lowerSource(t, src)
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}

func TestLowerForWhile(t *testing.T) {
	src := `
fn step(acc: u8, ctx: u8, i: u2) -> Either<u8, u8> { Left(acc) }
fn main() {
    let r: Either<u8, u8> = for_while::<step>(0, 0);
}
`
	n := lowerSource(t, src)
	if n.Target.Kind() != types.KindUnit {
		t.Fatalf("expected main's result to be unit, got %s", n.Target)
	}
}

// TestLowerForWhileUnrollsTwoToTheWidthCopies drives for_while with a u1
// counter directly through lowerForWhile (rather than through a full
// program, whose main block always collapses to unit) and checks that the
// built graph contains 2^W nested copies of the loop body, not W: a u1
// counter must unroll into 2 copies, never 1.
func TestLowerForWhileUnrollsTwoToTheWidthCopies(t *testing.T) {
	src := `
fn step(acc: u8, ctx: u8, i: u1) -> Either<u8, u8> { Left(acc) }
fn main() {
    let r: Either<u8, u8> = for_while::<step>(0, 0);
}
`
	p := parse.New(src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	prog, err := ast.AnalyzeProgram(tree, src)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	call := prog.Main.Block[0].Expr.Single.Call

	lw := &Lowerer{}
	built, err := lw.lowerForWhile(newEnv(), call)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}
	// built is comp(pair(init, ctx), chain); the copies live in chain.
	if got, want := countForWhileCopies(built.Child1), 2; got != want {
		t.Fatalf("expected a u1 counter to unroll into %d copies, got %d", want, got)
	}
}

// countForWhileCopies counts the nested comp(pair, case(left, rest)) levels
// forWhileChain builds, one per unrolled copy of the loop body: each
// non-terminal copy composes into a case whose right arm is the next
// copy, and the terminal copy is the bare inlined call with no case arm.
func countForWhileCopies(n *Node) int {
	if n.Comb == CombComp && n.Child1 != nil && n.Child1.Comb == CombCase {
		return 1 + countForWhileCopies(n.Child1.Child1)
	}
	return 1
}

func TestLowerWitnessAndParameter(t *testing.T) {
	src := `fn main() { let s: u256 = wit::secret; assert(jet::eq_32(param::idx, 0)); }`
	p := parse.New(src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	prog, err := ast.AnalyzeProgram(tree, src)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	idxTy := prog.Parameters["idx"]
	params := map[string]types.Value{"idx": types.UIntValue(idxTy.Width(), big.NewInt(0))}
	n, err := LowerProgram(prog, params)
	if err != nil {
		t.Fatalf("unexpected lowering error: %v", err)
	}
	if !n.Target.Equal(types.Unit()) {
		t.Fatalf("expected unit result, got %s", n.Target)
	}
}
