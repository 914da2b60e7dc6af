package ast

import (
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

func analyze(t *testing.T, src string) *Program {
	t.Helper()
	p := parse.New(src)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	prog, err := AnalyzeProgram(tree, src)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	return prog
}

func TestAnalyzeSimpleMain(t *testing.T) {
	src := `fn main() { let x: u32 = 32; assert(jet::eq_32(x, 32)); }`
	prog := analyze(t, src)
	if len(prog.Main.Block) != 2 {
		t.Fatalf("expected 2 statements in main, got %d", len(prog.Main.Block))
	}
	assertCall := prog.Main.Block[1].Expr.Single.Call
	if assertCall.Name.Kind != CallAssert {
		t.Fatalf("expected an assert call, got %v", assertCall.Name.Kind)
	}
}

func TestAnalyzeTypeAliasAndCast(t *testing.T) {
	src := `
type TwoU16 = (u16, u16);
fn main() {
    let beefbabe: TwoU16 = (0xbeef, 0xbabe);
    let merged: u32 = beefbabe as u32;
}
`
	prog := analyze(t, src)
	if len(prog.Main.Block) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Main.Block))
	}
	castCall := prog.Main.Block[1].Expr.Single.Call
	if castCall.Name.Kind != CallTypeCast {
		t.Fatalf("expected a cast call, got %v", castCall.Name.Kind)
	}
	if !castCall.Name.FromTy.Equal(types.Tuple(types.UInt(types.U16), types.UInt(types.U16))) {
		t.Fatalf("expected cast source type (u16, u16), got %s", castCall.Name.FromTy)
	}
}

func TestAnalyzeMatchOnEither(t *testing.T) {
	src := `
fn main() {
    let r: Either<u8, u8> = Left(1);
    match r {
        l: u8 => assert(true),
        r: u8 => panic(),
    };
}
`
	prog := analyze(t, src)
	matchCall := prog.Main.Block[1].Expr.Single.Match
	if matchCall == nil {
		t.Fatalf("expected a match expression")
	}
	if !matchCall.Scrutinee.Ty.Equal(types.Either(types.UInt(types.U8), types.UInt(types.U8))) {
		t.Fatalf("expected scrutinee type Either<u8, u8>, got %s", matchCall.Scrutinee.Ty)
	}
}

func TestAnalyzeFold(t *testing.T) {
	src := `
fn add(e: u8, acc: u8) -> u8 { acc }
fn main() {
    let total: u8 = fold::<add, 8>([1, 2, 3], 0);
}
`
	prog := analyze(t, src)
	foldCall := prog.Main.Block[0].Expr.Single.Call
	if foldCall.Name.Kind != CallFold {
		t.Fatalf("expected a fold call, got %v", foldCall.Name.Kind)
	}
	if foldCall.Name.ListBound != 8 {
		t.Fatalf("expected list bound 8, got %d", foldCall.Name.ListBound)
	}
	listArg := foldCall.Args[0]
	if listArg.Single.Kind != SingleList {
		t.Fatalf("expected the fold's first argument to resolve as a list literal")
	}
}

func TestAnalyzeForWhile(t *testing.T) {
	src := `
fn step(acc: u8, ctx: u8, i: u8) -> Either<u8, u8> { Left(acc) }
fn main() {
    let r: Either<u8, u8> = for_while::<step>(0, 0);
}
`
	prog := analyze(t, src)
	call := prog.Main.Block[0].Expr.Single.Call
	if call.Name.Kind != CallForWhile {
		t.Fatalf("expected a for_while call, got %v", call.Name.Kind)
	}
	if call.Name.Function == nil || call.Name.Function.Name != "step" {
		t.Fatalf("expected the for_while call to resolve its loop body to step, got %v", call.Name.Function)
	}
}

func TestAnalyzeJetCallIsTracked(t *testing.T) {
	src := `fn main() { let x: u32 = 32; assert(jet::eq_32(x, 32)); }`
	prog := analyze(t, src)
	assertCall := prog.Main.Block[1].Expr.Single.Call
	jetCall := assertCall.Args[0].Single.Call
	if jetCall.Name.Kind != CallJet {
		t.Fatalf("expected a jet call, got %v", jetCall.Name.Kind)
	}
	if !jetCall.Name.Tracked {
		t.Fatalf("expected the jet call site to be tracked")
	}
	if jetCall.Name.CMR == (tracker.CMR{}) {
		t.Fatalf("expected a non-zero CMR for the tracked jet call")
	}
}

func TestAnalyzeWitnessAndParameter(t *testing.T) {
	src := `fn main() { let s: u256 = wit::secret; assert(jet::eq_32(param::idx, 0)); }`
	prog := analyze(t, src)
	if len(prog.WitnessTypes) != 1 {
		t.Fatalf("expected exactly one witness, got %d", len(prog.WitnessTypes))
	}
	ty, ok := prog.WitnessTypes["secret"]
	if !ok || !ty.Equal(types.UInt(types.U256)) {
		t.Fatalf("expected witness 'secret' : u256, got %v ok=%v", ty, ok)
	}
	if len(prog.Parameters) != 1 {
		t.Fatalf("expected exactly one parameter, got %d", len(prog.Parameters))
	}
}

func TestAnalyzeWitnessOutsideMainRejected(t *testing.T) {
	src := `
fn helper() -> u8 { wit::oops }
fn main() { let x: u8 = helper(); }
`
	_, err := func() (*Program, error) {
		p := parse.New(src)
		tree := p.Parse()
		return AnalyzeProgram(tree, src)
	}()
	if err == nil {
		t.Fatalf("expected an error for a witness declared outside main")
	}
}

func TestAnalyzeMainMustReturnUnit(t *testing.T) {
	src := `fn main() -> u8 { 1 }`
	p := parse.New(src)
	tree := p.Parse()
	if _, err := AnalyzeProgram(tree, src); err == nil {
		t.Fatalf("expected MainNoOutput error")
	}
}

func TestAnalyzeArrayVsListDisambiguation(t *testing.T) {
	src := `
fn main() {
    let a: [u8; 3] = [1, 2, 3];
    let l: List<u8, 4> = [1, 2];
}
`
	prog := analyze(t, src)
	if prog.Main.Block[0].Expr.Single.Kind != SingleArray {
		t.Fatalf("expected the first literal to resolve as a fixed array")
	}
	if prog.Main.Block[1].Expr.Single.Kind != SingleList {
		t.Fatalf("expected the second literal to resolve as a bounded list")
	}
}
