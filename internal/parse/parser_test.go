package parse

import "testing"

func TestParseSimpleMain(t *testing.T) {
	src := `fn main() { let x: u32 = 32; assert(jet::eq_32(x, 32)); }`
	p := New(src)
	prog := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(prog.Items) != 1 || prog.Items[0].Kind != ItemFunction || prog.Items[0].Name != "main" {
		t.Fatalf("expected single main function, got %+v", prog.Items)
	}
	body := prog.Items[0].Body
	if len(body.Block) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Block))
	}
}

func TestParseTypeAliasAndCast(t *testing.T) {
	src := `
type TwoU16 = (u16, u16);
fn main() {
    let beefbabe: TwoU16 = (0xbeef, 0xbabe);
    let merged: u32 = beefbabe as u32;
}
`
	p := New(src)
	prog := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if prog.Items[0].Kind != ItemTypeAlias || prog.Items[0].Name != "TwoU16" {
		t.Fatalf("expected type alias item first, got %+v", prog.Items[0])
	}
}

func TestParseMatchAndFold(t *testing.T) {
	src := `
fn add(e: u8, acc: u8) -> u8 { acc }
fn main() {
    let total: u8 = fold::<add, 8>([1, 2, 3], 0);
    let r: Either<u8, u8> = Left(1);
    match r {
        l: u8 => assert(true),
        r: u8 => panic(),
    };
}
`
	p := New(src)
	prog := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	if len(prog.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(prog.Items))
	}
}

func TestParseForWhileTurbofish(t *testing.T) {
	src := `
fn step(acc: u8, ctx: u8, i: u8) -> Either<u8, u8> { Left(acc) }
fn main() {
    let r: Either<u8, u8> = for_while::<step>(0, 0);
}
`
	p := New(src)
	p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}

func TestParseErrorRecovery(t *testing.T) {
	src := `fn main() { let x: = 1; }`
	p := New(src)
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for missing type")
	}
}
