package lexer

import "testing"

func TestNextBasicTokens(t *testing.T) {
	src := `fn main() { let x: u32 = 32; assert!(jet::eq_32(x, 32)); }`
	l := New(src)
	toks := l.Tokenize()
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		t.Fatalf("expected token stream to end in EOF, got %v", toks)
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}
	want := []TokenType{FN, IDENT, LPAREN, RPAREN, LBRACE, LET, IDENT, COLON, IDENT, ASSIGN, INT_DEC, SEMI}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: want %v got %v (%q)", i, w, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestPrefixedNames(t *testing.T) {
	cases := []struct {
		src  string
		typ  TokenType
		name string
	}{
		{"wit::secret", WITNESS, "secret"},
		{"param::pubkey", PARAM, "pubkey"},
		{"jet::sha_256", JET, "sha_256"},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.Next()
		if tok.Type != c.typ || tok.Literal != c.name {
			t.Fatalf("%q: want (%v,%q) got (%v,%q)", c.src, c.typ, c.name, tok.Type, tok.Literal)
		}
	}
}

func TestTurbofish(t *testing.T) {
	l := New("unwrap_left::<u32>(e)")
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	found := false
	for _, tok := range toks {
		if tok.Type == TURBOFISH {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TURBOFISH token in %v", toks)
	}
}

func TestRadixLiterals(t *testing.T) {
	l := New("0b1010 0xBEEF 42")
	types := []TokenType{INT_BIN, INT_HEX, INT_DEC, EOF}
	for _, want := range types {
		tok := l.Next()
		if tok.Type != want {
			t.Fatalf("want %v got %v (%q)", want, tok.Type, tok.Literal)
		}
	}
}

func TestLineComments(t *testing.T) {
	l := New("// comment\nfn")
	tok := l.Next()
	if tok.Type != FN {
		t.Fatalf("expected FN after comment, got %v", tok.Type)
	}
}

func TestSpansAreByteAccurate(t *testing.T) {
	src := "  fn"
	l := New(src)
	tok := l.Next()
	if tok.Span.Lo != 2 || tok.Span.Hi != 4 {
		t.Fatalf("expected span [2,4), got %+v", tok.Span)
	}
	if tok.Span.Slice(src) != "fn" {
		t.Fatalf("slice mismatch: %q", tok.Span.Slice(src))
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.Next()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one lex error, got %d", len(l.Errors()))
	}
}

func TestLocate(t *testing.T) {
	src := "abc\ndef\nghi"
	pos := Locate(src, 5) // 'e'
	if pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("want line 2 col 2, got %+v", pos)
	}
}
