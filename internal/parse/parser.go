package parse

import (
	"strconv"
	"strings"

	"github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/lexer"
)

// Parser turns a SimplicityHL token stream into a Program parse tree.
// It is a straightforward recursive-descent parser: the grammar has no
// operator precedence to speak of (the language is imperative calls and
// literals, not an expression-operator language), so there is no
// precedence table here.
type Parser struct {
	toks   []lexer.Token
	pos    int
	errs   []*errors.CompilerError
	source string
}

func New(source string) *Parser {
	l := lexer.New(source)
	toks := l.Tokenize()
	for _, e := range l.Errors() {
		_ = e
	}
	p := &Parser{toks: toks, source: source}
	for _, le := range l.Errors() {
		p.errs = append(p.errs, errors.Syntax(le.Span, "%s", le.Message).WithSource(source, ""))
	}
	return p
}

// Errors returns parse errors accumulated so far.
func (p *Parser) Errors() []*errors.CompilerError { return p.errs }

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t lexer.TokenType) bool { return p.cur().Type == t }

func (p *Parser) expect(t lexer.TokenType, what string) lexer.Token {
	if !p.at(t) {
		p.errs = append(p.errs, errors.Syntax(p.cur().Span, "expected %s, found %q", what, p.cur().Literal).WithSource(p.source, ""))
		return p.cur()
	}
	return p.advance()
}

// Parse parses a complete program: a sequence of items.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	for !p.at(lexer.EOF) {
		item := p.parseItem()
		if item != nil {
			prog.Items = append(prog.Items, *item)
		} else {
			p.advance() // avoid infinite loop on unrecoverable token
		}
	}
	return prog
}

func (p *Parser) parseItem() *Item {
	switch p.cur().Type {
	case lexer.TYPE:
		return p.parseTypeAlias()
	case lexer.FN:
		return p.parseFunction()
	case lexer.MOD:
		return p.parseModule()
	default:
		p.errs = append(p.errs, errors.Syntax(p.cur().Span, "expected item (type/fn/mod), found %q", p.cur().Literal).WithSource(p.source, ""))
		return nil
	}
}

func (p *Parser) parseTypeAlias() *Item {
	start := p.cur().Span
	p.advance() // "type"
	name := p.expect(lexer.IDENT, "identifier").Literal
	p.expect(lexer.ASSIGN, "'='")
	ty := p.parseType()
	semi := p.expect(lexer.SEMI, "';'")
	return &Item{Kind: ItemTypeAlias, Name: name, Alias: ty, Span: start.Join(semi.Span)}
}

func (p *Parser) parseModule() *Item {
	start := p.cur().Span
	p.advance() // "mod"
	name := p.expect(lexer.IDENT, "identifier").Literal
	// modules are ignored at main-program level; skip a
	// balanced brace block if present, else a semicolon declaration.
	if p.at(lexer.LBRACE) {
		p.skipBalanced(lexer.LBRACE, lexer.RBRACE)
	} else {
		p.expect(lexer.SEMI, "';'")
	}
	return &Item{Kind: ItemModule, Name: name, Span: start}
}

func (p *Parser) skipBalanced(open, close lexer.TokenType) {
	p.expect(open, "'{'")
	depth := 1
	for depth > 0 && !p.at(lexer.EOF) {
		switch p.cur().Type {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
	}
}

func (p *Parser) parseFunction() *Item {
	start := p.cur().Span
	p.advance() // "fn"
	name := p.expect(lexer.IDENT, "identifier").Literal
	p.expect(lexer.LPAREN, "'('")
	var params []Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		pstart := p.cur().Span
		pname := p.expect(lexer.IDENT, "parameter name").Literal
		p.expect(lexer.COLON, "':'")
		pty := p.parseType()
		params = append(params, Param{Name: pname, Type: pty, Span: pstart.Join(pty.Span)})
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN, "')'")
	var ret *Type
	if p.at(lexer.ARROW) {
		p.advance()
		t := p.parseType()
		ret = &t
	}
	body := p.parseBlock()
	return &Item{Kind: ItemFunction, Name: name, Params: params, Ret: ret, Body: body, Span: start.Join(body.Span)}
}

// parseType parses the grammar's type syntax: identifiers (alias refs),
// unit "()", tuples, arrays "[T; n]", List<T, n>, Either<A,B>, Option<T>,
// the built-in opaque type names (recognized here via isOpaqueName), and
// any other identifier as an alias reference.
func (p *Parser) parseType() Type {
	start := p.cur().Span
	switch p.cur().Type {
	case lexer.LPAREN:
		p.advance()
		if p.at(lexer.RPAREN) {
			end := p.advance().Span
			return Type{Kind: TypeUnit, Span: start.Join(end)}
		}
		var elems []Type
		elems = append(elems, p.parseType())
		for p.at(lexer.COMMA) {
			p.advance()
			if p.at(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseType())
		}
		end := p.expect(lexer.RPAREN, "')'").Span
		if len(elems) == 1 {
			return elems[0]
		}
		return Type{Kind: TypeTuple, Elems: elems, Span: start.Join(end)}
	case lexer.LBRACK:
		p.advance()
		elem := p.parseType()
		p.expect(lexer.SEMI, "';'")
		ntok := p.expect(lexer.INT_DEC, "array length")
		n, _ := strconv.Atoi(strings.ReplaceAll(ntok.Literal, "_", ""))
		end := p.expect(lexer.RBRACK, "']'").Span
		return Type{Kind: TypeArray, Elems: []Type{elem}, ArrayN: n, Span: start.Join(end)}
	case lexer.IDENT:
		name := p.cur().Literal
		switch name {
		case "bool":
			p.advance()
			return Type{Kind: TypeBoolean, Span: start}
		case "u1", "u2", "u4", "u8", "u16", "u32", "u64", "u128", "u256":
			p.advance()
			w, _ := strconv.Atoi(name[1:])
			return Type{Kind: TypeUInt, Width: w, Span: start}
		case "List":
			return p.parseGenericType(start, TypeList, true)
		case "Either":
			return p.parseGenericType(start, TypeEither, false)
		case "Option":
			return p.parseGenericType(start, TypeOption, false)
		default:
			if isOpaqueName(name) {
				p.advance()
				return Type{Kind: TypeOpaque, Opaque: name, Span: start}
			}
			p.advance()
			return Type{Kind: TypeAliasRef, AliasName: name, Span: start}
		}
	default:
		p.errs = append(p.errs, errors.Syntax(start, "expected a type, found %q", p.cur().Literal).WithSource(p.source, ""))
		p.advance()
		return Type{Kind: TypeUnit, Span: start}
	}
}

var opaqueNames = map[string]bool{
	"Scalar": true, "Fe": true, "Ge": true, "Gej": true, "Point": true,
	"Pubkey": true, "Signature": true, "Message64": true, "Ctx8": true,
	"Asset1": true, "Amount1": true, "Nonce": true, "Outpoint": true,
	"Lock": true, "Height": true, "Time": true, "Distance": true,
	"Duration": true, "ExplicitAsset": true, "ExplicitAmount": true,
	"ExplicitNonce": true, "TokenAmount1": true,
}

func isOpaqueName(name string) bool { return opaqueNames[name] }

// parseGenericType parses `Name<T, n>` (List has a trailing bound; Either
// has two type args; Option has one).
func (p *Parser) parseGenericType(start lexer.Span, kind TypeKind, hasBound bool) Type {
	p.advance() // name
	p.expect(lexer.LT, "'<'")
	first := p.parseType()
	elems := []Type{first}
	if kind == TypeEither {
		p.expect(lexer.COMMA, "','")
		elems = append(elems, p.parseType())
	}
	bound := 0
	if hasBound {
		p.expect(lexer.COMMA, "','")
		ntok := p.expect(lexer.INT_DEC, "bound")
		bound, _ = strconv.Atoi(strings.ReplaceAll(ntok.Literal, "_", ""))
	}
	end := p.expect(lexer.GT, "'>'").Span
	return Type{Kind: kind, Elems: elems, ListBnd: bound, Span: start.Join(end)}
}

// parseBlock parses `{ (stmt ";")* expr? }`.
func (p *Parser) parseBlock() *Expression {
	start := p.expect(lexer.LBRACE, "'{'").Span
	var stmts []Statement
	var tail *Expression
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if p.at(lexer.LET) {
			stmts = append(stmts, p.parseLetStatement())
			continue
		}
		expr := p.parseExpression()
		if p.at(lexer.SEMI) {
			semiSpan := p.advance().Span
			stmts = append(stmts, Statement{Kind: StatementExpr, Expr: expr, Span: expr.Span.Join(semiSpan)})
			continue
		}
		tail = &expr
		break
	}
	end := p.expect(lexer.RBRACE, "'}'").Span
	return &Expression{Block: stmts, Tail: tail, Span: start.Join(end)}
}

func (p *Parser) parseLetStatement() Statement {
	start := p.cur().Span
	p.advance() // "let"
	pat := p.parsePattern()
	var ty *Type
	if p.at(lexer.COLON) {
		p.advance()
		t := p.parseType()
		ty = &t
	}
	p.expect(lexer.ASSIGN, "'='")
	expr := p.parseExpression()
	semi := p.expect(lexer.SEMI, "';'")
	return Statement{Kind: StatementAssignment, Pattern: pat, Type: ty, Expr: expr, Span: start.Join(semi.Span)}
}

func (p *Parser) parsePattern() Pattern {
	start := p.cur().Span
	switch p.cur().Type {
	case lexer.WILDCARD:
		p.advance()
		return Pattern{Kind: PatternWildcard, Span: start}
	case lexer.LPAREN:
		p.advance()
		var elems []Pattern
		if !p.at(lexer.RPAREN) {
			elems = append(elems, p.parsePattern())
			for p.at(lexer.COMMA) {
				p.advance()
				if p.at(lexer.RPAREN) {
					break
				}
				elems = append(elems, p.parsePattern())
			}
		}
		end := p.expect(lexer.RPAREN, "')'").Span
		return Pattern{Kind: PatternTuple, Elems: elems, Span: start.Join(end)}
	case lexer.IDENT:
		name := p.advance().Literal
		if p.at(lexer.COLON) {
			p.advance()
			ty := p.parseType()
			return Pattern{Kind: PatternTypedVariable, Name: name, Type: &ty, Span: start.Join(ty.Span)}
		}
		return Pattern{Kind: PatternIdentifier, Name: name, Span: start}
	default:
		p.errs = append(p.errs, errors.Syntax(start, "expected a pattern, found %q", p.cur().Literal).WithSource(p.source, ""))
		p.advance()
		return Pattern{Kind: PatternWildcard, Span: start}
	}
}

// parseExpression parses either a block or a single expression.
func (p *Parser) parseExpression() Expression {
	if p.at(lexer.LBRACE) {
		blk := p.parseBlock()
		return *blk
	}
	single := p.parseSingle()
	expr := Expression{Single: &single, Span: single.Span}
	return p.parsePostfixCast(expr)
}

func (p *Parser) parseSingle() SingleExpression {
	start := p.cur().Span
	switch p.cur().Type {
	case lexer.TRUE, lexer.FALSE:
		b := p.advance()
		return SingleExpression{Kind: SingleConstant, Lit: &Literal{Kind: LiteralBool, Bool: b.Type == lexer.TRUE}, Span: b.Span}
	case lexer.INT_DEC:
		t := p.advance()
		return SingleExpression{Kind: SingleConstant, Lit: &Literal{Kind: LiteralDecimal, Text: t.Literal}, Span: t.Span}
	case lexer.INT_BIN:
		t := p.advance()
		return SingleExpression{Kind: SingleConstant, Lit: &Literal{Kind: LiteralBinary, Text: t.Literal}, Span: t.Span}
	case lexer.INT_HEX:
		t := p.advance()
		return SingleExpression{Kind: SingleConstant, Lit: &Literal{Kind: LiteralHex, Text: t.Literal}, Span: t.Span}
	case lexer.WITNESS:
		t := p.advance()
		return SingleExpression{Kind: SingleWitness, Name: t.Literal, Span: t.Span}
	case lexer.PARAM:
		t := p.advance()
		return SingleExpression{Kind: SingleParameter, Name: t.Literal, Span: t.Span}
	case lexer.LPAREN:
		return p.parseParenOrTuple(start)
	case lexer.LBRACK:
		return p.parseArray(start)
	case lexer.LEFT, lexer.RIGHT:
		return p.parseEither(start)
	case lexer.SOME:
		p.advance()
		p.expect(lexer.LPAREN, "'('")
		inner := p.parseExpression()
		end := p.expect(lexer.RPAREN, "')'").Span
		return SingleExpression{Kind: SingleSome, Inner: &inner, Span: start.Join(end)}
	case lexer.NONE:
		t := p.advance()
		return SingleExpression{Kind: SingleNone, Span: t.Span}
	case lexer.MATCH:
		return p.parseMatch(start)
	case lexer.IDENT, lexer.JET:
		return p.parseCallOrListOrVariable(start)
	default:
		p.errs = append(p.errs, errors.Syntax(start, "expected an expression, found %q", p.cur().Literal).WithSource(p.source, ""))
		p.advance()
		return SingleExpression{Kind: SingleConstant, Lit: &Literal{Kind: LiteralBool, Bool: false}, Span: start}
	}
}

func (p *Parser) parseParenOrTuple(start lexer.Span) SingleExpression {
	p.advance() // '('
	if p.at(lexer.RPAREN) {
		end := p.advance().Span
		return SingleExpression{Kind: SingleTuple, Elems: nil, Span: start.Join(end)}
	}
	first := p.parseExpression()
	if p.at(lexer.COMMA) {
		elems := []Expression{first}
		for p.at(lexer.COMMA) {
			p.advance()
			if p.at(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression())
		}
		end := p.expect(lexer.RPAREN, "')'").Span
		return SingleExpression{Kind: SingleTuple, Elems: elems, Span: start.Join(end)}
	}
	end := p.expect(lexer.RPAREN, "')'").Span
	return SingleExpression{Kind: SingleParenthesized, Inner: &first, Span: start.Join(end)}
}

func (p *Parser) parseArray(start lexer.Span) SingleExpression {
	p.advance() // '['
	var elems []Expression
	for !p.at(lexer.RBRACK) && !p.at(lexer.EOF) {
		elems = append(elems, p.parseExpression())
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(lexer.RBRACK, "']'").Span
	return SingleExpression{Kind: SingleArray, Elems: elems, Span: start.Join(end)}
}

func (p *Parser) parseEither(start lexer.Span) SingleExpression {
	isLeft := p.cur().Type == lexer.LEFT
	p.advance()
	p.expect(lexer.LPAREN, "'('")
	inner := p.parseExpression()
	end := p.expect(lexer.RPAREN, "')'").Span
	kind := SingleRight
	if isLeft {
		kind = SingleLeft
	}
	return SingleExpression{Kind: kind, Inner: &inner, Span: start.Join(end)}
}

func (p *Parser) parseMatch(start lexer.Span) SingleExpression {
	p.advance() // "match"
	scrutinee := p.parseExpression()
	p.expect(lexer.LBRACE, "'{'")
	leftPat, leftBody := p.parseMatchArm()
	p.expect(lexer.COMMA, "','")
	rightPat, rightBody := p.parseMatchArm()
	if p.at(lexer.COMMA) {
		p.advance()
	}
	end := p.expect(lexer.RBRACE, "'}'").Span
	m := &Match{
		Scrutinee: scrutinee,
		LeftPat:   leftPat, LeftBody: leftBody,
		RightPat: rightPat, RightBody: rightBody,
		Span: start.Join(end),
	}
	return SingleExpression{Kind: SingleMatch, Match: m, Span: m.Span}
}

func (p *Parser) parseMatchArm() (Pattern, Expression) {
	pat := p.parsePattern()
	p.expect(lexer.FATARROW, "'=>'")
	body := p.parseExpression()
	return pat, body
}

// parseCallOrListOrVariable disambiguates a leading identifier/jet name
// into one of: a bare variable reference, a `[T](args)` list literal (not
// applicable: lists use '[' already handled above), or a call expression,
// optionally with a turbofish generic argument list.
func (p *Parser) parseCallOrListOrVariable(start lexer.Span) SingleExpression {
	name := p.advance().Literal
	isJet := p.toks[p.pos-1].Type == lexer.JET

	callName := p.resolveCallNameHead(isJet, name)

	if p.at(lexer.TURBOFISH) {
		p.advance()
		p.parseTurbofishInto(&callName)
		p.expect(lexer.GT, "'>'")
	}

	if !p.at(lexer.LPAREN) {
		if isJet {
			p.errs = append(p.errs, errors.Syntax(start, "jet %q must be called", name).WithSource(p.source, ""))
		}
		return SingleExpression{Kind: SingleVariable, Name: name, Span: start}
	}
	p.advance() // '('
	var args []Expression
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpression())
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(lexer.RPAREN, "')'").Span
	call := &Call{Name: callName, Args: args, Span: start.Join(end)}
	return SingleExpression{Kind: SingleCall, Call: call, Span: call.Span}
}

func (p *Parser) resolveCallNameHead(isJet bool, name string) CallName {
	if isJet {
		return CallName{Kind: CallJet, JetName: name}
	}
	switch name {
	case "unwrap_left":
		return CallName{Kind: CallUnwrapLeft}
	case "unwrap_right":
		return CallName{Kind: CallUnwrapRight}
	case "is_none":
		return CallName{Kind: CallIsNone}
	case "unwrap":
		return CallName{Kind: CallUnwrap}
	case "assert":
		return CallName{Kind: CallAssert}
	case "panic":
		return CallName{Kind: CallPanic}
	case "dbg":
		return CallName{Kind: CallDebug}
	case "fold":
		return CallName{Kind: CallFold}
	case "array_fold":
		return CallName{Kind: CallArrayFold}
	case "for_while":
		return CallName{Kind: CallForWhile}
	default:
		return CallName{Kind: CallCustom, Custom: name}
	}
}

// parseTurbofishInto fills in the generic payload of callName: a type for
// unwrap_left/unwrap_right/is_none, a (function, bound) pair for
// fold/array_fold, or a function for for_while.
func (p *Parser) parseTurbofishInto(callName *CallName) {
	switch callName.Kind {
	case CallUnwrapLeft, CallUnwrapRight, CallIsNone:
		ty := p.parseType()
		callName.Type = &ty
	case CallFold:
		fn := p.expect(lexer.IDENT, "function name").Literal
		p.expect(lexer.COMMA, "','")
		ntok := p.expect(lexer.INT_DEC, "list bound")
		bound, _ := strconv.Atoi(strings.ReplaceAll(ntok.Literal, "_", ""))
		callName.Custom = fn
		callName.Bound = bound
	case CallArrayFold:
		fn := p.expect(lexer.IDENT, "function name").Literal
		p.expect(lexer.COMMA, "','")
		ntok := p.expect(lexer.INT_DEC, "array size")
		size, _ := strconv.Atoi(strings.ReplaceAll(ntok.Literal, "_", ""))
		callName.Custom = fn
		callName.Size = size
	case CallForWhile:
		fn := p.expect(lexer.IDENT, "function name").Literal
		callName.Custom = fn
	}
}

// parsePostfixCast wraps an already-parsed expression in a TypeCast call
// if followed by `as <type>`. Call sites that allow casts call this after
// parseExpression.
func (p *Parser) parsePostfixCast(e Expression) Expression {
	for p.at(lexer.AS) {
		start := e.Span
		p.advance()
		ty := p.parseType()
		call := &Call{Name: CallName{Kind: CallTypeCast, Type: &ty}, Args: []Expression{e}, Span: start.Join(ty.Span)}
		single := SingleExpression{Kind: SingleCall, Call: call, Span: call.Span}
		e = Expression{Single: &single, Span: call.Span}
	}
	return e
}
