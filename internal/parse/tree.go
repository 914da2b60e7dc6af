// Package parse defines the untyped parse tree produced by the
// SimplicityHL parser and the recursive-descent parser that
// builds it. Every node carries the exact [Lo, Hi) byte span it was
// parsed from, so later diagnostics can point at exact source text.
package parse

import "github.com/elements-project/simplicityhl-go/internal/lexer"

// Program is the root parse-tree node: a flat sequence of items.
type Program struct {
	Items []Item
}

// Item is a top-level declaration: a type alias, a function, or a module.
type Item struct {
	Kind     ItemKind
	Name     string
	Alias    Type       // ItemTypeAlias
	Params   []Param    // ItemFunction
	Ret      *Type      // ItemFunction, nil means unit
	Body     *Expression // ItemFunction
	Span     lexer.Span
}

type ItemKind int

const (
	ItemTypeAlias ItemKind = iota
	ItemFunction
	ItemModule
)

// Param is one function parameter.
type Param struct {
	Name string
	Type Type
	Span lexer.Span
}

// Type is a parse-tree type expression: either a reference to a named
// alias (resolved later) or a structural shape built from the grammar's
// type syntax.
type Type struct {
	Kind      TypeKind
	AliasName string
	Width     int    // TypeUInt
	Elems     []Type // TypeTuple, TypeArray/TypeList/TypeOption (len 1), TypeEither (len 2)
	ArrayN    int    // TypeArray
	ListBnd   int    // TypeList
	Opaque    string // TypeOpaque
	Span      lexer.Span
}

type TypeKind int

const (
	TypeAliasRef TypeKind = iota
	TypeUnit
	TypeBoolean
	TypeUInt
	TypeTuple
	TypeArray
	TypeList
	TypeEither
	TypeOption
	TypeOpaque
)

// Statement is a component of a block expression.
type Statement struct {
	Kind    StatementKind
	Pattern Pattern     // StatementAssignment
	Type    *Type       // StatementAssignment, optional annotation
	Expr    Expression
	Span    lexer.Span
}

type StatementKind int

const (
	StatementAssignment StatementKind = iota
	StatementExpr
)

// Expression is {inner, span}; ty is attached later by the resolver.
type Expression struct {
	Single *SingleExpression // mutually exclusive with Block*
	Block  []Statement
	Tail   *Expression
	Span   lexer.Span
}

// SingleExpression carries one SingleExpressionInner case.
type SingleExpression struct {
	Kind   SingleKind
	Lit    *Literal
	Name   string      // Witness, Parameter, Variable
	Inner  *Expression // Parenthesized, Left, Right, Some
	Elems  []Expression // Tuple, Array, List
	Call   *Call       // Call
	Match  *Match      // Match
	Span   lexer.Span
}

type SingleKind int

const (
	SingleConstant SingleKind = iota
	SingleWitness
	SingleParameter
	SingleVariable
	SingleParenthesized
	SingleTuple
	SingleArray
	SingleList
	SingleLeft
	SingleRight
	SingleSome
	SingleNone
	SingleCall
	SingleMatch
)

// Literal is an unevaluated constant: the resolver interprets it against
// an expected ResolvedType.
type Literal struct {
	Kind LiteralKind
	Text string // digits/bits/hex digits, without prefix
	Bool bool
}

type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralDecimal
	LiteralBinary
	LiteralHex
)

// Call is a call expression: a name plus arguments.
type Call struct {
	Name CallName
	Args []Expression
	Span lexer.Span
}

// CallName names a builtin call form and its unparsed arguments.
type CallName struct {
	Kind CallKind
	// payload, meaningful per Kind:
	JetName    string // Jet
	Type       *Type  // UnwrapLeft, UnwrapRight, IsNone, TypeCast
	Custom     string // Custom, Fold, ArrayFold, ForWhile (function name)
	Bound      int    // Fold (list bound)
	Size       int    // ArrayFold (array size)
	CounterLog int    // ForWhile (log2 of counter width, e.g. u8 -> 3)
}

type CallKind int

const (
	CallJet CallKind = iota
	CallUnwrapLeft
	CallUnwrapRight
	CallIsNone
	CallUnwrap
	CallAssert
	CallPanic
	CallDebug
	CallTypeCast
	CallCustom
	CallFold
	CallArrayFold
	CallForWhile
)

// Match is a two-armed match expression. The parser has no if/else
// form; match is the only branching expression.
type Match struct {
	Scrutinee  Expression
	LeftPat    Pattern
	LeftBody   Expression
	RightPat   Pattern
	RightBody  Expression
	Span       lexer.Span
}

// Pattern is a binding pattern.
type Pattern struct {
	Kind  PatternKind
	Name  string // Identifier, TypedVariable
	Elems []Pattern // Tuple
	Type  *Type     // TypedVariable
	Span  lexer.Span
}

type PatternKind int

const (
	PatternWildcard PatternKind = iota
	PatternIdentifier
	PatternTuple
	PatternTypedVariable
)
