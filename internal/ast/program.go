// Package ast builds the typed abstract syntax tree from a parse.Program:
// it resolves type aliases, tracks lexical scope for variables, checks
// parameter/witness type consistency, and runs a bidirectional type
// checker in a single interleaved pass, producing the Program this
// package defines.
package ast

import (
	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// Program is the fully resolved, type-checked AST.
type Program struct {
	Main         Expression
	Parameters   map[string]types.ResolvedType
	WitnessTypes map[string]types.ResolvedType
	Tracker      *tracker.CallTracker
}

// Function is a custom function definition. Bodies are shared by pointer
// across every call-site that inlines them; Go's garbage collector is a sufficient stand-in for the
// refcounting the original Rust implementation uses.
type Function struct {
	Name   string
	Params []Param
	Ret    types.ResolvedType
	Body   Expression
}

type Param struct {
	Name string
	Ty   types.ResolvedType
}

// Expression is {inner, ty, span}.
type Expression struct {
	Single *SingleExpression
	Block  []Statement
	Tail   *Expression
	Ty     types.ResolvedType
	Span   lexer.Span
}

// Statement is a component of a block; both cases return unit.
type Statement struct {
	Pattern Pattern
	Expr    Expression
	Span    lexer.Span
}

// SingleExpression carries one SingleExpressionInner case.
type SingleExpression struct {
	Kind  SingleKind
	Value types.Value  // SingleConstant
	Name  string       // SingleWitness, SingleParameter, SingleVariable
	Inner *Expression  // SingleParenthesized
	Left  *Expression  // SingleEither left payload
	Right *Expression  // SingleEither right payload
	Some  *Expression  // SingleOption Some payload (nil means None)
	Elems []Expression // SingleTuple, SingleArray, SingleList
	Call  *Call
	Match *Match
	Ty    types.ResolvedType
	Span  lexer.Span
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
	SingleEither
	SingleOption
	SingleCall
	SingleMatch
)

// Call is {name, args, span}.
type Call struct {
	Name CallName
	Args []Expression
	Span lexer.Span
}

// CallName mirrors the parse tree's CallName grammar with resolved payloads.
type CallName struct {
	Kind       CallKind
	JetName    string
	JetArity   int
	RightTy    types.ResolvedType // UnwrapLeft
	LeftTy     types.ResolvedType // UnwrapRight
	SomeTy     types.ResolvedType // IsNone
	FromTy     types.ResolvedType // TypeCast
	Function   *Function          // Custom, Fold, ArrayFold, ForWhile
	ListBound  int                // Fold
	ArraySize  int                // ArrayFold
	CMR        tracker.CMR        // zero value if this call-site is not tracked
	Tracked    bool
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

// Match is a two-armed match expression.
type Match struct {
	Scrutinee Expression
	LeftPat   Pattern
	LeftBody  Expression
	RightPat  Pattern
	RightBody Expression
	Span      lexer.Span
}

// Pattern is a resolved binding pattern.
type Pattern struct {
	Kind  PatternKind
	Name  string
	Ty    types.ResolvedType
	Elems []Pattern
	Span  lexer.Span
}

type PatternKind int

const (
	PatternWildcard PatternKind = iota
	PatternIdentifier
	PatternTuple
	PatternTypedVariable
)
