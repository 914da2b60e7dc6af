package simplicity

import (
	"fmt"

	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// Lowerer walks a type-checked Program and produces its construct-phase
// combinator graph. It is deliberately stateless across calls
// beyond the parameter substitutions supplied up front: every other piece
// of context (the current environment, the call tracker) is either
// threaded explicitly or read straight off the AST the checker already
// annotated.
type Lowerer struct {
	params map[string]types.Value
}

// LowerProgram builds main's combinator graph. params supplies the
// concrete value bound to every SingleParameter reference the program
// makes; a TemplateProgram with unresolved parameters never
// reaches this call.
func LowerProgram(prog *ast.Program, params map[string]types.Value) (*Node, error) {
	lw := &Lowerer{params: params}
	return lw.lowerExpr(newEnv(), prog.Main)
}

func (lw *Lowerer) lowerExpr(e *env, expr ast.Expression) (*Node, error) {
	if expr.Single != nil {
		return lw.lowerSingle(e, *expr.Single)
	}
	return lw.lowerBlock(e, expr.Block, expr.Tail)
}

// lowerBlock lowers a sequence of statements: each let statement extends
// the environment on the right (comp(pair(iden, val), rest)), and a
// tail-less block evaluates to unit.
func (lw *Lowerer) lowerBlock(e *env, stmts []ast.Statement, tail *ast.Expression) (*Node, error) {
	if len(stmts) == 0 {
		if tail != nil {
			return lw.lowerExpr(e, *tail)
		}
		return unitNode(e.ty()), nil
	}
	st := stmts[0]
	valNode, err := lw.lowerExpr(e, st.Expr)
	if err != nil {
		return nil, err
	}
	oldEnvTy := e.ty()
	mark := e.mark()
	elems := patternBindings(st.Pattern, st.Pattern.Ty)
	e.pushPattern(elems, st.Pattern.Ty, sideRight)
	rest, err := lw.lowerBlock(e, stmts[1:], tail)
	e.restore(mark)
	if err != nil {
		return nil, err
	}
	extend := pair(idenNode(oldEnvTy), retarget(valNode, st.Pattern.Ty))
	return comp(extend, rest), nil
}

func (lw *Lowerer) lowerSingle(e *env, s ast.SingleExpression) (*Node, error) {
	switch s.Kind {
	case ast.SingleConstant:
		return scribe(e.ty(), s.Value), nil
	case ast.SingleWitness:
		return witnessLeaf(e.ty(), s.Name, s.Ty), nil
	case ast.SingleParameter:
		v, ok := lw.params[s.Name]
		if !ok {
			return nil, fmt.Errorf("simplicity: no value supplied for parameter %q", s.Name)
		}
		return scribe(e.ty(), v), nil
	case ast.SingleVariable:
		n, ok := e.selector(s.Name)
		if !ok {
			return nil, fmt.Errorf("simplicity: variable %q not found while lowering (checker invariant broken)", s.Name)
		}
		return n, nil
	case ast.SingleParenthesized:
		return lw.lowerExpr(e, *s.Inner)
	case ast.SingleTuple, ast.SingleArray:
		return lw.lowerProductLiteral(e, s)
	case ast.SingleList:
		return lw.lowerListLiteral(e, s)
	case ast.SingleEither:
		return lw.lowerEither(e, s)
	case ast.SingleOption:
		return lw.lowerOption(e, s)
	case ast.SingleCall:
		return lw.lowerCall(e, s.Call, s.Ty)
	case ast.SingleMatch:
		return lw.lowerMatch(e, s.Match)
	}
	return nil, fmt.Errorf("simplicity: cannot lower expression kind %v", s.Kind)
}

// lowerProductLiteral implements both tuple and fixed-array literals: the
// right-associated product chain Structural builds for KindTuple/KindArray
// alike.
func (lw *Lowerer) lowerProductLiteral(e *env, s ast.SingleExpression) (*Node, error) {
	elems := make([]*Node, len(s.Elems))
	for i, el := range s.Elems {
		n, err := lw.lowerExpr(e, el)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	if len(elems) == 0 {
		return unitNode(e.ty()), nil
	}
	return retarget(chainProduct(elems), s.Ty), nil
}

// chainProduct right-associates nodes the way structuralProductChain
// right-associates types: pair(e0, pair(e1, ...)), the last element
// unwrapped rather than paired with a trailing unit.
func chainProduct(elems []*Node) *Node {
	if len(elems) == 1 {
		return elems[0]
	}
	return pair(elems[0], chainProduct(elems[1:]))
}

// lowerListLiteral builds a bounded list value as the left-balanced tree
// of Option(elemTy) slots: present elements first as Some, the remaining
// slots up to bound-1 as None.
func (lw *Lowerer) lowerListLiteral(e *env, s ast.SingleExpression) (*Node, error) {
	elemTy := s.Ty.ListElem()
	slots := s.Ty.ListBound() - 1
	leaves := make([]*Node, slots)
	for i := 0; i < slots; i++ {
		if i < len(s.Elems) {
			n, err := lw.lowerExpr(e, s.Elems[i])
			if err != nil {
				return nil, err
			}
			leaves[i] = someNode(n, types.Option(elemTy))
		} else {
			leaves[i] = noneNode(e.ty(), elemTy)
		}
	}
	return retarget(buildListTree(leaves, slots), s.Ty), nil
}

func (lw *Lowerer) lowerEither(e *env, s ast.SingleExpression) (*Node, error) {
	if s.Left != nil {
		n, err := lw.lowerExpr(e, *s.Left)
		if err != nil {
			return nil, err
		}
		return injLeftInto(n, s.Ty), nil
	}
	n, err := lw.lowerExpr(e, *s.Right)
	if err != nil {
		return nil, err
	}
	return injRightInto(n, s.Ty), nil
}

func (lw *Lowerer) lowerOption(e *env, s ast.SingleExpression) (*Node, error) {
	if s.Some == nil {
		return noneNode(e.ty(), s.Ty.OptionElem()), nil
	}
	n, err := lw.lowerExpr(e, *s.Some)
	if err != nil {
		return nil, err
	}
	return someNode(n, s.Ty), nil
}

// someNode and noneNode build Option values directly under their real
// Option(T) surface type (rather than a synthesized Either), matching
// Option's encoding of None as injl(unit) / Some as injr(payload) (spec
// §3; types.encodeInto agrees: false tag before the payload is None).
func someNode(inner *Node, ty types.ResolvedType) *Node {
	return injRightInto(inner, ty)
}

func noneNode(source types.ResolvedType, elemTy types.ResolvedType) *Node {
	return injLeftInto(unitNode(source), types.Option(elemTy))
}

// lowerFunctionBody lowers fn's body in total isolation from any calling
// context: SimplicityHL functions are not closures, so the
// body's only environment is its own flattened parameter tuple.
func (lw *Lowerer) lowerFunctionBody(fn *ast.Function) (*Node, error) {
	elems, paramTy := paramsAsPatternElems(fn.Params)
	fresh := newEnvWithBase(paramTy)
	fresh.bindBase(elems)
	return lw.lowerExpr(fresh, fn.Body)
}

// callFunction packs argNodes (all sharing one Source) into fn's parameter
// tuple and composes with its standalone body, inlining the call (spec
// §4.5: custom functions are always inlined, never a separate subgraph).
func (lw *Lowerer) callFunction(fn *ast.Function, argNodes []*Node) (*Node, error) {
	body, err := lw.lowerFunctionBody(fn)
	if err != nil {
		return nil, err
	}
	packed := chainProduct(argNodes)
	return comp(packed, body), nil
}

func (lw *Lowerer) lowerMatch(e *env, m *ast.Match) (*Node, error) {
	scrutinee, err := lw.lowerExpr(e, m.Scrutinee)
	if err != nil {
		return nil, err
	}
	oldEnvTy := e.ty()

	leftMark := e.mark()
	leftElems := patternBindings(m.LeftPat, m.LeftPat.Ty)
	e.pushPattern(leftElems, m.LeftPat.Ty, sideLeft)
	leftBody, err := lw.lowerExpr(e, m.LeftBody)
	e.restore(leftMark)
	if err != nil {
		return nil, err
	}

	rightMark := e.mark()
	rightElems := patternBindings(m.RightPat, m.RightPat.Ty)
	e.pushPattern(rightElems, m.RightPat.Ty, sideLeft)
	rightBody, err := lw.lowerExpr(e, m.RightBody)
	e.restore(rightMark)
	if err != nil {
		return nil, err
	}

	paired := pair(scrutinee, idenNode(oldEnvTy))
	cs := caseNode(leftBody, rightBody, paired.Target)
	return comp(paired, cs), nil
}
