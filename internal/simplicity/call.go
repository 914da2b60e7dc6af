package simplicity

import (
	"fmt"

	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/jet"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// lowerCall dispatches on call.Name.Kind and retargets the result to ty,
// the call's own checked result type: most branches already build exactly
// that type, but TypeCast in particular only relabels its operand's node,
// so this keeps every branch's caller-visible Target consistent without
// each one repeating the relabel.
func (lw *Lowerer) lowerCall(e *env, call *ast.Call, ty types.ResolvedType) (*Node, error) {
	n, err := lw.lowerCallRaw(e, call, ty)
	if err != nil {
		return nil, err
	}
	return retarget(n, ty), nil
}

func (lw *Lowerer) lowerCallRaw(e *env, call *ast.Call, ty types.ResolvedType) (*Node, error) {
	switch call.Name.Kind {
	case ast.CallJet:
		return lw.lowerJetCall(e, call)
	case ast.CallUnwrapLeft:
		return lw.lowerUnwrapSide(e, call, true)
	case ast.CallUnwrapRight:
		return lw.lowerUnwrapSide(e, call, false)
	case ast.CallIsNone:
		return lw.lowerIsNone(e, call)
	case ast.CallUnwrap:
		return lw.lowerUnwrap(e, call)
	case ast.CallAssert:
		return lw.lowerAssert(e, call)
	case ast.CallPanic:
		return failNode(e.ty(), ty, call.Name.CMR), nil
	case ast.CallDebug:
		return lw.lowerExpr(e, call.Args[0])
	case ast.CallTypeCast:
		return lw.lowerTypeCast(e, call)
	case ast.CallCustom:
		return lw.lowerCustomCall(e, call)
	case ast.CallFold:
		return lw.lowerFold(e, call)
	case ast.CallArrayFold:
		return lw.lowerArrayFold(e, call)
	case ast.CallForWhile:
		return lw.lowerForWhile(e, call)
	}
	return nil, fmt.Errorf("simplicity: cannot lower call kind %v", call.Name.Kind)
}

// lowerJetCall packs the call's arguments into the jet's single source
// type (a right-associated product chain for arity > 1, matching
// jetArgTypes's flat unpacking in package ast) and composes with the jet
// primitive itself, wrapping the result in a CMR-tagged assert so a jet
// failure resolves back to this call site the same way assert/unwrap do.
func (lw *Lowerer) lowerJetCall(e *env, call *ast.Call) (*Node, error) {
	d, ok := jet.Lookup(call.Name.JetName)
	if !ok {
		return nil, fmt.Errorf("simplicity: unknown jet %q", call.Name.JetName)
	}
	j := jetNode(d)
	var composed *Node
	if d.Arity == 0 {
		composed = comp(unitNode(e.ty()), j)
	} else {
		args := make([]*Node, len(call.Args))
		for i, a := range call.Args {
			n, err := lw.lowerExpr(e, a)
			if err != nil {
				return nil, err
			}
			args[i] = n
		}
		packed := chainProduct(args)
		composed = comp(packed, j)
	}
	return assertlTake(composed.Source, composed, call.Name.CMR), nil
}

// lowerUnwrapSide implements CallName::UnwrapLeft/UnwrapRight:
// unwrap_left(e) on e : Either(expected, other) takes the live Left
// payload and asserts Right is unreachable, and symmetrically for
// unwrap_right.
func (lw *Lowerer) lowerUnwrapSide(e *env, call *ast.Call, isLeft bool) (*Node, error) {
	arg, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	envTy := e.ty()
	paired := pair(arg, idenNode(envTy))
	var liveTy types.ResolvedType
	if isLeft {
		liveTy = call.Args[0].Ty.EitherLeft()
	} else {
		liveTy = call.Args[0].Ty.EitherRight()
	}
	liveArm := &Node{Comb: CombTake, Source: types.Tuple(liveTy, envTy), Target: liveTy, Child0: idenNode(liveTy)}
	if isLeft {
		return comp(paired, assertlTake(paired.Target, liveArm, call.Name.CMR)), nil
	}
	return comp(paired, assertrDrop(paired.Target, liveArm, call.Name.CMR)), nil
}

// lowerUnwrap implements CallName::Unwrap: unwrap(opt : Option(T)) -> T,
// failing on None.
func (lw *Lowerer) lowerUnwrap(e *env, call *ast.Call) (*Node, error) {
	arg, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	envTy := e.ty()
	elemTy := call.Args[0].Ty.OptionElem()
	paired := pair(arg, idenNode(envTy))
	noneArm := failNode(types.Tuple(types.Unit(), envTy), elemTy, call.Name.CMR)
	someArm := &Node{Comb: CombTake, Source: types.Tuple(elemTy, envTy), Target: elemTy, Child0: idenNode(elemTy)}
	cs := caseNode(noneArm, someArm, paired.Target)
	return comp(paired, cs), nil
}

// lowerIsNone implements CallName::IsNone: is_none(opt) -> bool. Bool's
// sum encoding is false=Left(unit), true=Right(unit) (types.encodeInto
// tags Left with a 0 bit), so a None input (the sum's Left case) yields
// true and a Some input yields false.
func (lw *Lowerer) lowerIsNone(e *env, call *ast.Call) (*Node, error) {
	arg, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	envTy := e.ty()
	elemTy := call.Name.SomeTy
	paired := pair(arg, idenNode(envTy))
	boolTy := types.Boolean()
	noneArm := injRightInto(unitNode(types.Tuple(types.Unit(), envTy)), boolTy)
	someArm := injLeftInto(unitNode(types.Tuple(elemTy, envTy)), boolTy)
	cs := caseNode(noneArm, someArm, paired.Target)
	return comp(paired, cs), nil
}

// lowerAssert implements CallName::Assert: assert(cond) -> () fails when
// cond is false, using the same false=Left, true=Right
// convention as lowerIsNone.
func (lw *Lowerer) lowerAssert(e *env, call *ast.Call) (*Node, error) {
	cond, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	envTy := e.ty()
	paired := pair(cond, idenNode(envTy))
	trueArm := unitNode(types.Tuple(types.Unit(), envTy))
	return comp(paired, assertrDrop(paired.Target, trueArm, call.Name.CMR)), nil
}

func (lw *Lowerer) lowerTypeCast(e *env, call *ast.Call) (*Node, error) {
	n, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (lw *Lowerer) lowerCustomCall(e *env, call *ast.Call) (*Node, error) {
	args := make([]*Node, len(call.Args))
	for i, a := range call.Args {
		n, err := lw.lowerExpr(e, a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	if len(args) == 0 {
		body, err := lw.lowerFunctionBody(call.Name.Function)
		if err != nil {
			return nil, err
		}
		return comp(unitNode(e.ty()), body), nil
	}
	return lw.callFunction(call.Name.Function, args)
}
