package simplicity

import (
	"math/big"

	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// listSlotType returns the synthetic nested tuple/option type whose
// Structural shape exactly matches the left-balanced tree of Option(elemTy)
// slots backing a bounded list, letting ordinary take/drop selectors address one slot
// the way fieldSelector addresses a flat tuple field.
func listSlotType(elemTy types.ResolvedType, slots int) types.ResolvedType {
	if slots <= 1 {
		return types.Option(elemTy)
	}
	half := slots / 2
	return types.Tuple(listSlotType(elemTy, half), listSlotType(elemTy, slots-half))
}

// listSlotSelector builds the take/drop chain from a list's own type down
// to slot i's Option(elemTy) leaf, i in [0, slots).
func listSlotSelector(listTy, elemTy types.ResolvedType, slots, i int) *Node {
	if slots <= 1 {
		return idenNode(listTy)
	}
	half := slots / 2
	if i < half {
		leftTy := listSlotType(elemTy, half)
		inner := listSlotSelector(leftTy, elemTy, half, i)
		return &Node{Comb: CombTake, Source: listTy, Target: inner.Target, Child0: inner}
	}
	rightTy := listSlotType(elemTy, slots-half)
	inner := listSlotSelector(rightTy, elemTy, slots-half, i-half)
	return &Node{Comb: CombDrop, Source: listTy, Target: inner.Target, Child0: inner}
}

// buildListTree assembles slots leaves (each already Option(elemTy)) back
// into the same left-balanced tree listSlotType describes, the inverse of
// listSlotSelector, for constructing a list literal's value.
func buildListTree(leaves []*Node, slots int) *Node {
	if slots <= 1 {
		return leaves[0]
	}
	half := slots / 2
	left := buildListTree(leaves[:half], half)
	right := buildListTree(leaves[half:], slots-half)
	return pair(left, right)
}

// foldStep builds one leaf's contribution to a fold: given the raw
// Option(elemTy) slot value and the running accumulator, both already
// projected against the same source, thread them through fn, passing the
// accumulator through unchanged on an empty (None) slot.
func (lw *Lowerer) foldStep(slot, acc *Node, fn *ast.Function) (*Node, error) {
	accTy := acc.Target
	paired := pair(slot, acc)
	leftArm := &Node{Comb: CombDrop, Source: types.Tuple(types.Unit(), accTy), Target: accTy, Child0: idenNode(accTy)}
	rightArm, err := lw.lowerFunctionBody(fn)
	if err != nil {
		return nil, err
	}
	rightArm = retarget(rightArm, accTy)
	cs := caseNode(leftArm, rightArm, paired.Target)
	return comp(paired, cs), nil
}

// lowerFold implements fold::<f, N>(list, init): fold
// over every one of the list's bound-1 slots in order, left to right,
// passing the accumulator through unchanged on None slots. This compiler
// never runs a separate type-inference pass whose recursion depth the
// specification's balanced power-of-two step assembly exists to bound, so
// it composes the chain sequentially instead; see DESIGN.md.
func (lw *Lowerer) lowerFold(e *env, call *ast.Call) (*Node, error) {
	fn := call.Name.Function
	bound := call.Name.ListBound
	listNode, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	acc, err := lw.lowerExpr(e, call.Args[1])
	if err != nil {
		return nil, err
	}
	elemTy := fn.Params[0].Ty
	slots := bound - 1
	for i := 0; i < slots; i++ {
		sel := listSlotSelector(listNode.Target, elemTy, slots, i)
		slot := comp(listNode, sel)
		acc, err = lw.foldStep(slot, acc, fn)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// lowerArrayFold implements array_fold::<f, N>(arr, init): the same
// left-to-right accumulation as lowerFold, but every one of the array's N
// slots always holds a real element (no None padding), so each step
// inlines fn directly instead of casing on an Option tag.
func (lw *Lowerer) lowerArrayFold(e *env, call *ast.Call) (*Node, error) {
	fn := call.Name.Function
	n := call.Name.ArraySize
	arrNode, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	acc, err := lw.lowerExpr(e, call.Args[1])
	if err != nil {
		return nil, err
	}
	elemTy := fn.Params[0].Ty
	elems := make([]types.ResolvedType, n)
	for i := range elems {
		elems[i] = elemTy
	}
	for i := 0; i < n; i++ {
		var elemNode *Node
		if n == 1 {
			elemNode = arrNode
		} else {
			sel := fieldSelector(arrNode.Target, elems, i)
			elemNode = comp(arrNode, sel)
		}
		bodyNode, err := lw.callFunction(fn, []*Node{elemNode, acc})
		if err != nil {
			return nil, err
		}
		acc = bodyNode
	}
	return acc, nil
}

// lowerForWhile implements for_while::<f>(init, ctx):
// f : (A, C, u{W}) -> Either(B, A) is unrolled into 2^W copies, one per
// counter value, chained so that Left b short-circuits the remaining
// copies and Right a feeds the next counter's copy.
func (lw *Lowerer) lowerForWhile(e *env, call *ast.Call) (*Node, error) {
	fn := call.Name.Function
	counterTy := fn.Params[2].Ty
	width := 1 << uint(counterTy.Width())
	init, err := lw.lowerExpr(e, call.Args[0])
	if err != nil {
		return nil, err
	}
	ctx, err := lw.lowerExpr(e, call.Args[1])
	if err != nil {
		return nil, err
	}
	paired := pair(init, ctx)
	built, err := lw.forWhileChain(fn, counterTy, width, 0, paired.Target)
	if err != nil {
		return nil, err
	}
	return comp(paired, built), nil
}

// forWhileChain builds the combinator running copies k..width-1 of fn,
// source Tuple(A, C) -> Either(B, A).
func (lw *Lowerer) forWhileChain(fn *ast.Function, counterTy types.ResolvedType, width, k int, source types.ResolvedType) (*Node, error) {
	aTy := fn.Params[0].Ty
	cTy := fn.Params[1].Ty
	counter := scribe(source, types.UIntValue(counterWidth(counterTy), big.NewInt(int64(k))))
	accProj := &Node{Comb: CombTake, Source: source, Target: aTy, Child0: idenNode(aTy)}
	ctxProj := &Node{Comb: CombDrop, Source: source, Target: cTy, Child0: idenNode(cTy)}
	step, err := lw.callFunction(fn, []*Node{accProj, ctxProj, counter})
	if err != nil {
		return nil, err
	}
	if k == width-1 {
		return step, nil
	}
	eitherTy := step.Target
	bTy := eitherTy.EitherLeft()
	rest, err := lw.forWhileChain(fn, counterTy, width, k+1, source)
	if err != nil {
		return nil, err
	}
	leftArm := injLeftInto(&Node{Comb: CombTake, Source: types.Tuple(bTy, cTy), Target: bTy, Child0: idenNode(bTy)}, eitherTy)
	rightArm := rest
	stepPaired := pair(step, ctxProj)
	cs := caseNode(leftArm, rightArm, stepPaired.Target)
	return comp(stepPaired, cs), nil
}

func counterWidth(ty types.ResolvedType) types.UIntWidth { return ty.Width() }
