package simplicity

import "github.com/elements-project/simplicityhl-go/internal/types"

// SelectorBuilder accumulates a sequence of first/second projections into a
// product type and materializes it as a take/drop/iden chain.
// Every selector this lowering pass builds targets the environment
// tuple's nested-pair shape, so the projections are always well-typed by
// construction: there is no fallible step here, unlike Comp.
type SelectorBuilder struct {
	steps []selStep
}

type selStep int

const (
	selTake selStep = iota
	selDrop
)

// NewSelectorBuilder starts an empty (identity) selector.
func NewSelectorBuilder() *SelectorBuilder { return &SelectorBuilder{} }

// Take appends a first-component projection.
func (b *SelectorBuilder) Take() *SelectorBuilder {
	b.steps = append(b.steps, selTake)
	return b
}

// Drop appends a second-component projection.
func (b *SelectorBuilder) Drop() *SelectorBuilder {
	b.steps = append(b.steps, selDrop)
	return b
}

// H materializes the accumulated path against a concrete product type,
// outermost-first: the first appended step is the outermost take/drop
// wrapping the chain, terminating in iden once every step is consumed.
func (b *SelectorBuilder) H(ty types.ResolvedType) *Node {
	return b.build(ty, 0)
}

func (b *SelectorBuilder) build(ty types.ResolvedType, i int) *Node {
	if i == len(b.steps) {
		return idenNode(ty)
	}
	elems := ty.TupleElems()
	first, second := elems[0], elems[1]
	switch b.steps[i] {
	case selTake:
		inner := b.build(first, i+1)
		return &Node{Comb: CombTake, Source: ty, Target: inner.Target, Child0: inner}
	default:
		inner := b.build(second, i+1)
		return &Node{Comb: CombDrop, Source: ty, Target: inner.Target, Child0: inner}
	}
}
