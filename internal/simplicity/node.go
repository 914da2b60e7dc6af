// Package simplicity lowers the typed AST of package ast into a Simplicity
// combinator graph: the node tree built here carries a fully-known type
// on every vertex, since the front end already resolved every
// expression's type during analysis — there is no separate unification
// pass the way a from-scratch Simplicity type-inference context would
// need one.
package simplicity

import (
	"fmt"
	"strings"

	"github.com/elements-project/simplicityhl-go/internal/jet"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// Combinator names one vertex kind of the Simplicity core language.
type Combinator int

const (
	CombUnit Combinator = iota
	CombIden
	CombInjL
	CombInjR
	CombTake
	CombDrop
	CombComp
	CombPair
	CombCase
	CombAssertL
	CombAssertR
	CombWitness
	CombScribe
	CombFail
	CombJet
)

func (c Combinator) String() string {
	switch c {
	case CombUnit:
		return "unit"
	case CombIden:
		return "iden"
	case CombInjL:
		return "injl"
	case CombInjR:
		return "injr"
	case CombTake:
		return "take"
	case CombDrop:
		return "drop"
	case CombComp:
		return "comp"
	case CombPair:
		return "pair"
	case CombCase:
		return "case"
	case CombAssertL:
		return "assertl"
	case CombAssertR:
		return "assertr"
	case CombWitness:
		return "witness"
	case CombScribe:
		return "scribe"
	case CombFail:
		return "fail"
	case CombJet:
		return "jet"
	}
	return "?"
}

// Node is one vertex of a construct-phase Simplicity graph. Exactly the
// fields relevant to Comb are meaningful; Source and Target are always
// populated.
type Node struct {
	Comb   Combinator
	Source types.ResolvedType
	Target types.ResolvedType

	Child0 *Node // Take/Drop/InjL/InjR operand; Comp/Pair/Case left branch; AssertL/AssertR live branch
	Child1 *Node // Comp/Pair/Case right branch

	WitnessName string
	ScribeValue types.Value
	FailCMR     tracker.CMR // CombFail, and the synthetic fail branch of AssertL/AssertR
	Jet         *jet.Descriptor
}

// Dump renders the graph rooted at n as an indented text tree: one line
// per vertex naming its combinator and source/target types, children
// indented beneath their parent. It is deterministic across runs of the
// same program, making it suitable for snapshot comparison.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dumpInto(&sb, 0)
	return sb.String()
}

func (n *Node) dumpInto(sb *strings.Builder, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%s : %s -> %s", n.Comb, n.Source, n.Target)
	switch n.Comb {
	case CombWitness:
		fmt.Fprintf(sb, " %q", n.WitnessName)
	case CombScribe:
		fmt.Fprintf(sb, " %s", n.ScribeValue.Ty)
	case CombFail, CombAssertL, CombAssertR:
		fmt.Fprintf(sb, " %s", n.FailCMR)
	case CombJet:
		fmt.Fprintf(sb, " %s", n.Jet.Name)
	}
	sb.WriteString("\n")
	n.Child0.dumpInto(sb, depth+1)
	n.Child1.dumpInto(sb, depth+1)
}

func unitNode(source types.ResolvedType) *Node {
	return &Node{Comb: CombUnit, Source: source, Target: types.Unit()}
}

func idenNode(ty types.ResolvedType) *Node {
	return &Node{Comb: CombIden, Source: ty, Target: ty}
}

func failNode(source, target types.ResolvedType, cmr tracker.CMR) *Node {
	return &Node{Comb: CombFail, Source: source, Target: target, FailCMR: cmr}
}

// structEq compares two ResolvedTypes the way the construct graph cares
// about: by bit-level shape, not by surface name. The lowering pass
// routinely relabels a value under a synthetic type that is isomorphic to,
// but not Equal() to, its surface type — e.g. a single array element typed
// as Array(E,1) where the source expression carries a bare E — so the
// graph's internal consistency checks compare Structural() forms, matching
// how Simplicity's bit machine treats these shapes as the same type.
func structEq(a, b types.ResolvedType) bool {
	return types.Structural(a).Equal(types.Structural(b))
}

// comp builds `comp a b`, requiring a.Target to be structurally equal to
// b.Source — the one fallible pairing operation
// (may fail on type mismatch)"). The checker never routes mismatched types
// here in practice, since every call site threads types straight off the
// typed AST; the panic exists as a sharp edge for a future contributor who
// breaks that invariant.
func comp(a, b *Node) *Node {
	if !structEq(a.Target, b.Source) {
		panic("simplicity: comp type mismatch: " + a.Target.String() + " != " + b.Source.String())
	}
	return &Node{Comb: CombComp, Source: a.Source, Target: b.Target, Child0: a, Child1: b}
}

// pair builds `pair a b` over two expressions that share a source type,
// producing a node whose target is their product.
func pair(a, b *Node) *Node {
	if !structEq(a.Source, b.Source) {
		panic("simplicity: pair source mismatch: " + a.Source.String() + " != " + b.Source.String())
	}
	return &Node{Comb: CombPair, Source: a.Source, Target: types.Tuple(a.Target, b.Target), Child0: a, Child1: b}
}

func injl(a *Node, rightTy types.ResolvedType) *Node {
	return &Node{Comb: CombInjL, Source: a.Source, Target: types.Either(a.Target, rightTy), Child0: a}
}

func injr(a *Node, leftTy types.ResolvedType) *Node {
	return &Node{Comb: CombInjR, Source: a.Source, Target: types.Either(leftTy, a.Target), Child0: a}
}

// injLeftInto and injRightInto build an injection whose Target is exactly
// the caller-supplied type rather than a freshly synthesized Either, for
// sites that need the node's nominal Target to read as the real surface
// type (e.g. Option(T), not Either(Unit, T)) even though both are
// structurally the same sum.
func injLeftInto(a *Node, target types.ResolvedType) *Node {
	return &Node{Comb: CombInjL, Source: a.Source, Target: target, Child0: a}
}

func injRightInto(a *Node, target types.ResolvedType) *Node {
	return &Node{Comb: CombInjR, Source: a.Source, Target: target, Child0: a}
}

// retarget relabels n under a structurally equivalent surface type,
// without touching the combinator it actually builds (see structEq).
func retarget(n *Node, target types.ResolvedType) *Node {
	cp := *n
	cp.Target = target
	return &cp
}

func caseNode(left, right *Node, source types.ResolvedType) *Node {
	if !structEq(left.Target, right.Target) {
		panic("simplicity: case arm target mismatch: " + left.Target.String() + " != " + right.Target.String())
	}
	return &Node{Comb: CombCase, Source: source, Target: left.Target, Child0: left, Child1: right}
}

// assertlTake builds `assertl (take live) fail(cmr)`: the left case arm
// runs live, the right case arm is an identifiable failure.
func assertlTake(source types.ResolvedType, live *Node, cmr tracker.CMR) *Node {
	return &Node{Comb: CombAssertL, Source: source, Target: live.Target, Child0: live, FailCMR: cmr}
}

// assertrDrop builds `assertr fail(cmr) (drop live)`: the mirror image of
// assertlTake, for call sites whose live arm sits on the right.
func assertrDrop(source types.ResolvedType, live *Node, cmr tracker.CMR) *Node {
	return &Node{Comb: CombAssertR, Source: source, Target: live.Target, Child0: live, FailCMR: cmr}
}

func scribe(source types.ResolvedType, v types.Value) *Node {
	return &Node{Comb: CombScribe, Source: source, Target: v.Ty, ScribeValue: v}
}

func witnessLeaf(source types.ResolvedType, name string, ty types.ResolvedType) *Node {
	return &Node{Comb: CombWitness, Source: source, Target: ty, WitnessName: name}
}

func jetNode(d jet.Descriptor) *Node {
	return &Node{Comb: CombJet, Source: d.Source, Target: d.Target, Jet: &d}
}
