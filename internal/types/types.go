// Package types implements the SimplicityHL type algebra: ResolvedType
// (the closed algebraic type grammar), StructuralType (the Simplicity-level
// shape used for cast equivalence), and the Value/StructuralValue pair that
// closes the type grammar with a total bit-encoding.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the cases of ResolvedType.
type Kind int

const (
	KindUnit Kind = iota
	KindBoolean
	KindUInt
	KindTuple
	KindArray
	KindList
	KindEither
	KindOption
	KindOpaque
)

// Opaque names the Simplicity-specific opaque types. Each one has a
// fixed underlying structural shape assigned in structural.go.
type Opaque string

const (
	Scalar         Opaque = "Scalar"
	Fe             Opaque = "Fe"
	Ge             Opaque = "Ge"
	Gej            Opaque = "Gej"
	Point          Opaque = "Point"
	Pubkey         Opaque = "Pubkey"
	Signature      Opaque = "Signature"
	Message64      Opaque = "Message64"
	Ctx8           Opaque = "Ctx8"
	Asset1         Opaque = "Asset1"
	Amount1        Opaque = "Amount1"
	Nonce          Opaque = "Nonce"
	Outpoint       Opaque = "Outpoint"
	Lock           Opaque = "Lock"
	Height         Opaque = "Height"
	Time           Opaque = "Time"
	Distance       Opaque = "Distance"
	Duration       Opaque = "Duration"
	ExplicitAsset  Opaque = "ExplicitAsset"
	ExplicitAmount Opaque = "ExplicitAmount"
	ExplicitNonce  Opaque = "ExplicitNonce"
	TokenAmount1   Opaque = "TokenAmount1"
)

// UIntWidth is one of the legal unsigned-integer bit widths.
type UIntWidth int

const (
	U1 UIntWidth = 1 << iota
	U2
	U4
	U8
	U16
	U32
	U64
	U128
	U256
)

func (w UIntWidth) valid() bool {
	switch w {
	case U1, U2, U4, U8, U16, U32, U64, U128, U256:
		return true
	}
	return false
}

// ResolvedType is a closed algebraic type: every alias has already been
// resolved to its underlying shape.
type ResolvedType struct {
	kind    Kind
	width   UIntWidth     // KindUInt
	inner   []ResolvedType // KindTuple (n-ary), KindArray/KindList/KindOption (len 1), KindEither (len 2)
	arrayN  int            // KindArray
	listBnd int            // KindList: power-of-two bound, length < bound
	opaque  Opaque         // KindOpaque
}

func Unit() ResolvedType    { return ResolvedType{kind: KindUnit} }
func Boolean() ResolvedType { return ResolvedType{kind: KindBoolean} }

func UInt(w UIntWidth) ResolvedType {
	if !w.valid() {
		panic(fmt.Sprintf("types: invalid uint width %d", w))
	}
	return ResolvedType{kind: KindUInt, width: w}
}

func Tuple(elems ...ResolvedType) ResolvedType {
	if len(elems) == 0 {
		return Unit()
	}
	return ResolvedType{kind: KindTuple, inner: append([]ResolvedType(nil), elems...)}
}

func Array(elem ResolvedType, n int) ResolvedType {
	if n < 0 {
		panic("types: negative array length")
	}
	return ResolvedType{kind: KindArray, inner: []ResolvedType{elem}, arrayN: n}
}

// List returns a bounded-list type. bound must be a power of two >= 2; the
// actual runtime length is always strictly less than bound.
func List(elem ResolvedType, bound int) ResolvedType {
	if bound < 2 || bound&(bound-1) != 0 {
		panic(fmt.Sprintf("types: list bound %d is not a power of two >= 2", bound))
	}
	return ResolvedType{kind: KindList, inner: []ResolvedType{elem}, listBnd: bound}
}

func Either(left, right ResolvedType) ResolvedType {
	return ResolvedType{kind: KindEither, inner: []ResolvedType{left, right}}
}

func Option(elem ResolvedType) ResolvedType {
	return ResolvedType{kind: KindOption, inner: []ResolvedType{elem}}
}

func OpaqueType(o Opaque) ResolvedType {
	return ResolvedType{kind: KindOpaque, opaque: o}
}

func (t ResolvedType) Kind() Kind       { return t.kind }
func (t ResolvedType) Width() UIntWidth { return t.width }
func (t ResolvedType) Opaque() Opaque   { return t.opaque }
func (t ResolvedType) ArrayLen() int    { return t.arrayN }
func (t ResolvedType) ListBound() int   { return t.listBnd }

func (t ResolvedType) TupleElems() []ResolvedType {
	if t.kind != KindTuple {
		return nil
	}
	return t.inner
}

func (t ResolvedType) ArrayElem() ResolvedType {
	return t.inner[0]
}

func (t ResolvedType) ListElem() ResolvedType {
	return t.inner[0]
}

func (t ResolvedType) OptionElem() ResolvedType {
	return t.inner[0]
}

func (t ResolvedType) EitherLeft() ResolvedType  { return t.inner[0] }
func (t ResolvedType) EitherRight() ResolvedType { return t.inner[1] }

// Equal compares two ResolvedTypes structurally: exact equality, no
// subtyping.
func (t ResolvedType) Equal(other ResolvedType) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindUnit, KindBoolean:
		return true
	case KindUInt:
		return t.width == other.width
	case KindOpaque:
		return t.opaque == other.opaque
	case KindTuple:
		if len(t.inner) != len(other.inner) {
			return false
		}
		for i := range t.inner {
			if !t.inner[i].Equal(other.inner[i]) {
				return false
			}
		}
		return true
	case KindArray:
		return t.arrayN == other.arrayN && t.inner[0].Equal(other.inner[0])
	case KindList:
		return t.listBnd == other.listBnd && t.inner[0].Equal(other.inner[0])
	case KindEither:
		return t.inner[0].Equal(other.inner[0]) && t.inner[1].Equal(other.inner[1])
	case KindOption:
		return t.inner[0].Equal(other.inner[0])
	}
	return false
}

// String renders the type in SimplicityHL surface syntax.
func (t ResolvedType) String() string {
	switch t.kind {
	case KindUnit:
		return "()"
	case KindBoolean:
		return "bool"
	case KindUInt:
		return fmt.Sprintf("u%d", t.width)
	case KindTuple:
		parts := make([]string, len(t.inner))
		for i, e := range t.inner {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.inner[0], t.arrayN)
	case KindList:
		return fmt.Sprintf("List<%s, %d>", t.inner[0], t.listBnd)
	case KindEither:
		return fmt.Sprintf("Either<%s, %s>", t.inner[0], t.inner[1])
	case KindOption:
		return fmt.Sprintf("Option<%s>", t.inner[0])
	case KindOpaque:
		return string(t.opaque)
	}
	return "<invalid>"
}

// AsOptionEquivalent returns the Either(1, T) encoding of an Option(T), as
// used when match lowers an option scrutinee.
func (t ResolvedType) AsOptionEquivalent() (ResolvedType, bool) {
	if t.kind != KindOption {
		return ResolvedType{}, false
	}
	return Either(Unit(), t.inner[0]), true
}
