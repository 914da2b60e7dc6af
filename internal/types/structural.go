package types

// StructuralType is the Simplicity-level shape of a ResolvedType: every
// type reduces to nested units, sums, and products. Two ResolvedTypes cast
// to one another iff their StructuralType is equal.
type StructuralType struct {
	// Exactly one of the following is meaningful, selected by tag.
	tag   structTag
	left  *StructuralType
	right *StructuralType
}

type structTag int

const (
	structUnit structTag = iota
	structSum
	structProduct
)

func structuralUnit() StructuralType { return StructuralType{tag: structUnit} }

func structuralSum(l, r StructuralType) StructuralType {
	return StructuralType{tag: structSum, left: &l, right: &r}
}

func structuralProduct(l, r StructuralType) StructuralType {
	return StructuralType{tag: structProduct, left: &l, right: &r}
}

// Equal compares two structural shapes.
func (s StructuralType) Equal(other StructuralType) bool {
	if s.tag != other.tag {
		return false
	}
	if s.tag == structUnit {
		return true
	}
	return s.left.Equal(*other.left) && s.right.Equal(*other.right)
}

// Structural computes the Simplicity-level shape of a ResolvedType.
//
//   - Unit                -> 1
//   - Boolean              -> 1 + 1
//   - UIntN                -> right-nested product of N/2-bit halves down to 1 + 1 leaves
//   - Tuple(T1..Tn)        -> right-associated product
//   - Array(T, n)          -> right-associated product of n copies of Structural(T)
//   - List(T, bound)       -> left-balanced tree of Option(T) slots, bound-1 leaves
//   - Either(A, B)         -> Structural(A) + Structural(B)
//   - Option(T)            -> 1 + Structural(T)
//   - Opaque               -> a fixed bit-width product tree (see opaqueWidth)
func Structural(t ResolvedType) StructuralType {
	switch t.Kind() {
	case KindUnit:
		return structuralUnit()
	case KindBoolean:
		return structuralSum(structuralUnit(), structuralUnit())
	case KindUInt:
		return structuralUIntBits(int(t.Width()))
	case KindTuple:
		elems := t.TupleElems()
		return structuralProductChain(elems)
	case KindArray:
		n := t.ArrayLen()
		elems := make([]ResolvedType, n)
		for i := range elems {
			elems[i] = t.ArrayElem()
		}
		return structuralProductChain(elems)
	case KindList:
		return structuralListTree(t.ListElem(), t.ListBound()-1)
	case KindEither:
		return structuralSum(Structural(t.EitherLeft()), Structural(t.EitherRight()))
	case KindOption:
		return structuralSum(structuralUnit(), Structural(t.OptionElem()))
	case KindOpaque:
		return structuralUIntBits(opaqueBitWidth(t.Opaque()))
	}
	return structuralUnit()
}

// structuralUIntBits builds the balanced power-of-two product tree for an
// N-bit word: u1 is 1+1, u(2n) is u(n) x u(n).
func structuralUIntBits(bits int) StructuralType {
	if bits <= 1 {
		return structuralSum(structuralUnit(), structuralUnit())
	}
	half := structuralUIntBits(bits / 2)
	return structuralProduct(half, half)
}

func structuralProductChain(elems []ResolvedType) StructuralType {
	if len(elems) == 0 {
		return structuralUnit()
	}
	if len(elems) == 1 {
		return Structural(elems[0])
	}
	return structuralProduct(Structural(elems[0]), structuralProductChain(elems[1:]))
}

// structuralListTree builds the depth-(log2(n+1)) balanced tree of Option
// slots backing a bounded list.
func structuralListTree(elem ResolvedType, slots int) StructuralType {
	if slots <= 1 {
		return structuralSum(structuralUnit(), Structural(elem))
	}
	half := slots / 2
	left := structuralListTree(elem, half)
	right := structuralListTree(elem, slots-half)
	return structuralProduct(left, right)
}

// opaqueBitWidth gives each Simplicity-specific opaque type its fixed
// underlying bit width, matching the widths documented for Elements/
// secp256k1 primitives (Pubkey/Point are 256 bits x-coordinate + parity
// handling is left to the jets, Signature is 512 bits, Message64 is a
// 64-byte hash already expressed as a ResolvedType elsewhere, etc).
func opaqueBitWidth(o Opaque) int {
	switch o {
	case Scalar, Fe, Point, Pubkey, Asset1, Nonce, Outpoint, ExplicitAsset, ExplicitNonce:
		return 256
	case Ge, Gej:
		return 512
	case Signature, Message64:
		return 512
	case Ctx8:
		return 8
	case Amount1, ExplicitAmount, TokenAmount1:
		return 64
	case Height, Time, Distance, Duration:
		return 32
	case Lock:
		return 32
	default:
		return 256
	}
}

// CastAllowed decides when `e as T` type-checks
// from S iff Structural(S) = Structural(T).
func CastAllowed(from, to ResolvedType) bool {
	return Structural(from).Equal(Structural(to))
}

// FixedBitWidth returns the Encode-length of every value of type t, and
// false if t's encoding length can vary by value (any type built from
// Either/Option/List, whose sum tags are not padded to a common width).
// It exists for literal decoding, which only ever targets the
// fixed-width product types: unit, bool, uintN, opaque words, tuples,
// and arrays of those.
func FixedBitWidth(t ResolvedType) (int, bool) {
	switch t.Kind() {
	case KindUnit:
		return 0, true
	case KindBoolean:
		return 1, true
	case KindUInt:
		return int(t.Width()), true
	case KindOpaque:
		return opaqueBitWidth(t.Opaque()), true
	case KindTuple:
		total := 0
		for _, e := range t.TupleElems() {
			w, ok := FixedBitWidth(e)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case KindArray:
		w, ok := FixedBitWidth(t.ArrayElem())
		if !ok {
			return 0, false
		}
		return w * t.ArrayLen(), true
	default:
		return 0, false
	}
}
