package types

import (
	"fmt"
	"math/big"
)

// Value is a typed literal closed under the ResolvedType grammar.
// Exactly one field group is meaningful, selected by Ty.Kind().
type Value struct {
	Ty       ResolvedType
	UInt     *big.Int // KindUInt
	Boolean  bool     // KindBoolean
	Elems    []Value  // KindTuple, KindArray
	List     []Value  // KindList (len < Ty.ListBound())
	EitherL  *Value   // KindEither, left case (mutually exclusive with EitherR)
	EitherR  *Value
	OptSome  *Value // KindOption, Some case (nil means None)
	OpaqueBV *big.Int // KindOpaque, encoded as a big unsigned integer of opaqueBitWidth(Ty.Opaque()) bits
}

func UnitValue() Value    { return Value{Ty: Unit()} }
func BoolValue(b bool) Value { return Value{Ty: Boolean(), Boolean: b} }

func UIntValue(w UIntWidth, v *big.Int) Value {
	return Value{Ty: UInt(w), UInt: new(big.Int).Set(v)}
}

func TupleValue(elems ...Value) Value {
	tys := make([]ResolvedType, len(elems))
	for i, e := range elems {
		tys[i] = e.Ty
	}
	return Value{Ty: Tuple(tys...), Elems: elems}
}

func ArrayValue(elemTy ResolvedType, elems ...Value) Value {
	return Value{Ty: Array(elemTy, len(elems)), Elems: elems}
}

func ListValue(elemTy ResolvedType, bound int, elems ...Value) Value {
	return Value{Ty: List(elemTy, bound), List: elems}
}

func LeftValue(v Value, rightTy ResolvedType) Value {
	return Value{Ty: Either(v.Ty, rightTy), EitherL: &v}
}

func RightValue(leftTy ResolvedType, v Value) Value {
	return Value{Ty: Either(leftTy, v.Ty), EitherR: &v}
}

func SomeValue(v Value) Value {
	return Value{Ty: Option(v.Ty), OptSome: &v}
}

func NoneValue(elemTy ResolvedType) Value {
	return Value{Ty: Option(elemTy)}
}

// StructuralValue is the Simplicity bit-encoding of a Value: a binary tree
// of bits whose shape matches Structural(Ty). Bits are stored MSB-first
// within each leaf run, matching Simplicity's canonical bit-string order.
type StructuralValue struct {
	Bits []bool
}

func (s StructuralValue) String() string {
	b := make([]byte, len(s.Bits))
	for i, bit := range s.Bits {
		if bit {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Encode maps a Value to its StructuralValue bit-string. The mapping is
// total modulo Ty and is the inverse of Decode.
func Encode(v Value) StructuralValue {
	var bits []bool
	encodeInto(v, &bits)
	return StructuralValue{Bits: bits}
}

func encodeInto(v Value, out *[]bool) {
	switch v.Ty.Kind() {
	case KindUnit:
		// no bits
	case KindBoolean:
		*out = append(*out, v.Boolean)
	case KindUInt:
		appendUIntBits(out, v.UInt, int(v.Ty.Width()))
	case KindOpaque:
		bv := v.OpaqueBV
		if bv == nil {
			bv = big.NewInt(0)
		}
		appendUIntBits(out, bv, opaqueBitWidth(v.Ty.Opaque()))
	case KindTuple, KindArray:
		for _, e := range v.Elems {
			encodeInto(e, out)
		}
	case KindList:
		encodeListInto(v.Ty.ListElem(), v.Ty.ListBound()-1, v.List, out)
	case KindEither:
		if v.EitherL != nil {
			*out = append(*out, false)
			encodeInto(*v.EitherL, out)
		} else {
			*out = append(*out, true)
			encodeInto(*v.EitherR, out)
		}
	case KindOption:
		if v.OptSome == nil {
			*out = append(*out, false)
		} else {
			*out = append(*out, true)
			encodeInto(*v.OptSome, out)
		}
	}
}

func appendUIntBits(out *[]bool, v *big.Int, width int) {
	for i := width - 1; i >= 0; i-- {
		*out = append(*out, v.Bit(i) == 1)
	}
}

// encodeListInto lays the list out as the left-balanced binary tree of
// Option slots a bounded list occupies: present elements first, trailing
// slots padded with None up to `slots` total leaves.
func encodeListInto(elemTy ResolvedType, slots int, elems []Value, out *[]bool) {
	if slots <= 1 {
		if len(elems) > 0 {
			encodeInto(SomeValue(elems[0]), out)
		} else {
			encodeInto(NoneValue(elemTy), out)
		}
		return
	}
	half := slots / 2
	leftCount := half
	if leftCount > len(elems) {
		leftCount = len(elems)
	}
	var rightElems []Value
	if len(elems) > half {
		rightElems = elems[half:]
	}
	leftElems := elems[:leftCount]
	encodeListInto(elemTy, half, leftElems, out)
	encodeListInto(elemTy, slots-half, rightElems, out)
}

// Decode reconstructs a Value of type ty from a StructuralValue, the
// inverse of Encode. It panics if the bit-string's length does not match
// the structural shape of ty; callers are expected to have validated
// shape compatibility already (e.g. via the witness binder).
func Decode(ty ResolvedType, sv StructuralValue) Value {
	pos := 0
	v := decodeFrom(ty, sv.Bits, &pos)
	return v
}

func decodeFrom(ty ResolvedType, bits []bool, pos *int) Value {
	switch ty.Kind() {
	case KindUnit:
		return UnitValue()
	case KindBoolean:
		b := bits[*pos]
		*pos++
		return BoolValue(b)
	case KindUInt:
		return Value{Ty: ty, UInt: readUIntBits(bits, pos, int(ty.Width()))}
	case KindOpaque:
		return Value{Ty: ty, OpaqueBV: readUIntBits(bits, pos, opaqueBitWidth(ty.Opaque()))}
	case KindTuple:
		elemsTy := ty.TupleElems()
		elems := make([]Value, len(elemsTy))
		for i, et := range elemsTy {
			elems[i] = decodeFrom(et, bits, pos)
		}
		return Value{Ty: ty, Elems: elems}
	case KindArray:
		n := ty.ArrayLen()
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			elems[i] = decodeFrom(ty.ArrayElem(), bits, pos)
		}
		return Value{Ty: ty, Elems: elems}
	case KindList:
		var out []Value
		decodeListFrom(ty.ListElem(), ty.ListBound()-1, bits, pos, &out)
		return Value{Ty: ty, List: out}
	case KindEither:
		tag := bits[*pos]
		*pos++
		if !tag {
			l := decodeFrom(ty.EitherLeft(), bits, pos)
			return Value{Ty: ty, EitherL: &l}
		}
		r := decodeFrom(ty.EitherRight(), bits, pos)
		return Value{Ty: ty, EitherR: &r}
	case KindOption:
		tag := bits[*pos]
		*pos++
		if !tag {
			return Value{Ty: ty}
		}
		s := decodeFrom(ty.OptionElem(), bits, pos)
		return Value{Ty: ty, OptSome: &s}
	}
	panic(fmt.Sprintf("types: cannot decode kind %v", ty.Kind()))
}

func readUIntBits(bits []bool, pos *int, width int) *big.Int {
	v := new(big.Int)
	for i := 0; i < width; i++ {
		v.Lsh(v, 1)
		if bits[*pos] {
			v.SetBit(v, 0, 1)
		}
		*pos++
	}
	return v
}

func decodeListFrom(elemTy ResolvedType, slots int, bits []bool, pos *int, out *[]Value) {
	if slots <= 1 {
		opt := decodeFrom(Option(elemTy), bits, pos)
		if opt.OptSome != nil {
			*out = append(*out, *opt.OptSome)
		}
		return
	}
	half := slots / 2
	decodeListFrom(elemTy, half, bits, pos, out)
	decodeListFrom(elemTy, slots-half, bits, pos, out)
}
