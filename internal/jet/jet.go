// Package jet provides the jet name -> (source type, target type) table.
// The real jet table (~430 entries covering arithmetic, hashing, signature
// verification, and Elements transaction introspection) is data, not
// logic, and is out of scope for this front-end compiler. This package
// supplies a representative, structurally complete slice of that table —
// enough entries to exercise every lowering path the compiler needs to
// support (arity 0/1/2, scalar and tuple sources, scalar and sum targets).
package jet

import "github.com/elements-project/simplicityhl-go/internal/types"

// Descriptor is a jet's fixed Simplicity type signature.
type Descriptor struct {
	Name   string
	Source types.ResolvedType // the jet's single source type (a tuple if arity > 1)
	Target types.ResolvedType
	Arity  int
}

func tuple(tys ...types.ResolvedType) types.ResolvedType {
	if len(tys) == 0 {
		return types.Unit()
	}
	if len(tys) == 1 {
		return tys[0]
	}
	return types.Tuple(tys...)
}

// disallowed names unsafe direct primitives the analyzer rejects when
// called as a bare jet (callers use assert!, unwrap or bip_0340_verify
// instead).
var disallowed = map[string]bool{
	"verify":            true,
	"check_sig_verify":  true,
}

// Disallowed reports whether name is a jet that may never be called
// directly from SimplicityHL source.
func Disallowed(name string) bool { return disallowed[name] }

var table = buildTable()

// Lookup returns the descriptor for a jet by name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := table[name]
	return d, ok
}

// All returns every known jet descriptor, in no particular order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(table))
	for _, d := range table {
		out = append(out, d)
	}
	return out
}

func buildTable() map[string]Descriptor {
	u1 := types.UInt(types.U1)
	u8 := types.UInt(types.U8)
	u16 := types.UInt(types.U16)
	u32 := types.UInt(types.U32)
	u64 := types.UInt(types.U64)
	u128 := types.UInt(types.U128)
	u256 := types.UInt(types.U256)
	boolT := types.Boolean()

	m := map[string]Descriptor{}
	add := func(name string, src types.ResolvedType, tgt types.ResolvedType, arity int) {
		m[name] = Descriptor{Name: name, Source: src, Target: tgt, Arity: arity}
	}

	// Arithmetic, comparison and bitwise jets, one family per width:
	// add/subtract target Either(w, w), multiply targets (w, w), and
	// complement is the only arity-1 entry.
	for _, w := range []struct {
		name string
		ty   types.ResolvedType
	}{
		{"8", u8}, {"16", u16}, {"32", u32}, {"64", u64}, {"128", u128}, {"256", u256},
	} {
		add("add_"+w.name, tuple(w.ty, w.ty), types.Either(w.ty, w.ty), 2)
		add("subtract_"+w.name, tuple(w.ty, w.ty), types.Either(w.ty, w.ty), 2)
		add("multiply_"+w.name, tuple(w.ty, w.ty), tuple(w.ty, w.ty), 2)
		add("eq_"+w.name, tuple(w.ty, w.ty), boolT, 2)
		add("lt_"+w.name, tuple(w.ty, w.ty), boolT, 2)
		add("le_"+w.name, tuple(w.ty, w.ty), boolT, 2)
		add("bitwise_and_"+w.name, tuple(w.ty, w.ty), w.ty, 2)
		add("bitwise_or_"+w.name, tuple(w.ty, w.ty), w.ty, 2)
		add("bitwise_xor_"+w.name, tuple(w.ty, w.ty), w.ty, 2)
		add("complement_"+w.name, w.ty, w.ty, 1)
		add("shift_left_"+w.name, tuple(w.ty, u8), w.ty, 2)
		add("shift_right_"+w.name, tuple(w.ty, u8), w.ty, 2)
	}

	// Hashing.
	ctx8 := types.OpaqueType(types.Ctx8)
	add("sha_256_ctx_8_init", types.Unit(), ctx8, 0)
	add("sha_256_ctx_8_add_32", tuple(ctx8, u256), ctx8, 2)
	add("sha_256_ctx_8_finalize", ctx8, u256, 1)
	add("sha_256", u256, u256, 1)

	// secp256k1 signature verification. bip_0340_verify, like
	// check_sig_verify, targets unit (it asserts rather than returning a
	// result); only "check_sig_verify" is disallowed as a direct primitive.
	pubkey := types.OpaqueType(types.Pubkey)
	sig := types.OpaqueType(types.Signature)
	msg := types.OpaqueType(types.Message64)
	add("bip_0340_verify", tuple(tuple(pubkey, msg), sig), types.Unit(), 2)
	add("check_sig_verify", tuple(tuple(pubkey, msg), sig), types.Unit(), 2)
	add("verify", boolT, types.Unit(), 1)

	// Elements transaction introspection (a small representative slice).
	asset := types.OpaqueType(types.Asset1)
	amount := types.OpaqueType(types.Amount1)
	outpoint := types.OpaqueType(types.Outpoint)
	height := types.OpaqueType(types.Height)
	lock := types.OpaqueType(types.Lock)
	add("current_index", types.Unit(), u32, 0)
	add("current_asset", types.Unit(), asset, 0)
	add("current_amount", types.Unit(), amount, 0)
	add("current_outpoint", types.Unit(), outpoint, 0)
	add("lock_time", types.Unit(), lock, 0)
	add("tx_lock_height", types.Unit(), height, 0)
	add("input_amount", u32, types.Option(amount), 1)
	add("output_amount", u32, types.Option(amount), 1)

	// Scalar/curve jets used by folds and Taproot-style constructions.
	scalar := types.OpaqueType(types.Scalar)
	point := types.OpaqueType(types.Point)
	add("scalar_add", tuple(scalar, scalar), scalar, 2)
	add("scalar_negate", scalar, scalar, 1)
	add("point_add", tuple(point, point), point, 2)

	add("is_zero_8", u8, boolT, 1)
	add("is_zero_32", u32, boolT, 1)
	add("is_one_8", u8, boolT, 1)
	// low_1 always scribes the bit 0, regardless of what any docstring
	// claims u1::MIN to be; see DESIGN.md's Open Question note.
	add("low_1", types.Unit(), u1, 0)

	return m
}
