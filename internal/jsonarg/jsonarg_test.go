package jsonarg

import (
	"math/big"
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/types"
)

func TestDecodeValuesScalarAndHex(t *testing.T) {
	declared := map[string]types.ResolvedType{
		"idx":    types.UInt(32),
		"secret": types.UInt(256),
	}
	doc := `{
		"idx": {"type": "u32", "value": 7},
		"secret": {"type": "u256", "value": "0xabcdef"}
	}`
	values, err := DecodeValues(doc, declared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["idx"].UInt.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("expected idx=7, got %s", values["idx"].UInt)
	}
	want, _ := new(big.Int).SetString("abcdef", 16)
	if values["secret"].UInt.Cmp(want) != 0 {
		t.Fatalf("expected secret=0xabcdef, got %s", values["secret"].UInt)
	}
}

func TestDecodeValuesTupleAndOption(t *testing.T) {
	declared := map[string]types.ResolvedType{
		"pair": types.Tuple(types.UInt(8), types.Boolean()),
		"maybe": types.Option(types.UInt(8)),
	}
	doc := `{
		"pair": {"type": "(u8, bool)", "value": [3, true]},
		"maybe": {"type": "Option<u8>", "value": null}
	}`
	values, err := DecodeValues(doc, declared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["pair"].Elems[0].UInt.Cmp(big.NewInt(3)) != 0 || !values["pair"].Elems[1].Boolean {
		t.Fatalf("unexpected tuple decode: %+v", values["pair"])
	}
	if values["maybe"].OptSome != nil {
		t.Fatalf("expected maybe to decode as None")
	}
}

func TestDecodeValuesEitherTagMismatch(t *testing.T) {
	declared := map[string]types.ResolvedType{"e": types.Either(types.UInt(8), types.UInt(8))}
	doc := `{"e": {"type": "Either<u8, u8>", "value": {"tag": "middle", "value": 1}}}`
	if _, err := DecodeValues(doc, declared); err == nil {
		t.Fatalf("expected an error for an unrecognized either tag")
	}
}

func TestDecodeValuesRejectsUndeclaredName(t *testing.T) {
	doc := `{"mystery": {"type": "u8", "value": 1}}`
	if _, err := DecodeValues(doc, map[string]types.ResolvedType{}); err == nil {
		t.Fatalf("expected an error for an undeclared name")
	}
}

func TestDecodeValuesRejectsTypeMismatch(t *testing.T) {
	declared := map[string]types.ResolvedType{"idx": types.UInt(32)}
	doc := `{"idx": {"type": "u8", "value": 1}}`
	if _, err := DecodeValues(doc, declared); err == nil {
		t.Fatalf("expected an error for a declared-type mismatch")
	}
}

func TestEmitSkeletonRoundTrips(t *testing.T) {
	declared := map[string]types.ResolvedType{
		"idx":  types.UInt(32),
		"flag": types.Boolean(),
	}
	doc, err := EmitSkeleton(declared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeValues(doc, declared)
	if err != nil {
		t.Fatalf("unexpected error decoding emitted skeleton: %v\n%s", err, doc)
	}
	if decoded["idx"].UInt.Sign() != 0 {
		t.Fatalf("expected a zero placeholder for idx")
	}
	if decoded["flag"].Boolean {
		t.Fatalf("expected a false placeholder for flag")
	}
}
