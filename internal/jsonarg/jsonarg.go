// Package jsonarg decodes the arguments/witness JSON files a caller hands
// to the compiler front end, and emits the skeleton file the `params`
// subcommand writes for a program's declared names. The wire format is
// `{ "<name>": { "type": "<type>", "value": <literal> } }`; literals are
// decimal, "0b..." binary, "0x..." hex, booleans, nested tuples/arrays as
// JSON arrays, lists as JSON arrays shorter than their bound, Either as
// `{"tag":"left"|"right","value":...}`, and Option as the bare element
// value or JSON null for None. Decoding is read-only (gjson); the
// skeleton writer builds its document incrementally with sjson, one
// declared name at a time, rather than marshaling a whole struct at once.
package jsonarg

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/elements-project/simplicityhl-go/internal/types"
)

// DecodeValues parses doc against declared, returning one types.Value per
// name. Every name in doc must be declared, and every entry's "type"
// field must match the declared ResolvedType's surface spelling exactly
// (a cheap sanity check before the more expensive structural literal
// decode), but declared names missing from doc are left out of the
// result — callers needing completeness (e.g. the witness binder) detect
// that themselves.
func DecodeValues(doc string, declared map[string]types.ResolvedType) (map[string]types.Value, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("jsonarg: invalid JSON")
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("jsonarg: expected a JSON object at the top level")
	}
	out := make(map[string]types.Value, len(declared))
	var decodeErr error
	root.ForEach(func(key, entry gjson.Result) bool {
		name := key.String()
		ty, ok := declared[name]
		if !ok {
			decodeErr = fmt.Errorf("jsonarg: %q is not a declared name", name)
			return false
		}
		if wantType := entry.Get("type").String(); wantType != ty.String() {
			decodeErr = fmt.Errorf("jsonarg: %q declares type %q but the program expects %s", name, wantType, ty)
			return false
		}
		v, err := decodeValue(ty, entry.Get("value"))
		if err != nil {
			decodeErr = fmt.Errorf("jsonarg: %q: %w", name, err)
			return false
		}
		out[name] = v
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}

func decodeValue(ty types.ResolvedType, raw gjson.Result) (types.Value, error) {
	switch ty.Kind() {
	case types.KindUnit:
		return types.UnitValue(), nil
	case types.KindBoolean:
		if raw.Type != gjson.True && raw.Type != gjson.False {
			return types.Value{}, fmt.Errorf("expected a boolean literal")
		}
		return types.BoolValue(raw.Bool()), nil
	case types.KindUInt:
		v, err := decodeBigInt(raw)
		if err != nil {
			return types.Value{}, err
		}
		if v.BitLen() > int(ty.Width()) {
			return types.Value{}, fmt.Errorf("integer literal too wide for %s", ty)
		}
		return types.UIntValue(ty.Width(), v), nil
	case types.KindOpaque:
		v, err := decodeBigInt(raw)
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Ty: ty, OpaqueBV: v}, nil
	case types.KindTuple:
		elemsTy := ty.TupleElems()
		arr := raw.Array()
		if len(arr) != len(elemsTy) {
			return types.Value{}, fmt.Errorf("expected %d tuple elements, found %d", len(elemsTy), len(arr))
		}
		elems := make([]types.Value, len(elemsTy))
		for i, et := range elemsTy {
			v, err := decodeValue(et, arr[i])
			if err != nil {
				return types.Value{}, err
			}
			elems[i] = v
		}
		return types.Value{Ty: ty, Elems: elems}, nil
	case types.KindArray:
		arr := raw.Array()
		if len(arr) != ty.ArrayLen() {
			return types.Value{}, fmt.Errorf("expected %d array elements, found %d", ty.ArrayLen(), len(arr))
		}
		elems := make([]types.Value, len(arr))
		for i, el := range arr {
			v, err := decodeValue(ty.ArrayElem(), el)
			if err != nil {
				return types.Value{}, err
			}
			elems[i] = v
		}
		return types.Value{Ty: ty, Elems: elems}, nil
	case types.KindList:
		arr := raw.Array()
		if len(arr) >= ty.ListBound() {
			return types.Value{}, fmt.Errorf("list has %d elements, bound is %d", len(arr), ty.ListBound())
		}
		elems := make([]types.Value, len(arr))
		for i, el := range arr {
			v, err := decodeValue(ty.ListElem(), el)
			if err != nil {
				return types.Value{}, err
			}
			elems[i] = v
		}
		return types.Value{Ty: ty, List: elems}, nil
	case types.KindEither:
		tag := raw.Get("tag").String()
		switch tag {
		case "left":
			v, err := decodeValue(ty.EitherLeft(), raw.Get("value"))
			if err != nil {
				return types.Value{}, err
			}
			return types.LeftValue(v, ty.EitherRight()), nil
		case "right":
			v, err := decodeValue(ty.EitherRight(), raw.Get("value"))
			if err != nil {
				return types.Value{}, err
			}
			return types.RightValue(ty.EitherLeft(), v), nil
		default:
			return types.Value{}, fmt.Errorf(`either literal needs "tag": "left" or "right", found %q`, tag)
		}
	case types.KindOption:
		if !raw.Exists() || raw.Type == gjson.Null {
			return types.NoneValue(ty.OptionElem()), nil
		}
		v, err := decodeValue(ty.OptionElem(), raw)
		if err != nil {
			return types.Value{}, err
		}
		return types.SomeValue(v), nil
	}
	return types.Value{}, fmt.Errorf("jsonarg: unsupported type %s", ty)
}

func decodeBigInt(raw gjson.Result) (*big.Int, error) {
	switch raw.Type {
	case gjson.Number:
		return big.NewInt(raw.Int()), nil
	case gjson.String:
		text := strings.ReplaceAll(raw.Str, "_", "")
		switch {
		case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
			v, ok := new(big.Int).SetString(text[2:], 16)
			if !ok {
				return nil, fmt.Errorf("malformed hex literal %q", raw.Str)
			}
			return v, nil
		case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
			v, ok := new(big.Int).SetString(text[2:], 2)
			if !ok {
				return nil, fmt.Errorf("malformed binary literal %q", raw.Str)
			}
			return v, nil
		default:
			v, ok := new(big.Int).SetString(text, 10)
			if !ok {
				return nil, fmt.Errorf("malformed integer literal %q", raw.Str)
			}
			return v, nil
		}
	default:
		return nil, fmt.Errorf("expected an integer literal, found %s", raw.Type)
	}
}

// EmitSkeleton builds a parameter/witness file naming every declared name
// with its type and a zero-valued placeholder literal, in sorted name
// order for a deterministic diff.
func EmitSkeleton(declared map[string]types.ResolvedType) (string, error) {
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := "{}"
	for _, name := range names {
		var err error
		doc, err = sjson.Set(doc, name+".type", declared[name].String())
		if err != nil {
			return "", fmt.Errorf("jsonarg: %w", err)
		}
		raw, err := json.Marshal(zeroLiteral(declared[name]))
		if err != nil {
			return "", fmt.Errorf("jsonarg: %w", err)
		}
		doc, err = sjson.SetRaw(doc, name+".value", string(raw))
		if err != nil {
			return "", fmt.Errorf("jsonarg: %w", err)
		}
	}
	return doc, nil
}

func zeroLiteral(ty types.ResolvedType) any {
	switch ty.Kind() {
	case types.KindUnit:
		return nil
	case types.KindBoolean:
		return false
	case types.KindUInt, types.KindOpaque:
		return "0"
	case types.KindTuple:
		elems := ty.TupleElems()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = zeroLiteral(e)
		}
		return out
	case types.KindArray:
		out := make([]any, ty.ArrayLen())
		for i := range out {
			out[i] = zeroLiteral(ty.ArrayElem())
		}
		return out
	case types.KindList:
		return []any{}
	case types.KindEither:
		return map[string]any{"tag": "left", "value": zeroLiteral(ty.EitherLeft())}
	case types.KindOption:
		return nil
	}
	return nil
}
