package ast

import (
	cerrors "github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

var builtinOpaque = map[string]types.Opaque{
	"Scalar": types.Scalar, "Fe": types.Fe, "Ge": types.Ge, "Gej": types.Gej,
	"Point": types.Point, "Pubkey": types.Pubkey, "Signature": types.Signature,
	"Message64": types.Message64, "Ctx8": types.Ctx8, "Asset1": types.Asset1,
	"Amount1": types.Amount1, "Nonce": types.Nonce, "Outpoint": types.Outpoint,
	"Lock": types.Lock, "Height": types.Height, "Time": types.Time,
	"Distance": types.Distance, "Duration": types.Duration,
	"ExplicitAsset": types.ExplicitAsset, "ExplicitAmount": types.ExplicitAmount,
	"ExplicitNonce": types.ExplicitNonce, "TokenAmount1": types.TokenAmount1,
}

var uintWidths = map[int]types.UIntWidth{
	1: types.U1, 2: types.U2, 4: types.U4, 8: types.U8, 16: types.U16,
	32: types.U32, 64: types.U64, 128: types.U128, 256: types.U256,
}

// resolveType recursively converts a parse-tree type expression to a
// ResolvedType, substituting named aliases from scope's alias table
//.
func resolveType(scope *Scope, t parse.Type) (types.ResolvedType, error) {
	switch t.Kind {
	case parse.TypeUnit:
		return types.Unit(), nil
	case parse.TypeBoolean:
		return types.Boolean(), nil
	case parse.TypeUInt:
		w, ok := uintWidths[t.Width]
		if !ok {
			return types.ResolvedType{}, cerrors.Syntax(t.Span, "invalid integer width u%d", t.Width)
		}
		return types.UInt(w), nil
	case parse.TypeOpaque:
		o, ok := builtinOpaque[t.Opaque]
		if !ok {
			return types.ResolvedType{}, cerrors.Syntax(t.Span, "unknown opaque type %q", t.Opaque)
		}
		return types.OpaqueType(o), nil
	case parse.TypeTuple:
		elems := make([]types.ResolvedType, len(t.Elems))
		for i, e := range t.Elems {
			r, err := resolveType(scope, e)
			if err != nil {
				return types.ResolvedType{}, err
			}
			elems[i] = r
		}
		return types.Tuple(elems...), nil
	case parse.TypeArray:
		elem, err := resolveType(scope, t.Elems[0])
		if err != nil {
			return types.ResolvedType{}, err
		}
		return types.Array(elem, t.ArrayN), nil
	case parse.TypeList:
		elem, err := resolveType(scope, t.Elems[0])
		if err != nil {
			return types.ResolvedType{}, err
		}
		if t.ListBnd < 2 || t.ListBnd&(t.ListBnd-1) != 0 {
			return types.ResolvedType{}, cerrors.Syntax(t.Span, "list bound %d is not a power of two >= 2", t.ListBnd)
		}
		return types.List(elem, t.ListBnd), nil
	case parse.TypeEither:
		l, err := resolveType(scope, t.Elems[0])
		if err != nil {
			return types.ResolvedType{}, err
		}
		r, err := resolveType(scope, t.Elems[1])
		if err != nil {
			return types.ResolvedType{}, err
		}
		return types.Either(l, r), nil
	case parse.TypeOption:
		elem, err := resolveType(scope, t.Elems[0])
		if err != nil {
			return types.ResolvedType{}, err
		}
		return types.Option(elem), nil
	case parse.TypeAliasRef:
		return scope.ResolveAlias(t.Span, t.AliasName)
	}
	return types.ResolvedType{}, cerrors.Syntax(t.Span, "unrecognized type expression")
}
