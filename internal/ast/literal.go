package ast

import (
	"math/big"
	"strings"

	cerrors "github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// decodeLiteral interprets an unevaluated parse-tree literal under an
// expected type.
func decodeLiteral(lit *parse.Literal, expected types.ResolvedType, span lexer.Span) (types.Value, error) {
	switch lit.Kind {
	case parse.LiteralBool:
		if expected.Kind() != types.KindBoolean {
			return types.Value{}, cerrors.ExpressionTypeMismatch(span, expected.String(), "bool")
		}
		return types.BoolValue(lit.Bool), nil
	case parse.LiteralDecimal, parse.LiteralBinary:
		if expected.Kind() != types.KindUInt {
			return types.Value{}, cerrors.ExpressionTypeMismatch(span, expected.String(), "integer")
		}
		text := strings.ReplaceAll(lit.Text, "_", "")
		base := 10
		if lit.Kind == parse.LiteralBinary {
			text = strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B")
			base = 2
		}
		v, ok := new(big.Int).SetString(text, base)
		if !ok {
			return types.Value{}, cerrors.Syntax(span, "malformed integer literal %q", lit.Text)
		}
		if v.BitLen() > int(expected.Width()) {
			return types.Value{}, cerrors.ExpressionTypeMismatch(span, expected.String(), "integer literal too wide")
		}
		return types.UIntValue(expected.Width(), v), nil
	case parse.LiteralHex:
		return decodeHexLiteral(lit.Text, expected, span)
	}
	return types.Value{}, cerrors.Syntax(span, "unrecognized literal")
}

// decodeHexLiteral decodes a hex literal into any ResolvedType whose
// total structural bit-width matches the literal's digit count * 4,
// supporting both wide integers and byte-array/tuple shapes.
func decodeHexLiteral(text string, expected types.ResolvedType, span lexer.Span) (types.Value, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	digits = strings.ReplaceAll(digits, "_", "")
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return types.Value{}, cerrors.Syntax(span, "malformed hex literal %q", text)
	}
	width, ok := types.FixedBitWidth(expected)
	if !ok {
		return types.Value{}, cerrors.ExpressionUnexpectedType(span, expected.String())
	}
	if len(digits)*4 != width {
		return types.Value{}, cerrors.ExpressionTypeMismatch(span, expected.String(), "hex literal of a different bit width")
	}
	bits := make([]bool, width)
	for i := 0; i < width; i++ {
		bits[width-1-i] = v.Bit(i) == 1
	}
	return types.Decode(expected, types.StructuralValue{Bits: bits}), nil
}
