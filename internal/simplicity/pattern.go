package simplicity

import (
	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// fieldSelector builds the take/drop/iden chain projecting element i out
// of a flat-stored n-ary tuple type, matching Structural's right-nested
// product-chain interpretation of that storage: element 0 sits
// behind one Take, every later element behind one Drop per element before
// it plus a final Take (or no Take at all for the very last element,
// which is the chain's unwrapped tail).
func fieldSelector(ty types.ResolvedType, elems []types.ResolvedType, i int) *Node {
	if len(elems) == 1 {
		return idenNode(ty)
	}
	if i == 0 {
		return &Node{Comb: CombTake, Source: ty, Target: elems[0], Child0: idenNode(elems[0])}
	}
	restTy := elems[1]
	if len(elems) > 2 {
		restTy = types.Tuple(elems[1:]...)
	}
	inner := fieldSelector(restTy, elems[1:], i-1)
	return &Node{Comb: CombDrop, Source: ty, Target: inner.Target, Child0: inner}
}

// patternElem is one name a pattern destructures, together with the fixed
// projection (Source = the pattern's whole matched type) that recovers it.
type patternElem struct {
	name string
	path *Node
}

// patternBindings walks pattern p, whose matched value has type ty, and
// returns every name it binds together with the projection recovering it.
func patternBindings(p ast.Pattern, ty types.ResolvedType) []patternElem {
	switch p.Kind {
	case ast.PatternWildcard:
		return nil
	case ast.PatternIdentifier, ast.PatternTypedVariable:
		return []patternElem{{name: p.Name, path: idenNode(ty)}}
	case ast.PatternTuple:
		elems := ty.TupleElems()
		var out []patternElem
		for i, sub := range p.Elems {
			field := fieldSelector(ty, elems, i)
			for _, pe := range patternBindings(sub, field.Target) {
				path := pe.path
				if path.Comb != CombIden {
					path = comp(field, path)
				} else {
					path = field
				}
				out = append(out, patternElem{name: pe.name, path: path})
			}
		}
		return out
	}
	return nil
}

// paramsTupleType is the flat tuple type a function's parameter list packs
// into: the bare type itself for a single parameter (matching
// fieldSelector's len(elems)==1 shortcut), otherwise an n-ary Tuple.
func paramsTupleType(tys []types.ResolvedType) types.ResolvedType {
	if len(tys) == 1 {
		return tys[0]
	}
	return types.Tuple(tys...)
}

// paramsAsPatternElems treats a function's parameter list as a flat tuple
// pattern, reusing fieldSelector to give each parameter name its
// projection out of the packed argument tuple.
func paramsAsPatternElems(params []ast.Param) ([]patternElem, types.ResolvedType) {
	tys := make([]types.ResolvedType, len(params))
	for i, p := range params {
		tys[i] = p.Ty
	}
	ty := paramsTupleType(tys)
	elems := make([]patternElem, len(params))
	for i, p := range params {
		elems[i] = patternElem{name: p.Name, path: fieldSelector(ty, tys, i)}
	}
	return elems, ty
}
