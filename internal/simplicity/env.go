package simplicity

import "github.com/elements-project/simplicityhl-go/internal/types"

// side records which half of a pair a frame occupies relative to the
// environment type accumulated before it was pushed.
type side int

const (
	// sideRight appends a frame as the second half: Tuple(accumulated, new).
	// Block statements extend the environment this way.
	sideRight side = iota
	// sideLeft prepends a frame as the first half: Tuple(new, accumulated).
	// Match/case arms need this: Simplicity's case combinator always
	// presents the matched payload as the pair's first component and
	// whatever the arm still needs from its enclosing scope as the second
	//.
	sideLeft
)

type frame struct {
	ty   types.ResolvedType
	side side
}

// namedBinding associates a surface name with a frame and, for
// destructured tuple patterns, an additional fixed projection from that
// frame's whole value down to the named sub-component.
type namedBinding struct {
	name  string
	frame int
	inner *Node // nil means the frame's whole value is the binding
}

// baseFrame is the sentinel namedBinding.frame value meaning "this name
// resolves straight against env.base, no enclosing frame was pushed".
const baseFrame = -1

// env is the lowering-time model of the environment product that variable
// references select into. It supports both of the pairing conventions the
// combinator graph actually uses (see side) while presenting one uniform
// selector/lookup surface to the rest of the lowerer. base is the
// innermost anchor type: Unit for the top level, or a custom function's own parameter tuple when
// lowering that function's body standalone.
type env struct {
	base     types.ResolvedType
	frames   []frame
	bindings []namedBinding
}

func newEnv() *env { return &env{base: types.Unit()} }

// newEnvWithBase starts an environment anchored directly on ty instead of
// Unit, for lowering a function body in isolation (see base).
func newEnvWithBase(ty types.ResolvedType) *env { return &env{base: ty} }

// bindBase names base itself (or a projection out of it) without pushing
// any frame, for a function body whose parameters are the whole base.
func (e *env) bindBase(elems []patternElem) {
	for _, pe := range elems {
		inner := pe.path
		if pe.path.Comb == CombIden {
			inner = nil
		}
		e.bindings = append(e.bindings, namedBinding{name: pe.name, frame: baseFrame, inner: inner})
	}
}

// ty returns the environment's current accumulated product type.
func (e *env) ty() types.ResolvedType {
	acc := e.base
	for _, f := range e.frames {
		if f.side == sideRight {
			acc = types.Tuple(acc, f.ty)
		} else {
			acc = types.Tuple(f.ty, acc)
		}
	}
	return acc
}

type envMark struct {
	frames   int
	bindings int
}

func (e *env) mark() envMark { return envMark{len(e.frames), len(e.bindings)} }

func (e *env) restore(m envMark) {
	e.frames = e.frames[:m.frames]
	e.bindings = e.bindings[:m.bindings]
}

// pushSimple appends a single named binding on the right, the shape every
// let-statement and function/fold/loop parameter uses.
func (e *env) pushSimple(name string, ty types.ResolvedType) {
	e.frames = append(e.frames, frame{ty: ty, side: sideRight})
	e.bindings = append(e.bindings, namedBinding{name: name, frame: len(e.frames) - 1})
}

// pushUnnamed appends a frame with no binding, used to keep the
// environment's shape consistent (e.g. a wildcard match pattern still
// consumes the case payload's slot, it just names nothing).
func (e *env) pushUnnamed(ty types.ResolvedType, s side) {
	e.frames = append(e.frames, frame{ty: ty, side: s})
}

// pushPattern appends one frame holding a pattern's whole matched value on
// the given side, then records every name the pattern destructures out of
// it via a fixed projection relative to that frame's own type.
func (e *env) pushPattern(elems []patternElem, ty types.ResolvedType, s side) {
	e.frames = append(e.frames, frame{ty: ty, side: s})
	idx := len(e.frames) - 1
	for _, pe := range elems {
		inner := pe.path
		if pe.path.Comb == CombIden {
			inner = nil
		}
		e.bindings = append(e.bindings, namedBinding{name: pe.name, frame: idx, inner: inner})
	}
}

// selector builds the take/drop/iden chain projecting name out of the
// current environment, searching newest-first so shadowed names resolve
// to their most recent binding.
func (e *env) selector(name string) (*Node, bool) {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		b := e.bindings[i]
		if b.name != name {
			continue
		}
		outer := e.frameSelector(b.frame)
		if b.inner == nil {
			return outer, true
		}
		return comp(outer, b.inner), true
	}
	return nil, false
}

// frameSelector builds the chain from the full environment type down to
// frame i's own value (or, for i == baseFrame, down to base itself),
// peeling off every frame pushed after it.
func (e *env) frameSelector(i int) *Node {
	b := NewSelectorBuilder()
	for k := len(e.frames) - 1; k > i; k-- {
		if e.frames[k].side == sideRight {
			b.Take()
		} else {
			b.Drop()
		}
	}
	if i >= 0 {
		if e.frames[i].side == sideRight {
			b.Drop()
		} else {
			b.Take()
		}
	}
	return b.H(e.ty())
}
