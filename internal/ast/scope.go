package ast

import (
	cerrors "github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// frame is one lexical scope: a block, a match arm, or the program's
// top-level main frame. Variables shadow innermost-first.
// Names are compared verbatim: SimplicityHL identifiers are case-sensitive.
type frame struct {
	variables map[string]types.ResolvedType
	isMain    bool
}

// Scope tracks lexical frames, type aliases, parameter/witness type
// tables, custom functions, and the call tracker, threaded through one
// compilation's resolve pass.
type Scope struct {
	aliases    *types.AliasTable
	frames     []*frame
	parameters map[string]types.ResolvedType
	witnesses  map[string]types.ResolvedType
	functions  map[string]*Function
	tracker    *tracker.CallTracker
	source     string
}

// NewScope creates an empty resolver scope over the given source text
// (used to recover tracked calls' display text).
func NewScope(source string) *Scope {
	return &Scope{
		aliases:    types.NewAliasTable(),
		parameters: make(map[string]types.ResolvedType),
		witnesses:  make(map[string]types.ResolvedType),
		functions:  make(map[string]*Function),
		tracker:    tracker.NewCallTracker(),
		source:     source,
	}
}

// Tracker exposes the scope's call tracker, e.g. to freeze its
// DebugSymbols once resolution completes.
func (s *Scope) Tracker() *tracker.CallTracker { return s.tracker }

// InsertAlias resolves aliasedTy against the alias table and records
// name -> resolved type.
func (s *Scope) InsertAlias(span lexer.Span, name string, aliasedTy types.AliasedType) (types.ResolvedType, error) {
	resolved, ok := s.aliases.Insert(name, aliasedTy)
	if !ok {
		return types.ResolvedType{}, cerrors.UndefinedAlias(span, aliasedTy.AliasName())
	}
	return resolved, nil
}

// ResolveAlias looks up a bare alias name.
func (s *Scope) ResolveAlias(span lexer.Span, name string) (types.ResolvedType, error) {
	resolved, ok := s.aliases.Lookup(name)
	if !ok {
		return types.ResolvedType{}, cerrors.UndefinedAlias(span, name)
	}
	return resolved, nil
}

// PushScope opens a new lexical frame for a block or match arm.
func (s *Scope) PushScope() {
	s.frames = append(s.frames, &frame{variables: make(map[string]types.ResolvedType)})
}

// PopScope closes the innermost frame, discarding its bindings.
func (s *Scope) PopScope() {
	s.frames = s.frames[:len(s.frames)-1]
}

// PushMainScope opens the program's single top-level frame. It must be
// the only frame on the stack.
func (s *Scope) PushMainScope() {
	if len(s.frames) != 0 {
		panic("ast: push_main_scope called with frames already open")
	}
	s.frames = append(s.frames, &frame{variables: make(map[string]types.ResolvedType), isMain: true})
}

// PopMainScope closes the main frame.
func (s *Scope) PopMainScope() {
	if len(s.frames) != 1 || !s.frames[0].isMain {
		panic("ast: pop_main_scope called outside the main frame")
	}
	s.frames = s.frames[:0]
}

func (s *Scope) inMain() bool {
	return len(s.frames) > 0 && s.frames[0].isMain
}

func (s *Scope) top() *frame {
	return s.frames[len(s.frames)-1]
}

// InsertVariable binds id to ty in the innermost frame, shadowing any
// outer binding of the same name.
func (s *Scope) InsertVariable(id string, ty types.ResolvedType) {
	s.top().variables[id] = ty
}

// GetVariable looks up id innermost-frame-first.
func (s *Scope) GetVariable(id string) (types.ResolvedType, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if ty, ok := s.frames[i].variables[id]; ok {
			return ty, true
		}
	}
	return types.ResolvedType{}, false
}

// InsertParameter records name's type on first use, or checks that a
// repeated use matches the first.
func (s *Scope) InsertParameter(span lexer.Span, name string, ty types.ResolvedType) error {
	if existing, ok := s.parameters[name]; ok {
		if !existing.Equal(ty) {
			return cerrors.ParameterTypeMismatch(span, name, existing.String(), ty.String())
		}
		return nil
	}
	s.parameters[name] = ty
	return nil
}

// InsertWitness records name's type; it is only legal inside main and
// only once per name.
func (s *Scope) InsertWitness(span lexer.Span, name string, ty types.ResolvedType) error {
	if !s.inMain() {
		return cerrors.WitnessOutsideMain(span, name)
	}
	if _, ok := s.witnesses[name]; ok {
		return cerrors.WitnessReused(span, name)
	}
	s.witnesses[name] = ty
	return nil
}

// InsertFunction records a custom function definition; redefinition is
// an error.
func (s *Scope) InsertFunction(span lexer.Span, fn *Function) error {
	if _, ok := s.functions[fn.Name]; ok {
		return cerrors.FunctionRedefined(span, fn.Name)
	}
	s.functions[fn.Name] = fn
	return nil
}

// GetFunction looks up a previously inserted custom function.
func (s *Scope) GetFunction(name string) (*Function, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}

// Parameters returns the accumulated parameter type table.
func (s *Scope) Parameters() map[string]types.ResolvedType { return s.parameters }

// Witnesses returns the accumulated witness type table.
func (s *Scope) Witnesses() map[string]types.ResolvedType { return s.witnesses }

// TrackCall mints a CMR for span under the given tracked-call kind and
// records the call's expected decode type (used by UnwrapLeft/Right and
// Debug; pass types.Unit() when not applicable).
func (s *Scope) TrackCall(span lexer.Span, name tracker.CallName, ty types.ResolvedType) tracker.CMR {
	return s.tracker.TrackCall(span, name, ty, s.source)
}
