// Package simplicityhl is the public entry point for compiling SimplicityHL
// source into a Simplicity combinator graph: the three-stage pipeline a
// caller drives is TemplateProgram (parsed and type-checked source) ->
// CompiledProgram (parameters bound, commitment graph built) ->
// SatisfiedProgram (witnesses bound, ready to redeem).
package simplicityhl

import (
	"github.com/elements-project/simplicityhl-go/internal/ast"
	"github.com/elements-project/simplicityhl-go/internal/errors"
	"github.com/elements-project/simplicityhl-go/internal/parse"
	"github.com/elements-project/simplicityhl-go/internal/simplicity"
	"github.com/elements-project/simplicityhl-go/internal/tracker"
	"github.com/elements-project/simplicityhl-go/internal/types"
	"github.com/elements-project/simplicityhl-go/internal/witness"
)

// TemplateProgram is SimplicityHL source that has been parsed and
// type-checked but not yet instantiated: its parameters (param::name
// holes) are still free.
type TemplateProgram struct {
	source string
	prog   *ast.Program
}

// NewTemplateProgram parses and analyzes text, returning every lex,
// parse, scope, and type error found. A non-nil TemplateProgram is
// returned only once text passes every stage.
func NewTemplateProgram(text string) (*TemplateProgram, error) {
	p := parse.New(text)
	tree := p.Parse()
	if len(p.Errors()) != 0 {
		return nil, &CompileError{errs: p.Errors(), source: text}
	}
	prog, err := ast.AnalyzeProgram(tree, text)
	if err != nil {
		if ce, ok := err.(*errors.CompilerError); ok {
			return nil, &CompileError{errs: []*errors.CompilerError{ce}, source: text}
		}
		return nil, err
	}
	return &TemplateProgram{source: text, prog: prog}, nil
}

// Parameters returns the name and type of every param::name hole the
// program's main function refers to.
func (t *TemplateProgram) Parameters() map[string]types.ResolvedType {
	out := make(map[string]types.ResolvedType, len(t.prog.Parameters))
	for k, v := range t.prog.Parameters {
		out[k] = v
	}
	return out
}

// Witnesses returns the name and type of every wit::name hole the
// program's main function refers to, for a caller building a witness
// file before CompiledProgram.Satisfy is reachable.
func (t *TemplateProgram) Witnesses() map[string]types.ResolvedType {
	out := make(map[string]types.ResolvedType, len(t.prog.WitnessTypes))
	for k, v := range t.prog.WitnessTypes {
		out[k] = v
	}
	return out
}

// InstantiateOption configures TemplateProgram.Instantiate.
type InstantiateOption func(*instantiateConfig)

type instantiateConfig struct {
	includeDebugSymbols bool
}

// WithDebugSymbols keeps the compiled program's tracked assert!/panic!/
// unwrap/dbg! call sites reachable via CompiledProgram.DebugSymbols.
// Omitting it still builds the graph; CompiledProgram.DebugSymbols then
// reports zero tracked calls.
func WithDebugSymbols() InstantiateOption {
	return func(c *instantiateConfig) { c.includeDebugSymbols = true }
}

// Instantiate binds arguments against the template's declared
// parameters and lowers the program to a Simplicity commitment graph.
func (t *TemplateProgram) Instantiate(arguments map[string]types.Value, opts ...InstantiateOption) (*CompiledProgram, error) {
	cfg := instantiateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	bound, err := witness.ResolveParameters(t.prog.Parameters, arguments)
	if err != nil {
		return nil, err
	}

	commit, err := simplicity.LowerProgram(t.prog, bound.Values())
	if err != nil {
		return nil, err
	}

	var symbols *tracker.DebugSymbols
	if t.prog.Tracker != nil {
		symbols = t.prog.Tracker.DebugSymbols()
	}
	compileID := tracker.NewDefaultTracker(symbols).CompileID

	if !cfg.includeDebugSymbols {
		symbols = nil
	}

	return &CompiledProgram{
		source:       t.source,
		witnessTypes: t.prog.WitnessTypes,
		commit:       commit,
		debugSymbols: symbols,
		compileID:    compileID,
	}, nil
}

// CompiledProgram is a commitment graph with every param::name hole
// resolved; its wit::name holes are still free.
type CompiledProgram struct {
	source       string
	witnessTypes map[string]types.ResolvedType
	commit       *simplicity.Node
	debugSymbols *tracker.DebugSymbols
	compileID    string
}

// CompileID returns a fresh identifier minted for this Instantiate run,
// independent of WithDebugSymbols. A caller correlates this run's debug
// symbols and trace output (e.g. across stderr and a log file) by this
// value, the way a CLI invocation surfaces it via --trace-id.
func (c *CompiledProgram) CompileID() string {
	return c.compileID
}

// Commit returns the commitment graph: the combinator tree with every
// witness still an opaque CombWitness leaf, suitable for computing a
// program's address before any witness data exists.
func (c *CompiledProgram) Commit() *simplicity.Node {
	return c.commit
}

// DebugSymbols returns every CMR-keyed tracked call site recorded while
// lowering, or an empty map if Instantiate was not called with
// WithDebugSymbols.
func (c *CompiledProgram) DebugSymbols() map[tracker.CMR]tracker.TrackedCall {
	if c.debugSymbols == nil {
		return map[tracker.CMR]tracker.TrackedCall{}
	}
	return c.debugSymbols.All()
}

// Satisfy binds witnessValues against the program's declared witnesses
// and replaces every witness leaf in the commitment graph with the
// corresponding scribed value.
func (c *CompiledProgram) Satisfy(witnessValues map[string]types.Value) (*SatisfiedProgram, error) {
	redeem, err := witness.Satisfy(c.commit, c.witnessTypes, witnessValues)
	if err != nil {
		return nil, err
	}
	return &SatisfiedProgram{redeem: redeem}, nil
}

// SatisfiedProgram is a commitment graph with every witness bound to a
// concrete value, ready to redeem.
type SatisfiedProgram struct {
	redeem *simplicity.Node
}

// Redeem returns the redeem graph: the commitment graph with every
// witness leaf replaced by a CombScribe node carrying its bound value.
func (s *SatisfiedProgram) Redeem() *simplicity.Node {
	return s.redeem
}

// CompileError wraps one or more lex/parse/scope/type diagnostics
// produced while building a TemplateProgram.
type CompileError struct {
	errs   []*errors.CompilerError
	source string
}

func (e *CompileError) Error() string { return errors.FormatAll(e.errs, false) }

// Diagnostics exposes the individual errors, for a caller that wants to
// render them itself (e.g. colorized, one at a time).
func (e *CompileError) Diagnostics() []*errors.CompilerError { return e.errs }
