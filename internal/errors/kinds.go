package errors

import "github.com/elements-project/simplicityhl-go/internal/lexer"

// The constructors below enumerate the error taxonomy of the
// specification's failure semantics section. Each returns a
// *CompilerError of a distinct Kind so the resolver, type checker, and
// lowering stages never need to hand-format a message inline.

func UndefinedAlias(span lexer.Span, name string) *CompilerError {
	return newError("UndefinedAlias", span, "undefined type alias %q", name)
}

func ExpressionTypeMismatch(span lexer.Span, expected, got string) *CompilerError {
	return newError("ExpressionTypeMismatch", span, "expected type %s, found %s", expected, got)
}

func ExpressionUnexpectedType(span lexer.Span, got string) *CompilerError {
	return newError("ExpressionUnexpectedType", span, "unexpected type %s in this position", got)
}

func InvalidNumberOfArguments(span lexer.Span, expected, got int) *CompilerError {
	return newError("InvalidNumberOfArguments", span, "expected %d argument(s), found %d", expected, got)
}

func InvalidCast(span lexer.Span, from, to string) *CompilerError {
	return newError("InvalidCast", span, "cannot cast %s to %s: structural types differ", from, to)
}

func UndefinedVariable(span lexer.Span, id string) *CompilerError {
	return newError("UndefinedVariable", span, "undefined variable %q", id)
}

func FunctionUndefined(span lexer.Span, name string) *CompilerError {
	return newError("FunctionUndefined", span, "undefined function %q", name)
}

func FunctionRedefined(span lexer.Span, name string) *CompilerError {
	return newError("FunctionRedefined", span, "function %q is already defined", name)
}

func FunctionNotFoldable(span lexer.Span, name string) *CompilerError {
	return newError("FunctionNotFoldable", span, "function %q has the wrong signature to be folded", name)
}

func FunctionNotLoopable(span lexer.Span, name string) *CompilerError {
	return newError("FunctionNotLoopable", span, "function %q has the wrong signature for for_while", name)
}

func JetDoesNotExist(span lexer.Span, name string) *CompilerError {
	return newError("JetDoesNotExist", span, "no jet named %q", name)
}

func JetDisallowed(span lexer.Span, name string) *CompilerError {
	return newError("JetDisallowed", span, "jet %q is disallowed as a direct primitive", name)
}

func WitnessOutsideMain(span lexer.Span, name string) *CompilerError {
	return newError("WitnessOutsideMain", span, "witness %q declared outside of main", name)
}

func WitnessReused(span lexer.Span, name string) *CompilerError {
	return newError("WitnessReused", span, "witness %q declared more than once", name)
}

func WitnessReassigned(span lexer.Span, name string) *CompilerError {
	return newError("WitnessReassigned", span, "witness %q cannot be reassigned", name)
}

func ModuleRedefined(span lexer.Span, name string) *CompilerError {
	return newError("ModuleRedefined", span, "module %q is already defined", name)
}

func ParameterTypeMismatch(span lexer.Span, name, first, second string) *CompilerError {
	return newError("ExpressionTypeMismatch", span,
		"parameter %q was first used at type %s but is now used at type %s", name, first, second)
}

func MainRequired(span lexer.Span) *CompilerError {
	return newError("MainRequired", span, "program has no main function")
}

func MainNoInputs(span lexer.Span) *CompilerError {
	return newError("MainNoInputs", span, "main must not declare parameters")
}

func MainNoOutput(span lexer.Span) *CompilerError {
	return newError("MainNoOutput", span, "main must return unit")
}

func ForWhileWidthTooWide(span lexer.Span, width int) *CompilerError {
	return newError("ForWhileWidthTooWide", span,
		"for_while counter width u%d would not fit on-chain (limit is 16 bits)", width)
}

func MissingWitnessValue(span lexer.Span, name string) *CompilerError {
	return newError("MissingWitnessValue", span, "no value supplied for witness %q", name)
}

func UnexpectedWitnessValue(span lexer.Span, name string) *CompilerError {
	return newError("UnexpectedWitnessValue", span, "value supplied for undeclared witness %q", name)
}

func MissingParameterValue(span lexer.Span, name string) *CompilerError {
	return newError("MissingParameterValue", span, "no value supplied for parameter %q", name)
}

func Syntax(span lexer.Span, format string, args ...any) *CompilerError {
	return newError("Syntax", span, format, args...)
}
