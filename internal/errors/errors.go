// Package errors formats SimplicityHL compiler diagnostics with source
// context, line/column information, and a caret indicator.
package errors

import (
	"fmt"
	"strings"

	"github.com/elements-project/simplicityhl-go/internal/lexer"
)

// CompilerError is a single compile-time diagnostic anchored at a span.
// Kind identifies which taxonomy entry of the specification produced it
// (e.g. "ExpressionTypeMismatch", "UndefinedAlias") so callers can branch
// on error kind without string-matching the message.
type CompilerError struct {
	Kind    string
	Message string
	Source  string
	File    string
	Span    lexer.Span
}

func newError(kind string, span lexer.Span, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// WithSource attaches the original source text and an optional file name
// so Format can render a caret-pointing excerpt.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders "file:line:col" plus a caret-pointing source excerpt.
// If color is true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	pos := lexer.Locate(e.Source, e.Span.Lo)
	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", pos.Line, pos.Column)
	}

	if line := sourceLine(e.Source, pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders multiple diagnostics, numbered, for CLI output.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
