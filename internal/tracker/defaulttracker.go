package tracker

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// TrackerLogLevel controls how much a DefaultTracker reports during a
// satisfy/debug-symbols run. The order is significant: None < Debug <
// Warning < Trace.
type TrackerLogLevel int

const (
	LogNone TrackerLogLevel = iota
	LogDebug
	LogWarning
	LogTrace
)

// DebugSink receives a labeled value from a dbg!() call site.
type DebugSink func(label, value string)

// JetTraceSink receives a jet call's name, its decoded arguments (nil if
// they could not be decoded), and its decoded result (nil on failure).
type JetTraceSink func(jetName string, args []string, result *string)

// WarningSink receives a free-text warning message.
type WarningSink func(message string)

func defaultDebugSink(label, value string) {
	fmt.Fprintf(os.Stderr, "DBG: %s = %s\n", label, value)
}

func defaultJetTraceSink(jetName string, args []string, result *string) {
	if args == nil {
		fmt.Fprintf(os.Stderr, "%s(...)", jetName)
	} else {
		fmt.Fprintf(os.Stderr, "%s(%s)", jetName, joinComma(args))
	}
	if result == nil {
		fmt.Fprintln(os.Stderr, " -> [failed]")
	} else {
		fmt.Fprintf(os.Stderr, ") = %s\n", *result)
	}
}

func defaultWarningSink(message string) {
	fmt.Fprintf(os.Stderr, "WARN: %s\n", message)
}

func joinComma(xs []string) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += ", "
		}
		out += x
	}
	return out
}

// DefaultTracker is the consumer-facing execution tracker: it resolves a
// CMR hit against DebugSymbols and forwards the decoded call to whichever
// sinks are configured for the current TrackerLogLevel. Each instance is
// stamped with a CompileID so a caller can correlate the debug symbols
// and trace lines from a single TemplateProgram.Instantiate run across
// multiple log sinks (stderr, a file, a structured logger).
type DefaultTracker struct {
	CompileID string
	symbols   *DebugSymbols
	debug     DebugSink
	jetTrace  JetTraceSink
	warning   WarningSink
}

// NewDefaultTracker binds a tracker to a compilation's debug symbols and
// mints a fresh CompileID for it.
func NewDefaultTracker(symbols *DebugSymbols) *DefaultTracker {
	return &DefaultTracker{CompileID: uuid.NewString(), symbols: symbols}
}

// WithLogLevel enables the default sinks implied by level: Debug enables
// the debug sink, Warning additionally enables the warning sink, Trace
// additionally enables the jet trace sink.
func (t *DefaultTracker) WithLogLevel(level TrackerLogLevel) *DefaultTracker {
	if level >= LogDebug {
		t.debug = defaultDebugSink
	}
	if level >= LogWarning {
		t.warning = defaultWarningSink
	}
	if level >= LogTrace {
		t.jetTrace = defaultJetTraceSink
	}
	return t
}

// WithDebugSink overrides the debug sink.
func (t *DefaultTracker) WithDebugSink(sink DebugSink) *DefaultTracker { t.debug = sink; return t }

// WithJetTraceSink overrides the jet trace sink.
func (t *DefaultTracker) WithJetTraceSink(sink JetTraceSink) *DefaultTracker {
	t.jetTrace = sink
	return t
}

// WithWarningSink overrides the warning sink.
func (t *DefaultTracker) WithWarningSink(sink WarningSink) *DefaultTracker {
	t.warning = sink
	return t
}

// HandleDebug looks up cmr in the bound DebugSymbols and, if it names a
// dbg!() call site, forwards the decoded value to the debug sink.
func (t *DefaultTracker) HandleDebug(cmr CMR, decodedValue string) {
	if t.debug == nil {
		return
	}
	tc, ok := t.symbols.Get(cmr)
	if !ok {
		t.Warn(fmt.Sprintf("unknown debug symbol: CMR %s", cmr))
		return
	}
	if tc.Name != NameDebug {
		return
	}
	t.debug(tc.Text, decodedValue)
}

// HandleJet forwards a jet invocation's decoded arguments and result to
// the jet trace sink, if one is configured.
func (t *DefaultTracker) HandleJet(jetName string, args []string, result *string) {
	if t.jetTrace == nil {
		return
	}
	t.jetTrace(jetName, args, result)
}

// Warn forwards message to the warning sink, if one is configured.
func (t *DefaultTracker) Warn(message string) {
	if t.warning == nil {
		return
	}
	t.warning(message)
}
