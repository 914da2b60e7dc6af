// Package tracker mints Commitment Merkle Roots for tracked call sites
// (assert!, panic!, unwrap and its variants, dbg!) and publishes them as
// DebugSymbols that a later execution stage can resolve back to source
// text and expected types.
package tracker

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// CMR is a Commitment Merkle Root: the 32-byte identity of a Simplicity
// subexpression, used here purely as an opaque debug-symbol key.
type CMR [32]byte

func (c CMR) String() string { return fmt.Sprintf("%x", [32]byte(c)) }

var cmrTag = sha256.Sum256([]byte("simfony\x1fdebug\x1f"))

// mintCMR derives the CMR for the counter-th tracked call, per the fixed
// tagged-hash scheme Cmr = SHA256(tag || tag || be32(counter)).
func mintCMR(counter uint32) CMR {
	h := sha256.New()
	h.Write(cmrTag[:])
	h.Write(cmrTag[:])
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], counter)
	h.Write(be[:])
	var out CMR
	copy(out[:], h.Sum(nil))
	return out
}

// CallName identifies what kind of call a tracked site is.
type CallName int

const (
	NameAssert CallName = iota
	NamePanic
	NameJet
	NameUnwrapLeft
	NameUnwrapRight
	NameUnwrap
	NameDebug
)

// TrackedCall is a call expression with a debug symbol: its source text,
// its kind, and (for UnwrapLeft/UnwrapRight/Debug) the ResolvedType
// needed to decode a runtime value at that call site.
type TrackedCall struct {
	Text string
	Name CallName
	Ty   types.ResolvedType
}

// CallTracker mints a fresh CMR for every call it is asked to track,
// keyed by the call's source span. It is mutated during lowering and
// turned into immutable DebugSymbols once the source file is known.
type CallTracker struct {
	nextID uint32
	byCMR  map[CMR]TrackedCall
	bySpan map[lexer.Span]CMR
}

// NewCallTracker returns an empty tracker.
func NewCallTracker() *CallTracker {
	return &CallTracker{
		byCMR:  make(map[CMR]TrackedCall),
		bySpan: make(map[lexer.Span]CMR),
	}
}

// TrackCall mints a CMR for span and records its call kind and type; it
// is a precondition that every call site have a distinct span, which
// holds for any real source file. source is the full program text, used
// to recover and normalize the call's slice for display.
func (t *CallTracker) TrackCall(span lexer.Span, name CallName, ty types.ResolvedType, source string) CMR {
	cmr := mintCMR(t.nextID)
	t.nextID++
	t.bySpan[span] = cmr
	t.byCMR[cmr] = TrackedCall{
		Text: sliceText(source, span, name),
		Name: name,
		Ty:   ty,
	}
	return cmr
}

// CMRFor returns the CMR minted for span, if TrackCall was called with it.
func (t *CallTracker) CMRFor(span lexer.Span) (CMR, bool) {
	cmr, ok := t.bySpan[span]
	return cmr, ok
}

// DebugSymbols freezes the tracker's contents for lookup by a later
// execution/tracing stage.
func (t *CallTracker) DebugSymbols() *DebugSymbols {
	out := &DebugSymbols{m: make(map[CMR]TrackedCall, len(t.byCMR))}
	for k, v := range t.byCMR {
		out.m[k] = v
	}
	return out
}

// DebugSymbols maps CMRs to the tracked call they identify.
type DebugSymbols struct {
	m map[CMR]TrackedCall
}

// Get returns the call tracked under cmr, if any.
func (d *DebugSymbols) Get(cmr CMR) (TrackedCall, bool) {
	tc, ok := d.m[cmr]
	return tc, ok
}

// Len reports how many call sites are tracked.
func (d *DebugSymbols) Len() int { return len(d.m) }

// All returns a copy of every CMR-to-call mapping, for a consumer that
// wants the whole table rather than one lookup at a time.
func (d *DebugSymbols) All() map[CMR]TrackedCall {
	out := make(map[CMR]TrackedCall, len(d.m))
	for k, v := range d.m {
		out[k] = v
	}
	return out
}

// Dump renders every tracked call in CMR order, one per line, for
// snapshot comparison and CLI display alike.
func (d *DebugSymbols) Dump() string {
	cmrs := make([]CMR, 0, len(d.m))
	for cmr := range d.m {
		cmrs = append(cmrs, cmr)
	}
	sort.Slice(cmrs, func(i, j int) bool { return cmrs[i].String() < cmrs[j].String() })

	var sb strings.Builder
	for _, cmr := range cmrs {
		call := d.m[cmr]
		fmt.Fprintf(&sb, "%s  %-12s %s\n", cmr, callNameString(call.Name), call.Text)
	}
	return sb.String()
}

func callNameString(n CallName) string {
	switch n {
	case NameAssert:
		return "assert"
	case NamePanic:
		return "panic"
	case NameJet:
		return "jet"
	case NameUnwrapLeft:
		return "unwrap_left"
	case NameUnwrapRight:
		return "unwrap_right"
	case NameUnwrap:
		return "unwrap"
	case NameDebug:
		return "debug"
	}
	return "?"
}

func sliceText(source string, span lexer.Span, name CallName) string {
	text := ""
	if span.Lo >= 0 && span.Hi <= len(source) && span.Lo <= span.Hi {
		text = source[span.Lo:span.Hi]
	}
	text = collapseWhitespace(text)
	if name == NameDebug {
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "dbg!("), ")"))
	}
	return text
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if r == '\n' || r == ' ' || r == '\t' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
