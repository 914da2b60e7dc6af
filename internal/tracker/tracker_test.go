package tracker

import (
	"testing"

	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

func TestTrackCallMintsDistinctCMRs(t *testing.T) {
	src := `assert(jet::eq_32(x, 32))`
	ct := NewCallTracker()
	cmr1 := ct.TrackCall(lexer.Span{Lo: 0, Hi: len(src)}, NameAssert, types.Unit(), src)
	cmr2 := ct.TrackCall(lexer.Span{Lo: 7, Hi: 19}, NameJet, types.Boolean(), src)
	if cmr1 == cmr2 {
		t.Fatalf("expected distinct CMRs for distinct call sites")
	}
	got, ok := ct.CMRFor(lexer.Span{Lo: 0, Hi: len(src)})
	if !ok || got != cmr1 {
		t.Fatalf("CMRFor lookup mismatch")
	}
}

func TestDebugSymbolsRoundTrip(t *testing.T) {
	src := "dbg!(  a  +\n  b )"
	ct := NewCallTracker()
	cmr := ct.TrackCall(lexer.Span{Lo: 0, Hi: len(src)}, NameDebug, types.UInt(types.U32), src)
	sym := ct.DebugSymbols()
	tc, ok := sym.Get(cmr)
	if !ok {
		t.Fatalf("expected debug symbol for minted CMR")
	}
	if tc.Name != NameDebug {
		t.Fatalf("expected NameDebug, got %v", tc.Name)
	}
	if tc.Text != "a + b" {
		t.Fatalf("expected collapsed/unwrapped text %q, got %q", "a + b", tc.Text)
	}
}

func TestMintCMRDeterministic(t *testing.T) {
	if mintCMR(0) != mintCMR(0) {
		t.Fatalf("mintCMR must be a pure function of its counter")
	}
	if mintCMR(0) == mintCMR(1) {
		t.Fatalf("distinct counters must mint distinct CMRs")
	}
}

func TestDefaultTrackerLogLevels(t *testing.T) {
	ct := NewCallTracker()
	src := "dbg!(x)"
	cmr := ct.TrackCall(lexer.Span{Lo: 0, Hi: len(src)}, NameDebug, types.UInt(types.U8), src)
	sym := ct.DebugSymbols()

	var gotLabel, gotValue string
	dt := NewDefaultTracker(sym).WithLogLevel(LogDebug).WithDebugSink(func(label, value string) {
		gotLabel, gotValue = label, value
	})
	if dt.CompileID == "" {
		t.Fatalf("expected a non-empty CompileID")
	}
	dt.HandleDebug(cmr, "5")
	if gotLabel != "x" || gotValue != "5" {
		t.Fatalf("expected sink to receive (x, 5), got (%q, %q)", gotLabel, gotValue)
	}

	// At LogNone no sinks are wired, so HandleJet/Warn are silent no-ops.
	quiet := NewDefaultTracker(sym)
	quiet.HandleJet("eq_32", []string{"1", "2"}, nil)
	quiet.Warn("should not panic")
}
