package tracker

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/elements-project/simplicityhl-go/internal/lexer"
	"github.com/elements-project/simplicityhl-go/internal/types"
)

// TestDebugSymbolsDumpSnapshot pins the rendered form of a small table of
// tracked call sites, the way a caller inspecting `debug-symbols` output
// would see it.
func TestDebugSymbolsDumpSnapshot(t *testing.T) {
	src := `assert(jet::eq_32(x, 32)); dbg!(y); unwrap(z)`
	ct := NewCallTracker()
	ct.TrackCall(lexer.Span{Lo: 0, Hi: 25}, NameAssert, types.Unit(), src)
	ct.TrackCall(lexer.Span{Lo: 27, Hi: 34}, NameDebug, types.UInt(types.U8), src)
	ct.TrackCall(lexer.Span{Lo: 36, Hi: 45}, NameUnwrap, types.UInt(types.U32), src)

	snaps.MatchSnapshot(t, ct.DebugSymbols().Dump())
}
