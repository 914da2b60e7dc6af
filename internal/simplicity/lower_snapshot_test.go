package simplicity

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestLowerGraphSnapshots pins the combinator-graph shape of a handful of
// representative programs so an unintended lowering change shows up as a
// snapshot diff rather than a silent behavior change.
func TestLowerGraphSnapshots(t *testing.T) {
	cases := map[string]string{
		"assert": `
fn main() {
    assert(jet::eq_8(1, 1));
}
`,
		"fold": `
fn add_one(acc: u8, el: u8) -> u8 {
    jet::bitwise_or_8(acc, el)
}
fn main() {
    let xs: List<u8, 4> = [1, 2];
    let total: u8 = fold::<add_one, 4>(xs, 0);
    assert(jet::eq_8(total, total));
}
`,
		"match": `
fn main() {
    let e: Either<u8, u8> = Left(3);
    let v: u8 = match e {
        x: u8 => x,
        y: u8 => y,
    };
    assert(jet::eq_8(v, v));
}
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			n := lowerSource(t, src)
			snaps.MatchSnapshot(t, n.Dump())
		})
	}
}
