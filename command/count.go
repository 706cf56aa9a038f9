package command

import "math"

// MaxCount stands in for the original INT_MAX default end-of-range bound.
const MaxCount = math.MaxInt32

// Count is the `n`, `n,m`, or `%n` iteration selector consumed by `g`,
// `v`, `x`, and `y` (spec.md §3, §4.4 item 5). The zero value selects
// every iteration (Start=0 implies End=MaxCount once DefaultRange has
// been applied).
type Count struct {
	Start, End int
	Mod        bool
}

// DefaultRange fills in End when only a bare Start was parsed, per
// spec.md §4.4 item 5: "if followed by ,number, parse end; else if
// start>0, end←start, else end←INT_MAX".
func (c *Count) DefaultRange() {
	if c.End != 0 {
		return
	}
	if c.Start > 0 {
		c.End = c.Start
	} else {
		c.End = MaxCount
	}
}

// Matches reports whether iteration iter (1-based, incremented once per
// loop entry per spec.md §4.6) is selected by c: `mod ? (iter % start ==
// 0) : (start ≤ iter ≤ end)`.
func (c Count) Matches(iter int) bool {
	if c.Mod {
		if c.Start == 0 {
			return false
		}
		return iter%c.Start == 0
	}
	return iter >= c.Start && iter <= c.End
}

// Negative reports whether either bound was given as a negative number,
// meaning it must be remapped by Init before Matches is meaningful
// (spec.md §4.6 "negative count... two passes").
func (c Count) Negative() bool { return c.Start < 0 || c.End < 0 }

// Init remaps negative Start/End to absolute iteration numbers once the
// total iteration count (simulation-pass match count + 1) is known,
// mirroring count_init(sub, N+1): a negative count counts back from the
// end, so -1 becomes the last iteration.
func (c *Count) Init(total int) {
	if c.Start < 0 {
		c.Start = total + c.Start
	}
	if c.End < 0 {
		c.End = total + c.End
	}
}
