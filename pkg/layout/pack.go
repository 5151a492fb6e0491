package layout

import (
	"cmp"
	"math"
	"slices"
)

// span is a half-open occupancy interval [lo, hi) in sequence units. idx is
// the position of the owning item in the caller's slice.
type span struct {
	lo, hi float64
	idx    int
}

func compareSpans(a, b span) int {
	return cmp.Or(cmp.Compare(a.lo, b.lo), cmp.Compare(a.hi, b.hi), cmp.Compare(a.idx, b.idx))
}

// pieces splits an origin-crossing span into its tail and head parts.
// With period <= 0 the space is linear and s is returned unchanged.
func (s span) pieces(first, period float64) []span {
	end := first + period
	if period <= 0 || s.hi <= end {
		return []span{s}
	}
	return []span{
		{lo: s.lo, hi: end, idx: s.idx},
		{lo: first, hi: min(s.hi-period, s.lo), idx: s.idx},
	}
}

// overlaps reports whether a and b share a stretch of positive length.
func overlaps(a, b span, first, period float64) bool {
	for _, p := range a.pieces(first, period) {
		for _, q := range b.pieces(first, period) {
			if p.lo < q.hi && q.lo < p.hi {
				return true
			}
		}
	}
	return false
}

// track is one row of the packer. marker is the rightmost coordinate taken
// from the left; limit is where the tail of an origin-crossing span starts.
type track struct {
	marker, limit float64
}

// pack writes a row for every span to out[span.idx] and returns the number
// of rows used. With period > 0 the coordinate space is a circle of that
// length starting at first.
//
// Linear spaces are packed greedily, which is optimal. On a circle the
// greedy pass cut at the origin can use more rows than needed, so when it
// misses the coverage lower bound the circle is cut again at every span
// start, and small inputs fall back to an exact search.
func pack(spans []span, first, period float64, out []int) int {
	rows := packFrom(spans, first, period, out)
	if period <= 0 || len(spans) < 2 {
		return rows
	}
	lower := maxCoverage(spans, first, period)
	if rows <= lower {
		return rows
	}

	trial := make([]int, len(out))
	keep := func(n int) {
		rows = n
		for _, s := range spans {
			out[s.idx] = trial[s.idx]
		}
	}
	for _, cut := range cutPoints(spans) {
		if n := packFrom(rotate(spans, cut, period), cut, period, trial); n < rows {
			keep(n)
			if rows == lower {
				return rows
			}
		}
	}
	if len(spans) <= exactLimit {
		if n, ok := colorExact(spans, first, period, lower, rows, trial); ok {
			keep(n)
		}
	}
	return rows
}

// packFrom is the greedy pass: spans crossing first+period each open a
// row, then the rest take the lowest row they fit in, in start order.
func packFrom(spans []span, first, period float64, out []int) int {
	var wrapped, plain []span
	for _, s := range spans {
		if period > 0 && s.hi > first+period {
			wrapped = append(wrapped, s)
		} else {
			plain = append(plain, s)
		}
	}
	slices.SortFunc(wrapped, compareSpans)
	slices.SortFunc(plain, compareSpans)

	tracks := make([]track, 0, len(wrapped)+1)
	for _, s := range wrapped {
		out[s.idx] = len(tracks)
		tracks = append(tracks, track{marker: min(s.hi-period, s.lo), limit: s.lo})
	}

	for _, s := range plain {
		row := -1
		for i, t := range tracks {
			if t.marker <= s.lo && s.hi <= t.limit {
				row = i
				break
			}
		}
		if row < 0 {
			row = len(tracks)
			tracks = append(tracks, track{limit: math.Inf(1)})
		}
		tracks[row].marker = s.hi
		out[s.idx] = row
	}
	return len(tracks)
}

// rotate re-expresses spans on the circle starting at cut.
func rotate(spans []span, cut, period float64) []span {
	out := make([]span, len(spans))
	for i, s := range spans {
		lo := wrapFloat(s.lo, cut, period)
		out[i] = span{lo: lo, hi: lo + (s.hi - s.lo), idx: s.idx}
	}
	return out
}

// cutPoints returns the distinct span starts in ascending order.
func cutPoints(spans []span) []float64 {
	cuts := make([]float64, len(spans))
	for i, s := range spans {
		cuts[i] = s.lo
	}
	slices.Sort(cuts)
	return slices.Compact(cuts)
}

// maxCoverage is the largest number of spans covering one point of the
// circle, a lower bound on the rows any packing needs.
func maxCoverage(spans []span, first, period float64) int {
	type event struct {
		at    float64
		delta int
	}
	var events []event
	for _, s := range spans {
		for _, p := range s.pieces(first, period) {
			events = append(events, event{p.lo, 1}, event{p.hi, -1})
		}
	}
	// spans are half-open, so an end frees its point before a start takes it
	slices.SortFunc(events, func(a, b event) int {
		return cmp.Or(cmp.Compare(a.at, b.at), cmp.Compare(a.delta, b.delta))
	})
	cur, best := 0, 0
	for _, e := range events {
		cur += e.delta
		best = max(best, cur)
	}
	return best
}

const (
	exactLimit  = 48      // largest input searched exactly
	exactBudget = 1 << 20 // color attempts before the search gives up
)

// colorExact looks for a packing with fewer than upper rows, trying row
// counts from lower up. It reports false when none exists or the search
// budget runs out first.
func colorExact(spans []span, first, period float64, lower, upper int, out []int) (int, bool) {
	order := slices.Clone(spans)
	slices.SortFunc(order, compareSpans)

	n := len(order)
	adj := make([][]int, n)
	for i := range n {
		for j := range i {
			if overlaps(order[i], order[j], first, period) {
				adj[i] = append(adj[i], j)
			}
		}
	}

	colors := make([]int, n)
	budget := exactBudget
	var search func(v, k, used int) bool
	search = func(v, k, used int) bool {
		if v == n {
			return true
		}
		for c := 0; c < k && c <= used; c++ {
			if budget--; budget < 0 {
				return false
			}
			free := true
			for _, u := range adj[v] {
				if colors[u] == c {
					free = false
					break
				}
			}
			if free {
				colors[v] = c
				if search(v+1, k, max(used, c+1)) {
					return true
				}
			}
		}
		return false
	}

	for k := max(lower, 1); k < upper && budget > 0; k++ {
		if search(0, k, 0) {
			used := 0
			for i, s := range order {
				out[s.idx] = colors[i]
				used = max(used, colors[i]+1)
			}
			return used, true
		}
	}
	return 0, false
}

// wrapFloat reduces x into [first, first+period).
func wrapFloat(x, first, period float64) float64 {
	off := math.Mod(x-first, period)
	if off < 0 {
		off += period
	}
	return first + off
}
