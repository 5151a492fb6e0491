package layout

import (
	"math/bits"
	"math/rand/v2"

	"github.com/matzehuels/featuremap/pkg/feature"
)

// maxClique returns the clique number of the graph on n vertices given by
// edges, by exhaustive search. Only for small n.
func maxClique(n int, edges []Edge) int {
	adj := make([]uint32, n)
	for _, e := range edges {
		adj[e.A] |= 1 << e.B
		adj[e.B] |= 1 << e.A
	}
	best := 0
	for set := uint32(1); set < 1<<n; set++ {
		size := bits.OnesCount32(set)
		if size <= best {
			continue
		}
		ok := true
		for v := 0; v < n && ok; v++ {
			if set&(1<<v) != 0 && set&^(1<<v)&^adj[v] != 0 {
				ok = false
			}
		}
		if ok {
			best = size
		}
	}
	return best
}

func randomFeatures(rng *rand.Rand, length, n int) []feature.Feature {
	feats := make([]feature.Feature, n)
	for i := range feats {
		a := rng.IntN(length + 1)
		b := min(length, a+rng.IntN(length/3+1))
		feats[i] = feature.Feature{Start: a, End: b, Strand: feature.Strand(rng.IntN(3) - 1)}
	}
	return feats
}

func randomCircular(rng *rand.Rand, length, n int) []feature.Feature {
	feats := make([]feature.Feature, n)
	for i := range feats {
		a := rng.IntN(length)
		feats[i] = feature.Feature{Start: a, End: a + rng.IntN(length/2+1)}
	}
	return feats
}

// chromaticNumber returns the fewest colors that properly color the graph
// on n vertices given by edges, by exhaustive search. Only for small n.
func chromaticNumber(n int, edges []Edge) int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.B] = append(adj[e.B], e.A)
	}
	colors := make([]int, n)
	var fits func(v, k int) bool
	fits = func(v, k int) bool {
		if v == n {
			return true
		}
	next:
		for c := range k {
			for _, u := range adj[v] {
				if colors[u] == c {
					continue next
				}
			}
			colors[v] = c
			if fits(v+1, k) {
				return true
			}
		}
		return false
	}
	k := 0
	for !fits(0, k) {
		k++
	}
	return k
}
