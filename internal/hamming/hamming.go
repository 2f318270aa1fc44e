// Package hamming implements the weighted Hamming geometry that underlies
// the quantitative semantics of atomic propositions: border extraction,
// shortest weighted distance to a target set, and multi-source extreme
// depth — all via Dijkstra over the Hamming graph (one edge per ±1 change
// of a single coordinate), using internal/pqueue as the work list.
package hamming

import (
	"math"

	"github.com/rfielding/mvgrn-ctl/internal/dov"
	"github.com/rfielding/mvgrn-ctl/internal/pqueue"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// Weights returns the per-coordinate weight w_i = 1/m_i for the given
// variable order and maxima.
func Weights(varNames []string, maxActivities map[string]int) []float64 {
	w := make([]float64, len(varNames))
	for i, v := range varNames {
		w[i] = 1.0 / float64(maxActivities[v])
	}
	return w
}

// neighbors yields the valid Hamming neighbors of s (each coordinate ±1;
// a change that would leave [0, maxima[i]] is skipped) paired with the
// weighted step length.
func neighbors(s stg.State, maxima []int, weights []float64) []struct {
	step float64
	to   stg.State
} {
	values := s.Values()
	out := make([]struct {
		step float64
		to   stg.State
	}, 0, 2*len(values))
	for i := range values {
		for _, delta := range [2]int{-1, 1} {
			nv := values[i] + delta
			if nv < 0 || nv > maxima[i] {
				continue
			}
			next := append([]int(nil), values...)
			next[i] = nv
			out = append(out, struct {
				step float64
				to   stg.State
			}{weights[i], stg.NewState(next...)})
		}
	}
	return out
}

// GetBorderStates returns (border, coborder) for region: border is the
// subset of region adjacent (one Hamming step) to its complement, and
// coborder is the set of outside neighbours touched from border.
func GetBorderStates(region dov.Set, maxima []int, weights []float64) (border, coborder dov.Set) {
	border, coborder = dov.NewSet(), dov.NewSet()
	for s := range region {
		for _, nb := range neighbors(s, maxima, weights) {
			if !region.Contains(nb.to) {
				border.Add(s)
				coborder.Add(nb.to)
			}
		}
	}
	return border, coborder
}

// WeightedDistance returns the shortest weighted Hamming path from s to any
// state in target, via single-source Dijkstra. Returns +Inf if unreachable.
func WeightedDistance(s stg.State, target dov.Set, maxima []int, weights []float64) float64 {
	if target.Contains(s) {
		return 0
	}
	q := pqueue.NewMinQueue[stg.State]()
	_ = q.PushOrDecrease(s, 0.0)
	visited := dov.NewSet()

	for !q.IsEmpty() {
		current, dist, _ := q.PopMin()
		if target.Contains(current) {
			return dist
		}
		visited.Add(current)
		for _, nb := range neighbors(current, maxima, weights) {
			if visited.Contains(nb.to) {
				continue
			}
			_ = q.PushOrDecrease(nb.to, dist+nb.step)
		}
	}
	return math.Inf(1)
}

// FindExtremeDepth runs a multi-source Dijkstra seeded at frontier (distance
// 0), relaxing only through states in region, and returns the greatest
// weighted distance any region-state lies from the frontier, along with one
// state that attains it (witness tracking, diagnostic only).
func FindExtremeDepth(region, frontier dov.Set, maxima []int, weights []float64) (float64, stg.State) {
	dist := make(map[stg.State]float64, len(region)+len(frontier))
	for s := range region {
		dist[s] = math.Inf(1)
	}
	for s := range frontier {
		dist[s] = math.Inf(1)
	}

	q := pqueue.NewMinQueue[stg.State]()
	for s := range frontier {
		dist[s] = 0
		_ = q.PushOrDecrease(s, 0)
	}

	for !q.IsEmpty() {
		current, curDist, _ := q.PopMin()
		for _, nb := range neighbors(current, maxima, weights) {
			if !region.Contains(nb.to) {
				continue
			}
			nd := curDist + nb.step
			if nd < dist[nb.to] {
				dist[nb.to] = nd
				_ = q.PushOrDecrease(nb.to, nd)
			}
		}
	}

	extreme := 0.0
	var witness stg.State
	first := true
	for s := range region {
		d := dist[s]
		if first || d > extreme {
			extreme = d
			witness = s
			first = false
		}
	}
	return extreme, witness
}
