package decomp

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/RuneBlaze/crucible/phytree"

	"github.com/bits-and-blooms/bitset"
)

// Hierarchical decomposes t into contiguous taxon ranges of size below
// maxSize wherever a split exists, and returns the resulting hierarchy.
//
// The algorithm is work-list driven rather than recursive: pending
// units live in a max-heap keyed by current size, so the largest
// unresolved piece is always refined next. Each refinement step
//
//  1. records the unit's range (every unit of size ≥ 2 is recorded,
//     intermediate levels of the hierarchy included);
//  2. searches the unit's still-owned nodes, in post-order, for the
//     internal node whose removal splits the unit closest to 50/50;
//  3. commits the cut: subtracts the cut subtree's leaf count from
//     every ancestor below the unit root, adds the cut node to the
//     permanent exclusion set, and stably partitions the unit's slice
//     of the permutation so the cut-off taxa come first;
//  4. enqueues the two resulting units.
//
// A unit whose size is below maxSize is final. A unit with no internal
// cut candidate (a pure leaf cluster, e.g. under a star-shaped root)
// simply stops refining; it is not an error.
//
// Preconditions and validation (in order):
//  1. t must be non-nil (ErrNilTree).
//  2. maxSize must be ≥ 1 (ErrBadMaxSize).
//
// ErrNoCutFound signals an internal invariant violation — internal
// candidates were seen but none selected — and aborts the whole
// decomposition.
//
// Determinism: imbalance ties keep the first candidate in post-order;
// equal-size units pop in order of lower range bound, then lower root
// id. Two runs over the same tree and maxSize yield identical results.
func Hierarchical(t *phytree.Tree, maxSize int) (*TaxaHierarchy, error) {
	// 1) Validate inputs.
	if t == nil {
		return nil, ErrNilTree
	}
	if maxSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxSize, maxSize)
	}

	n := t.NumTaxa()

	// 2) The permutation starts as the identity; cuts reorder it in place.
	reordered := make([]int, n)
	for i := range reordered {
		reordered[i] = i
	}

	// 3) Working state: the size table (mutated under cuts), the
	//    permanent cut set seeded with the root, the scratch bitset
	//    reused for every partition, and the unit heap.
	sizes := SubtreeSizes(t)
	cuts := map[int]struct{}{t.Root(): {}}
	label := bitset.New(uint(n))
	var ranges []Range

	pq := make(unitPQ, 0, 4)
	heap.Init(&pq)
	heap.Push(&pq, unit{size: n, lb: 0, ub: n, root: t.Root(), record: true})

	for pq.Len() > 0 {
		u := heap.Pop(&pq).(unit)

		// 4) Every unit of size ≥ 2 contributes a range, final or not.
		//    Re-rooted units carry record=false: their range is already on
		//    the list from the unit they descend from.
		if u.record && u.size >= 2 {
			ranges = append(ranges, Range{Lb: u.lb, Ub: u.ub})
		}
		if u.size < maxSize {
			continue
		}

		// 5) Search the unit for the best cut. The exclusion set confines
		//    the traversal to nodes still belonging to this unit; the
		//    unit root and leaves are not candidates. Strict < keeps the
		//    first minimizer in post-order.
		bestImbalance := 0
		bestCut := -1
		nonLeaf := false
		for _, v := range t.PostorderFromExcluding(u.root, cuts) {
			if v == u.root || t.IsLeaf(v) {
				continue
			}
			nonLeaf = true
			imbalance := absDiff(u.size-sizes[v], sizes[v])
			if bestCut < 0 || imbalance < bestImbalance {
				bestImbalance = imbalance
				bestCut = v
			}
		}
		if !nonLeaf {
			// Pure leaf cluster: nothing to split, stop refining this unit.
			continue
		}
		if bestCut < 0 {
			return nil, fmt.Errorf("%w: unit [%d,%d) rooted at node %d", ErrNoCutFound, u.lb, u.ub, u.root)
		}

		// 6) Commit the cut: the mass under bestCut leaves every branch
		//    between it and the unit root.
		cutSize := sizes[bestCut]
		for _, a := range t.Ancestors(bestCut) {
			if a == u.root {
				break
			}
			sizes[a] -= cutSize
		}
		cuts[bestCut] = struct{}{}

		// 7) Label the taxa under the cut, then stably move them to the
		//    front of the unit's slice. Relative order within each side
		//    is preserved; the scratch bitset is cleared for reuse.
		for _, v := range t.PostorderFrom(bestCut) {
			if t.IsLeaf(v) {
				label.Set(uint(t.Taxon(v)))
			}
		}
		view := reordered[u.lb:u.ub]
		sort.SliceStable(view, func(i, j int) bool {
			return label.Test(uint(view[i])) && !label.Test(uint(view[j]))
		})
		label.ClearAll()

		// 8) Both halves become pending units: the cut-off side rooted at
		//    the cut, the remainder still rooted at the unit root. A cut
		//    that carries the unit's whole mass (the root had nothing
		//    left beside it) merely re-roots the unit: same range, one
		//    level deeper, and the range must not be recorded twice.
		rest := u.size - cutSize
		if rest == 0 {
			heap.Push(&pq, unit{size: cutSize, lb: u.lb, ub: u.ub, root: bestCut, record: false})
			continue
		}
		heap.Push(&pq, unit{size: cutSize, lb: u.lb, ub: u.lb + cutSize, root: bestCut, record: true})
		heap.Push(&pq, unit{size: rest, lb: u.lb + cutSize, ub: u.ub, root: u.root, record: true})
	}

	return &TaxaHierarchy{ReorderedTaxa: reordered, DecompositionRanges: ranges}, nil
}

// absDiff returns |a - b| without converting through floats.
func absDiff(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}

// unit is one pending decomposition piece: a slice [lb, ub) of the
// permutation, the node the piece is rooted at, and its current size
// (== ub - lb), kept explicit as the heap key. record is false only for
// re-rooted units whose range is already on the result list.
type unit struct {
	size   int
	lb     int
	ub     int
	root   int
	record bool
}

// unitPQ is a max-heap of pending units: larger size first, ties by
// lower bound then root id, so the pop order is a total order.
type unitPQ []unit

// Len returns the number of pending units.
func (pq unitPQ) Len() int { return len(pq) }

// Less orders by size descending, then lb ascending, then root ascending.
func (pq unitPQ) Less(i, j int) bool {
	if pq[i].size != pq[j].size {
		return pq[i].size > pq[j].size
	}
	if pq[i].lb != pq[j].lb {
		return pq[i].lb < pq[j].lb
	}

	return pq[i].root < pq[j].root
}

// Swap swaps two pending units.
func (pq unitPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x (a unit) onto the heap. Called by heap.Push.
func (pq *unitPQ) Push(x interface{}) { *pq = append(*pq, x.(unit)) }

// Pop removes and returns the highest-priority unit. Called by heap.Pop.
func (pq *unitPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	u := old[n-1]
	*pq = old[:n-1]

	return u
}
