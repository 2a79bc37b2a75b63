// Package decomp recursively decomposes a rooted phylogenetic tree into
// contiguous taxon ranges bounded by a maximum size.
//
// 🚀 What does it do?
//
//	Given a tree over n taxa and a size bound, Hierarchical repeatedly
//	cuts the tree at the internal edge that splits the current piece
//	most evenly, reorders the taxa so each piece occupies a contiguous
//	slice of one global permutation, and records every intermediate
//	piece of size ≥ 2 as a range. The result is a nested hierarchy of
//	ranges usable for coarse-to-fine sequence placement strategies.
//
// ✨ Key properties:
//   - work-list driven: an explicit max-heap keyed by piece size replaces
//     recursion, so the largest unresolved piece is always processed next
//     and tree depth never grows the call stack
//   - subtree sizes maintained incrementally under successive cuts —
//     never recomputed from scratch
//   - in-place stable partition of the taxon permutation per cut, using
//     one reusable scratch bitset over the taxon ids
//   - fully deterministic: ties in cut imbalance favor the first
//     candidate in post-order, ties in scheduling favor the lower range
//     bound, then the lower root id
//
// ⚙️ Usage:
//
//	t, err := phytree.ParseNewickFile("tree.nwk")
//	// handle err
//	h, err := decomp.Hierarchical(t, 10)
//	// handle ErrBadMaxSize / ErrNoCutFound
//	for _, r := range h.DecompositionRanges {
//	    taxa := h.ReorderedTaxa[r.Lb:r.Ub]
//	    _ = taxa // one decomposition unit
//	}
//
// Complexity:
//
//   - Time:  O(n · d) where d is the decomposition depth — each level
//     re-scans the nodes of the pieces it splits.
//   - Space: O(nodes) for the size table plus O(n) scratch.
package decomp
