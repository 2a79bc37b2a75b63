package decomp

import "github.com/RuneBlaze/crucible/phytree"

// SubtreeSizes returns, for every node id, the number of leaves in the
// subtree rooted there. One post-order pass: a leaf counts 1, an
// internal node sums its children.
//
// The returned slice is the decomposer's working size table: Hierarchical
// mutates its copy in place as cuts are applied.
//
// Complexity: O(nodes) time and space.
func SubtreeSizes(t *phytree.Tree) []int {
	sizes := make([]int, t.NumNodes())
	for _, v := range t.Postorder() {
		if t.IsLeaf(v) {
			sizes[v] = 1
			continue
		}
		for _, c := range t.Children(v) {
			sizes[v] += sizes[c]
		}
	}

	return sizes
}
