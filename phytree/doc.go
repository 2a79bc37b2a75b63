// Package phytree provides a compact, read-only view of a rooted
// phylogenetic tree, tuned for index-based algorithms.
//
// A Tree is built once — usually from a Newick file via ParseNewickFile,
// which delegates parsing to gotree — and is immutable afterwards. Nodes
// are identified by dense integer ids 0..NumNodes(), with the root always
// id 0 and children kept in their original Newick order, so every
// traversal below is deterministic. Each leaf carries a taxon id in
// 0..NumTaxa() and a label; labels are unique.
//
// The package offers exactly the traversal surface tree-decomposition
// algorithms need:
//
//   - IsLeaf / Children / Parent — constant-time structure queries.
//   - Ancestors — the chain from a node up to the root.
//   - Postorder — whole-tree post-order, children before parents.
//   - PostorderFrom — post-order restricted to one subtree.
//   - PostorderFromExcluding — post-order of a subtree that skips the
//     subtrees rooted at a caller-supplied exclusion set; this is the
//     primitive that lets decomposition confine a search to the nodes
//     still belonging to one unit.
//
// All traversals are iterative (explicit stacks), so tree depth never
// translates into call-stack growth.
//
// Complexity: construction O(nodes); structure queries O(1);
// traversals O(visited nodes).
package phytree
