// Package crucible is a toolkit for balanced decomposition of
// phylogenetic trees and constant-time character accounting over the
// matching multiple-sequence alignment.
//
// 🚀 What is crucible?
//
//	A small, focused library that takes a rooted guide tree plus an
//	alignment and turns them into:
//		• A taxon permutation whose contiguous slices follow the tree
//		• A nested hierarchy of decomposition ranges, largest-first
//		• A prefix-sum index answering "how many non-gap characters does
//		  range r contribute to column j?" with one subtraction
//		• Per-range alignment subset files plus a JSON metadata record
//
// ✨ Why crucible?
//
//   - Work-list driven – an explicit size-keyed heap instead of recursion,
//     so arbitrarily deep trees never grow the call stack
//   - Incremental bookkeeping – subtree sizes are maintained under cuts,
//     never recomputed
//   - Deterministic – pinned tie-breaks make every run reproducible
//
// Everything is organized under four subpackages and one command:
//
//	phytree/      — dense-id rooted tree model, Newick input via gotree
//	decomp/       — subtree size table + balanced hierarchical decomposer
//	crucible/     — the non-gap prefix-sum index (CrucibleCtxt)
//	melt/         — the end-to-end pipeline: decompose, reorder, write
//	cmd/crucible/ — the CLI: crucible melt -i aln.fasta -t tree.nwk -o out
//
// Quick ASCII example:
//
//	        ┌──A          decompose with maxSize=2:
//	    ┌───┤                ranges      [0,4) [0,2) [2,4)
//	    │   └──B             permutation A B C D
//	────┤
//	    │   ┌──C
//	    └───┤
//	        └──D
//
// Dive into the per-package doc.go files for algorithms, complexity
// notes and usage examples.
package crucible
