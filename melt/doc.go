// Package melt runs the full decompose-and-index pipeline over one
// tree/alignment pair.
//
// Oneshot reads a Newick guide tree and a FASTA alignment, decomposes
// the tree with package decomp, reorders the alignment records to match
// the resulting taxon permutation, builds the non-gap prefix index with
// package crucible, and writes the outputs: one <outdir>/subsets/<i>.afa
// alignment subset per decomposition range, plus <outdir>/melt.json
// holding the serialized index.
//
// Sequence names must exactly match the tree's leaf labels; a name the
// tree does not know is a fatal lookup error. All file-system failures
// are surfaced to the caller unchanged — the pipeline is deterministic
// and CPU-bound, so nothing is retried.
package melt
