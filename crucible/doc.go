// Package crucible answers non-gap character counts over a decomposed
// alignment in constant time per cell.
//
// A Ctxt pairs the decomposition ranges produced by package decomp with
// a (n+1)×k prefix-sum table: entry (i, j) counts the non-gap symbols in
// column j among the first i sequences of the reordered alignment. Row 0
// is all zero, so the count contributed by any range [lb, ub) to column
// j is one subtraction, table[ub][j] − table[lb][j], regardless of where
// the range boundaries fall.
//
// The table is built once from the reordered sequences in O(n·k) and is
// immutable afterwards. Ctxt is the unit of persistence: it serializes
// to JSON as a record of the table and the range list, and round-trips
// through ReadJSON/WriteJSON.
package crucible
