package crucible

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/RuneBlaze/crucible/decomp"
)

// GapChar is the alignment gap sentinel; every other symbol counts as a
// character.
const GapChar byte = '-'

// Ctxt is the sequence count index: the non-gap prefix-sum table plus
// the decomposition ranges it answers queries for. Both fields are
// immutable after construction and serialize together.
type Ctxt struct {
	// NcharsPartialSum has n+1 rows and k columns; row 0 is all zero and
	// rows are monotonically non-decreasing per column.
	NcharsPartialSum [][]uint32 `json:"nchars_partial_sum"`

	// HmmRanges mirror the decomposition ranges over the reordered
	// alignment, so each range can be queried on its own.
	HmmRanges []decomp.Range `json:"hmm_ranges"`
}

// New wraps an already-built prefix table and its ranges.
func New(ncharsPartialSum [][]uint32, hmmRanges []decomp.Range) *Ctxt {
	return &Ctxt{NcharsPartialSum: ncharsPartialSum, HmmRanges: hmmRanges}
}

// FromSeqs builds the index for seqs, which must be ordered to match
// the permutation the ranges refer to.
//
// Precondition: all sequences have identical length. The builder does
// not defend against ragged input; a short row panics on index.
//
// Complexity: O(n·k) time and space.
func FromSeqs(seqs [][]byte, hmmRanges []decomp.Range) *Ctxt {
	n := len(seqs)
	k := 0
	if n > 0 {
		k = len(seqs[0])
	}

	table := make([][]uint32, n+1)
	table[0] = make([]uint32, k)
	for i := 1; i <= n; i++ {
		row := make([]uint32, k)
		prev := table[i-1]
		seq := seqs[i-1]
		for j := 0; j < k; j++ {
			row[j] = prev[j]
			if seq[j] != GapChar {
				row[j]++
			}
		}
		table[i] = row
	}

	return New(table, hmmRanges)
}

// NumHMMs returns the number of queryable ranges.
func (c *Ctxt) NumHMMs() int { return len(c.HmmRanges) }

// NumSeqs returns n, the number of indexed sequences.
func (c *Ctxt) NumSeqs() int { return len(c.NcharsPartialSum) - 1 }

// Width returns k, the alignment width.
func (c *Ctxt) Width() int {
	if len(c.NcharsPartialSum) == 0 {
		return 0
	}

	return len(c.NcharsPartialSum[0])
}

// NcharsAt returns the non-gap count contributed by range hmmIdx to a
// single column. O(1).
func (c *Ctxt) NcharsAt(hmmIdx, col int) uint32 {
	r := c.HmmRanges[hmmIdx]

	return c.NcharsPartialSum[r.Ub][col] - c.NcharsPartialSum[r.Lb][col]
}

// NcharsInto fills buf with the per-column non-gap counts of range
// hmmIdx. buf must hold at least Width() entries. O(k).
func (c *Ctxt) NcharsInto(hmmIdx int, buf []uint32) {
	r := c.HmmRanges[hmmIdx]
	hi, lo := c.NcharsPartialSum[r.Ub], c.NcharsPartialSum[r.Lb]
	for j := range lo {
		buf[j] = hi[j] - lo[j]
	}
}

// Nchars returns a freshly allocated per-column count vector for range
// hmmIdx.
func (c *Ctxt) Nchars(hmmIdx int) []uint32 {
	buf := make([]uint32, c.Width())
	c.NcharsInto(hmmIdx, buf)

	return buf
}

// WriteJSON serializes c to w as the two-field metadata record.
func (c *Ctxt) WriteJSON(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("crucible: encode metadata: %w", err)
	}

	return nil
}

// ReadJSON deserializes a Ctxt previously written by WriteJSON.
func ReadJSON(r io.Reader) (*Ctxt, error) {
	var c Ctxt
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("crucible: decode metadata: %w", err)
	}

	return &c, nil
}
