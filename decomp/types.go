package decomp

import (
	"encoding/json"
	"fmt"
)

// Range is a half-open interval [Lb, Ub) of positions in a reordered
// taxon permutation. It serializes as a two-element JSON array, the
// form downstream tooling expects for range lists.
type Range struct {
	Lb int
	Ub int
}

// Len returns the number of taxa covered by r.
func (r Range) Len() int { return r.Ub - r.Lb }

// MarshalJSON encodes r as [lb, ub].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Lb, r.Ub})
}

// UnmarshalJSON decodes a [lb, ub] pair.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decomp: range must be a [lb, ub] pair: %w", err)
	}
	r.Lb, r.Ub = pair[0], pair[1]

	return nil
}

// TaxaHierarchy is the product of Hierarchical: a permutation of the
// taxon ids plus the ordered list of contiguous ranges into it, one per
// decomposition unit of size ≥ 2. Both fields are immutable once
// returned.
type TaxaHierarchy struct {
	// ReorderedTaxa[i] is the taxon id occupying position i.
	ReorderedTaxa []int

	// DecompositionRanges are intervals into ReorderedTaxa forming a
	// laminar family: any two ranges are either disjoint or nested.
	// They are recorded largest-first, so a parent range precedes both
	// of its children.
	DecompositionRanges []Range
}
