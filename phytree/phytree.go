package phytree

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/evolbioinfo/gotree/io/newick"
	gtree "github.com/evolbioinfo/gotree/tree"
)

// Sentinel errors for tree construction and taxon lookup.
var (
	// ErrNilTree indicates a nil source tree was supplied.
	ErrNilTree = errors.New("phytree: source tree is nil")

	// ErrUnnamedLeaf indicates a leaf without a label was encountered.
	ErrUnnamedLeaf = errors.New("phytree: leaf has no label")

	// ErrDuplicateTaxon indicates two leaves share the same label.
	ErrDuplicateTaxon = errors.New("phytree: duplicate taxon label")

	// ErrTaxonNotFound indicates a label has no corresponding leaf.
	ErrTaxonNotFound = errors.New("phytree: taxon not found")
)

// Tree is an immutable rooted tree over dense integer node ids.
// Id 0 is always the root. Leaves additionally carry taxon ids
// 0..NumTaxa() in first-encounter (pre-order) order.
type Tree struct {
	parent   []int    // parent[v] = parent id, -1 for the root
	children [][]int  // children[v] in original Newick order
	taxon    []int    // taxon[v] = taxon id for leaves, -1 for internal nodes
	labels   []string // labels[taxon id] = leaf label
	ids      map[string]int
}

// FromGotree flattens a parsed gotree tree into a dense Tree.
// Node ids are assigned in pre-order starting at the root (id 0),
// children in the order gotree reports neighbors, which is the order
// they appeared in the Newick source.
func FromGotree(src *gtree.Tree) (*Tree, error) {
	if src == nil || src.Root() == nil {
		return nil, ErrNilTree
	}

	t := &Tree{ids: make(map[string]int)}

	// frame pairs a node with its gotree parent (for orientation) and the
	// already-assigned dense id of that parent.
	type frame struct {
		node     *gtree.Node
		from     *gtree.Node
		parentID int
	}
	stack := []frame{{node: src.Root(), from: nil, parentID: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := len(t.parent)
		t.parent = append(t.parent, f.parentID)
		t.children = append(t.children, nil)
		t.taxon = append(t.taxon, -1)
		if f.parentID >= 0 {
			t.children[f.parentID] = append(t.children[f.parentID], id)
		}

		// Neighbors include the node we arrived from; orient away from it.
		var kids []*gtree.Node
		for _, nb := range f.node.Neigh() {
			if nb != f.from {
				kids = append(kids, nb)
			}
		}
		if len(kids) == 0 {
			name := f.node.Name()
			if name == "" {
				return nil, fmt.Errorf("%w: node id %d", ErrUnnamedLeaf, id)
			}
			if _, dup := t.ids[name]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateTaxon, name)
			}
			t.taxon[id] = len(t.labels)
			t.ids[name] = len(t.labels)
			t.labels = append(t.labels, name)
			continue
		}
		// Children are pushed in reverse so the stack pops them in
		// Newick order, keeping dense ids a pre-order numbering.
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], from: f.node, parentID: id})
		}
	}

	return t, nil
}

// ParseNewick reads a single Newick tree from r and flattens it.
func ParseNewick(r io.Reader) (*Tree, error) {
	src, err := newick.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("phytree: newick parse: %w", err)
	}

	return FromGotree(src)
}

// ParseNewickFile reads a single Newick tree from the named file.
func ParseNewickFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phytree: open %s: %w", path, err)
	}
	defer f.Close()

	return ParseNewick(f)
}

// NumNodes returns the total number of nodes.
func (t *Tree) NumNodes() int { return len(t.parent) }

// NumTaxa returns the number of leaves.
func (t *Tree) NumTaxa() int { return len(t.labels) }

// Root returns the root node id (always 0).
func (t *Tree) Root() int { return 0 }

// IsLeaf reports whether v has no children.
func (t *Tree) IsLeaf(v int) bool { return len(t.children[v]) == 0 }

// Children returns v's children in Newick order. The slice is owned by
// the Tree and must not be mutated.
func (t *Tree) Children(v int) []int { return t.children[v] }

// Parent returns v's parent id, or -1 for the root.
func (t *Tree) Parent(v int) int { return t.parent[v] }

// Taxon returns the taxon id of leaf v, or -1 if v is internal.
func (t *Tree) Taxon(v int) int { return t.taxon[v] }

// TaxonLabel returns the label of the given taxon id.
func (t *Tree) TaxonLabel(taxon int) string { return t.labels[taxon] }

// TaxonID resolves a leaf label to its taxon id.
func (t *Tree) TaxonID(label string) (int, error) {
	id, ok := t.ids[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTaxonNotFound, label)
	}

	return id, nil
}
