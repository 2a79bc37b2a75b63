package melt

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/RuneBlaze/crucible/crucible"
	"github.com/RuneBlaze/crucible/decomp"
	"github.com/RuneBlaze/crucible/phytree"

	"github.com/evolbioinfo/goalign/io/fasta"
)

// Sentinel errors for alignment/tree reconciliation.
var (
	// ErrRecordCount indicates the alignment and the tree disagree on
	// the number of taxa.
	ErrRecordCount = errors.New("melt: alignment record count does not match tree taxa")
	// ErrDuplicateRecord indicates two alignment records share a name.
	ErrDuplicateRecord = errors.New("melt: duplicate alignment record")
)

// MetadataFile is the name of the serialized index, under the output
// directory.
const MetadataFile = "melt.json"

// SubsetsDir is the directory holding per-range alignment subsets,
// under the output directory.
const SubsetsDir = "subsets"

// record is one named, aligned sequence.
type record struct {
	name string
	seq  string
}

// Oneshot runs the whole pipeline: decompose the tree at treePath with
// the given maximum unit size, reorder the alignment at inputPath to
// the decomposition's taxon permutation, then write per-range subset
// files and the serialized index under outDir.
//
// Parse failures, unknown sequence names, and I/O failures are all
// fatal and returned unchanged.
func Oneshot(inputPath, treePath string, maxSize int, outDir string, opts ...Option) error {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Tree first: nothing else is worth parsing if the tree is bad.
	t, err := phytree.ParseNewickFile(treePath)
	if err != nil {
		return err
	}
	h, err := decomp.Hierarchical(t, maxSize)
	if err != nil {
		return err
	}
	slog.Info("decomposed input tree",
		slog.Int("num_subsets", len(h.DecompositionRanges)),
		slog.Int("ntaxa", t.NumTaxa()))

	// 2) Load the alignment and put each record at its permuted position.
	records, err := readAlignment(inputPath)
	if err != nil {
		return err
	}
	ordered, err := reorder(records, t, h.ReorderedTaxa)
	if err != nil {
		return err
	}

	// 3) Build the prefix index over the reordered sequences.
	seqs := make([][]byte, len(ordered))
	for i, r := range ordered {
		seqs[i] = []byte(r.seq)
	}
	ctxt := crucible.FromSeqs(seqs, h.DecompositionRanges)

	// 4) Emit subsets and metadata.
	subsetsRoot := filepath.Join(outDir, SubsetsDir)
	if err = os.MkdirAll(subsetsRoot, 0o755); err != nil {
		return fmt.Errorf("melt: create %s: %w", subsetsRoot, err)
	}
	for i, r := range h.DecompositionRanges {
		path := filepath.Join(subsetsRoot, strconv.Itoa(i)+".afa")
		if err = writeSubset(path, ordered[r.Lb:r.Ub], cfg.Wrap); err != nil {
			return err
		}
	}
	slog.Info("wrote alignment subsets", slog.Int("count", len(h.DecompositionRanges)), slog.String("dir", subsetsRoot))

	metaPath := filepath.Join(outDir, MetadataFile)
	f, err := os.Create(metaPath)
	if err != nil {
		return fmt.Errorf("melt: create %s: %w", metaPath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err = ctxt.WriteJSON(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("melt: flush %s: %w", metaPath, err)
	}
	slog.Info("wrote metadata", slog.String("path", metaPath))

	return nil
}

// readAlignment parses the FASTA alignment at path, preserving record
// order. goalign rejects ragged alignments, so equal sequence width is
// guaranteed on success.
func readAlignment(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("melt: open %s: %w", path, err)
	}
	defer f.Close()

	al, err := fasta.NewParser(bufio.NewReader(f)).Parse()
	if err != nil {
		return nil, fmt.Errorf("melt: parse alignment %s: %w", path, err)
	}

	records := make([]record, 0, al.NbSequences())
	al.Iterate(func(name string, seq string) bool {
		records = append(records, record{name: name, seq: seq})

		return false
	})

	return records, nil
}

// reorder places each record at the position its taxon occupies in the
// permutation. Every record name must resolve to a tree taxon, every
// taxon must appear exactly once.
func reorder(records []record, t *phytree.Tree, reorderedTaxa []int) ([]record, error) {
	n := t.NumTaxa()
	if len(records) != n {
		return nil, fmt.Errorf("%w: %d records, %d taxa", ErrRecordCount, len(records), n)
	}

	// position[taxon id] = index in the permutation.
	position := make([]int, n)
	for i, taxon := range reorderedTaxa {
		position[taxon] = i
	}

	ordered := make([]record, n)
	seen := make([]bool, n)
	for _, r := range records {
		id, err := t.TaxonID(r.name)
		if err != nil {
			return nil, fmt.Errorf("melt: alignment record %q: %w", r.name, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRecord, r.name)
		}
		seen[id] = true
		ordered[position[id]] = r
	}

	return ordered, nil
}

// writeSubset writes one range's records as FASTA, wrapping sequence
// lines at wrap characters.
func writeSubset(path string, records []record, wrap int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("melt: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err = fmt.Fprintf(w, ">%s\n", r.name); err != nil {
			return fmt.Errorf("melt: write %s: %w", path, err)
		}
		seq := r.seq
		if wrap <= 0 {
			wrap = len(seq)
		}
		for len(seq) > 0 {
			line := seq
			if len(line) > wrap {
				line = seq[:wrap]
			}
			seq = seq[len(line):]
			if _, err = fmt.Fprintf(w, "%s\n", line); err != nil {
				return fmt.Errorf("melt: write %s: %w", path, err)
			}
		}
	}

	return w.Flush()
}
