package melt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RuneBlaze/crucible/crucible"
	"github.com/RuneBlaze/crucible/decomp"
	"github.com/RuneBlaze/crucible/melt"
	"github.com/RuneBlaze/crucible/phytree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile drops a fixture into dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// The fixture tree ((A,(B,C)),D) with maxSize 2 decomposes into ranges
// [0,4), [0,2), [2,4) over the permutation B, C, A, D — see the decomp
// package tests for the derivation.
const fixtureTree = "((A,(B,C)),D);\n"

// Records are deliberately out of tree order to exercise reordering.
const fixtureAlignment = ">D\nGG--G\n>A\nAAAA-\n>B\nA--A-\n>C\n-CC-G\n"

// TestOneshot_WritesSubsetsAndMetadata runs the whole pipeline against
// a temp directory and checks every artifact.
func TestOneshot_WritesSubsetsAndMetadata(t *testing.T) {
	dir := t.TempDir()
	aln := writeFile(t, dir, "aln.fasta", fixtureAlignment)
	nwk := writeFile(t, dir, "tree.nwk", fixtureTree)
	out := filepath.Join(dir, "out")

	require.NoError(t, melt.Oneshot(aln, nwk, 2, out))

	// Subset files: one per range, records in permuted order.
	sub0, err := os.ReadFile(filepath.Join(out, melt.SubsetsDir, "0.afa"))
	require.NoError(t, err)
	assert.Equal(t, ">B\nA--A-\n>C\n-CC-G\n>A\nAAAA-\n>D\nGG--G\n", string(sub0))

	sub1, err := os.ReadFile(filepath.Join(out, melt.SubsetsDir, "1.afa"))
	require.NoError(t, err)
	assert.Equal(t, ">B\nA--A-\n>C\n-CC-G\n", string(sub1))

	sub2, err := os.ReadFile(filepath.Join(out, melt.SubsetsDir, "2.afa"))
	require.NoError(t, err)
	assert.Equal(t, ">A\nAAAA-\n>D\nGG--G\n", string(sub2))

	_, err = os.Stat(filepath.Join(out, melt.SubsetsDir, "3.afa"))
	assert.True(t, os.IsNotExist(err), "only one file per range")

	// Metadata: the serialized index round-trips and answers queries
	// consistent with the reordered sequences.
	f, err := os.Open(filepath.Join(out, melt.MetadataFile))
	require.NoError(t, err)
	defer f.Close()
	ctxt, err := crucible.ReadJSON(f)
	require.NoError(t, err)

	assert.Equal(t, []decomp.Range{{Lb: 0, Ub: 4}, {Lb: 0, Ub: 2}, {Lb: 2, Ub: 4}}, ctxt.HmmRanges)
	require.Equal(t, 4, ctxt.NumSeqs())
	require.Equal(t, 5, ctxt.Width())
	// Column 0 over B,C,A,D: "A", "-", "A", "G".
	assert.Equal(t, uint32(3), ctxt.NcharsAt(0, 0))
	assert.Equal(t, uint32(1), ctxt.NcharsAt(1, 0))
	assert.Equal(t, uint32(2), ctxt.NcharsAt(2, 0))
	assert.Equal(t, []uint32{3, 3, 2, 2, 2}, ctxt.Nchars(0))
}

// TestOneshot_WrapsSequences verifies the configurable FASTA line width.
func TestOneshot_WrapsSequences(t *testing.T) {
	dir := t.TempDir()
	aln := writeFile(t, dir, "aln.fasta", fixtureAlignment)
	nwk := writeFile(t, dir, "tree.nwk", fixtureTree)
	out := filepath.Join(dir, "out")

	require.NoError(t, melt.Oneshot(aln, nwk, 2, out, melt.WithWrap(4)))

	sub1, err := os.ReadFile(filepath.Join(out, melt.SubsetsDir, "1.afa"))
	require.NoError(t, err)
	assert.Equal(t, ">B\nA--A\n-\n>C\n-CC-\nG\n", string(sub1))
}

// TestOneshot_UnknownTaxon fails when an alignment name is absent from
// the tree's leaf labels.
func TestOneshot_UnknownTaxon(t *testing.T) {
	dir := t.TempDir()
	aln := writeFile(t, dir, "aln.fasta", ">D\nGG--G\n>A\nAAAA-\n>B\nA--A-\n>X\n-CC-G\n")
	nwk := writeFile(t, dir, "tree.nwk", fixtureTree)

	err := melt.Oneshot(aln, nwk, 2, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, phytree.ErrTaxonNotFound)
}

// TestOneshot_RecordCountMismatch fails when the alignment misses taxa.
func TestOneshot_RecordCountMismatch(t *testing.T) {
	dir := t.TempDir()
	aln := writeFile(t, dir, "aln.fasta", ">A\nAAAA-\n>B\nA--A-\n")
	nwk := writeFile(t, dir, "tree.nwk", fixtureTree)

	err := melt.Oneshot(aln, nwk, 2, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, melt.ErrRecordCount)
}

// TestOneshot_MissingInputs propagates file-system failures unchanged.
func TestOneshot_MissingInputs(t *testing.T) {
	dir := t.TempDir()
	nwk := writeFile(t, dir, "tree.nwk", fixtureTree)

	err := melt.Oneshot(filepath.Join(dir, "nope.fasta"), nwk, 2, filepath.Join(dir, "out"))
	assert.Error(t, err)

	aln := writeFile(t, dir, "aln.fasta", fixtureAlignment)
	err = melt.Oneshot(aln, filepath.Join(dir, "nope.nwk"), 2, filepath.Join(dir, "out"))
	assert.Error(t, err)
}
