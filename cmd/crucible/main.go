// Command crucible decomposes a phylogenetic tree and splits its
// alignment into per-range subset files plus a queryable metadata index.
package main

import (
	"log/slog"
	"os"

	"github.com/RuneBlaze/crucible/melt"

	"github.com/spf13/cobra"
)

var (
	flagInput   string
	flagTree    string
	flagMaxSize int
	flagOutdir  string
	flagWrap    int
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "crucible",
	Short:         "Balanced phylogenetic decomposition tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var meltCmd = &cobra.Command{
	Use:   "melt",
	Short: "Decompose a tree and split its alignment into subsets",
	Long: `Melt reads a rooted Newick tree and the matching FASTA alignment,
recursively decomposes the tree into balanced taxon ranges no larger
than the given size, and writes one alignment subset per range plus a
melt.json metadata file with per-column non-gap counts.`,
	RunE: runMelt,
}

func init() {
	meltCmd.Flags().StringVarP(&flagInput, "input", "i", "", "input FASTA alignment (required)")
	meltCmd.Flags().StringVarP(&flagTree, "tree", "t", "", "input Newick tree (required)")
	meltCmd.Flags().IntVarP(&flagMaxSize, "max-size", "s", 10, "maximum decomposition unit size")
	meltCmd.Flags().StringVarP(&flagOutdir, "outdir", "o", "", "output directory (required)")
	meltCmd.Flags().IntVar(&flagWrap, "wrap", melt.DefaultWrap, "sequence line width in subset files")
	_ = meltCmd.MarkFlagRequired("input")
	_ = meltCmd.MarkFlagRequired("tree")
	_ = meltCmd.MarkFlagRequired("outdir")

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(meltCmd)
}

func runMelt(cmd *cobra.Command, args []string) error {
	return melt.Oneshot(flagInput, flagTree, flagMaxSize, flagOutdir, melt.WithWrap(flagWrap))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("crucible failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
