package melt

// DefaultWrap is the line width used for subset FASTA output.
const DefaultWrap = 60

// Options configures the output side of the pipeline.
//   - Wrap: sequence line width in subset files (≤ 0 disables wrapping).
type Options struct {
	Wrap int
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{Wrap: DefaultWrap}
}

// Option mutates Options before the pipeline runs.
type Option func(*Options)

// WithWrap overrides the subset FASTA line width.
func WithWrap(w int) Option {
	return func(o *Options) { o.Wrap = w }
}
