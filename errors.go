package snvclust

import "errors"

var (
	// ErrInsufficientData indicates quality filtering left too little data to
	// cluster: no usable loci, or fewer than two usable samples.
	ErrInsufficientData = errors.New("snvclust: insufficient data after filtering")
	// ErrDataQuality indicates a sample pair with zero valid comparisons, so
	// no distance can be computed for it.
	ErrDataQuality = errors.New("snvclust: sample pair has no valid comparisons")
	// ErrInternalInvariant indicates a broken internal invariant, such as a
	// non-root node without a parent in the membership table.
	ErrInternalInvariant = errors.New("snvclust: internal invariant violated")
)
