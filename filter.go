package snvclust

import "fmt"

// FilterTensor applies the two quality gates to a raw difference tensor.
//
// First it drops every locus whose fraction of missing off-diagonal pair
// entries exceeds cfg.MaxMissing (a fraction exactly equal to the ceiling
// keeps the locus). From the surviving loci it then counts, per sample, the
// loci at which the sample has a valid call, and drops samples whose count
// is below cfg.MinSNVs (a count exactly equal to the floor keeps the
// sample).
//
// It returns the filtered tensor and the kept sample indices into the
// original sample order. Zero surviving loci, or fewer than two surviving
// samples, is ErrInsufficientData.
func FilterTensor(t *DifferenceTensor, cfg Config) (*DifferenceTensor, []int, error) {
	s := t.Samples()
	if s < 2 {
		return nil, nil, fmt.Errorf("%w: got %d samples, need at least 2", ErrInsufficientData, s)
	}
	pairs := s * (s - 1) / 2

	keptLoci := make([]int, 0, t.Loci())
	for l := 0; l < t.Loci(); l++ {
		missing := 0
		for i := 0; i < s; i++ {
			for j := i + 1; j < s; j++ {
				if t.At(l, i, j) == CodeMissing {
					missing++
				}
			}
		}
		if float64(missing)/float64(pairs) <= cfg.MaxMissing {
			keptLoci = append(keptLoci, l)
		}
	}
	if len(keptLoci) == 0 {
		return nil, nil, fmt.Errorf("%w: none of %d loci have a missing pair fraction <= %v",
			ErrInsufficientData, t.Loci(), cfg.MaxMissing)
	}

	keptSamples := make([]int, 0, s)
	for i := 0; i < s; i++ {
		valid := 0
		for _, l := range keptLoci {
			if t.At(l, i, i) != CodeMissing {
				valid++
			}
		}
		if valid >= cfg.MinSNVs {
			keptSamples = append(keptSamples, i)
		}
	}
	if len(keptSamples) < 2 {
		return nil, nil, fmt.Errorf("%w: only %d of %d samples have at least %d valid SNVs, need at least 2",
			ErrInsufficientData, len(keptSamples), s, cfg.MinSNVs)
	}

	return t.subset(keptLoci, keptSamples), keptSamples, nil
}
