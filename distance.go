package snvclust

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BuildDistanceMatrix computes the pairwise dissimilarity matrix of a
// difference tensor: for each sample pair, the sum of its non-missing
// difference entries over the chosen loci divided by twice their count,
// a proportion of differing alleles in [0, 1].
//
// With a nil rng the tensor's loci are used as-is. A non-nil rng first draws
// Loci() locus indices uniformly with replacement, one bootstrap replicate's
// view of the data.
//
// A pair with zero valid comparisons across the chosen loci makes the whole
// matrix unusable and returns ErrDataQuality naming the pair, so that NaN
// can never reach the clustering stage.
func BuildDistanceMatrix(t *DifferenceTensor, rng *rand.Rand) (*mat.SymDense, error) {
	s := t.Samples()
	loci := make([]int, t.Loci())
	for l := range loci {
		loci[l] = l
	}
	if rng != nil {
		for l := range loci {
			loci[l] = rng.IntN(t.Loci())
		}
	}

	// Accumulate in condensed (upper-triangle) order, one locus plane at a
	// time.
	pairs := s * (s - 1) / 2
	sums := make([]int64, pairs)
	counts := make([]int64, pairs)
	for _, l := range loci {
		plane := t.plane(l)
		k := 0
		for i := 0; i < s; i++ {
			for j := i + 1; j < s; j++ {
				if d := plane[i*s+j]; d != CodeMissing {
					sums[k] += int64(d)
					counts[k]++
				}
				k++
			}
		}
	}

	m := mat.NewSymDense(s, nil)
	k := 0
	for i := 0; i < s; i++ {
		for j := i + 1; j < s; j++ {
			if counts[k] == 0 {
				return nil, fmt.Errorf("%w: samples %d and %d share no loci with valid calls",
					ErrDataQuality, i, j)
			}
			m.SetSym(i, j, float64(sums[k])/(2*float64(counts[k])))
			k++
		}
	}
	return m, nil
}

// euclideanOfRows derives the alternate linkage input: the Euclidean
// distance between full rows of the proportion matrix, diagonal included.
func euclideanOfRows(m *mat.SymDense) *mat.SymDense {
	n := m.SymmetricDim()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out.SetSym(i, j, floats.Distance(rows[i], rows[j], 2))
		}
	}
	return out
}
