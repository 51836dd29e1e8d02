package snvclust

import (
	"fmt"
	"sync"
)

// DifferenceTensor holds per-locus pairwise genotype differences for a set
// of samples. Entry (l, i, j) is the absolute difference of the genotype
// codes of samples i and j at locus l (one of 0, 1, 2), or CodeMissing when
// either call is missing. Every locus plane is symmetric. The diagonal entry
// (l, i, i) is 0 when sample i has a valid call at locus l and CodeMissing
// otherwise; beyond carrying that validity bit it takes no part in any
// distance.
type DifferenceTensor struct {
	loci    int
	samples int
	data    []int8 // loci × samples × samples, row-major
}

// Loci returns the number of locus planes.
func (t *DifferenceTensor) Loci() int { return t.loci }

// Samples returns the number of samples per plane.
func (t *DifferenceTensor) Samples() int { return t.samples }

// At returns the difference entry for samples i and j at locus l.
func (t *DifferenceTensor) At(l, i, j int) int8 {
	return t.data[(l*t.samples+i)*t.samples+j]
}

// plane returns the locus l slab as a samples×samples row-major slice.
func (t *DifferenceTensor) plane(l int) []int8 {
	s := t.samples
	return t.data[l*s*s : (l+1)*s*s]
}

// NewDifferenceTensor builds the tensor from per-locus genotype code rows,
// where codes[l][s] is the genotype code of sample s at locus l (a value
// from GenotypeCode). workers sets how many goroutines share the locus
// range; values <= 1 build sequentially. The result is identical either way.
func NewDifferenceTensor(codes [][]int8, workers int) (*DifferenceTensor, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("snvclust: genotype input has no loci")
	}
	s := len(codes[0])
	if s == 0 {
		return nil, fmt.Errorf("snvclust: genotype input has no samples")
	}
	for l, row := range codes {
		if len(row) != s {
			return nil, fmt.Errorf("snvclust: genotype row %d has %d samples, want %d", l, len(row), s)
		}
	}

	t := &DifferenceTensor{
		loci:    len(codes),
		samples: s,
		data:    make([]int8, len(codes)*s*s),
	}

	if workers <= 1 {
		fillDifferences(t, codes, 0, t.loci)
		return t, nil
	}

	lociPerWorker := (t.loci + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * lociPerWorker
		end := start + lociPerWorker
		if end > t.loci {
			end = t.loci
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fillDifferences(t, codes, start, end)
		}(start, end)
	}
	wg.Wait()

	return t, nil
}

func fillDifferences(t *DifferenceTensor, codes [][]int8, start, end int) {
	s := t.samples
	for l := start; l < end; l++ {
		row := codes[l]
		plane := t.plane(l)
		for i := 0; i < s; i++ {
			plane[i*s+i] = DifferenceCode(row[i], row[i])
			for j := i + 1; j < s; j++ {
				d := DifferenceCode(row[i], row[j])
				plane[i*s+j] = d
				plane[j*s+i] = d
			}
		}
	}
}

// subset returns a new tensor restricted to the given locus and sample
// indices, in the order given.
func (t *DifferenceTensor) subset(loci, samples []int) *DifferenceTensor {
	out := &DifferenceTensor{
		loci:    len(loci),
		samples: len(samples),
		data:    make([]int8, len(loci)*len(samples)*len(samples)),
	}
	for ol, l := range loci {
		src := t.plane(l)
		dst := out.plane(ol)
		for oi, i := range samples {
			for oj, j := range samples {
				dst[oi*out.samples+oj] = src[i*t.samples+j]
			}
		}
	}
	return out
}
