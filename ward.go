package snvclust

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"gonum.org/v1/gonum/mat"
)

// LinkageInput selects what the Ward recurrence runs on.
type LinkageInput string

const (
	// LinkageProportions feeds the proportion dissimilarities to Ward
	// directly. This is the default.
	LinkageProportions LinkageInput = "proportions"
	// LinkageEuclideanRows first converts the matrix to Euclidean distances
	// between its full rows before running Ward; kept as an explicit option
	// for comparison against older runs.
	LinkageEuclideanRows LinkageInput = "euclidean"
)

// WardLinkage agglomerates samples over a precomputed dissimilarity matrix
// using Ward's minimum-variance criterion.
//
// At every step the two active clusters at minimal current distance are
// merged (ties broken by first encounter in ascending index order, so merge
// order is deterministic) and distances to the remaining clusters are
// updated with the Lance-Williams recurrence
//
//	d(k, ij)^2 = ((ni+nk)*d(k,i)^2 + (nj+nk)*d(k,j)^2 - nk*d(i,j)^2) / (ni+nj+nk)
//
// Merge node ids are assigned in merge order starting at the sample count.
// Ward heights are non-decreasing; a decrease is logged as a data anomaly
// and never reordered away.
func WardLinkage(dist *mat.SymDense, input LinkageInput) (*MergeTree, error) {
	switch input {
	case LinkageProportions, LinkageInput(""):
	case LinkageEuclideanRows:
		dist = euclideanOfRows(dist)
	default:
		return nil, fmt.Errorf("snvclust: unknown linkage input %q", input)
	}

	n := dist.SymmetricDim()
	if n < 2 {
		return nil, fmt.Errorf("%w: cannot cluster %d samples", ErrInsufficientData, n)
	}

	// Working state per slot: pairwise distances, cluster size, current node
	// id. A merge collapses into the lower slot and deactivates the higher.
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d[i][j] = dist.At(i, j)
		}
	}
	size := make([]int, n)
	id := make([]int, n)
	active := make([]bool, n)
	for i := 0; i < n; i++ {
		size[i], id[i], active[i] = 1, i, true
	}

	tree := &MergeTree{Samples: n, Merges: make([]Merge, 0, n-1)}
	prev := math.Inf(-1)
	for step := 0; step < n-1; step++ {
		ba, bb := -1, -1
		best := math.Inf(1)
		for a := 0; a < n; a++ {
			if !active[a] {
				continue
			}
			for b := a + 1; b < n; b++ {
				if !active[b] {
					continue
				}
				if d[a][b] < best {
					best, ba, bb = d[a][b], a, b
				}
			}
		}
		if ba < 0 || math.IsInf(best, 1) || math.IsNaN(best) {
			return nil, fmt.Errorf("%w: no finite distance between remaining clusters at step %d",
				ErrDataQuality, step)
		}
		if best < prev {
			log.Warnf("snvclust: merge height decreased from %v to %v at step %d", prev, best, step)
		}
		prev = best

		left, right := id[ba], id[bb]
		if left > right {
			left, right = right, left
		}
		newSize := size[ba] + size[bb]
		tree.Merges = append(tree.Merges, Merge{Left: left, Right: right, Height: best, Size: newSize})

		ni, nj, dij := float64(size[ba]), float64(size[bb]), best
		for k := 0; k < n; k++ {
			if !active[k] || k == ba || k == bb {
				continue
			}
			nk := float64(size[k])
			dik, djk := d[ba][k], d[bb][k]
			v := ((ni+nk)*dik*dik + (nj+nk)*djk*djk - nk*dij*dij) / (ni + nj + nk)
			if v < 0 {
				// float arithmetic can push the radicand a hair below zero
				v = 0
			}
			nd := math.Sqrt(v)
			d[ba][k] = nd
			d[k][ba] = nd
		}
		active[bb] = false
		size[ba] = newSize
		id[ba] = n + step
	}

	return tree, nil
}
