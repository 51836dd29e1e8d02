// Package output renders clustering results as TSV tables and Newick trees.
package output

import (
	"fmt"
	"io"

	"github.com/cliftlab/snvclust"
)

// WriteClusters prints one row per kept sample: name, collapsed cluster
// label, and (when topLevel is set) the two-way group label. Labels are
// integer indices into res.Clusters and res.TopLevel; rows follow
// kept-sample order.
func WriteClusters(w io.Writer, names []string, res *snvclust.Result, topLevel, header bool) error {
	kept, err := keptNames(names, res.KeptSamples)
	if err != nil {
		return err
	}
	clusterOf, err := labelTable(res.Clusters, len(kept))
	if err != nil {
		return err
	}
	var topOf []int
	if topLevel {
		if topOf, err = labelTable(res.TopLevel, len(kept)); err != nil {
			return err
		}
	}

	if header {
		h := "sample\tcluster"
		if topLevel {
			h += "\ttop_level"
		}
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	for i, name := range kept {
		if topLevel {
			_, err = fmt.Fprintf(w, "%s\t%d\t%d\n", name, clusterOf[i], topOf[i])
		} else {
			_, err = fmt.Fprintf(w, "%s\t%d\n", name, clusterOf[i])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// keptNames maps kept-sample indices back to their input names.
func keptNames(names []string, kept []int) ([]string, error) {
	out := make([]string, len(kept))
	for i, orig := range kept {
		if orig < 0 || orig >= len(names) {
			return nil, fmt.Errorf("output: kept sample index %d outside name list of %d", orig, len(names))
		}
		out[i] = names[orig]
	}
	return out, nil
}

// labelTable inverts a partition into a per-sample group index, checking
// that every sample appears exactly in one group.
func labelTable(groups [][]int, samples int) ([]int, error) {
	labels := make([]int, samples)
	for i := range labels {
		labels[i] = -1
	}
	for gi, members := range groups {
		for _, m := range members {
			if m < 0 || m >= samples {
				return nil, fmt.Errorf("output: sample index %d outside 0..%d", m, samples-1)
			}
			if labels[m] >= 0 {
				return nil, fmt.Errorf("output: sample %d assigned to two groups", m)
			}
			labels[m] = gi
		}
	}
	for i, l := range labels {
		if l < 0 {
			return nil, fmt.Errorf("output: sample %d missing from partition", i)
		}
	}
	return labels, nil
}
