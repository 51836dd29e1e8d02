package snvclust

import (
	"fmt"
	"sort"
)

// verdictFork marks a node whose split stays unresolved during the collapse
// walk. Every other verdict is the node id of a finalized cluster boundary.
const verdictFork = -1

// CollapseClusters flattens a scored merge tree into robust clusters.
//
// Nodes are walked from the root down to id 0. The root's absent parent
// counts as a fork. A node under a fork keeps splitting when its own support
// meets the threshold and otherwise finalizes as a cluster boundary with its
// own id; a node under a boundary inherits the boundary id. Support exactly
// equal to the threshold meets it.
//
// Singleton leaves take part in the walk with support 0, so descent always
// terminates at a boundary and the output partitions the sample set: the
// distinct boundary ids in ascending order, expanded to their member lists.
//
// A non-root node whose parent cannot be resolved is ErrInternalInvariant.
func CollapseClusters(members [][]int, support []float64, threshold float64) ([][]int, error) {
	root := len(members) - 1
	verdicts := make([]int, len(members))

	for n := root; n >= 0; n-- {
		if n != root {
			p := parentNode(n, members)
			if p < 0 {
				return nil, fmt.Errorf("%w: parent node of %d not found", ErrInternalInvariant, n)
			}
			if verdicts[p] != verdictFork {
				// absorbed into the ancestor's finalized cluster
				verdicts[n] = verdicts[p]
				continue
			}
		}
		if support[n] >= threshold {
			verdicts[n] = verdictFork
		} else {
			verdicts[n] = n
		}
	}

	seen := make(map[int]bool, len(members))
	ids := make([]int, 0, len(members))
	for _, v := range verdicts {
		if v != verdictFork && !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}
	sort.Ints(ids)

	clusters := make([][]int, len(ids))
	for i, id := range ids {
		clusters[i] = append([]int(nil), members[id]...)
	}
	return clusters, nil
}

// TopLevelSplit returns the coarse partition. When the root's support meets
// the threshold the result is exactly two groups, the member lists of the
// root's children, ordered so the group holding the smallest sample index
// comes first. Otherwise every sample lands in one group.
func TopLevelSplit(tree *MergeTree, members [][]int, support []float64, threshold float64) [][]int {
	root := tree.Root()
	if support[root] < threshold {
		return [][]int{append([]int(nil), members[root]...)}
	}
	rm := tree.Node(root)
	left := append([]int(nil), members[rm.Left]...)
	right := append([]int(nil), members[rm.Right]...)
	if right[0] < left[0] {
		left, right = right, left
	}
	return [][]int{left, right}
}
