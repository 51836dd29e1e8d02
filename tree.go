package snvclust

import "sort"

// Merge records one agglomeration step. Left and Right are the ids of the
// merged nodes (leaves 0..S-1, earlier merges from S up), Height is the Ward
// distance at which they join, Size the number of samples in the new node.
type Merge struct {
	Left, Right int
	Height      float64
	Size        int
}

// MergeTree is the full agglomeration history of S samples: S-1 merges in
// the order performed. Merge k creates node id S+k; the final merge is the
// root, id 2S-2. Under Ward linkage heights are non-decreasing with id.
type MergeTree struct {
	Samples int
	Merges  []Merge
}

// NodeCount returns the total number of tree nodes, leaves included.
func (t *MergeTree) NodeCount() int { return 2*t.Samples - 1 }

// Root returns the id of the final merge node.
func (t *MergeTree) Root() int { return 2*t.Samples - 2 }

// Node returns the merge that created node id. id must be a merge node,
// i.e. at least Samples.
func (t *MergeTree) Node(id int) Merge { return t.Merges[id-t.Samples] }

// Memberships resolves every node id to the sorted sample indices in its
// subtree: leaves map to themselves, merge nodes to the union of their
// children's members, the root to every sample.
func (t *MergeTree) Memberships() [][]int {
	members := make([][]int, t.NodeCount())
	for i := 0; i < t.Samples; i++ {
		members[i] = []int{i}
	}
	for k, m := range t.Merges {
		left, right := members[m.Left], members[m.Right]
		merged := make([]int, 0, len(left)+len(right))
		merged = append(merged, left...)
		merged = append(merged, right...)
		sort.Ints(merged)
		members[t.Samples+k] = merged
	}
	return members
}

// parentNode returns the id of n's parent: the smallest id above n whose
// member list contains n's first member. The root returns -1.
func parentNode(n int, members [][]int) int {
	first := members[n][0]
	for p := n + 1; p < len(members); p++ {
		if containsSample(members[p], first) {
			return p
		}
	}
	return -1
}

// containsSample reports whether the sorted list holds sample s.
func containsSample(sorted []int, s int) bool {
	i := sort.SearchInts(sorted, s)
	return i < len(sorted) && sorted[i] == s
}
