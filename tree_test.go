package snvclust

import (
	"reflect"
	"testing"
)

// fourSampleTree is the tree produced by clustering fourSampleMatrix:
// node 4 = {0,1}, node 5 = {2,3}, node 6 = root.
func fourSampleTree() *MergeTree {
	return &MergeTree{
		Samples: 4,
		Merges: []Merge{
			{Left: 0, Right: 1, Height: 0.1, Size: 2},
			{Left: 2, Right: 3, Height: 0.1, Size: 2},
			{Left: 4, Right: 5, Height: 0.8426149773176359, Size: 4},
		},
	}
}

func TestMemberships_FourSamples(t *testing.T) {
	members := fourSampleTree().Memberships()
	want := [][]int{
		{0}, {1}, {2}, {3},
		{0, 1}, {2, 3}, {0, 1, 2, 3},
	}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("Memberships() = %v, want %v", members, want)
	}
}

func TestMemberships_SortedAfterUnorderedMerge(t *testing.T) {
	// Node 3 joins samples 1 and 2, then the root pulls in sample 0.
	// The root's member list must still come out sorted.
	tree := &MergeTree{
		Samples: 3,
		Merges: []Merge{
			{Left: 1, Right: 2, Height: 0.1, Size: 2},
			{Left: 0, Right: 3, Height: 0.5, Size: 3},
		},
	}
	members := tree.Memberships()
	want := [][]int{
		{0}, {1}, {2},
		{1, 2}, {0, 1, 2},
	}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("Memberships() = %v, want %v", members, want)
	}
}

func TestMergeTree_NodeCountAndRoot(t *testing.T) {
	tree := fourSampleTree()
	if tree.NodeCount() != 7 {
		t.Errorf("NodeCount() = %d, want 7", tree.NodeCount())
	}
	if tree.Root() != 6 {
		t.Errorf("Root() = %d, want 6", tree.Root())
	}
	node := tree.Node(5)
	if node.Left != 2 || node.Right != 3 {
		t.Errorf("Node(5) = %+v, want children 2 and 3", node)
	}
}

func TestParentNode(t *testing.T) {
	tree := fourSampleTree()
	members := tree.Memberships()

	tests := []struct {
		node, want int
	}{
		{0, 4},
		{1, 4},
		{2, 5},
		{3, 5},
		{4, 6},
		{5, 6},
		{6, -1},
	}
	for _, tt := range tests {
		if got := parentNode(tt.node, members); got != tt.want {
			t.Errorf("parentNode(%d) = %d, want %d", tt.node, got, tt.want)
		}
	}
}

func TestParentNode_SmallestEnclosing(t *testing.T) {
	// Sample 2 appears in nodes 5, 6 and 7; its parent is the
	// smallest of those ids.
	tree := &MergeTree{
		Samples: 5,
		Merges: []Merge{
			{Left: 2, Right: 3, Height: 0.1, Size: 2},
			{Left: 4, Right: 5, Height: 0.3, Size: 3},
			{Left: 0, Right: 6, Height: 0.6, Size: 4},
			{Left: 1, Right: 7, Height: 0.9, Size: 5},
		},
	}
	members := tree.Memberships()
	if got := parentNode(2, members); got != 5 {
		t.Errorf("parentNode(2) = %d, want 5", got)
	}
	if got := parentNode(5, members); got != 6 {
		t.Errorf("parentNode(5) = %d, want 6", got)
	}
	if got := parentNode(8, members); got != -1 {
		t.Errorf("parentNode(root) = %d, want -1", got)
	}
}
