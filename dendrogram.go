package snvclust

// DendrogramNode holds the plot geometry of one merge: the x positions and
// heights of its two children and its own merge height. The support
// annotation anchors at (X, Height), the midpoint of the children on the
// merge bar.
type DendrogramNode struct {
	ID            int
	XLeft, XRight float64
	YLeft, YRight float64
	Height        float64
	X             float64
}

// Dendrogram is the numeric layout a renderer needs: leaves at x = 10k+5 in
// left-to-right traversal order, one three-segment bar per merge.
type Dendrogram struct {
	// LeafOrder lists sample indices left to right.
	LeafOrder []int
	// LeafX maps sample index to x position.
	LeafX []float64
	// Nodes lists the merge nodes in id order.
	Nodes []DendrogramNode
}

// BuildDendrogram computes plot coordinates for a merge tree. Leaves are
// placed by depth-first traversal from the root, left child first; merge
// node x positions are the midpoints of their children.
func BuildDendrogram(tree *MergeTree) *Dendrogram {
	n := tree.Samples
	d := &Dendrogram{
		LeafOrder: make([]int, 0, n),
		LeafX:     make([]float64, n),
	}

	var place func(id int)
	place = func(id int) {
		if id < n {
			d.LeafX[id] = float64(10*len(d.LeafOrder) + 5)
			d.LeafOrder = append(d.LeafOrder, id)
			return
		}
		m := tree.Node(id)
		place(m.Left)
		place(m.Right)
	}
	place(tree.Root())

	x := make([]float64, tree.NodeCount())
	y := make([]float64, tree.NodeCount())
	for i := 0; i < n; i++ {
		x[i] = d.LeafX[i]
	}
	d.Nodes = make([]DendrogramNode, 0, len(tree.Merges))
	for k, m := range tree.Merges {
		id := n + k
		node := DendrogramNode{
			ID:     id,
			XLeft:  x[m.Left],
			XRight: x[m.Right],
			YLeft:  y[m.Left],
			YRight: y[m.Right],
			Height: m.Height,
		}
		node.X = (node.XLeft + node.XRight) / 2
		x[id] = node.X
		y[id] = m.Height
		d.Nodes = append(d.Nodes, node)
	}
	return d
}
