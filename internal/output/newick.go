package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cliftlab/snvclust"
)

// WriteNewick serializes the result's merge tree as a one-line Newick
// string. Branch lengths are height differences between a node and its
// parent, merge nodes are labeled with their bootstrap support, and leaf
// names have Newick metacharacters replaced by underscores. The root
// carries a label but no branch length.
func WriteNewick(w io.Writer, names []string, res *snvclust.Result) error {
	kept, err := keptNames(names, res.KeptSamples)
	if err != nil {
		return err
	}
	tree := res.Tree
	if tree == nil || tree.Samples != len(kept) {
		return fmt.Errorf("output: tree and kept sample list disagree")
	}

	var b strings.Builder
	appendSubtree(&b, tree, kept, res.Support, tree.Root())
	b.WriteString(";\n")
	_, err = io.WriteString(w, b.String())
	return err
}

func appendSubtree(b *strings.Builder, t *snvclust.MergeTree, names []string, support []float64, id int) {
	if id < t.Samples {
		b.WriteString(sanitizeName(names[id]))
		return
	}
	m := t.Node(id)
	b.WriteByte('(')
	appendSubtree(b, t, names, support, m.Left)
	b.WriteByte(':')
	b.WriteString(formatLength(m.Height - nodeHeight(t, m.Left)))
	b.WriteByte(',')
	appendSubtree(b, t, names, support, m.Right)
	b.WriteByte(':')
	b.WriteString(formatLength(m.Height - nodeHeight(t, m.Right)))
	b.WriteByte(')')
	if id < len(support) {
		b.WriteString(formatLength(support[id]))
	}
}

func nodeHeight(t *snvclust.MergeTree, id int) float64 {
	if id < t.Samples {
		return 0
	}
	return t.Node(id).Height
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// sanitizeName rewrites characters that have structural meaning in Newick.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', ',', ':', ';', '[', ']', '\'', ' ', '\t':
			return '_'
		}
		return r
	}, name)
}
