// Package render draws annotated dendrograms with gonum/plot.
package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/cliftlab/snvclust"
)

// Options sizes the dendrogram figure.
type Options struct {
	Width  float64 // inches; 0 means 6
	Height float64 // inches; 0 means 6
}

// SaveDendrogram renders the layout to path, with the image format chosen
// by the file extension (.png, .svg and .pdf among others). Sample names
// tick the x axis at the leaf positions, rotated upright, and every merge
// bar carries its bootstrap support as a percentage at the bar midpoint.
func SaveDendrogram(path string, d *snvclust.Dendrogram, names []string, support []float64, opts Options) error {
	if len(names) != len(d.LeafX) {
		return fmt.Errorf("render: %d names for %d leaves", len(names), len(d.LeafX))
	}
	if opts.Width <= 0 {
		opts.Width = 6
	}
	if opts.Height <= 0 {
		opts.Height = 6
	}

	p := plot.New()
	p.Y.Label.Text = "Ward distance"
	p.X.Tick.Marker = leafTicks(d, names)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Tick.Label.Font.Size = 6
	p.X.Min = 0
	p.X.Max = float64(10 * len(d.LeafX))
	p.Y.Min = 0

	for _, node := range d.Nodes {
		bar, err := plotter.NewLine(plotter.XYs{
			{X: node.XLeft, Y: node.YLeft},
			{X: node.XLeft, Y: node.Height},
			{X: node.XRight, Y: node.Height},
			{X: node.XRight, Y: node.YRight},
		})
		if err != nil {
			return err
		}
		p.Add(bar)
	}

	labels, err := supportLabels(d, support)
	if err != nil {
		return err
	}
	p.Add(labels)

	return p.Save(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, path)
}

func leafTicks(d *snvclust.Dendrogram, names []string) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(d.LeafOrder))
	for pos, leaf := range d.LeafOrder {
		ticks[pos] = plot.Tick{Value: d.LeafX[leaf], Label: names[leaf]}
	}
	return plot.ConstantTicks(ticks)
}

func supportLabels(d *snvclust.Dendrogram, support []float64) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(d.Nodes)),
		Labels: make([]string, len(d.Nodes)),
	}
	for i, node := range d.Nodes {
		xyl.XYs[i] = plotter.XY{X: node.X, Y: node.Height}
		s := 0.0
		if node.ID < len(support) {
			s = support[node.ID]
		}
		xyl.Labels[i] = fmt.Sprintf("%.2f%%", s*100)
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
		labels.TextStyle[i].Font.Size = 6
	}
	return labels, nil
}
