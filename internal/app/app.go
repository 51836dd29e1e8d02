// Package app wires the clustering pipeline to file inputs and outputs.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"

	"github.com/cliftlab/snvclust"
	"github.com/cliftlab/snvclust/internal/output"
	"github.com/cliftlab/snvclust/internal/render"
	"github.com/cliftlab/snvclust/internal/vcf"
)

// Options collects everything the command line configures.
type Options struct {
	VCFPath    string
	OutputPath string // TSV destination; empty or "-" writes stdout
	PlotPath   string // dendrogram image; empty disables
	NewickPath string // Newick tree; empty disables

	MinSNVs          int
	MaxMissing       float64
	Bootstrap        int
	Threshold        float64
	Threads          int
	Seed             uint64
	Linkage          string
	ReplicateTimeout time.Duration

	NoTopLevel bool
	NoHeader   bool
	Progress   bool
	PlotWidth  float64
	PlotHeight float64
}

// Run executes one end-to-end clustering: parse the VCF, build the
// difference tensor, cluster with bootstrap support, and write every
// requested output. The cluster table goes to stdout unless OutputPath
// names a file.
func Run(ctx context.Context, opts Options, stdout io.Writer) error {
	g, err := vcf.ReadFile(opts.VCFPath)
	if err != nil {
		return err
	}
	log.Infof("parsed %s: %d samples, %d biallelic records kept, %d skipped",
		opts.VCFPath, len(g.Samples), g.Kept, g.Skipped)

	tensor, err := snvclust.NewDifferenceTensor(g.Codes, opts.Threads)
	if err != nil {
		return err
	}

	cfg := snvclust.DefaultConfig()
	cfg.MinSNVs = opts.MinSNVs
	cfg.MaxMissing = opts.MaxMissing
	cfg.Bootstrap = opts.Bootstrap
	cfg.Threshold = opts.Threshold
	cfg.Workers = opts.Threads
	cfg.Seed = opts.Seed
	cfg.Linkage = snvclust.LinkageInput(opts.Linkage)
	cfg.ReplicateTimeout = opts.ReplicateTimeout

	var bar *pb.ProgressBar
	if opts.Progress {
		bar = pb.Full.Start64(int64(opts.Bootstrap))
		bar.Set(pb.Bytes, false)
		bar.SetWriter(os.Stderr) // keep the bar off the TSV stream
		cfg.Progress = func(done, total int) { bar.SetCurrent(int64(done)) }
	}

	res, err := snvclust.Run(ctx, tensor, cfg)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	log.Infof("kept %d of %d samples after quality filtering", len(res.KeptSamples), len(g.Samples))
	if res.Approximate {
		log.Warnf("bootstrap aborted early: support is approximate, from %d of %d replicates",
			res.Completed, res.Requested)
	}
	log.Infof("%d clusters, %d top-level groups", len(res.Clusters), len(res.TopLevel))

	if err := writeClusterTable(opts, stdout, g.Samples, res); err != nil {
		return err
	}
	if opts.NewickPath != "" {
		if err := writeNewickFile(opts.NewickPath, g.Samples, res); err != nil {
			return err
		}
		log.Infof("wrote tree to %s", opts.NewickPath)
	}
	if opts.PlotPath != "" {
		if err := writePlot(opts, g.Samples, res); err != nil {
			return err
		}
		log.Infof("wrote dendrogram to %s", opts.PlotPath)
	}
	return nil
}

func writeClusterTable(opts Options, stdout io.Writer, names []string, res *snvclust.Result) error {
	if opts.OutputPath == "" || opts.OutputPath == "-" {
		return output.WriteClusters(stdout, names, res, !opts.NoTopLevel, !opts.NoHeader)
	}
	f, err := os.Create(opts.OutputPath)
	if err != nil {
		return err
	}
	if err := output.WriteClusters(f, names, res, !opts.NoTopLevel, !opts.NoHeader); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeNewickFile(path string, names []string, res *snvclust.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteNewick(f, names, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writePlot(opts Options, names []string, res *snvclust.Result) error {
	kept := make([]string, len(res.KeptSamples))
	for i, orig := range res.KeptSamples {
		kept[i] = names[orig]
	}
	d := snvclust.BuildDendrogram(res.Tree)
	size := render.Options{Width: opts.PlotWidth, Height: opts.PlotHeight}
	return render.SaveDendrogram(opts.PlotPath, d, kept, res.Support, size)
}
