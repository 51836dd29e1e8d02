package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cliftlab/snvclust/internal/app"
)

const version = "0.3.0"

func rootCommand() *cobra.Command {
	var (
		opts    app.Options
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "snvclust",
		Short: "Cluster samples by SNV genotype similarity with bootstrap support",
		Long: `snvclust builds a Ward-linkage tree over the samples of a VCF from their
pairwise genotype differences, scores every split by bootstrap resampling
of loci, and collapses the tree into clusters whose splits are well
supported. Interrupting a run keeps the completed replicates and flags
the support values as approximate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			return app.Run(cmd.Context(), opts, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.VCFPath, "vcf", "i", "", "Input VCF, plain or gzip (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Cluster table destination (default stdout)")
	cmd.Flags().StringVar(&opts.PlotPath, "plot", "", "Write an annotated dendrogram (.png/.svg/.pdf)")
	cmd.Flags().StringVar(&opts.NewickPath, "newick", "", "Write the support-labeled tree in Newick format")
	cmd.Flags().IntVar(&opts.MinSNVs, "min-snvs", 1000, "Minimum valid calls a sample needs to stay in the analysis")
	cmd.Flags().Float64Var(&opts.MaxMissing, "max-missing", 0.9, "Highest tolerated fraction of missing pairs per locus")
	cmd.Flags().IntVarP(&opts.Bootstrap, "bootstrap", "b", 1000, "Number of bootstrap replicates")
	cmd.Flags().Float64VarP(&opts.Threshold, "threshold", "t", 0.99, "Support level needed to trust a split")
	cmd.Flags().IntVarP(&opts.Threads, "threads", "p", 1, "Worker count for tensor build and bootstrap")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Base seed of the replicate RNG streams")
	cmd.Flags().StringVar(&opts.Linkage, "linkage", "proportions", "Ward input: proportions or euclidean")
	cmd.Flags().DurationVar(&opts.ReplicateTimeout, "replicate-timeout", 0, "Abort the bootstrap when one replicate exceeds this (0 disables)")
	cmd.Flags().BoolVar(&opts.NoTopLevel, "no-top-level", false, "Omit the two-way group column from the table")
	cmd.Flags().BoolVar(&opts.NoHeader, "no-header", false, "Omit the table header row")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "Show a bootstrap progress bar")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	cmd.Flags().Float64Var(&opts.PlotWidth, "plot-width", 6, "Dendrogram width in inches")
	cmd.Flags().Float64Var(&opts.PlotHeight, "plot-height", 6, "Dendrogram height in inches")
	cmd.MarkFlagRequired("vcf")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("snvclust version %s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := rootCommand()
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCommand())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
