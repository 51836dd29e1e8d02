package snvclust

import (
	"context"
	"fmt"
	"time"
)

// Config controls the whole pipeline.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MinSNVs is the minimum number of valid genotype calls a sample must
	// retain, after locus filtering, to stay in the analysis.
	// Must be >= 0. Default: 1000.
	MinSNVs int

	// MaxMissing is the highest tolerated fraction of missing pairwise
	// entries at a locus; loci above it are dropped. A fraction exactly
	// equal keeps the locus. Must be in [0, 1]. Default: 0.9.
	MaxMissing float64

	// Bootstrap is the number of resampling replicates.
	// Must be >= 1. Default: 1000.
	Bootstrap int

	// Threshold is the support level at which a split is trusted, used by
	// both the collapser and the top-level splitter. Support exactly equal
	// to the threshold meets it. Must be in (0, 1]. Default: 0.99.
	Threshold float64

	// Workers sizes the bootstrap worker pool; the tensor build shares the
	// setting. Set to 0 to default to 1. Default: 1.
	Workers int

	// Seed is the base seed of the per-replicate RNG streams. Replicate r
	// draws from stream (Seed, r), so results are reproducible for any
	// worker count and completion order. Default: 0.
	Seed uint64

	// Linkage selects the Ward input strategy: LinkageProportions feeds the
	// proportion dissimilarities directly, LinkageEuclideanRows converts
	// them to Euclidean distances between matrix rows first.
	// Default: LinkageProportions.
	Linkage LinkageInput

	// ReplicateTimeout, when positive, bounds each replicate's runtime. A
	// replicate exceeding it aborts the bootstrap gracefully: completed
	// replicates are kept and the result is flagged approximate.
	// Default: 0 (disabled).
	ReplicateTimeout time.Duration

	// Progress, when set, is called serially after each completed replicate
	// with (completed, requested).
	Progress func(done, total int)
}

// DefaultConfig returns the reference defaults.
func DefaultConfig() Config {
	return Config{
		MinSNVs:    1000,
		MaxMissing: 0.9,
		Bootstrap:  1000,
		Threshold:  0.99,
		Workers:    1,
		Linkage:    LinkageProportions,
	}
}

func applyDefaults(cfg Config) Config {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Linkage == "" {
		cfg.Linkage = LinkageProportions
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.MinSNVs < 0 {
		return fmt.Errorf("snvclust: MinSNVs must be >= 0, got %d", cfg.MinSNVs)
	}
	if cfg.MaxMissing < 0 || cfg.MaxMissing > 1 {
		return fmt.Errorf("snvclust: MaxMissing must be in [0, 1], got %v", cfg.MaxMissing)
	}
	if cfg.Bootstrap < 1 {
		return fmt.Errorf("snvclust: Bootstrap must be >= 1, got %d", cfg.Bootstrap)
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return fmt.Errorf("snvclust: Threshold must be in (0, 1], got %v", cfg.Threshold)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("snvclust: Workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.ReplicateTimeout < 0 {
		return fmt.Errorf("snvclust: ReplicateTimeout must be >= 0, got %v", cfg.ReplicateTimeout)
	}
	switch cfg.Linkage {
	case "", LinkageProportions, LinkageEuclideanRows:
	default:
		return fmt.Errorf("snvclust: unknown Linkage %q", cfg.Linkage)
	}
	return nil
}

// Result is the full output of Run.
type Result struct {
	// KeptSamples maps filtered sample positions to indices in the original
	// sample order. Every other field indexes samples by filtered position.
	KeptSamples []int
	// Tree is the merge tree over the filtered samples.
	Tree *MergeTree
	// Members is the membership table aligned to canonical node ids.
	Members [][]int
	// Support is the bootstrap support per node id.
	Support []float64
	// Clusters is the collapsed partition in ascending boundary-id order.
	Clusters [][]int
	// TopLevel holds two groups when the root split is supported, one
	// otherwise.
	TopLevel [][]int
	// Completed and Requested count bootstrap replicates. Approximate marks
	// support values derived from a partial bootstrap.
	Completed, Requested int
	Approximate          bool
}

// Run executes the full pipeline on a raw difference tensor: quality
// filtering, the main tree build, bootstrap support scoring, and both
// flattenings. ctx bounds only the bootstrap stage; everything else is
// deterministic sequential work.
func Run(ctx context.Context, tensor *DifferenceTensor, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = applyDefaults(cfg)

	filtered, kept, err := FilterTensor(tensor, cfg)
	if err != nil {
		return nil, err
	}

	dist, err := BuildDistanceMatrix(filtered, nil)
	if err != nil {
		return nil, err
	}
	tree, err := WardLinkage(dist, cfg.Linkage)
	if err != nil {
		return nil, err
	}
	members := tree.Memberships()

	boot, err := BootstrapMemberSets(ctx, filtered, cfg)
	if err != nil {
		return nil, err
	}
	support := SupportValues(members, boot)

	clusters, err := CollapseClusters(members, support, cfg.Threshold)
	if err != nil {
		return nil, err
	}
	top := TopLevelSplit(tree, members, support, cfg.Threshold)

	return &Result{
		KeptSamples: kept,
		Tree:        tree,
		Members:     members,
		Support:     support,
		Clusters:    clusters,
		TopLevel:    top,
		Completed:   boot.Completed,
		Requested:   boot.Requested,
		Approximate: boot.Approximate,
	}, nil
}
