package snvclust

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
)

// BootstrapResult carries the member-set collections of the completed
// replicates.
type BootstrapResult struct {
	// Collections holds one collection per completed replicate, in
	// completion order. The order carries no meaning.
	Collections [][][]int
	// Requested and Completed count configured versus finished replicates.
	Requested, Completed int
	// Approximate is true when the run was cut short by cancellation or a
	// replicate timeout. Support derived from a partial run estimates the
	// full bootstrap and must be reported as approximate.
	Approximate bool
}

type replicateOut struct {
	sets [][]int
	err  error
}

// BootstrapMemberSets runs cfg.Bootstrap resampling replicates over a
// fixed pool of cfg.Workers goroutines and collects each replicate's member
// sets.
//
// Replicate r seeds its own RNG stream from (cfg.Seed, r), so the collected
// multiset of collections is identical for any worker count and any
// completion order.
//
// A replicate failing with a data error aborts the whole bootstrap with that
// error. Cancellation of ctx, or a replicate exceeding cfg.ReplicateTimeout,
// aborts gracefully instead: replicates already finished are kept and the
// result comes back flagged Approximate. Zero finished replicates on that
// path is an error.
//
// cfg.Progress, when set, is invoked serially from the collector after each
// completed replicate.
func BootstrapMemberSets(ctx context.Context, t *DifferenceTensor, cfg Config) (*BootstrapResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, workers*2)
	results := make(chan replicateOut, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				sets, err := oneReplicate(ctx, t, cfg, rep)
				select {
				case results <- replicateOut{sets: sets, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for rep := 0; rep < cfg.Bootstrap; rep++ {
			select {
			case jobs <- rep:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	res := &BootstrapResult{Requested: cfg.Bootstrap}
	var firstErr error
	for out := range results {
		if out.err != nil {
			if isAbortErr(out.err) {
				res.Approximate = true
			} else if firstErr == nil {
				firstErr = out.err
			}
			cancel()
			continue
		}
		res.Collections = append(res.Collections, out.sets)
		res.Completed++
		if cfg.Progress != nil {
			cfg.Progress(res.Completed, res.Requested)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if res.Completed == 0 {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}
	}
	if res.Completed < res.Requested {
		res.Approximate = true
	}
	return res, nil
}

// oneReplicate resamples loci, rebuilds the distance matrix and tree, and
// returns the member sets of every node. Cancellation and the per-replicate
// deadline are checked between stages.
func oneReplicate(ctx context.Context, t *DifferenceTensor, cfg Config, rep int) ([][]int, error) {
	if cfg.ReplicateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ReplicateTimeout)
		defer cancel()
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(rep)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := BuildDistanceMatrix(t, rng)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := WardLinkage(m, cfg.Linkage)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tree.Memberships(), nil
}

func isAbortErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
