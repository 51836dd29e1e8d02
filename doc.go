// Package snvclust clusters biological samples by genetic similarity and
// quantifies cluster robustness with bootstrap resampling.
//
// The input is a per-locus tensor of pairwise genotype differences. After
// quality filtering, pairwise dissimilarities (proportion of differing
// alleles) feed Ward agglomerative clustering; bootstrap replicates resample
// loci with replacement and rebuild the tree, and every node of the main
// tree is scored by how often its exact member set reappears. The scored
// tree collapses into a flat partition of robust clusters plus a coarse
// two-way top-level split.
//
// Basic usage:
//
//	tensor, err := snvclust.NewDifferenceTensor(codes, workers)
//	// codes[l][s] from snvclust.GenotypeCode
//	cfg := snvclust.DefaultConfig()
//	cfg.Bootstrap = 500
//	result, err := snvclust.Run(ctx, tensor, cfg)
//	// result.Clusters is the collapsed partition
//	// result.TopLevel is the coarse two-way split
//	// result.Support[id] is the bootstrap support of tree node id
//
// # Linkage input
//
// By default Ward runs directly on the proportion dissimilarities. Set
// Config.Linkage to select the strategy:
//
//	cfg.Linkage = snvclust.LinkageProportions   // dissimilarities as-is
//	cfg.Linkage = snvclust.LinkageEuclideanRows // Euclidean over matrix rows
package snvclust
