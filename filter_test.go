package snvclust

import (
	"errors"
	"testing"
)

func TestFilterTensorDropsLociAboveMissingCeiling(t *testing.T) {
	// Four samples, six pairs per locus.
	// Locus 0: fully called, missing fraction 0.
	// Locus 1: sample 3 uncalled, pairs (0,3),(1,3),(2,3) missing = 3/6 = 0.5.
	// Locus 2: samples 2,3 uncalled, five of six pairs missing = 5/6.
	codes := [][]int8{
		{0, 1, 2, 0},
		{0, 1, 2, CodeMissing},
		{0, 1, CodeMissing, CodeMissing},
	}
	cfg := DefaultConfig()
	cfg.MinSNVs = 0
	cfg.MaxMissing = 0.5

	filtered, kept, err := FilterTensor(tensorFromCodes(t, codes), cfg)
	if err != nil {
		t.Fatalf("FilterTensor: %v", err)
	}
	// A fraction equal to the ceiling is kept, so loci 0 and 1 survive.
	if filtered.Loci() != 2 {
		t.Errorf("Loci() = %d, want 2", filtered.Loci())
	}
	if len(kept) != 4 {
		t.Errorf("kept %d samples, want 4", len(kept))
	}
}

func TestFilterTensorDropsSamplesBelowMinSNVs(t *testing.T) {
	// Sample 2 is called at only one of three loci.
	codes := [][]int8{
		{0, 1, 0},
		{0, 2, CodeMissing},
		{1, 0, CodeMissing},
	}
	cfg := DefaultConfig()
	cfg.MaxMissing = 1.0
	cfg.MinSNVs = 2

	filtered, kept, err := FilterTensor(tensorFromCodes(t, codes), cfg)
	if err != nil {
		t.Fatalf("FilterTensor: %v", err)
	}
	if len(kept) != 2 || kept[0] != 0 || kept[1] != 1 {
		t.Errorf("kept = %v, want [0 1]", kept)
	}
	if filtered.Samples() != 2 {
		t.Errorf("Samples() = %d, want 2", filtered.Samples())
	}

	// A count equal to the floor is kept.
	cfg.MinSNVs = 1
	_, kept, err = FilterTensor(tensorFromCodes(t, codes), cfg)
	if err != nil {
		t.Fatalf("FilterTensor: %v", err)
	}
	if len(kept) != 3 {
		t.Errorf("kept = %v, want all three samples", kept)
	}
}

func TestFilterTensorSampleCountsUseSurvivingLoci(t *testing.T) {
	// Sample 2's only valid call sits on the locus that the missing
	// ceiling removes, so the sample gate must not credit it. Loci 0
	// and 1 miss 2/3 of their pairs, locus 2 misses all three.
	codes := [][]int8{
		{0, 1, CodeMissing},
		{0, 1, CodeMissing},
		{CodeMissing, CodeMissing, 2},
	}
	cfg := DefaultConfig()
	cfg.MaxMissing = 0.7
	cfg.MinSNVs = 1

	_, kept, err := FilterTensor(tensorFromCodes(t, codes), cfg)
	if err != nil {
		t.Fatalf("FilterTensor: %v", err)
	}
	if len(kept) != 2 || kept[0] != 0 || kept[1] != 1 {
		t.Errorf("kept = %v, want [0 1]", kept)
	}
}

func TestFilterTensorInsufficientData(t *testing.T) {
	t.Run("no loci survive", func(t *testing.T) {
		// Two of three pairs missing = 2/3 > 0.5.
		codes := [][]int8{{0, CodeMissing, 1}}
		cfg := DefaultConfig()
		cfg.MaxMissing = 0.5
		cfg.MinSNVs = 0
		_, _, err := FilterTensor(tensorFromCodes(t, codes), cfg)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("got %v, want ErrInsufficientData", err)
		}
	})
	t.Run("fewer than two samples survive", func(t *testing.T) {
		codes := [][]int8{
			{0, CodeMissing},
			{1, CodeMissing},
		}
		cfg := DefaultConfig()
		cfg.MaxMissing = 1.0
		cfg.MinSNVs = 1
		_, _, err := FilterTensor(tensorFromCodes(t, codes), cfg)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("got %v, want ErrInsufficientData", err)
		}
	})
	t.Run("single sample input", func(t *testing.T) {
		codes := [][]int8{{0}}
		cfg := DefaultConfig()
		cfg.MinSNVs = 0
		_, _, err := FilterTensor(tensorFromCodes(t, codes), cfg)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("got %v, want ErrInsufficientData", err)
		}
	})
}
