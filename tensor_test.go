package snvclust

import "testing"

// tensorFromCodes builds a tensor sequentially and fails the test on error.
func tensorFromCodes(t *testing.T, codes [][]int8) *DifferenceTensor {
	t.Helper()
	tensor, err := NewDifferenceTensor(codes, 1)
	if err != nil {
		t.Fatalf("NewDifferenceTensor: %v", err)
	}
	return tensor
}

func TestNewDifferenceTensor(t *testing.T) {
	// Two loci over three samples; sample 2 is uncalled at locus 1.
	codes := [][]int8{
		{0, 1, 2},
		{0, 2, CodeMissing},
	}
	tensor := tensorFromCodes(t, codes)

	if tensor.Loci() != 2 {
		t.Errorf("Loci() = %d, want 2", tensor.Loci())
	}
	if tensor.Samples() != 3 {
		t.Errorf("Samples() = %d, want 3", tensor.Samples())
	}

	checks := []struct {
		l, i, j int
		want    int8
	}{
		// locus 0: |0-1|=1, |0-2|=2, |1-2|=1, diagonal valid
		{0, 0, 1, 1},
		{0, 0, 2, 2},
		{0, 1, 2, 1},
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 2, 2, 0},
		// locus 1: |0-2|=2; every pair touching sample 2 is missing,
		// including its own diagonal
		{1, 0, 1, 2},
		{1, 0, 2, CodeMissing},
		{1, 1, 2, CodeMissing},
		{1, 2, 2, CodeMissing},
		{1, 0, 0, 0},
		{1, 1, 1, 0},
	}
	for _, c := range checks {
		if got := tensor.At(c.l, c.i, c.j); got != c.want {
			t.Errorf("At(%d, %d, %d) = %d, want %d", c.l, c.i, c.j, got, c.want)
		}
		if got := tensor.At(c.l, c.j, c.i); got != c.want {
			t.Errorf("At(%d, %d, %d) = %d, want %d (symmetry)", c.l, c.j, c.i, got, c.want)
		}
	}
}

func TestNewDifferenceTensorParallelMatchesSequential(t *testing.T) {
	// A deterministic pattern large enough that locus ranges split
	// unevenly across workers.
	vals := []int8{0, 1, 2, CodeMissing}
	codes := make([][]int8, 101)
	for l := range codes {
		row := make([]int8, 7)
		for s := range row {
			row[s] = vals[(l*7+s*3)%len(vals)]
		}
		codes[l] = row
	}

	sequential := tensorFromCodes(t, codes)

	for _, workers := range []int{2, 3, 8} {
		parallel, err := NewDifferenceTensor(codes, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for l := 0; l < sequential.Loci(); l++ {
			for i := 0; i < sequential.Samples(); i++ {
				for j := i; j < sequential.Samples(); j++ {
					seq := sequential.At(l, i, j)
					par := parallel.At(l, i, j)
					if seq != par {
						t.Fatalf("workers=%d: At(%d, %d, %d) = %d, sequential %d",
							workers, l, i, j, par, seq)
					}
				}
			}
		}
	}
}

func TestNewDifferenceTensorErrors(t *testing.T) {
	tests := []struct {
		name  string
		codes [][]int8
	}{
		{"no loci", nil},
		{"no samples", [][]int8{{}}},
		{"ragged rows", [][]int8{{0, 1}, {0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDifferenceTensor(tt.codes, 1); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
