package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(1234)
	b := New(1234)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 32; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("32 identical draws for different seeds")
	}
}

func TestWeightedSkipsZeroWeights(t *testing.T) {
	s := New(99)
	weights := []float64{0, 0, 1, 0}
	for i := 0; i < 500; i++ {
		if got := s.Weighted(weights); got != 2 {
			t.Fatalf("draw %d picked index %d with zero weight", i, got)
		}
	}
}

func TestWeightedNegativeTreatedAsZero(t *testing.T) {
	s := New(7)
	weights := []float64{-5, 2, -1}
	for i := 0; i < 500; i++ {
		if got := s.Weighted(weights); got != 1 {
			t.Fatalf("draw %d picked index %d with non-positive weight", i, got)
		}
	}
}

func TestWeightedAllZeroFallsBackToFirst(t *testing.T) {
	s := New(3)
	if got := s.Weighted([]float64{0, 0, 0}); got != 0 {
		t.Fatalf("got=%d want=0", got)
	}
}

func TestWeightedRoughProportions(t *testing.T) {
	s := New(555)
	weights := []float64{1, 3}
	counts := [2]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[s.Weighted(weights)]++
	}
	share := float64(counts[1]) / draws
	if share < 0.70 || share > 0.80 {
		t.Fatalf("index 1 share=%f want around 0.75", share)
	}
}

func TestIntNRange(t *testing.T) {
	s := New(42)
	for i := 0; i < 1000; i++ {
		if got := s.IntN(6); got < 0 || got > 5 {
			t.Fatalf("IntN(6)=%d out of range", got)
		}
	}
}
