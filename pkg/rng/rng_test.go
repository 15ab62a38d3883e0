package rng

import (
	"math"
	"testing"
)

func TestDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestRangeSample(t *testing.T) {
	tests := []struct {
		name string
		rg   Range
	}{
		{name: "single", rg: Range{Min: 3, Max: 4}},
		{name: "wide", rg: Range{Min: -5, Max: 5}},
		{name: "empty yields min", rg: Range{Min: 2, Max: 2}},
	}
	r := New(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				n := tt.rg.Sample(r)
				if tt.rg.Empty() {
					if n != tt.rg.Min {
						t.Fatalf("Sample() = %d, want %d", n, tt.rg.Min)
					}
					continue
				}
				if !tt.rg.Contains(n) {
					t.Fatalf("Sample() = %d outside %v", n, tt.rg)
				}
			}
		})
	}
}

func TestRangeSampleHitsAll(t *testing.T) {
	r := New(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		seen[Range{Min: 0, Max: 4}.Sample(r)] = true
	}
	if len(seen) != 4 {
		t.Errorf("saw %d distinct values, want 4", len(seen))
	}
}

func TestFillChances(t *testing.T) {
	tests := []struct {
		name string
		in   []*float64
		want []float64
	}{
		{name: "all implicit", in: []*float64{nil, nil, nil, nil}, want: []float64{0.25, 0.25, 0.25, 0.25}},
		{name: "mixed", in: []*float64{Ptr(0.5), nil, nil}, want: []float64{0.5, 0.25, 0.25}},
		{name: "all explicit", in: []*float64{Ptr(0.2), Ptr(0.3)}, want: []float64{0.2, 0.3}},
		{name: "explicit saturate", in: []*float64{Ptr(1), nil}, want: []float64{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillChances(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("chance[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChooseDistribution(t *testing.T) {
	r := New(99)
	weights := []float64{0.5, 0.25, 0.25}
	counts := make([]int, len(weights))
	const n = 40000
	for i := 0; i < n; i++ {
		counts[r.Choose(weights)]++
	}
	for i, w := range weights {
		if got := float64(counts[i]) / n; math.Abs(got-w) > 0.02 {
			t.Errorf("index %d frequency %.3f, want %.3f", i, got, w)
		}
	}
}

func TestChooseSkipsZeroWeights(t *testing.T) {
	r := New(5)
	for i := 0; i < 1000; i++ {
		if got := r.Choose([]float64{0, 1, 0}); got != 1 {
			t.Fatalf("Choose() = %d, want 1", got)
		}
	}
}

func TestChoosePanicsWithoutWeight(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for all-zero weights")
		}
	}()
	New(1).Choose([]float64{0, 0})
}

func TestRoll(t *testing.T) {
	r := New(11)
	if !r.Roll(1) {
		t.Error("Roll(1) should always succeed")
	}
	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Roll(4) {
			hits++
		}
	}
	if hits < 2200 || hits > 2800 {
		t.Errorf("Roll(4) hit %d/10000 times, want about 2500", hits)
	}
}
