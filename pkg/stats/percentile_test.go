package stats

import (
	"errors"
	"math"
	"testing"
)

func TestPercentileRankEmpty(t *testing.T) {
	if _, err := PercentileRank(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestPercentileRank(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	tests := []struct {
		v    float64
		want float64
	}{
		{10, 12.5}, // below none, equal to one
		{40, 87.5},
		{25, 50}, // between 20 and 30
		{5, 0},
		{50, 100},
	}
	for _, tt := range tests {
		got, err := PercentileRank(values, tt.v)
		if err != nil {
			t.Fatalf("PercentileRank(%v) failed: %v", tt.v, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PercentileRank(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPercentileRankDuplicates(t *testing.T) {
	got, err := PercentileRank([]float64{5, 5, 5, 10}, 5)
	if err != nil {
		t.Fatalf("PercentileRank failed: %v", err)
	}
	// lo=0, hi=3, midrank 1.5 of 4 values.
	if math.Abs(got-37.5) > 1e-9 {
		t.Errorf("got %v, want 37.5", got)
	}
}

func TestAveragePercentileEmpty(t *testing.T) {
	if _, err := AveragePercentile(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestAveragePercentile(t *testing.T) {
	got, err := AveragePercentile([]float64{1, 2, 2, 9})
	if err != nil {
		t.Fatalf("AveragePercentile failed: %v", err)
	}
	// Midranks: 0.5, 2, 2, 3.5 of n=4 -> (12.5 + 50 + 50 + 87.5) / 4.
	if math.Abs(got-50) > 1e-9 {
		t.Errorf("got %v, want 50", got)
	}
}
