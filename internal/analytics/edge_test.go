package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestImpliedProbability(t *testing.T) {
	cases := []struct {
		name string
		odds float64
		want float64
	}{
		{"even money", 2.0, 0.5},
		{"short favorite", 1.25, 0.8},
		{"long shot", 5.0, 0.2},
		{"zero odds", 0, 0},
		{"negative odds", -1.5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ImpliedProbability(tc.odds); !almostEqual(got, tc.want) {
				t.Fatalf("ImpliedProbability(%v) = %v, want %v", tc.odds, got, tc.want)
			}
		})
	}
}

func TestExpectedValue(t *testing.T) {
	cases := []struct {
		name string
		prob float64
		odds float64
		want float64
	}{
		{"positive edge", 0.62, 2.0, 0.24},
		{"fair price", 0.5, 2.0, 0},
		{"negative edge", 0.38, 1.8, -0.316},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExpectedValue(tc.prob, tc.odds); !almostEqual(got, tc.want) {
				t.Fatalf("ExpectedValue(%v, %v) = %v, want %v", tc.prob, tc.odds, got, tc.want)
			}
		})
	}
}

func TestKellyFraction(t *testing.T) {
	cases := []struct {
		name string
		prob float64
		odds float64
		want float64
	}{
		{"positive edge", 0.62, 2.0, 0.24},
		{"fair price stakes nothing", 0.5, 2.0, 0},
		{"negative edge clamps to zero", 0.3, 2.0, 0},
		{"certainty stakes everything", 1.0, 2.0, 1},
		{"degenerate odds", 0.9, 1.0, 0},
		{"sub-unit odds", 0.9, 0.5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KellyFraction(tc.prob, tc.odds); !almostEqual(got, tc.want) {
				t.Fatalf("KellyFraction(%v, %v) = %v, want %v", tc.prob, tc.odds, got, tc.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(-0.2); got != 0 {
		t.Fatalf("Clamp01(-0.2) = %v, want 0", got)
	}
	if got := Clamp01(1.7); got != 1 {
		t.Fatalf("Clamp01(1.7) = %v, want 1", got)
	}
	if got := Clamp01(0.42); got != 0.42 {
		t.Fatalf("Clamp01(0.42) = %v, want 0.42", got)
	}
}
