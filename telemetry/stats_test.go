package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := Summarize(values)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, 5.5},
		{"std", s.Std, math.Sqrt(82.5 / 9)},
		{"p10", s.P10, 1},
		{"p50", s.P50, 5},
		{"p90", s.P90, 9},
		{"max", s.Max, 10},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if values[0] != 1 || values[9] != 10 {
		t.Errorf("values not sorted in place: %v", values)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []float64{4}, Summary{Mean: 4, P10: 4, P50: 4, P90: 4, Max: 4}},
		{"constant", []float64{2, 2, 2}, Summary{Mean: 2, P10: 2, P50: 2, P90: 2, Max: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got != tt.want {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestRelativeError(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		target float64
		want   float64
	}{
		{"exact", []float64{10, 10}, 10, 0},
		{"symmetric", []float64{8, 12}, 10, 0.2},
		{"empty", nil, 10, 0},
		{"zero target", []float64{1, 2}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeError(tt.values, tt.target)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RelativeError = %v, want %v", got, tt.want)
			}
		})
	}
}
