package scopeiq

import (
	"testing"
)

func TestChartSpecValidate(t *testing.T) {
	spec := ChartSpec{
		Kind:    LineChart,
		Title:   "MRR Growth",
		XLabels: []string{"M1", "M2", "M3"},
		YValues: []float64{5, 10, 18},
	}
	err := spec.Validate()
	if err != nil {
		t.Errorf("valid spec was not accepted: %v", err)
	}
}

func TestChartSpecMismatch(t *testing.T) {
	spec := ChartSpec{
		Kind:    BarChart,
		XLabels: []string{"M1", "M2"},
		YValues: []float64{5},
	}
	err := spec.Validate()
	if err == nil {
		t.Fatal("mismatched series should not be accepted")
	}
	if !IsShapeMismatch(err) {
		t.Errorf("unexpected error type: %v", err)
	}
}

func TestChartSpecEmpty(t *testing.T) {
	err := ChartSpec{Kind: AreaChart}.Validate()
	if err == nil {
		t.Fatal("empty series should not be accepted")
	}
	if !IsShapeMismatch(err) {
		t.Errorf("unexpected error type: %v", err)
	}
}
