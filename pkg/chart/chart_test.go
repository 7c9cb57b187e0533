package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/roscolil/scopeiq"
)

func testSpec(kind scopeiq.ChartKind) scopeiq.ChartSpec {
	return scopeiq.ChartSpec{
		Kind:    kind,
		Title:   "MRR Growth ($k)",
		XLabels: []string{"M1", "M2", "M3", "M4", "M5", "M6"},
		YValues: []float64{5, 10, 18, 30, 45, 65},
	}
}

func TestRenderDimensions(t *testing.T) {
	r := NewRenderer()

	kinds := []scopeiq.ChartKind{scopeiq.LineChart, scopeiq.BarChart, scopeiq.AreaChart}
	for _, kind := range kinds {
		var buf bytes.Buffer
		err := r.Render(testSpec(kind), &buf)
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}

		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("%v: output is not a PNG: %v", kind, err)
		}
		b := img.Bounds()
		if b.Dx() != imageWidth || b.Dy() != imageHeight {
			t.Errorf("%v: unexpected dimensions %dx%d", kind, b.Dx(), b.Dy())
		}
	}
}

// The three chart kinds must not paint the same pixels.
func TestRenderKindsDiffer(t *testing.T) {
	r := NewRenderer()

	var line, bar, area bytes.Buffer
	if err := r.Render(testSpec(scopeiq.LineChart), &line); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(testSpec(scopeiq.BarChart), &bar); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(testSpec(scopeiq.AreaChart), &area); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(line.Bytes(), bar.Bytes()) {
		t.Error("line and bar chart are identical")
	}
	if bytes.Equal(line.Bytes(), area.Bytes()) {
		t.Error("line and area chart are identical")
	}
}

func TestRenderSinglePoint(t *testing.T) {
	r := NewRenderer()
	spec := scopeiq.ChartSpec{
		Kind:    scopeiq.LineChart,
		Title:   "One",
		XLabels: []string{"M1"},
		YValues: []float64{42},
	}

	var buf bytes.Buffer
	err := r.Render(spec, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestRenderAllZero(t *testing.T) {
	r := NewRenderer()
	spec := scopeiq.ChartSpec{
		Kind:    scopeiq.BarChart,
		Title:   "Flat",
		XLabels: []string{"M1", "M2"},
		YValues: []float64{0, 0},
	}

	var buf bytes.Buffer
	err := r.Render(spec, &buf)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRenderMismatch(t *testing.T) {
	r := NewRenderer()
	spec := scopeiq.ChartSpec{
		Kind:    scopeiq.LineChart,
		XLabels: []string{"M1", "M2"},
		YValues: []float64{1},
	}

	var buf bytes.Buffer
	err := r.Render(spec, &buf)
	if err == nil {
		t.Fatal("mismatched series should not be accepted")
	}
	if !scopeiq.IsShapeMismatch(err) {
		t.Errorf("unexpected error type: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("failed render must not write image data")
	}
}

func TestRenderFile(t *testing.T) {
	r := NewRenderer()
	path := filepath.Join(t.TempDir(), "charts", "growth.png")

	err := r.RenderFile(testSpec(scopeiq.LineChart), path)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("file is not a PNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("chart image has mode %v, want -rw-r--r--", perm)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, found %d", len(entries))
	}
}

func TestRenderFileInvalidSpec(t *testing.T) {
	r := NewRenderer()
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")

	spec := scopeiq.ChartSpec{Kind: scopeiq.BarChart}
	err := r.RenderFile(spec, path)
	if err == nil {
		t.Fatal("empty spec should not be accepted")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed render must not leave a file behind")
	}
}

func TestCeiling(t *testing.T) {
	if v := ceiling([]float64{0, 0}); v != 1 {
		t.Errorf("all-zero ceiling should be 1, got %v", v)
	}
	if v := ceiling([]float64{10, 40, 20}); v != 42 {
		t.Errorf("unexpected ceiling: %v", v)
	}
}
