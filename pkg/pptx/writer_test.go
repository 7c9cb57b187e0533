package pptx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roscolil/scopeiq"
)

func testPresentation(t *testing.T) *scopeiq.Presentation {
	t.Helper()

	d := scopeiq.NewDiagram()
	d.Caption = "Lambda handles processing; S3 stores content."
	style := scopeiq.BoxStyle{
		Fill:      scopeiq.RGB(255, 153, 0),
		Opacity:   0.85,
		TextColor: scopeiq.RGB(35, 47, 62),
		Bold:      true,
	}
	a, err := d.AddBox("S3", 0.5, 2.4, 2.5, 1.0, style)
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.AddBox("Lambda", 4.0, 2.4, 2.5, 1.0, style)
	if err != nil {
		t.Fatal(err)
	}
	err = d.Connect(a, b, scopeiq.AnchorRight, scopeiq.AnchorLeft,
		scopeiq.LineStyle{Color: scopeiq.RGB(95, 107, 109), Width: 1.5})
	if err != nil {
		t.Fatal(err)
	}

	plan := []scopeiq.SlideSpec{
		{
			Layout:   scopeiq.TitleLayout,
			Title:    "ScopeIQ",
			Subtitle: "AI-powered insights",
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Vision",
			Blocks: []scopeiq.Block{
				&scopeiq.BulletList{Items: []string{"a", "b", "c"}},
			},
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Pricing",
			Blocks: []scopeiq.Block{
				&scopeiq.Table{
					Headers: []string{"Tier", "Price"},
					Rows:    [][]string{{"Free", "$0"}, {"Pro", "$99"}},
				},
			},
		},
		{
			Layout: scopeiq.BlankCanvasLayout,
			Title:  "Architecture",
			Blocks: []scopeiq.Block{d},
		},
	}

	p, err := scopeiq.NewBuilder(scopeiq.DefaultStyle(), nil).Build(plan)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// writePNG writes a small valid PNG for image row tests.
func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Set(0, 0, color.RGBA{37, 99, 235, 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func slideEntries(t *testing.T, data []byte) []string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	var slides []string
	seenTypes := false
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") {
			slides = append(slides, f.Name)
		}
		if f.Name == "[Content_Types].xml" {
			seenTypes = true
		}
	}
	if !seenTypes {
		t.Error("archive has no [Content_Types].xml")
	}
	return slides
}

func TestWrite(t *testing.T) {
	p := testPresentation(t)
	w := NewWriter(scopeiq.DefaultStyle())

	var buf bytes.Buffer
	err := w.Write(p, &buf)
	if err != nil {
		t.Fatal(err)
	}

	slides := slideEntries(t, buf.Bytes())
	if len(slides) != p.Len() {
		t.Errorf("archive has %d slides, want %d", len(slides), p.Len())
	}
	if !p.Finalized() {
		t.Error("presentation should be finalized after writing")
	}
}

func TestWriteImageRow(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "chart.png")
	writePNG(t, img)

	p := scopeiq.NewPresentation()
	err := p.Append(&scopeiq.Slide{
		Layout: scopeiq.BlankCanvasLayout,
		Title:  "KPIs",
		Blocks: []scopeiq.Block{&scopeiq.ImageRow{Images: []string{img}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = NewWriter(scopeiq.DefaultStyle()).Write(p, &buf)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/media/") {
			found = true
		}
	}
	if !found {
		t.Error("archive contains no media entry for the image")
	}
}

// Media entries keep the detected image format; a jpeg must not be
// stored as png.
func TestWriteImageRowJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	err = jpeg.Encode(f, img, nil)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	p := scopeiq.NewPresentation()
	err = p.Append(&scopeiq.Slide{
		Layout: scopeiq.BlankCanvasLayout,
		Title:  "Photos",
		Blocks: []scopeiq.Block{&scopeiq.ImageRow{Images: []string{path}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = NewWriter(scopeiq.DefaultStyle()).Write(p, &buf)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, zf := range zr.File {
		if strings.HasPrefix(zf.Name, "ppt/media/") {
			if !strings.HasSuffix(zf.Name, ".jpeg") {
				t.Errorf("jpeg stored as %q", zf.Name)
			}
			found = true
		}
	}
	if !found {
		t.Error("archive contains no media entry for the image")
	}
}

func TestWriteMissingImage(t *testing.T) {
	p := scopeiq.NewPresentation()
	err := p.Append(&scopeiq.Slide{
		Layout: scopeiq.BlankCanvasLayout,
		Title:  "KPIs",
		Blocks: []scopeiq.Block{&scopeiq.ImageRow{Images: []string{"does-not-exist.png"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = NewWriter(scopeiq.DefaultStyle()).Write(p, &buf)
	if err == nil {
		t.Fatal("missing image file should fail the write")
	}
}

// A chart row must never reach the writer; the builder replaces it
// with an image row.
func TestWriteUnmaterializedChartRow(t *testing.T) {
	p := scopeiq.NewPresentation()
	err := p.Append(&scopeiq.Slide{
		Layout: scopeiq.BlankCanvasLayout,
		Title:  "KPIs",
		Blocks: []scopeiq.Block{&scopeiq.ChartRow{Specs: []scopeiq.ChartSpec{
			{Kind: scopeiq.LineChart, XLabels: []string{"M1"}, YValues: []float64{1}},
		}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = NewWriter(scopeiq.DefaultStyle()).Write(p, &buf)
	if err == nil {
		t.Fatal("unmaterialized chart row should fail the write")
	}
	if !scopeiq.IsValidationError(err) {
		t.Errorf("unexpected error type: %v", err)
	}
}

func TestSave(t *testing.T) {
	p := testPresentation(t)
	path := filepath.Join(t.TempDir(), "deck.pptx")

	err := NewWriter(scopeiq.DefaultStyle()).Save(p, path)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	slides := slideEntries(t, data)
	if len(slides) != p.Len() {
		t.Errorf("archive has %d slides, want %d", len(slides), p.Len())
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	p := scopeiq.NewPresentation()
	err := p.Append(&scopeiq.Slide{
		Layout: scopeiq.BlankCanvasLayout,
		Title:  "broken",
		Blocks: []scopeiq.Block{&scopeiq.ImageRow{Images: []string{"does-not-exist.png"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	err = NewWriter(scopeiq.DefaultStyle()).Save(p, path)
	if err == nil {
		t.Fatal("save should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed save must not leave a file behind")
	}
}
