// Package chart rasterizes chart specs into PNG images.
//
// Every render call builds its own image and graphic context, so
// renders are safe to run concurrently.
package chart

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/roscolil/scopeiq"
	"github.com/roscolil/scopeiq/internal/fs"
	"github.com/roscolil/scopeiq/internal/logging"
)

// Fixed raster geometry: 4:3 aspect at 150 dpi.
const (
	imageWidth  = 600
	imageHeight = 450

	marginLeft   = 46.0
	marginRight  = 16.0
	marginTop    = 36.0
	marginBottom = 32.0

	gridDivisions = 5
	markerRadius  = 3.0
	barWidthRatio = 0.6
)

// A Renderer turns one chart spec into a raster image.
type Renderer struct {
	Series color.RGBA
	Ink    color.RGBA
	Grid   color.RGBA
	Paper  color.RGBA
}

// NewRenderer creates a renderer with the stock palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Series: color.RGBA{37, 99, 235, 255},
		Ink:    color.RGBA{35, 47, 62, 255},
		Grid:   color.RGBA{210, 214, 218, 255},
		Paper:  color.RGBA{255, 255, 255, 255},
	}
}

// Render paints the chart and writes the PNG data to w.
func (r *Renderer) Render(spec scopeiq.ChartSpec, w io.Writer) error {
	err := spec.Validate()
	if err != nil {
		return err
	}

	dst := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	gc := draw2dimg.NewGraphicContext(dst)

	// Background
	gc.SetFillColor(r.Paper)
	draw2dkit.Rectangle(gc, 0, 0, imageWidth, imageHeight)
	gc.Fill()

	plot := plotRect{
		x0: marginLeft,
		y0: marginTop,
		x1: imageWidth - marginRight,
		y1: imageHeight - marginBottom,
	}

	if spec.Kind != scopeiq.BarChart {
		r.drawGrid(gc, plot)
	}
	r.drawAxes(gc, plot)

	yMax := ceiling(spec.YValues)
	switch spec.Kind {
	case scopeiq.LineChart:
		r.drawLine(gc, plot, spec.YValues, yMax, false)
	case scopeiq.AreaChart:
		r.drawLine(gc, plot, spec.YValues, yMax, true)
	case scopeiq.BarChart:
		r.drawBars(gc, plot, spec.YValues, yMax)
	}

	r.drawTitle(dst, spec.Title)
	r.drawXLabels(dst, plot, spec)
	r.drawYLabels(dst, plot, yMax)

	return png.Encode(w, dst)
}

// RenderFile renders the chart to a PNG file at path, creating parent
// directories as needed. The image is written to a scratch file and
// moved into place, so no artifact exists at path after a failure.
func (r *Renderer) RenderFile(spec scopeiq.ChartSpec, path string) error {
	err := spec.Validate()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	err = fs.EnsureDir(dir)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".chart-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// CreateTemp creates the file owner-only readable.
	err = f.Chmod(0644)
	if err == nil {
		err = r.Render(spec, f)
	}
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	logging.Debug("Rendered %v chart %q to %v", spec.Kind, spec.Title, path)
	return fs.Move(tmp, path)
}

type plotRect struct {
	x0, y0, x1, y1 float64
}

func (p plotRect) width() float64  { return p.x1 - p.x0 }
func (p plotRect) height() float64 { return p.y1 - p.y0 }

// xCenter returns the horizontal center for series point i of n.
// Line and area series are spread edge to edge, a single point sits
// in the middle.
func (p plotRect) xCenter(i, n int) float64 {
	if n == 1 {
		return p.x0 + p.width()/2
	}
	return p.x0 + p.width()*float64(i)/float64(n-1)
}

// xSlot returns the horizontal center of bar slot i of n.
func (p plotRect) xSlot(i, n int) float64 {
	slot := p.width() / float64(n)
	return p.x0 + slot*(float64(i)+0.5)
}

func (p plotRect) yPos(v, yMax float64) float64 {
	return p.y1 - p.height()*(v/yMax)
}

func (r *Renderer) drawGrid(gc *draw2dimg.GraphicContext, p plotRect) {
	gc.SetStrokeColor(r.Grid)
	gc.SetLineWidth(1)
	for i := 1; i <= gridDivisions; i++ {
		y := p.y1 - p.height()*float64(i)/float64(gridDivisions)
		gc.MoveTo(p.x0, y)
		gc.LineTo(p.x1, y)
		gc.Stroke()
	}
}

func (r *Renderer) drawAxes(gc *draw2dimg.GraphicContext, p plotRect) {
	gc.SetStrokeColor(r.Ink)
	gc.SetLineWidth(1)
	gc.MoveTo(p.x0, p.y0)
	gc.LineTo(p.x0, p.y1)
	gc.LineTo(p.x1, p.y1)
	gc.Stroke()
}

func (r *Renderer) drawLine(gc *draw2dimg.GraphicContext, p plotRect, ys []float64, yMax float64, filled bool) {
	n := len(ys)

	if filled {
		fill := r.Series
		fill.A = 76
		gc.SetFillColor(fill)
		gc.MoveTo(p.xCenter(0, n), p.y1)
		for i, v := range ys {
			gc.LineTo(p.xCenter(i, n), p.yPos(v, yMax))
		}
		gc.LineTo(p.xCenter(n-1, n), p.y1)
		gc.Close()
		gc.Fill()
	}

	gc.SetStrokeColor(r.Series)
	gc.SetLineWidth(2)
	gc.MoveTo(p.xCenter(0, n), p.yPos(ys[0], yMax))
	for i := 1; i < n; i++ {
		gc.LineTo(p.xCenter(i, n), p.yPos(ys[i], yMax))
	}
	gc.Stroke()

	// Point markers
	gc.SetFillColor(r.Series)
	for i, v := range ys {
		draw2dkit.Circle(gc, p.xCenter(i, n), p.yPos(v, yMax), markerRadius)
		gc.Fill()
	}
}

func (r *Renderer) drawBars(gc *draw2dimg.GraphicContext, p plotRect, ys []float64, yMax float64) {
	n := len(ys)
	slot := p.width() / float64(n)
	half := slot * barWidthRatio / 2

	gc.SetFillColor(r.Series)
	for i, v := range ys {
		x := p.xSlot(i, n)
		draw2dkit.Rectangle(gc, x-half, p.yPos(v, yMax), x+half, p.y1)
		gc.Fill()
	}
}

func (r *Renderer) drawTitle(dst *image.RGBA, title string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.Ink),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(title)
	d.Dot = fixed.P(imageWidth/2-w.Round()/2, 20)
	d.DrawString(title)
}

func (r *Renderer) drawXLabels(dst *image.RGBA, p plotRect, spec scopeiq.ChartSpec) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.Ink),
		Face: basicfont.Face7x13,
	}

	n := len(spec.XLabels)
	for i, label := range spec.XLabels {
		x := p.xCenter(i, n)
		if spec.Kind == scopeiq.BarChart {
			x = p.xSlot(i, n)
		}
		w := d.MeasureString(label)
		d.Dot = fixed.P(int(x)-w.Round()/2, imageHeight-12)
		d.DrawString(label)
	}
}

func (r *Renderer) drawYLabels(dst *image.RGBA, p plotRect, yMax float64) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.Ink),
		Face: basicfont.Face7x13,
	}

	for _, v := range []float64{0, yMax / 2, yMax} {
		label := formatTick(v)
		w := d.MeasureString(label)
		d.Dot = fixed.P(int(p.x0)-w.Round()-6, int(p.yPos(v, yMax))+4)
		d.DrawString(label)
	}
}

// ceiling picks the y axis maximum: the largest value with a little
// headroom, or 1 for all-zero series.
func ceiling(ys []float64) float64 {
	max := 0.0
	for _, v := range ys {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max * 1.05
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
