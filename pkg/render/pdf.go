// Package render serializes a presentation to a paged PDF document,
// one landscape page per slide.
package render

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/roscolil/scopeiq"
	"github.com/roscolil/scopeiq/internal/logging"
)

const (
	lineHeight = 0.28
	cellPad    = 0.04
)

// A Context holds the style for PDF rendering operations.
type Context struct {
	style scopeiq.Style
}

func NewContext(style scopeiq.Style) *Context {
	return &Context{style: style}
}

// PDF renders all slides of the presentation and writes the document
// to the given writer. The presentation is finalized.
func (c *Context) PDF(p *scopeiq.Presentation, w io.Writer) error {
	logging.Debug("Render PDF for presentation with %d slides", p.Len())
	pdf := c.setupPDF(p)

	for i, s := range p.Slides() {
		pdf.AddPage()
		err := c.renderSlide(pdf, s)
		if err != nil {
			return scopeiq.Wrap(err, "slide %d %q", i+1, s.Title)
		}
	}

	p.Finalize()
	return pdf.Output(w)
}

// SavePDF renders the presentation to a file at path. Nothing is left
// at path when rendering fails.
func (c *Context) SavePDF(p *scopeiq.Presentation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = c.PDF(p, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}

	logging.Info("Saved presentation to %v", path)
	return nil
}

func (c *Context) setupPDF(p *scopeiq.Presentation) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size: gofpdf.SizeType{
			Wd: c.style.SlideWidth,
			Ht: c.style.SlideHeight,
		},
	})

	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetProducer("scopeiq", true)
	pdf.SetCreationDate(time.Now())
	if p.Len() > 0 {
		pdf.SetTitle(p.Slides()[0].Title, true)
	}

	return pdf
}

func (c *Context) renderSlide(pdf *gofpdf.Fpdf, s *scopeiq.Slide) error {
	c.renderTitle(pdf, s)

	for i, blk := range s.Blocks {
		var err error
		switch t := blk.(type) {
		case *scopeiq.BulletList:
			c.renderBullets(pdf, t)
		case *scopeiq.Table:
			err = c.renderTable(pdf, t)
		case *scopeiq.ImageRow:
			err = c.renderImageRow(pdf, t)
		case *scopeiq.Diagram:
			c.renderDiagram(pdf, t)
		case *scopeiq.ChartRow:
			err = scopeiq.NewValidationError("chart row was not materialized by the builder")
		default:
			err = scopeiq.NewValidationError("unsupported block type %T", blk)
		}
		if err != nil {
			return scopeiq.Wrap(err, "block %d", i)
		}
	}

	for _, d := range s.Decorations {
		switch t := d.(type) {
		case scopeiq.Watermark:
			c.renderWatermark(pdf, t)
		case scopeiq.Badge:
			c.renderBadge(pdf, t)
		}
	}

	return pdf.Error()
}

func (c *Context) renderTitle(pdf *gofpdf.Fpdf, s *scopeiq.Slide) {
	st := c.style

	if s.Layout == scopeiq.TitleLayout {
		setTextColor(pdf, st.Brand)
		pdf.SetFont("helvetica", "B", float64(st.TitleFontSize))
		pdf.SetXY(st.ContentLeft, 2.2)
		pdf.MultiCell(st.ContentWidth, 0.7, s.Title, "", "C", false)

		if s.Subtitle != "" {
			setTextColor(pdf, st.Ink)
			pdf.SetFont("helvetica", "", float64(st.SubtitleFontSize))
			pdf.SetXY(st.ContentLeft, 3.6)
			pdf.MultiCell(st.ContentWidth, 0.4, s.Subtitle, "", "C", false)
		}
		return
	}

	setTextColor(pdf, st.Ink)
	pdf.SetFont("helvetica", "B", float64(st.HeadingFontSize))
	pdf.SetXY(st.ContentLeft, 0.3)
	pdf.CellFormat(st.ContentWidth, 0.6, s.Title, "", 0, "L", false, 0, "")
}

func (c *Context) renderBullets(pdf *gofpdf.Fpdf, b *scopeiq.BulletList) {
	st := c.style

	setTextColor(pdf, st.Ink)
	pdf.SetFont("helvetica", "", float64(st.BulletFontSize))

	y := st.ContentTop
	for _, item := range b.Items {
		pdf.SetXY(st.ContentLeft, y)
		pdf.MultiCell(st.ContentWidth, lineHeight, item, "", "L", false)
		y = pdf.GetY() + 0.08
	}
}

func (c *Context) renderTable(pdf *gofpdf.Fpdf, t *scopeiq.Table) error {
	err := t.Validate()
	if err != nil {
		return err
	}
	st := c.style

	colWidth := st.ContentWidth / float64(len(t.Headers))
	rowHeight := 0.35

	setTextColor(pdf, st.Ink)
	setFillColor(pdf, st.Paper)
	setDrawColor(pdf, st.Muted)
	pdf.SetLineWidth(0.01)

	pdf.SetFont("helvetica", "B", float64(st.TableFontSize))
	pdf.SetXY(st.ContentLeft, st.ContentTop)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, rowHeight, h, "1", 0, "L", true, 0, "")
	}

	pdf.SetFont("helvetica", "", float64(st.TableFontSize))
	for i, row := range t.Rows {
		pdf.SetXY(st.ContentLeft, st.ContentTop+rowHeight*float64(i+1))
		for _, val := range row {
			pdf.CellFormat(colWidth, rowHeight, val, "1", 0, "L", false, 0, "")
		}
	}

	return nil
}

func (c *Context) renderImageRow(pdf *gofpdf.Fpdf, r *scopeiq.ImageRow) error {
	placements, err := r.Layout(c.style)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	for _, pl := range placements {
		f, err := os.Open(pl.Path)
		if err != nil {
			return scopeiq.Wrap(err, "cannot read image %q", pl.Path)
		}

		name := uuid.New().String()
		pdf.RegisterImageOptionsReader(name, opts, f)
		f.Close()

		// Width 0 scales to the fixed height, keeping aspect ratio.
		pdf.ImageOptions(name, pl.X, pl.Y, 0, pl.Height, false, opts, 0, "")
	}

	return pdf.Error()
}

func (c *Context) renderDiagram(pdf *gofpdf.Fpdf, d *scopeiq.Diagram) {
	st := c.style

	for _, b := range d.Boxes {
		setFillColor(pdf, b.Style.Fill)
		setDrawColor(pdf, b.Style.Fill)
		pdf.SetLineWidth(0.01)
		pdf.SetAlpha(b.Style.Opacity, "Normal")
		pdf.RoundedRect(b.X, b.Y, b.W, b.H, 0.08, "1234", "FD")
		pdf.SetAlpha(1.0, "Normal")

		c.renderBoxLabel(pdf, b)
	}

	for _, conn := range d.Connectors {
		p1, p2 := conn.Endpoints()
		setDrawColor(pdf, conn.Style.Color)
		pdf.SetLineWidth(conn.Style.Width / 72.0)
		pdf.Line(p1.X, p1.Y, p2.X, p2.Y)
	}

	if d.Caption != "" {
		setTextColor(pdf, st.Ink)
		pdf.SetFont("helvetica", "", float64(st.CaptionFontSize))
		pdf.SetXY(st.ContentLeft, st.SlideHeight-1.6)
		pdf.MultiCell(st.ContentWidth, 0.22, d.Caption, "", "L", false)
	}
}

// renderBoxLabel centers the label inside the box bounds, inset by
// the fixed margin.
func (c *Context) renderBoxLabel(pdf *gofpdf.Fpdf, b *scopeiq.ServiceBox) {
	st := c.style

	fontStyle := ""
	if b.Style.Bold {
		fontStyle = "B"
	}
	setTextColor(pdf, b.Style.TextColor)
	pdf.SetFont("helvetica", fontStyle, float64(st.LabelFontSize))

	labelHeight := 0.2
	lines := float64(strings.Count(b.Label, "\n") + 1)
	y := b.Y + st.BoxInset + (b.H-2*st.BoxInset-lines*labelHeight)/2
	if y < b.Y+cellPad {
		y = b.Y + cellPad
	}

	pdf.SetXY(b.X+st.BoxInset, y)
	pdf.MultiCell(b.W-2*st.BoxInset, labelHeight, b.Label, "", "C", false)
}

func (c *Context) renderWatermark(pdf *gofpdf.Fpdf, m scopeiq.Watermark) {
	setTextColor(pdf, m.Color)
	pdf.SetFont("helvetica", "", float64(m.FontSize))
	pdf.SetXY(m.X, m.Y)
	pdf.CellFormat(m.W, m.H, m.Text, "", 0, "R", false, 0, "")
}

func (c *Context) renderBadge(pdf *gofpdf.Fpdf, b scopeiq.Badge) {
	setFillColor(pdf, b.Fill)
	setDrawColor(pdf, b.Fill)
	pdf.SetLineWidth(0.01)
	pdf.SetAlpha(b.Opacity, "Normal")
	pdf.Circle(b.X+b.Size/2, b.Y+b.Size/2, b.Size/2, "FD")
	pdf.SetAlpha(1.0, "Normal")

	setTextColor(pdf, b.TextColor)
	pdf.SetFont("helvetica", "", float64(b.FontSize))
	pdf.SetXY(b.X, b.Y)
	pdf.CellFormat(b.Size, b.Size, b.Label, "", 0, "C", false, 0, "")
}

func setTextColor(pdf *gofpdf.Fpdf, c scopeiq.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c scopeiq.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setDrawColor(pdf *gofpdf.Fpdf, c scopeiq.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
