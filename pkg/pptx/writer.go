// Package pptx serializes a presentation to a PowerPoint document.
package pptx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/roscolil/scopeiq"
	"github.com/roscolil/scopeiq/internal/logging"
)

// A Writer serializes presentations built with one style.
type Writer struct {
	style scopeiq.Style
}

func NewWriter(style scopeiq.Style) *Writer {
	return &Writer{style: style}
}

// Write serializes the presentation as PPTX and finalizes it.
func (w *Writer) Write(p *scopeiq.Presentation, out io.Writer) error {
	doc := ppt.New()
	props := doc.GetDocumentProperties()
	props.Creator = "scopeiq"
	if p.Len() > 0 {
		props.Title = p.Slides()[0].Title
	}

	for i, s := range p.Slides() {
		var slide *ppt.Slide
		if i == 0 {
			slide = doc.GetActiveSlide()
		} else {
			slide = doc.CreateSlide()
		}
		err := w.writeSlide(slide, s)
		if err != nil {
			return scopeiq.Wrap(err, "slide %d %q", i+1, s.Title)
		}
	}

	p.Finalize()

	pw, err := ppt.NewWriter(doc, ppt.WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return pw.(*ppt.PPTXWriter).WriteTo(out)
}

// Save writes the document to path. Nothing is left at path when
// serialization fails.
func (w *Writer) Save(p *scopeiq.Presentation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = w.Write(p, f)
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

func (w *Writer) writeSlide(slide *ppt.Slide, s *scopeiq.Slide) error {
	slide.SetName(s.Title)
	w.writeTitle(slide, s)

	for i, blk := range s.Blocks {
		var err error
		switch t := blk.(type) {
		case *scopeiq.BulletList:
			w.writeBullets(slide, t)
		case *scopeiq.Table:
			err = w.writeTable(slide, t)
		case *scopeiq.ImageRow:
			err = w.writeImageRow(slide, t)
		case *scopeiq.Diagram:
			err = w.writeDiagram(slide, t)
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
			w.writeWatermark(slide, t)
		case scopeiq.Badge:
			w.writeBadge(slide, t)
		}
	}

	return nil
}

func (w *Writer) writeTitle(slide *ppt.Slide, s *scopeiq.Slide) {
	st := w.style

	if s.Layout == scopeiq.TitleLayout {
		title := slide.CreateRichTextShape()
		title.SetOffsetX(inch(st.ContentLeft)).SetOffsetY(inch(2.2))
		title.SetWidth(inch(st.ContentWidth)).SetHeight(inch(1.2))
		tr := title.CreateTextRun(s.Title)
		tr.GetFont().SetSize(st.TitleFontSize).SetBold(true).SetColor(argb(st.Brand))
		center(title.GetActiveParagraph())

		if s.Subtitle != "" {
			sub := slide.CreateRichTextShape()
			sub.SetOffsetX(inch(st.ContentLeft)).SetOffsetY(inch(3.6))
			sub.SetWidth(inch(st.ContentWidth)).SetHeight(inch(0.8))
			str := sub.CreateTextRun(s.Subtitle)
			str.GetFont().SetSize(st.SubtitleFontSize).SetColor(argb(st.Ink))
			center(sub.GetActiveParagraph())
		}
		return
	}

	title := slide.CreateRichTextShape()
	title.SetOffsetX(inch(st.ContentLeft)).SetOffsetY(inch(0.3))
	title.SetWidth(inch(st.ContentWidth)).SetHeight(inch(0.9))
	tr := title.CreateTextRun(s.Title)
	tr.GetFont().SetSize(st.HeadingFontSize).SetBold(true).SetColor(argb(st.Ink))
}

func (w *Writer) writeBullets(slide *ppt.Slide, b *scopeiq.BulletList) {
	if len(b.Items) == 0 {
		return
	}
	st := w.style

	body := slide.CreateRichTextShape()
	body.SetOffsetX(inch(st.ContentLeft)).SetOffsetY(inch(st.ContentTop))
	body.SetWidth(inch(st.ContentWidth)).SetHeight(inch(st.SlideHeight - st.ContentTop - 1.0))
	body.SetWordWrap(true)

	for i, item := range b.Items {
		if i > 0 {
			body.CreateParagraph()
		}
		tr := body.CreateTextRun(item)
		tr.GetFont().SetSize(st.BulletFontSize).SetColor(argb(st.Ink))
	}
}

func (w *Writer) writeTable(slide *ppt.Slide, t *scopeiq.Table) error {
	err := t.Validate()
	if err != nil {
		return err
	}
	st := w.style

	rows := 1 + len(t.Rows)
	cols := len(t.Headers)
	height := 1.2 + 0.35*float64(rows)

	tbl := slide.CreateTableShape(rows, cols)
	tbl.SetPosition(inch(st.ContentLeft), inch(st.ContentTop))
	tbl.SetWidth(inch(st.ContentWidth)).SetHeight(inch(height))

	for j, h := range t.Headers {
		cell := tbl.GetCell(0, j)
		tr := cell.GetParagraphs()[0].CreateTextRun(h)
		tr.GetFont().SetSize(st.TableFontSize).SetBold(true).SetColor(argb(st.Ink))
		cell.SetFill(ppt.NewFill().SetSolid(argbAlpha(st.Paper, 1.0)))
	}
	for i, row := range t.Rows {
		for j, val := range row {
			tr := tbl.GetCell(i+1, j).GetParagraphs()[0].CreateTextRun(val)
			tr.GetFont().SetSize(st.TableFontSize).SetColor(argb(st.Ink))
		}
	}

	return nil
}

func (w *Writer) writeImageRow(slide *ppt.Slide, r *scopeiq.ImageRow) error {
	placements, err := r.Layout(w.style)
	if err != nil {
		return err
	}

	for _, pl := range placements {
		data, err := os.ReadFile(pl.Path)
		if err != nil {
			return scopeiq.Wrap(err, "cannot read image %q", pl.Path)
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return scopeiq.Wrap(err, "cannot decode image %q", pl.Path)
		}

		// Scale to the fixed row height, keeping aspect ratio.
		width := pl.Height * float64(cfg.Width) / float64(cfg.Height)

		img := slide.CreateDrawingShape()
		img.SetImageData(data, "image/"+format)
		img.SetPosition(inch(pl.X), inch(pl.Y))
		img.SetSize(inch(width), inch(pl.Height))
	}

	return nil
}

// writeDiagram places every box as a rounded rectangle with a separate
// inset label text box, then draws the connectors.
func (w *Writer) writeDiagram(slide *ppt.Slide, d *scopeiq.Diagram) error {
	st := w.style

	for _, b := range d.Boxes {
		rect := slide.CreateAutoShape()
		rect.SetAutoShapeType(ppt.AutoShapeRoundedRect)
		rect.SetPosition(inch(b.X), inch(b.Y))
		rect.SetSize(inch(b.W), inch(b.H))
		rect.GetFill().SetSolid(argbAlpha(b.Style.Fill, b.Style.Opacity))

		label := slide.CreateRichTextShape()
		label.SetOffsetX(inch(b.X + st.BoxInset)).SetOffsetY(inch(b.Y + st.BoxInset))
		label.SetWidth(inch(b.W - 2*st.BoxInset)).SetHeight(inch(b.H - 2*st.BoxInset))
		label.SetWordWrap(true)
		label.SetTextAnchor(ppt.TextAnchorMiddle)
		tr := label.CreateTextRun(b.Label)
		tr.GetFont().SetSize(st.LabelFontSize).SetBold(b.Style.Bold).SetColor(argb(b.Style.TextColor))
		center(label.GetActiveParagraph())
	}

	for _, c := range d.Connectors {
		p1, p2 := c.Endpoints()
		writeLine(slide, p1, p2, c.Style)
	}

	if d.Caption != "" {
		caption := slide.CreateRichTextShape()
		caption.SetOffsetX(inch(st.ContentLeft)).SetOffsetY(inch(st.SlideHeight - 1.6))
		caption.SetWidth(inch(st.ContentWidth)).SetHeight(inch(0.7))
		caption.SetWordWrap(true)
		tr := caption.CreateTextRun(d.Caption)
		tr.GetFont().SetSize(st.CaptionFontSize).SetColor(argb(st.Ink))
	}

	return nil
}

// writeLine maps two absolute points onto a PPTX line: a bounding box
// plus horizontal/vertical flips for direction.
func writeLine(slide *ppt.Slide, p1, p2 scopeiq.Point, style scopeiq.LineStyle) {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	lw := math.Abs(p2.X - p1.X)
	lh := math.Abs(p2.Y - p1.Y)

	line := slide.CreateLineShape()
	line.SetPosition(inch(x), inch(y))
	line.SetSize(inch(lw), inch(lh))
	line.SetFlipHorizontal(p2.X < p1.X)
	line.SetFlipVertical(p2.Y < p1.Y)
	line.SetLineColor(argb(style.Color))
	line.SetLineWidth(int(math.Round(style.Width)))
}

func (w *Writer) writeWatermark(slide *ppt.Slide, m scopeiq.Watermark) {
	wm := slide.CreateRichTextShape()
	wm.SetOffsetX(inch(m.X)).SetOffsetY(inch(m.Y))
	wm.SetWidth(inch(m.W)).SetHeight(inch(m.H))
	tr := wm.CreateTextRun(m.Text)
	tr.GetFont().SetSize(m.FontSize).SetColor(argb(m.Color))
	wm.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}

func (w *Writer) writeBadge(slide *ppt.Slide, b scopeiq.Badge) {
	circ := slide.CreateAutoShape()
	circ.SetAutoShapeType(ppt.AutoShapeEllipse)
	circ.SetPosition(inch(b.X), inch(b.Y))
	circ.SetSize(inch(b.Size), inch(b.Size))
	circ.GetFill().SetSolid(argbAlpha(b.Fill, b.Opacity))

	label := slide.CreateRichTextShape()
	label.SetOffsetX(inch(b.X)).SetOffsetY(inch(b.Y))
	label.SetWidth(inch(b.Size)).SetHeight(inch(b.Size))
	label.SetTextAnchor(ppt.TextAnchorMiddle)
	tr := label.CreateTextRun(b.Label)
	tr.GetFont().SetSize(b.FontSize).SetColor(argb(b.TextColor))
	center(label.GetActiveParagraph())
}

func inch(v float64) int64 {
	return ppt.Inch(v)
}

func center(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func argb(c scopeiq.Color) ppt.Color {
	return argbAlpha(c, 1.0)
}

func argbAlpha(c scopeiq.Color, opacity float64) ppt.Color {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	a := uint8(math.Round(opacity * 255))
	return ppt.NewColor(fmt.Sprintf("%02X%02X%02X%02X", a, c.R, c.G, c.B))
}
