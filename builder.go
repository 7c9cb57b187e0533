package scopeiq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roscolil/scopeiq/internal/fs"
	"github.com/roscolil/scopeiq/internal/logging"
)

// A ChartRenderer rasterizes a single chart spec and writes the image
// data to w. Implementations must not share drawing state between
// calls; every call gets its own drawing surface.
type ChartRenderer interface {
	Render(spec ChartSpec, w io.Writer) error
}

// A SlideSpec describes one slide of the content plan.
type SlideSpec struct {
	Layout   Layout
	Title    string
	Subtitle string
	Blocks   []Block
}

// A Builder materializes a content plan into a Presentation.
//
// The build is a single linear pass: slides are assembled in plan
// order, each slide's blocks are validated and attached in order, and
// every slide is decorated with the style's watermark and badge.
// Any failure aborts the whole build; no partial presentation is
// returned.
type Builder struct {
	style    Style
	charts   ChartRenderer
	chartDir string
	parallel bool
}

// NewBuilder creates a Builder with the given style. The chart
// renderer may be nil if the plan contains no chart rows.
func NewBuilder(style Style, charts ChartRenderer) *Builder {
	return &Builder{
		style:    style,
		charts:   charts,
		chartDir: "charts",
	}
}

// Style returns the style the builder was constructed with.
func (b *Builder) Style() Style {
	return b.style
}

// SetChartDir sets the directory chart images are written to.
func (b *Builder) SetChartDir(dir string) {
	b.chartDir = dir
}

// SetParallel enables concurrent rendering of the charts within a
// chart row. Image order is determined by the spec order alone, never
// by render completion order.
func (b *Builder) SetParallel(on bool) {
	b.parallel = on
}

// Build assembles one slide per spec, in plan order.
func (b *Builder) Build(plan []SlideSpec) (*Presentation, error) {
	p := NewPresentation()

	chartSeq := 0
	for i, spec := range plan {
		logging.Debug("Assemble slide %d %q", i+1, spec.Title)
		s, err := b.assemble(spec, &chartSeq)
		if err != nil {
			return nil, Wrap(err, "slide %d %q", i+1, spec.Title)
		}
		err = p.Append(s)
		if err != nil {
			return nil, err
		}
	}

	logging.Info("Built presentation with %d slides", p.Len())
	return p, nil
}

// assemble produces a single decorated slide. A failure in any block
// aborts the slide; no partial slide is emitted.
func (b *Builder) assemble(spec SlideSpec, chartSeq *int) (*Slide, error) {
	if spec.Title == "" {
		return nil, NewValidationError("slide has no title")
	}

	s := &Slide{
		Layout:   spec.Layout,
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
	}

	for i, blk := range spec.Blocks {
		if row, ok := blk.(*ChartRow); ok {
			images, err := b.materializeCharts(row, chartSeq)
			if err != nil {
				return nil, Wrap(err, "block %d", i)
			}
			s.Blocks = append(s.Blocks, images)
			continue
		}

		err := blk.Validate()
		if err != nil {
			return nil, Wrap(err, "block %d", i)
		}

		// An image row with the fail-fast policy must fail at
		// build time, not when the document is written.
		if row, ok := blk.(*ImageRow); ok {
			_, err = row.Layout(b.style)
			if err != nil {
				return nil, Wrap(err, "block %d", i)
			}
		}

		s.Blocks = append(s.Blocks, blk)
	}

	b.decorate(s)
	return s, nil
}

// decorate stamps the watermark and badge onto the slide. Placement
// comes from the style and is identical for every slide.
func (b *Builder) decorate(s *Slide) {
	s.Decorations = []Decoration{
		Watermark{b.style.Watermark},
		Badge{b.style.Badge},
	}
}

// materializeCharts renders every chart of the row to an image file
// and returns the image row referencing them, in spec order.
func (b *Builder) materializeCharts(row *ChartRow, chartSeq *int) (*ImageRow, error) {
	if b.charts == nil {
		return nil, NewValidationError("plan contains charts but no chart renderer is configured")
	}
	err := row.Validate()
	if err != nil {
		return nil, err
	}
	err = fs.EnsureDir(b.chartDir)
	if err != nil {
		return nil, Wrap(err, "cannot create chart directory %q", b.chartDir)
	}

	paths := make([]string, len(row.Specs))
	for i, spec := range row.Specs {
		*chartSeq++
		name := fmt.Sprintf("chart-%02d-%s.png", *chartSeq, slug(spec.Title))
		paths[i] = filepath.Join(b.chartDir, name)
	}

	if b.parallel {
		var group errgroup.Group
		for i, spec := range row.Specs {
			i, spec := i, spec
			group.Go(func() error {
				return b.renderChartFile(spec, paths[i])
			})
		}
		err = group.Wait()
	} else {
		for i, spec := range row.Specs {
			err = b.renderChartFile(spec, paths[i])
			if err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	return &ImageRow{Images: paths, Policy: row.Policy}, nil
}

// renderChartFile writes a single chart image. The image is rendered
// to a scratch file first and moved into place on success, so a failed
// render leaves no artifact at the destination.
func (b *Builder) renderChartFile(spec ChartSpec, path string) error {
	err := spec.Validate()
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".chart-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// CreateTemp creates the file owner-only readable.
	err = f.Chmod(0644)
	if err == nil {
		err = b.charts.Render(spec, f)
	}
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return Wrap(err, "render chart %q", spec.Title)
	}

	logging.Debug("Rendered chart %q to %v", spec.Title, path)
	return fs.Move(tmp, path)
}

// slug converts a chart title into a file name fragment.
func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
