package scopeiq

// Layout selects the base slide layout.
type Layout int

const (
	// TitleLayout is the opening slide with a centered title and
	// an optional subtitle.
	TitleLayout Layout = iota
	// BulletLayout is a titled slide whose body is built from
	// content blocks.
	BulletLayout
	// BlankCanvasLayout is a titled slide with a free-form body,
	// used for diagrams and image rows.
	BlankCanvasLayout
)

func (l Layout) String() string {
	switch l {
	case TitleLayout:
		return "title"
	case BulletLayout:
		return "bullet"
	case BlankCanvasLayout:
		return "blank"
	}
	return "unknown"
}

// A Presentation is an ordered sequence of slides.
//
// It is created empty, appended to during a single build pass and then
// serialized exactly once. Serialization finalizes the presentation;
// appending to a finalized presentation is an error.
type Presentation struct {
	slides    []*Slide
	finalized bool
}

func NewPresentation() *Presentation {
	return &Presentation{}
}

// Append adds a slide to the end of the presentation.
func (p *Presentation) Append(s *Slide) error {
	if p.finalized {
		return NewValidationError("presentation is finalized, cannot append slide %q", s.Title)
	}
	p.slides = append(p.slides, s)
	return nil
}

// Slides returns the slides in build order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Len returns the number of slides.
func (p *Presentation) Len() int {
	return len(p.slides)
}

// Finalize marks the presentation as serialized. Called by the
// document writers; callers normally do not need this.
func (p *Presentation) Finalize() {
	p.finalized = true
}

// Finalized tells whether the presentation has been serialized.
func (p *Presentation) Finalized() bool {
	return p.finalized
}

// A Slide is a single page of the presentation.
// It is created by the Builder and not mutated after decoration.
type Slide struct {
	Layout      Layout
	Title       string
	Subtitle    string
	Blocks      []Block
	Decorations []Decoration
}

// A Decoration is a fixed branding element stamped onto every slide
// at content-independent coordinates.
type Decoration interface {
	decoration()
}

// Watermark is the brand text anchored to the lower right.
type Watermark struct {
	WatermarkStyle
}

func (Watermark) decoration() {}

// Badge is the small round brand badge anchored to the lower left.
type Badge struct {
	BadgeStyle
}

func (Badge) decoration() {}

// A Block is one unit of slide content.
//
// Blocks validate themselves; an invalid block aborts the slide it
// belongs to and the whole build.
type Block interface {
	Validate() error
}

// BulletList renders one paragraph per item, in order.
// An empty list is valid and produces a titled slide with no body.
type BulletList struct {
	Items []string
}

func (b *BulletList) Validate() error {
	return nil
}

// Table renders a header row plus data rows as a grid of exactly
// 1+len(Rows) rows by len(Headers) columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Validate checks that every row has exactly as many cells as there
// are headers. The returned error names the first offending row.
func (t *Table) Validate() error {
	if len(t.Headers) == 0 {
		return NewValidationError("table has no header columns")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return NewRowShapeMismatch(i, "has %d cells, want %d", len(row), len(t.Headers))
		}
	}
	return nil
}

// OverflowPolicy decides what happens when an image row is wider than
// the slide.
type OverflowPolicy int

const (
	// OverflowClip lets images run past the right slide edge.
	OverflowClip OverflowPolicy = iota
	// OverflowWrap starts a new row below the current one.
	OverflowWrap
	// OverflowError fails the build.
	OverflowError
)

// ImageRow places images left to right at a fixed vertical offset,
// each scaled to a fixed height, advancing by a fixed pitch per image.
type ImageRow struct {
	// Images are paths to raster image files.
	Images []string
	Policy OverflowPolicy
}

func (r *ImageRow) Validate() error {
	for i, img := range r.Images {
		if img == "" {
			return NewValidationError("image %d has an empty path", i)
		}
	}
	return nil
}

// ImagePlacement is one image positioned on the slide, in inches.
type ImagePlacement struct {
	Path   string
	X, Y   float64
	Height float64
}

// Layout computes the placement for every image in the row under the
// given style and the row's overflow policy.
func (r *ImageRow) Layout(st Style) ([]ImagePlacement, error) {
	placed := make([]ImagePlacement, 0, len(r.Images))

	x := st.ContentLeft
	y := st.ImageTop
	for i, img := range r.Images {
		if x+st.ImagePitch > st.SlideWidth {
			switch r.Policy {
			case OverflowWrap:
				if x > st.ContentLeft {
					x = st.ContentLeft
					y += st.ImageHeight + 0.2
				}
			case OverflowError:
				return nil, NewValidationError("image row overflows the slide at image %d", i)
			}
		}
		placed = append(placed, ImagePlacement{Path: img, X: x, Y: y, Height: st.ImageHeight})
		x += st.ImagePitch
	}

	return placed, nil
}

// ChartRow is an image row whose images do not exist yet: the Builder
// renders each ChartSpec to a raster file and replaces the block with
// the resulting ImageRow.
type ChartRow struct {
	Specs  []ChartSpec
	Policy OverflowPolicy
}

func (c *ChartRow) Validate() error {
	if len(c.Specs) == 0 {
		return NewValidationError("chart row has no charts")
	}
	for _, spec := range c.Specs {
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	return nil
}
