package scopeiq

import "math"

// BoxStyle is the visual style of a single diagram box.
type BoxStyle struct {
	Fill Color
	// Opacity of the fill, 0.0 (transparent) to 1.0 (opaque).
	Opacity   float64
	TextColor Color
	Bold      bool
}

// A ServiceBox is a labeled rounded rectangle placed at explicit
// coordinates on a diagram. It is rendered, never mutated afterwards.
type ServiceBox struct {
	Label string
	X, Y  float64
	W, H  float64
	Style BoxStyle
}

// Point is an absolute position on the slide, in inches.
type Point struct {
	X, Y float64
}

// Anchor names a point on a box outline for anchored connectors.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// anchorPoint resolves the anchor against the box geometry.
func (b *ServiceBox) anchorPoint(a Anchor) Point {
	switch a {
	case AnchorTop:
		return Point{b.X + b.W/2, b.Y}
	case AnchorBottom:
		return Point{b.X + b.W/2, b.Y + b.H}
	case AnchorLeft:
		return Point{b.X, b.Y + b.H/2}
	case AnchorRight:
		return Point{b.X + b.W, b.Y + b.H/2}
	}
	return Point{b.X + b.W/2, b.Y + b.H/2}
}

// A Connector is a straight line between two points. It is purely
// visual: no routing, no collision avoidance.
//
// A connector is either free-form (fixed endpoints supplied by the
// caller) or anchored to two boxes, in which case its endpoints are
// resolved from the box geometry when the diagram is rendered.
type Connector struct {
	Style LineStyle

	p1, p2 Point

	from, to             *ServiceBox
	fromAnchor, toAnchor Anchor
	anchored             bool
}

// Endpoints returns the absolute start and end points of the line.
func (c *Connector) Endpoints() (Point, Point) {
	if c.anchored {
		return c.from.anchorPoint(c.fromAnchor), c.to.anchorPoint(c.toAnchor)
	}
	return c.p1, c.p2
}

// A Diagram is a set of service boxes and an ordered sequence of
// connectors, laid out at explicit coordinates by the caller.
type Diagram struct {
	Boxes      []*ServiceBox
	Connectors []*Connector

	// Caption is an optional explanatory paragraph rendered below
	// the diagram.
	Caption string
}

func NewDiagram() *Diagram {
	return &Diagram{}
}

// A Diagram is itself a content block.
func (d *Diagram) Validate() error {
	return nil
}

// AddBox places a labeled box at the given position and size.
// Fails with an invalid geometry error for non-finite coordinates or
// a non-positive size.
func (d *Diagram) AddBox(label string, x, y, w, h float64, style BoxStyle) (*ServiceBox, error) {
	if !finite(x, y, w, h) {
		return nil, NewInvalidGeometry("box %q has non-finite geometry", label)
	}
	if w <= 0 || h <= 0 {
		return nil, NewInvalidGeometry("box %q has non-positive size %gx%g", label, w, h)
	}

	b := &ServiceBox{Label: label, X: x, Y: y, W: w, H: h, Style: style}
	d.Boxes = append(d.Boxes, b)
	return b, nil
}

// AddConnector draws a free-form line between two absolute points.
// The caller computes the anchor points.
func (d *Diagram) AddConnector(x1, y1, x2, y2 float64, style LineStyle) error {
	if !finite(x1, y1, x2, y2) {
		return NewInvalidGeometry("connector (%g,%g)-(%g,%g) has non-finite coordinates", x1, y1, x2, y2)
	}

	d.Connectors = append(d.Connectors, &Connector{
		Style: style,
		p1:    Point{x1, y1},
		p2:    Point{x2, y2},
	})
	return nil
}

// Connect draws a line between two boxes, anchored to the named points
// on their outlines. The endpoints follow the boxes: they are resolved
// from the current box geometry at render time.
func (d *Diagram) Connect(from, to *ServiceBox, fromAnchor, toAnchor Anchor, style LineStyle) error {
	if from == nil || to == nil {
		return NewInvalidGeometry("connector endpoints must reference existing boxes")
	}

	d.Connectors = append(d.Connectors, &Connector{
		Style:      style,
		from:       from,
		to:         to,
		fromAnchor: fromAnchor,
		toAnchor:   toAnchor,
		anchored:   true,
	})
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
