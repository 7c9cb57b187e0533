package scopeiq

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// LineStyle describes how a connector line is drawn.
type LineStyle struct {
	Color Color
	// Width is the line width in points.
	Width float64
}

// WatermarkStyle places the watermark text on every slide.
// Coordinates are absolute and independent of slide content.
type WatermarkStyle struct {
	Text     string
	X, Y     float64
	W, H     float64
	Color    Color
	FontSize int
}

// BadgeStyle places the round badge on every slide.
type BadgeStyle struct {
	Label     string
	X, Y      float64
	Size      float64
	Fill      Color
	Opacity   float64
	TextColor Color
	FontSize  int
}

// Style is the immutable styling configuration for one deck build.
// It is passed to the Builder at construction so that multiple decks
// with different branding can be built side by side.
//
// All coordinates and dimensions are in inches.
type Style struct {
	SlideWidth  float64
	SlideHeight float64

	// Brand palette.
	Brand Color
	Ink   Color
	Paper Color
	Muted Color

	TitleFontSize    int
	SubtitleFontSize int
	HeadingFontSize  int
	BulletFontSize   int
	TableFontSize    int
	LabelFontSize    int
	CaptionFontSize  int

	// Content frame.
	ContentLeft  float64
	ContentTop   float64
	ContentWidth float64

	// Image row layout: fixed top offset, fixed height, fixed
	// horizontal pitch per image.
	ImageTop    float64
	ImageHeight float64
	ImagePitch  float64

	// Inset between a diagram box outline and its label text.
	BoxInset float64

	Connector LineStyle

	Watermark WatermarkStyle
	Badge     BadgeStyle
}

// DefaultStyle returns the stock ScopeIQ branding on a 10 x 7.5 inch
// slide surface.
func DefaultStyle() Style {
	brand := RGB(37, 99, 235)
	ink := RGB(35, 47, 62)

	return Style{
		SlideWidth:  10.0,
		SlideHeight: 7.5,

		Brand: brand,
		Ink:   ink,
		Paper: RGB(248, 249, 249),
		Muted: RGB(95, 107, 109),

		TitleFontSize:    36,
		SubtitleFontSize: 20,
		HeadingFontSize:  28,
		BulletFontSize:   14,
		TableFontSize:    12,
		LabelFontSize:    12,
		CaptionFontSize:  12,

		ContentLeft:  0.5,
		ContentTop:   1.4,
		ContentWidth: 9.0,

		ImageTop:    1.5,
		ImageHeight: 2.5,
		ImagePitch:  3.3,

		BoxInset: 0.1,

		Connector: LineStyle{
			Color: RGB(95, 107, 109),
			Width: 1.5,
		},

		Watermark: WatermarkStyle{
			Text:     "ScopeIQ",
			X:        7.0,
			Y:        6.7,
			W:        3.0,
			H:        0.5,
			Color:    brand,
			FontSize: 16,
		},

		Badge: BadgeStyle{
			Label:     "AI",
			X:         0.25,
			Y:         6.8,
			Size:      0.35,
			Fill:      brand,
			Opacity:   0.8,
			TextColor: ink,
			FontSize:  10,
		},
	}
}
