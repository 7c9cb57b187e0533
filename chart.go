package scopeiq

// ChartKind selects the plot style for a rendered chart.
type ChartKind int

const (
	// LineChart plots the series as a connected line with point
	// markers, grid on.
	LineChart ChartKind = iota
	// BarChart plots the series as discrete bars, grid off.
	BarChart
	// AreaChart plots the series as a filled region under a line
	// with point markers, grid on.
	AreaChart
)

func (k ChartKind) String() string {
	switch k {
	case LineChart:
		return "line"
	case BarChart:
		return "bar"
	case AreaChart:
		return "area"
	}
	return "unknown"
}

// ChartSpec describes one labeled numeric series to be rasterized
// into a chart image. It is consumed once by a chart renderer.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	XLabels []string
	YValues []float64
}

// Validate checks that the series is non-empty and that the x labels
// and y values line up.
func (s ChartSpec) Validate() error {
	if len(s.XLabels) == 0 {
		return NewShapeMismatch("chart %q has an empty series", s.Title)
	}
	if len(s.XLabels) != len(s.YValues) {
		return NewShapeMismatch("chart %q has %d x labels but %d y values",
			s.Title, len(s.XLabels), len(s.YValues))
	}
	return nil
}
