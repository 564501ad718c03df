// Package chart turns mastery percentages into radar ("spider") chart
// primitives. It is a pure transform: the SPA only has to paint the returned
// points, never to compute geometry.
package chart

import (
	"math"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// Canvas geometry. Matches the 450x450 SVG viewBox the web client uses.
const (
	Center    = 225.0
	MaxRadius = 140.0

	// minDisplayPercent keeps the polygon visible even at zero mastery;
	// maxDisplayPercent pins runaway values to the outer ring.
	minDisplayPercent = 10.0
	maxDisplayPercent = 100.0

	labelRadius = MaxRadius + 35
	ringCount   = 5
)

// axisLabels are the Thai display names for the six chart axes, in canonical
// competency order.
var axisLabels = map[model.Competency]string{
	model.CompetencyNumerical: "จำนวน & คำนวณ",
	model.CompetencyAlgebraic: "พีชคณิต",
	model.CompetencyVisual:    "มิติสัมพันธ์",
	model.CompetencyData:      "ข้อมูล & สถิติ",
	model.CompetencyLogical:   "ตรรกะ",
	model.CompetencyApplied:   "การประยุกต์",
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axis is one spoke of the radar chart.
type Axis struct {
	Key     model.Competency `json:"key"`
	Label   string           `json:"label"`
	Percent float64          `json:"percent"`
	End     Point            `json:"end"`
	LabelAt Point            `json:"label_at"`
}

// Radar is the complete set of primitives for one chart render.
type Radar struct {
	Center    Point     `json:"center"`
	MaxRadius float64   `json:"max_radius"`
	Axes      []Axis    `json:"axes"`
	Rings     [][]Point `json:"rings"`
	Polygon   []Point   `json:"polygon"`
	Dots      []Point   `json:"dots"`
}

// Build computes the radar chart for the given mastery percentages. Axes
// follow the canonical competency order starting at twelve o'clock and
// proceeding clockwise; five dashed rings mark the level bands.
func Build(percents map[model.Competency]float64) *Radar {
	n := len(model.AllCompetencies)
	r := &Radar{
		Center:    Point{X: Center, Y: Center},
		MaxRadius: MaxRadius,
		Axes:      make([]Axis, 0, n),
		Rings:     make([][]Point, 0, ringCount),
		Polygon:   make([]Point, 0, n),
		Dots:      make([]Point, 0, n),
	}

	// Grid rings at 20%..100%, one per level band.
	for ring := 1; ring <= ringCount; ring++ {
		radius := float64(ring) / ringCount * MaxRadius
		pts := make([]Point, 0, n)
		for i := 0; i < n; i++ {
			pts = append(pts, pointAt(i, n, radius))
		}
		r.Rings = append(r.Rings, pts)
	}

	for i, c := range model.AllCompetencies {
		pct := percents[c]
		r.Axes = append(r.Axes, Axis{
			Key:     c,
			Label:   axisLabels[c],
			Percent: pct,
			End:     pointAt(i, n, MaxRadius),
			LabelAt: pointAt(i, n, labelRadius),
		})

		display := math.Max(minDisplayPercent, math.Min(pct, maxDisplayPercent))
		p := pointAt(i, n, display/100*MaxRadius)
		r.Polygon = append(r.Polygon, p)
		r.Dots = append(r.Dots, p)
	}

	return r
}

// pointAt places axis i of n at the given radius. The first axis points
// straight up, hence the -π/2 rotation.
func pointAt(i, n int, radius float64) Point {
	angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
	return Point{
		X: Center + math.Cos(angle)*radius,
		Y: Center + math.Sin(angle)*radius,
	}
}
