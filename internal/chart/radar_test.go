package chart

import (
	"math"
	"testing"

	"github.com/mathpath/mathpath-backend/internal/model"
)

const epsilon = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < epsilon }

func flatPercents(v float64) map[model.Competency]float64 {
	m := make(map[model.Competency]float64, len(model.AllCompetencies))
	for _, c := range model.AllCompetencies {
		m[c] = v
	}
	return m
}

func TestBuildShape(t *testing.T) {
	r := Build(flatPercents(50))

	if r.Center.X != Center || r.Center.Y != Center {
		t.Errorf("Center = %+v, want (%v, %v)", r.Center, Center, Center)
	}
	if len(r.Axes) != 6 || len(r.Polygon) != 6 || len(r.Dots) != 6 {
		t.Errorf("axes/polygon/dots = %d/%d/%d, want 6 each",
			len(r.Axes), len(r.Polygon), len(r.Dots))
	}
	if len(r.Rings) != 5 {
		t.Fatalf("rings = %d, want 5", len(r.Rings))
	}
	for i, ring := range r.Rings {
		if len(ring) != 6 {
			t.Errorf("ring %d has %d points, want 6", i, len(ring))
		}
	}

	// Axes follow canonical competency order.
	for i, c := range model.AllCompetencies {
		if r.Axes[i].Key != c {
			t.Errorf("axis %d = %s, want %s", i, r.Axes[i].Key, c)
		}
		if r.Axes[i].Label == "" {
			t.Errorf("axis %s has no label", c)
		}
	}
}

func TestBuildFirstAxisPointsUp(t *testing.T) {
	r := Build(flatPercents(100))

	end := r.Axes[0].End
	if !near(end.X, Center) {
		t.Errorf("first axis end X = %v, want centered at %v", end.X, Center)
	}
	if !near(end.Y, Center-MaxRadius) {
		t.Errorf("first axis end Y = %v, want %v (twelve o'clock)", end.Y, Center-MaxRadius)
	}
}

func TestBuildPolygonRadii(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		radius  float64
	}{
		{"Full", 100, MaxRadius},
		{"Half", 50, MaxRadius / 2},
		// Zero mastery still renders at the minimum display radius.
		{"ZeroFloored", 0, minDisplayPercent / 100 * MaxRadius},
		{"BelowFloor", 4, minDisplayPercent / 100 * MaxRadius},
		// Values past 100 pin to the outer ring.
		{"OverCapped", 130, MaxRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(flatPercents(tt.percent))
			for i, p := range r.Polygon {
				dx, dy := p.X-Center, p.Y-Center
				got := math.Hypot(dx, dy)
				if !near(got, tt.radius) {
					t.Errorf("vertex %d radius = %v, want %v", i, got, tt.radius)
				}
			}
		})
	}
}

func TestBuildRingRadii(t *testing.T) {
	r := Build(flatPercents(0))
	for i, ring := range r.Rings {
		want := float64(i+1) / 5 * MaxRadius
		for j, p := range ring {
			got := math.Hypot(p.X-Center, p.Y-Center)
			if !near(got, want) {
				t.Errorf("ring %d point %d radius = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestBuildDotsMatchPolygon(t *testing.T) {
	r := Build(map[model.Competency]float64{
		model.CompetencyNumerical: 80,
		model.CompetencyAlgebraic: 20,
		model.CompetencyVisual:    60,
	})
	for i := range r.Polygon {
		if r.Dots[i] != r.Polygon[i] {
			t.Errorf("dot %d = %+v, polygon vertex = %+v", i, r.Dots[i], r.Polygon[i])
		}
	}
}
