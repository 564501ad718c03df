package model

// Competency identifies one of the six math skill axes a question trains.
type Competency string

const (
	CompetencyNumerical Competency = "numerical"
	CompetencyAlgebraic Competency = "algebraic"
	CompetencyVisual    Competency = "visual"
	CompetencyData      Competency = "data"
	CompetencyLogical   Competency = "logical"
	CompetencyApplied   Competency = "applied"

	// CompetencyUnknown buckets stored stats whose key no longer maps to a
	// live axis, so old rows keep aggregating instead of being dropped.
	CompetencyUnknown Competency = "unknown"
)

// AllCompetencies is the canonical axis order. Chart geometry, tie-breaking
// and zero-filled breakdowns all follow this order.
var AllCompetencies = []Competency{
	CompetencyNumerical,
	CompetencyAlgebraic,
	CompetencyVisual,
	CompetencyData,
	CompetencyLogical,
	CompetencyApplied,
}

// ParseCompetency maps a stored string onto the closed enum. The legacy
// "spatial" key is an older name for the visual axis.
func ParseCompetency(s string) Competency {
	switch Competency(s) {
	case CompetencyNumerical, CompetencyAlgebraic, CompetencyVisual,
		CompetencyData, CompetencyLogical, CompetencyApplied:
		return Competency(s)
	}
	if s == "spatial" {
		return CompetencyVisual
	}
	return CompetencyUnknown
}

// Valid reports whether c is one of the six live axes.
func (c Competency) Valid() bool {
	for _, v := range AllCompetencies {
		if c == v {
			return true
		}
	}
	return false
}
