package model

import (
	"time"

	"github.com/google/uuid"
)

// PracticeMode scopes a practice run: a whole chapter, a single competency,
// or adaptive (the weakest competency is chosen automatically).
type PracticeMode string

const (
	ModeChapter    PracticeMode = "chapter"
	ModeCompetency PracticeMode = "competency"
	ModeAdaptive   PracticeMode = "adaptive"
)

// ValidMode reports whether m is a known practice mode.
func ValidMode(m PracticeMode) bool {
	return m == ModeChapter || m == ModeCompetency || m == ModeAdaptive
}

// SkillStat is the per-competency tally within one completed run. Attempted
// counts answered questions only — skipped questions stay out of the
// denominator so they carry no negative signal.
type SkillStat struct {
	Correct   int `json:"correct"`
	Attempted int `json:"attempted"`
}

// SkillBreakdown maps each of the six competencies to its session tally.
// Always zero-filled for all six keys so stored rows have a stable shape.
type SkillBreakdown map[Competency]SkillStat

// NewSkillBreakdown returns a breakdown with all six competencies zeroed.
func NewSkillBreakdown() SkillBreakdown {
	b := make(SkillBreakdown, len(AllCompetencies))
	for _, c := range AllCompetencies {
		b[c] = SkillStat{}
	}
	return b
}

// Normalize rebuilds a breakdown read from storage onto the closed competency
// enum. Unmapped keys are folded into CompetencyUnknown rather than trusted
// as-is.
func NormalizeBreakdown(raw map[string]SkillStat) SkillBreakdown {
	b := NewSkillBreakdown()
	for k, v := range raw {
		c := ParseCompetency(k)
		if c == CompetencyUnknown {
			u := b[CompetencyUnknown]
			u.Correct += v.Correct
			u.Attempted += v.Attempted
			b[CompetencyUnknown] = u
			continue
		}
		s := b[c]
		s.Correct += v.Correct
		s.Attempted += v.Attempted
		b[c] = s
	}
	return b
}

// TestResult is the immutable summary of one completed practice run.
// Persisted append-only; mastery state is always recomputed from these rows.
type TestResult struct {
	ID               uuid.UUID      `json:"id"`
	UserID           int            `json:"user_id"`
	Label            string         `json:"label"`
	Mode             PracticeMode   `json:"mode"`
	Grade            string         `json:"grade"`
	Semester         int            `json:"semester"`
	LevelServed      int            `json:"level_served"`
	Score            float64        `json:"score"`
	TotalQuestions   int            `json:"total_questions"`
	CorrectAnswers   int            `json:"correct_answers"`
	SkippedQuestions int            `json:"skipped_questions"`
	TimeSpentSeconds int            `json:"time_spent_seconds"`
	Skills           SkillBreakdown `json:"skills"`
	CreatedAt        time.Time      `json:"created_at"`
}
