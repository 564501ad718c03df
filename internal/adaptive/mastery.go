package adaptive

import (
	"sort"
	"time"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// Scoring scheme. One authoritative set of weights: each correct answer adds
// 5 XP, each incorrect answer removes 2, XP stays inside [0, 400], and every
// full calendar day without practice costs 50 XP across all skills.
const (
	XPMax            = 400
	XPPerLevel       = 100
	LevelMax         = 5
	CorrectWeight    = 5
	IncorrectPenalty = 2
	DecayPerDay      = 50
)

// SkillMastery is the derived state of one competency.
type SkillMastery struct {
	XP       int     `json:"xp"`
	Level    int     `json:"level"`
	Progress int     `json:"progress"`
	Percent  float64 `json:"percent"`
}

// MasteryState is the full derived mastery picture for one student. It is
// recomputed from scratch on every read — never cached or updated in place.
type MasteryState struct {
	Skills        map[model.Competency]SkillMastery `json:"skills"`
	LastPracticed *time.Time                        `json:"last_practiced,omitempty"`
	DecayApplied  int                               `json:"decay_applied"`
}

// Aggregate folds a student's complete result history into a MasteryState as
// of "today". The input may arrive in any order (the result store returns
// newest-first); it is sorted ascending here because XP accumulates
// sequentially and the clamp makes the fold order-sensitive.
//
// Aggregate is a pure function of (history, today): same inputs, same state.
func Aggregate(history []model.TestResult, today time.Time) MasteryState {
	xp := make(map[model.Competency]int, len(model.AllCompetencies))

	state := MasteryState{
		Skills: make(map[model.Competency]SkillMastery, len(model.AllCompetencies)),
	}

	if len(history) > 0 {
		sorted := make([]model.TestResult, len(history))
		copy(sorted, history)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})

		for _, res := range sorted {
			for _, c := range model.AllCompetencies {
				stat, ok := res.Skills[c]
				if !ok || stat.Attempted == 0 {
					continue
				}
				incorrect := stat.Attempted - stat.Correct
				if incorrect < 0 {
					incorrect = 0
				}
				delta := stat.Correct*CorrectWeight - incorrect*IncorrectPenalty
				xp[c] = clampXP(xp[c] + delta)
			}
		}

		last := sorted[len(sorted)-1].CreatedAt
		state.LastPracticed = &last
		state.DecayApplied = daysBetween(last, today) * DecayPerDay
	}

	for _, c := range model.AllCompetencies {
		final := xp[c] - state.DecayApplied
		if final < 0 {
			final = 0
		}
		state.Skills[c] = skillFromXP(final)
	}

	return state
}

func clampXP(v int) int {
	if v < 0 {
		return 0
	}
	if v > XPMax {
		return XPMax
	}
	return v
}

func skillFromXP(xp int) SkillMastery {
	level := xp/XPPerLevel + 1
	if level > LevelMax {
		level = LevelMax
	}
	progress := xp % XPPerLevel
	if level == LevelMax {
		progress = XPPerLevel
	}
	return SkillMastery{
		XP:       xp,
		Level:    level,
		Progress: progress,
		Percent:  float64(xp) / XPMax * 100,
	}
}

// daysBetween counts full calendar days from a to b, midnight-aligned in b's
// location. Time-of-day is ignored: practicing at 23:59 and reading at 00:01
// counts as one elapsed day.
func daysBetween(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, loc)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, loc)
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Levels flattens a MasteryState to per-competency levels, the input for
// adaptive weakest-skill selection.
func (s MasteryState) Levels() map[model.Competency]int {
	levels := make(map[model.Competency]int, len(s.Skills))
	for c, sk := range s.Skills {
		levels[c] = sk.Level
	}
	return levels
}

// Percents flattens a MasteryState to per-competency chart percentages.
func (s MasteryState) Percents() map[model.Competency]float64 {
	out := make(map[model.Competency]float64, len(s.Skills))
	for c, sk := range s.Skills {
		out[c] = sk.Percent
	}
	return out
}

// Overview is the whole-history aggregate shown on the progress tab.
type Overview struct {
	Attempts     int                `json:"attempts"`
	AverageScore float64            `json:"average_score"`
	Grade        string             `json:"grade"`
	Recent       []model.TestResult `json:"recent"`
}

// Summarize computes the overall attempt count, average score, letter grade
// and the most recent runs (newest first) for display.
func Summarize(history []model.TestResult, recentLimit int) Overview {
	o := Overview{Recent: []model.TestResult{}}
	if len(history) == 0 {
		o.Grade = LetterGrade(0)
		return o
	}

	sorted := make([]model.TestResult, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	sum := 0.0
	for _, r := range sorted {
		sum += r.Score
	}
	o.Attempts = len(sorted)
	o.AverageScore = sum / float64(len(sorted))
	o.Grade = LetterGrade(o.AverageScore)

	if recentLimit > len(sorted) {
		recentLimit = len(sorted)
	}
	o.Recent = sorted[:recentLimit]
	return o
}

// LetterGrade maps an average score percentage to the report-card letter.
func LetterGrade(avg float64) string {
	switch {
	case avg >= 80:
		return "A"
	case avg >= 70:
		return "B"
	case avg >= 60:
		return "C"
	case avg >= 50:
		return "D"
	default:
		return "F"
	}
}
