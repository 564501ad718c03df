package adaptive

import (
	"testing"
	"time"

	"github.com/mathpath/mathpath-backend/internal/model"
)

func resultAt(created time.Time, skills map[model.Competency]model.SkillStat) model.TestResult {
	b := model.NewSkillBreakdown()
	for c, s := range skills {
		b[c] = s
	}
	return model.TestResult{
		UserID:    1,
		Mode:      model.ModeChapter,
		Score:     70,
		Skills:    b,
		CreatedAt: created,
	}
}

func TestAggregateEmptyHistory(t *testing.T) {
	state := Aggregate(nil, time.Now())

	if state.LastPracticed != nil {
		t.Errorf("LastPracticed = %v, want nil", state.LastPracticed)
	}
	if state.DecayApplied != 0 {
		t.Errorf("DecayApplied = %d, want 0", state.DecayApplied)
	}
	for _, c := range model.AllCompetencies {
		sk, ok := state.Skills[c]
		if !ok {
			t.Fatalf("missing skill %s", c)
		}
		if sk.XP != 0 || sk.Level != 1 || sk.Progress != 0 || sk.Percent != 0 {
			t.Errorf("%s = %+v, want zero XP at level 1", c, sk)
		}
	}
}

func TestAggregateSingleSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	history := []model.TestResult{
		resultAt(now, map[model.Competency]model.SkillStat{
			model.CompetencyNumerical: {Correct: 8, Attempted: 10},
		}),
	}

	state := Aggregate(history, now)

	// 8 correct, 2 incorrect: 8*5 - 2*2 = 36 XP.
	sk := state.Skills[model.CompetencyNumerical]
	if sk.XP != 36 {
		t.Errorf("XP = %d, want 36", sk.XP)
	}
	if sk.Level != 1 {
		t.Errorf("Level = %d, want 1", sk.Level)
	}
	if sk.Progress != 36 {
		t.Errorf("Progress = %d, want 36", sk.Progress)
	}
	if sk.Percent != 9 {
		t.Errorf("Percent = %v, want 9", sk.Percent)
	}
	if state.LastPracticed == nil || !state.LastPracticed.Equal(now) {
		t.Errorf("LastPracticed = %v, want %v", state.LastPracticed, now)
	}

	// Untouched skills stay at zero.
	if sk := state.Skills[model.CompetencyAlgebraic]; sk.XP != 0 {
		t.Errorf("untouched skill XP = %d, want 0", sk.XP)
	}
}

func TestAggregateXPClamping(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("UpperBound", func(t *testing.T) {
		// 10 perfect sessions would be 500 XP raw; the cap holds at 400.
		var history []model.TestResult
		for i := 0; i < 10; i++ {
			history = append(history, resultAt(now.Add(time.Duration(i)*time.Hour),
				map[model.Competency]model.SkillStat{
					model.CompetencyLogical: {Correct: 10, Attempted: 10},
				}))
		}
		state := Aggregate(history, now.Add(10*time.Hour))
		sk := state.Skills[model.CompetencyLogical]
		if sk.XP != XPMax {
			t.Errorf("XP = %d, want %d", sk.XP, XPMax)
		}
		if sk.Level != LevelMax {
			t.Errorf("Level = %d, want %d", sk.Level, LevelMax)
		}
		if sk.Progress != XPPerLevel {
			t.Errorf("Progress = %d, want %d (full bar at max level)", sk.Progress, XPPerLevel)
		}
		if sk.Percent != 100 {
			t.Errorf("Percent = %v, want 100", sk.Percent)
		}
	})

	t.Run("LowerBound", func(t *testing.T) {
		// All-incorrect session: raw delta is -20, floored at 0.
		history := []model.TestResult{
			resultAt(now, map[model.Competency]model.SkillStat{
				model.CompetencyData: {Correct: 0, Attempted: 10},
			}),
		}
		state := Aggregate(history, now)
		if got := state.Skills[model.CompetencyData].XP; got != 0 {
			t.Errorf("XP = %d, want 0", got)
		}
	})

	t.Run("ClampBetweenSessions", func(t *testing.T) {
		// The cap applies after every session, not just at the end: a perfect
		// run on a capped skill cannot bank headroom against a later bad run.
		history := []model.TestResult{}
		for i := 0; i < 9; i++ {
			history = append(history, resultAt(now.Add(time.Duration(i)*time.Hour),
				map[model.Competency]model.SkillStat{
					model.CompetencyApplied: {Correct: 10, Attempted: 10},
				}))
		}
		// 9 * 50 = 450 raw, clamped to 400. Then one all-wrong run: -20.
		history = append(history, resultAt(now.Add(9*time.Hour),
			map[model.Competency]model.SkillStat{
				model.CompetencyApplied: {Correct: 0, Attempted: 10},
			}))

		state := Aggregate(history, now.Add(10*time.Hour))
		if got := state.Skills[model.CompetencyApplied].XP; got != 380 {
			t.Errorf("XP = %d, want 380", got)
		}
	})
}

func TestAggregateOrderInsensitive(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	a := resultAt(now.Add(-48*time.Hour), map[model.Competency]model.SkillStat{
		model.CompetencyNumerical: {Correct: 10, Attempted: 10},
	})
	b := resultAt(now.Add(-24*time.Hour), map[model.Competency]model.SkillStat{
		model.CompetencyNumerical: {Correct: 2, Attempted: 10},
	})
	c := resultAt(now, map[model.Competency]model.SkillStat{
		model.CompetencyNumerical: {Correct: 6, Attempted: 10},
	})

	chronological := Aggregate([]model.TestResult{a, b, c}, now)
	newestFirst := Aggregate([]model.TestResult{c, b, a}, now)
	shuffled := Aggregate([]model.TestResult{b, c, a}, now)

	want := chronological.Skills[model.CompetencyNumerical].XP
	if got := newestFirst.Skills[model.CompetencyNumerical].XP; got != want {
		t.Errorf("newest-first XP = %d, chronological = %d", got, want)
	}
	if got := shuffled.Skills[model.CompetencyNumerical].XP; got != want {
		t.Errorf("shuffled XP = %d, chronological = %d", got, want)
	}
}

func TestAggregateDecay(t *testing.T) {
	loc := time.UTC
	practice := time.Date(2026, 3, 1, 16, 0, 0, 0, loc)

	// One perfect run: +50 XP on the practiced skill.
	history := []model.TestResult{
		resultAt(practice, map[model.Competency]model.SkillStat{
			model.CompetencyNumerical: {Correct: 10, Attempted: 10},
		}),
	}

	tests := []struct {
		name   string
		today  time.Time
		decay  int
		wantXP int
	}{
		{"SameDay", practice.Add(5 * time.Hour), 0, 50},
		{"NextDay", practice.Add(24 * time.Hour), 50, 0},
		{"MidnightBoundary", time.Date(2026, 3, 2, 0, 1, 0, 0, loc), 50, 0},
		{"FiveDaysLater", practice.AddDate(0, 0, 5), 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Aggregate(history, tt.today)
			if state.DecayApplied != tt.decay {
				t.Errorf("DecayApplied = %d, want %d", state.DecayApplied, tt.decay)
			}
			if got := state.Skills[model.CompetencyNumerical].XP; got != tt.wantXP {
				t.Errorf("XP = %d, want %d", got, tt.wantXP)
			}
		})
	}
}

func TestAggregateDecayNeverNegative(t *testing.T) {
	practice := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	history := []model.TestResult{
		resultAt(practice, map[model.Competency]model.SkillStat{
			model.CompetencyVisual: {Correct: 4, Attempted: 10},
		}),
	}

	// A month away wipes everything; XP floors at zero and the level floors
	// at 1 on every skill, practiced or not.
	state := Aggregate(history, practice.AddDate(0, 1, 0))
	for _, c := range model.AllCompetencies {
		sk := state.Skills[c]
		if sk.XP != 0 {
			t.Errorf("%s XP = %d, want 0", c, sk.XP)
		}
		if sk.Level != 1 {
			t.Errorf("%s Level = %d, want 1", c, sk.Level)
		}
	}
}

func TestAggregateSkipsZeroAttempted(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	history := []model.TestResult{
		resultAt(now, map[model.Competency]model.SkillStat{
			model.CompetencyNumerical: {Correct: 5, Attempted: 5},
			model.CompetencyAlgebraic: {Correct: 0, Attempted: 0},
		}),
	}

	state := Aggregate(history, now)
	if got := state.Skills[model.CompetencyAlgebraic].XP; got != 0 {
		t.Errorf("zero-attempted skill XP = %d, want 0", got)
	}
}

func TestSkillFromXPLevels(t *testing.T) {
	tests := []struct {
		xp       int
		level    int
		progress int
	}{
		{0, 1, 0},
		{99, 1, 99},
		{100, 2, 0},
		{250, 3, 50},
		{399, 4, 99},
		{400, 5, 100},
	}

	for _, tt := range tests {
		sk := skillFromXP(tt.xp)
		if sk.Level != tt.level || sk.Progress != tt.progress {
			t.Errorf("skillFromXP(%d) = level %d progress %d, want level %d progress %d",
				tt.xp, sk.Level, sk.Progress, tt.level, tt.progress)
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		o := Summarize(nil, 3)
		if o.Attempts != 0 || o.AverageScore != 0 {
			t.Errorf("got %+v, want zero attempts and average", o)
		}
		if o.Grade != "F" {
			t.Errorf("Grade = %q, want F", o.Grade)
		}
		if o.Recent == nil || len(o.Recent) != 0 {
			t.Errorf("Recent = %v, want empty non-nil slice", o.Recent)
		}
	})

	t.Run("RecentNewestFirst", func(t *testing.T) {
		var history []model.TestResult
		scores := []float64{60, 70, 80, 90, 100}
		for i, s := range scores {
			r := resultAt(now.Add(time.Duration(i)*time.Hour), nil)
			r.Score = s
			history = append(history, r)
		}

		o := Summarize(history, 3)
		if o.Attempts != 5 {
			t.Errorf("Attempts = %d, want 5", o.Attempts)
		}
		if o.AverageScore != 80 {
			t.Errorf("AverageScore = %v, want 80", o.AverageScore)
		}
		if o.Grade != "A" {
			t.Errorf("Grade = %q, want A", o.Grade)
		}
		if len(o.Recent) != 3 {
			t.Fatalf("len(Recent) = %d, want 3", len(o.Recent))
		}
		if o.Recent[0].Score != 100 || o.Recent[2].Score != 80 {
			t.Errorf("Recent scores = [%v %v %v], want newest first",
				o.Recent[0].Score, o.Recent[1].Score, o.Recent[2].Score)
		}
	})
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{100, "A"}, {80, "A"},
		{79.9, "B"}, {70, "B"},
		{69.9, "C"}, {60, "C"},
		{59.9, "D"}, {50, "D"},
		{49.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := LetterGrade(tt.avg); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}
