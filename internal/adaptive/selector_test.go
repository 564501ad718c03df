package adaptive

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// fakeSource serves questions keyed by (chapter, competency, level). An empty
// Filter field matches everything, mirroring the repository's dynamic WHERE.
type fakeSource struct {
	questions []model.Question
	err       error
	queries   int
}

func (f *fakeSource) Query(_ context.Context, flt Filter) ([]model.Question, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if flt.Chapter != "" && q.Chapter != flt.Chapter {
			continue
		}
		if flt.Competency != "" && q.Competency != flt.Competency {
			continue
		}
		if flt.Level != 0 && q.Level != flt.Level {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func bankQuestion(chapter string, c model.Competency, level int) model.Question {
	return model.Question{
		ID:          uuid.New(),
		Grade:       "P4",
		Semester:    1,
		Chapter:     chapter,
		Competency:  c,
		Level:       level,
		Prompt:      fmt.Sprintf("%s level %d", c, level),
		Options:     []string{"a", "b", "c", "d"},
		AnswerIndex: 0,
	}
}

func TestSelectorExactTier(t *testing.T) {
	src := &fakeSource{questions: []model.Question{
		bankQuestion("ch1", model.CompetencyNumerical, 3),
		bankQuestion("ch1", model.CompetencyNumerical, 3),
	}}
	sel := NewSelector(src, 10, zerolog.Nop())

	draw, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeChapter, Grade: "P4", Semester: 1,
		Chapter: "ch1", Competency: model.CompetencyNumerical, Level: 3,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if draw.Tier != TierExact {
		t.Errorf("Tier = %s, want %s", draw.Tier, TierExact)
	}
	if draw.LevelServed != 3 {
		t.Errorf("LevelServed = %d, want 3", draw.LevelServed)
	}
	if len(draw.Questions) != 2 {
		t.Errorf("len(Questions) = %d, want 2", len(draw.Questions))
	}
}

func TestSelectorLowerLevelFallback(t *testing.T) {
	// Nothing at level 4 or 3; level 2 has stock.
	src := &fakeSource{questions: []model.Question{
		bankQuestion("ch1", model.CompetencyAlgebraic, 2),
		bankQuestion("ch1", model.CompetencyAlgebraic, 1),
	}}
	sel := NewSelector(src, 10, zerolog.Nop())

	draw, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeCompetency, Grade: "P4", Semester: 1,
		Competency: model.CompetencyAlgebraic, Level: 4,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if draw.Tier != TierLowerLevel {
		t.Errorf("Tier = %s, want %s", draw.Tier, TierLowerLevel)
	}
	if draw.LevelServed != 2 {
		t.Errorf("LevelServed = %d, want 2 (first non-empty below request)", draw.LevelServed)
	}
	for _, q := range draw.Questions {
		if q.Level != 2 {
			t.Errorf("question level %d leaked into a level-2 draw", q.Level)
		}
	}
}

func TestSelectorChapterWideFallback(t *testing.T) {
	// The requested competency has no questions at any level, but the chapter
	// itself is stocked with other competencies.
	src := &fakeSource{questions: []model.Question{
		bankQuestion("ch1", model.CompetencyVisual, 2),
		bankQuestion("ch1", model.CompetencyData, 3),
	}}
	sel := NewSelector(src, 10, zerolog.Nop())

	draw, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeChapter, Grade: "P4", Semester: 1,
		Chapter: "ch1", Competency: model.CompetencyNumerical, Level: 3,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if draw.Tier != TierChapterWide {
		t.Errorf("Tier = %s, want %s", draw.Tier, TierChapterWide)
	}
	if draw.LevelServed != 2 {
		t.Errorf("LevelServed = %d, want 2 (lowest level among candidates)", draw.LevelServed)
	}
	if len(draw.Questions) != 2 {
		t.Errorf("len(Questions) = %d, want 2", len(draw.Questions))
	}
}

func TestSelectorExhausted(t *testing.T) {
	t.Run("CompetencyMode", func(t *testing.T) {
		sel := NewSelector(&fakeSource{}, 10, zerolog.Nop())
		_, err := sel.Select(context.Background(), Criteria{
			Mode: model.ModeCompetency, Grade: "P4", Semester: 1,
			Competency: model.CompetencyLogical, Level: 5,
		})
		if !errors.Is(err, ErrExhausted) {
			t.Errorf("err = %v, want ErrExhausted", err)
		}
	})

	t.Run("ChapterModeEmptyChapter", func(t *testing.T) {
		src := &fakeSource{questions: []model.Question{
			bankQuestion("other", model.CompetencyNumerical, 1),
		}}
		sel := NewSelector(src, 10, zerolog.Nop())
		_, err := sel.Select(context.Background(), Criteria{
			Mode: model.ModeChapter, Grade: "P4", Semester: 1,
			Chapter: "ch1", Competency: model.CompetencyNumerical, Level: 2,
		})
		if !errors.Is(err, ErrExhausted) {
			t.Errorf("err = %v, want ErrExhausted", err)
		}
	})
}

func TestSelectorSourceError(t *testing.T) {
	backendDown := errors.New("connection refused")
	sel := NewSelector(&fakeSource{err: backendDown}, 10, zerolog.Nop())

	_, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeCompetency, Grade: "P4", Semester: 1,
		Competency: model.CompetencyNumerical, Level: 1,
	})
	if !errors.Is(err, backendDown) {
		t.Errorf("err = %v, want wrapped source error", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("backend failure must not masquerade as an empty bank")
	}
}

func TestSelectorTruncatesToDrawSize(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 25; i++ {
		src.questions = append(src.questions, bankQuestion("ch1", model.CompetencyApplied, 1))
	}
	sel := NewSelector(src, 10, zerolog.Nop())

	draw, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeCompetency, Grade: "P4", Semester: 1,
		Competency: model.CompetencyApplied, Level: 1,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(draw.Questions) != 10 {
		t.Errorf("len(Questions) = %d, want 10", len(draw.Questions))
	}

	// No duplicates within the draw.
	seen := make(map[uuid.UUID]bool)
	for _, q := range draw.Questions {
		if seen[q.ID] {
			t.Errorf("question %s repeated within draw", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectorSmallBankServedWhole(t *testing.T) {
	src := &fakeSource{questions: []model.Question{
		bankQuestion("ch1", model.CompetencyData, 1),
		bankQuestion("ch1", model.CompetencyData, 1),
		bankQuestion("ch1", model.CompetencyData, 1),
	}}
	sel := NewSelector(src, 10, zerolog.Nop())

	draw, err := sel.Select(context.Background(), Criteria{
		Mode: model.ModeCompetency, Grade: "P4", Semester: 1,
		Competency: model.CompetencyData, Level: 1,
	})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(draw.Questions) != 3 {
		t.Errorf("len(Questions) = %d, want all 3 available", len(draw.Questions))
	}
}

func TestWeakestSkill(t *testing.T) {
	tests := []struct {
		name   string
		levels map[model.Competency]int
		want   model.Competency
	}{
		{
			name: "SingleWeakest",
			levels: map[model.Competency]int{
				model.CompetencyNumerical: 3,
				model.CompetencyAlgebraic: 1,
				model.CompetencyVisual:    2,
				model.CompetencyData:      4,
				model.CompetencyLogical:   2,
				model.CompetencyApplied:   5,
			},
			want: model.CompetencyAlgebraic,
		},
		{
			name: "TieBreaksByCanonicalOrder",
			levels: map[model.Competency]int{
				model.CompetencyNumerical: 2,
				model.CompetencyAlgebraic: 1,
				model.CompetencyVisual:    1,
				model.CompetencyData:      1,
				model.CompetencyLogical:   3,
				model.CompetencyApplied:   3,
			},
			want: model.CompetencyAlgebraic,
		},
		{
			name: "AllEqual",
			levels: map[model.Competency]int{
				model.CompetencyNumerical: 1,
				model.CompetencyAlgebraic: 1,
				model.CompetencyVisual:    1,
				model.CompetencyData:      1,
				model.CompetencyLogical:   1,
				model.CompetencyApplied:   1,
			},
			want: model.CompetencyNumerical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeakestSkill(tt.levels); got != tt.want {
				t.Errorf("WeakestSkill = %s, want %s", got, tt.want)
			}
		})
	}
}
