package adaptive

import (
	"errors"
	"testing"
	"time"

	"github.com/mathpath/mathpath-backend/internal/model"
)

func testDraw(competencies ...model.Competency) *Draw {
	qs := make([]model.Question, len(competencies))
	for i, c := range competencies {
		qs[i] = bankQuestion("ch1", c, 2)
	}
	return &Draw{Questions: qs, LevelServed: 2, Tier: TierExact}
}

func answerAll(t *testing.T, s *Session, pick func(q *model.Question) int) {
	t.Helper()
	for {
		q, ok := s.Current()
		if !ok {
			return
		}
		if _, err := s.CheckAnswer(pick(q)); err != nil {
			t.Fatalf("CheckAnswer: %v", err)
		}
		s.Advance()
	}
}

func TestSessionFullRun(t *testing.T) {
	cs := make([]model.Competency, 10)
	for i := range cs {
		cs[i] = model.CompetencyNumerical
	}
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewSession(7, model.ModeChapter, "ch1", "P4", 1, testDraw(cs...), start)

	// Answer 7 correct, 3 wrong.
	n := 0
	answerAll(t, s, func(q *model.Question) int {
		n++
		if n <= 7 {
			return q.AnswerIndex
		}
		return q.AnswerIndex + 1
	})

	if s.CurrentState() != StateCompleted {
		t.Fatalf("state = %s, want completed", s.CurrentState())
	}

	res, err := s.Summary(start.Add(4 * time.Minute))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if res.Score != 70 {
		t.Errorf("Score = %v, want 70", res.Score)
	}
	if res.CorrectAnswers != 7 || res.TotalQuestions != 10 {
		t.Errorf("correct/total = %d/%d, want 7/10", res.CorrectAnswers, res.TotalQuestions)
	}
	if res.TimeSpentSeconds != 240 {
		t.Errorf("TimeSpentSeconds = %d, want 240", res.TimeSpentSeconds)
	}

	stat := res.Skills[model.CompetencyNumerical]
	if stat.Correct != 7 || stat.Attempted != 10 {
		t.Errorf("numerical stat = %+v, want 7/10", stat)
	}

	// The breakdown is zero-filled: untouched competencies are present.
	for _, c := range model.AllCompetencies {
		if _, ok := res.Skills[c]; !ok {
			t.Errorf("breakdown missing %s", c)
		}
	}
}

func TestSessionCheckAnswer(t *testing.T) {
	t.Run("DoubleAnswerRejected", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyNumerical), time.Now())

		if _, err := s.CheckAnswer(0); err != nil {
			t.Fatalf("first answer: %v", err)
		}
		if _, err := s.CheckAnswer(1); !errors.Is(err, ErrAlreadyAnswered) {
			t.Errorf("second answer err = %v, want ErrAlreadyAnswered", err)
		}

		// The first outcome stands.
		s.Advance()
		res, err := s.Summary(time.Now())
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		if res.CorrectAnswers != 1 {
			t.Errorf("CorrectAnswers = %d, want 1 (first answer kept)", res.CorrectAnswers)
		}
	})

	t.Run("OptionOutOfRange", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyNumerical), time.Now())

		for _, idx := range []int{-1, 4, 99} {
			if _, err := s.CheckAnswer(idx); !errors.Is(err, ErrOptionOutOfRange) {
				t.Errorf("CheckAnswer(%d) err = %v, want ErrOptionOutOfRange", idx, err)
			}
		}

		// A bad index neither records an outcome nor advances.
		if _, err := s.CheckAnswer(0); err != nil {
			t.Errorf("valid answer after bad ones: %v", err)
		}
	})

	t.Run("AfterCompletion", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyNumerical), time.Now())
		s.CheckAnswer(0)
		s.Advance()

		if _, err := s.CheckAnswer(0); !errors.Is(err, ErrSessionFinished) {
			t.Errorf("err = %v, want ErrSessionFinished", err)
		}
	})
}

func TestSessionSummaryRequiresCompletion(t *testing.T) {
	s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
		testDraw(model.CompetencyNumerical, model.CompetencyAlgebraic), time.Now())
	s.CheckAnswer(0)
	s.Advance()

	if _, err := s.Summary(time.Now()); !errors.Is(err, ErrSessionUnfinished) {
		t.Errorf("err = %v, want ErrSessionUnfinished", err)
	}
}

func TestSessionSkip(t *testing.T) {
	t.Run("DefaultPolicyExcludes", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyVisual, model.CompetencyVisual, model.CompetencyVisual), time.Now())

		s.CheckAnswer(0) // correct
		s.Advance()
		s.Skip()
		s.CheckAnswer(1) // incorrect
		s.Advance()

		res, err := s.Summary(time.Now())
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		if res.SkippedQuestions != 1 {
			t.Errorf("SkippedQuestions = %d, want 1", res.SkippedQuestions)
		}
		stat := res.Skills[model.CompetencyVisual]
		if stat.Correct != 1 || stat.Attempted != 2 {
			t.Errorf("stat = %+v, want 1 correct of 2 attempted (skip excluded)", stat)
		}
		// Score still counts the skip against the run total.
		if want := float64(1) / 3 * 100; res.Score != want {
			t.Errorf("Score = %v, want %v", res.Score, want)
		}
	})

	t.Run("CountsIncorrectPolicy", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyVisual, model.CompetencyVisual), time.Now())
		s.SkipPolicy = SkipCountsIncorrect

		s.Skip()
		s.CheckAnswer(0)
		s.Advance()

		res, err := s.Summary(time.Now())
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		stat := res.Skills[model.CompetencyVisual]
		if stat.Correct != 1 || stat.Attempted != 2 {
			t.Errorf("stat = %+v, want skip counted into attempted", stat)
		}
	})

	t.Run("SkipPastEnd", func(t *testing.T) {
		s := NewSession(1, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyVisual), time.Now())
		s.Skip()

		if _, err := s.Skip(); !errors.Is(err, ErrSessionFinished) {
			t.Errorf("err = %v, want ErrSessionFinished", err)
		}
	})
}

func TestManager(t *testing.T) {
	m := NewManager()

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := m.Get(42); !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("err = %v, want ErrNoActiveSession", err)
		}
	})

	t.Run("PutReplaces", func(t *testing.T) {
		first := NewSession(42, model.ModeChapter, "ch1", "P4", 1,
			testDraw(model.CompetencyNumerical), time.Now())
		m.Put(first)

		second := NewSession(42, model.ModeAdaptive, "numerical", "P4", 1,
			testDraw(model.CompetencyNumerical), time.Now())
		m.Put(second)

		got, err := m.Get(42)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != second.ID {
			t.Error("Get returned the replaced session")
		}
	})

	t.Run("DoMissing", func(t *testing.T) {
		err := m.Do(99, func(*Session) error { return nil })
		if !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("err = %v, want ErrNoActiveSession", err)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		m.Remove(42)
		if _, err := m.Get(42); !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("err after Remove = %v, want ErrNoActiveSession", err)
		}
	})
}
