package model

import (
	"errors"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Grade:       "P4",
		Semester:    1,
		Chapter:     "จำนวนนับและการบวกลบ",
		Competency:  CompetencyNumerical,
		Level:       2,
		Prompt:      "245 + 138 = ?",
		Options:     []string{"373", "383", "393", "483"},
		AnswerIndex: 1,
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Question)
		wantErr error
	}{
		{"Valid", func(q *Question) {}, nil},
		{"BadGrade", func(q *Question) { q.Grade = "P7" }, ErrInvalidGrade},
		{"BadSemester", func(q *Question) { q.Semester = 3 }, ErrInvalidSemester},
		{"LevelTooLow", func(q *Question) { q.Level = 0 }, ErrInvalidLevel},
		{"LevelTooHigh", func(q *Question) { q.Level = 6 }, ErrInvalidLevel},
		{"BadCompetency", func(q *Question) { q.Competency = "memorization" }, ErrInvalidCompetency},
		{"UnknownNotWritable", func(q *Question) { q.Competency = CompetencyUnknown }, ErrInvalidCompetency},
		{"OneOption", func(q *Question) { q.Options = []string{"42"} }, ErrTooFewOptions},
		{"NoOptions", func(q *Question) { q.Options = nil }, ErrTooFewOptions},
		{"AnswerNegative", func(q *Question) { q.AnswerIndex = -1 }, ErrAnswerOutOfRange},
		{"AnswerPastEnd", func(q *Question) { q.AnswerIndex = 4 }, ErrAnswerOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := q.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStudentViewHidesAnswer(t *testing.T) {
	q := validQuestion()
	q.Explanation = "บวกทีละหลัก"

	view := q.StudentView()

	if view.Prompt != q.Prompt || len(view.Options) != len(q.Options) {
		t.Errorf("view lost question content: %+v", view)
	}
	// StudentQuestion has no answer or explanation fields at all; what matters
	// here is that the projection carries the rest faithfully.
	if view.Competency != q.Competency || view.Level != q.Level {
		t.Errorf("view = %+v, want competency/level preserved", view)
	}
}

func TestParseCompetency(t *testing.T) {
	tests := []struct {
		in   string
		want Competency
	}{
		{"numerical", CompetencyNumerical},
		{"applied", CompetencyApplied},
		{"spatial", CompetencyVisual}, // legacy key
		{"visual", CompetencyVisual},
		{"", CompetencyUnknown},
		{"memorization", CompetencyUnknown},
		{"NUMERICAL", CompetencyUnknown}, // case-sensitive by design of the stored enum
	}
	for _, tt := range tests {
		if got := ParseCompetency(tt.in); got != tt.want {
			t.Errorf("ParseCompetency(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeBreakdown(t *testing.T) {
	raw := map[string]SkillStat{
		"numerical": {Correct: 3, Attempted: 5},
		"spatial":   {Correct: 2, Attempted: 4},
		"visual":    {Correct: 1, Attempted: 1},
		"banana":    {Correct: 9, Attempted: 9},
	}

	b := NormalizeBreakdown(raw)

	if got := b[CompetencyNumerical]; got.Correct != 3 || got.Attempted != 5 {
		t.Errorf("numerical = %+v", got)
	}
	// Legacy "spatial" merges into visual.
	if got := b[CompetencyVisual]; got.Correct != 3 || got.Attempted != 5 {
		t.Errorf("visual = %+v, want spatial folded in", got)
	}
	if got := b[CompetencyUnknown]; got.Correct != 9 || got.Attempted != 9 {
		t.Errorf("unknown = %+v, want unmapped key folded in", got)
	}
	// Still zero-filled for the untouched axes.
	for _, c := range AllCompetencies {
		if _, ok := b[c]; !ok {
			t.Errorf("missing axis %s", c)
		}
	}
}

func TestValidGrade(t *testing.T) {
	for _, g := range []string{"P1", "P6", "M1", "M3"} {
		if !ValidGrade(g) {
			t.Errorf("ValidGrade(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"", "P0", "P7", "M4", "p4", "K1"} {
		if ValidGrade(g) {
			t.Errorf("ValidGrade(%q) = true, want false", g)
		}
	}
}
