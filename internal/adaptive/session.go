package adaptive

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// Session engine errors.
var (
	ErrSessionFinished   = errors.New("practice session is already finished")
	ErrSessionUnfinished = errors.New("practice session still has unanswered questions")
	ErrOptionOutOfRange  = errors.New("selected option index is out of range")
	ErrAlreadyAnswered   = errors.New("current question was already answered")
)

// Outcome records what happened to one question within a session.
type Outcome string

const (
	OutcomeUnanswered Outcome = "unanswered"
	OutcomeCorrect    Outcome = "correct"
	OutcomeIncorrect  Outcome = "incorrect"
	OutcomeSkipped    Outcome = "skipped"
)

// State is the session lifecycle. A session is created directly into
// InProgress (the loading step happens inside the selector before the session
// exists); it moves to Completed once the last question has been resolved.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// SkipPolicy controls how skipped questions count toward the per-competency
// breakdown. Excluding them is the default: a skip carries no negative
// signal.
type SkipPolicy int

const (
	SkipExcluded SkipPolicy = iota
	SkipCountsIncorrect
)

// Session owns one in-progress practice run. It is ephemeral: only the
// TestResult produced by Summary is ever persisted. Not safe for concurrent
// use — the Manager serializes access per student.
type Session struct {
	ID          uuid.UUID
	UserID      int
	Mode        model.PracticeMode
	Label       string
	Grade       string
	Semester    int
	LevelServed int
	Tier        Tier
	SkipPolicy  SkipPolicy

	questions []model.Question
	outcomes  []Outcome
	index     int
	correct   int
	skipped   int
	startedAt time.Time
	state     State
}

// NewSession builds a session from a non-empty draw. The caller (the
// practice service) guarantees the draw came from the selector and is never
// empty.
func NewSession(userID int, mode model.PracticeMode, label string, grade string, semester int, d *Draw, now time.Time) *Session {
	outcomes := make([]Outcome, len(d.Questions))
	for i := range outcomes {
		outcomes[i] = OutcomeUnanswered
	}
	return &Session{
		ID:          uuid.New(),
		UserID:      userID,
		Mode:        mode,
		Label:       label,
		Grade:       grade,
		Semester:    semester,
		LevelServed: d.LevelServed,
		Tier:        d.Tier,
		questions:   d.Questions,
		outcomes:    outcomes,
		startedAt:   now,
		state:       StateInProgress,
	}
}

// State returns the current lifecycle state.
func (s *Session) CurrentState() State { return s.state }

// Position returns the zero-based current index and the total question count.
func (s *Session) Position() (int, int) { return s.index, len(s.questions) }

// Current returns the question at the cursor, or false once the session has
// run past its last question.
func (s *Session) Current() (*model.Question, bool) {
	if s.index >= len(s.questions) {
		return nil, false
	}
	return &s.questions[s.index], true
}

// CheckAnswer compares the selected option against the current question's
// answer key and records the outcome in place. It does not advance the
// cursor. Answering the same question twice is rejected rather than
// re-recorded.
func (s *Session) CheckAnswer(optionIndex int) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrSessionFinished
	}
	if s.outcomes[s.index] != OutcomeUnanswered {
		return false, ErrAlreadyAnswered
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, optionIndex, len(q.Options))
	}

	correct := optionIndex == q.AnswerIndex
	if correct {
		s.outcomes[s.index] = OutcomeCorrect
		s.correct++
	} else {
		s.outcomes[s.index] = OutcomeIncorrect
	}
	return correct, nil
}

// Advance moves the cursor to the next question and reports whether any
// remain. Once the cursor passes the last question the session is completed.
func (s *Session) Advance() bool {
	if s.state == StateCompleted {
		return false
	}
	s.index++
	if s.index >= len(s.questions) {
		s.state = StateCompleted
		return false
	}
	return true
}

// Skip marks the current question as skipped without requiring an answer,
// then advances. Returns whether more questions remain.
func (s *Session) Skip() (bool, error) {
	if _, ok := s.Current(); !ok {
		return false, ErrSessionFinished
	}
	if s.outcomes[s.index] == OutcomeUnanswered {
		s.outcomes[s.index] = OutcomeSkipped
		s.skipped++
	}
	return s.Advance(), nil
}

// Summary computes the TestResult for a completed run: score percentage,
// elapsed seconds and the per-competency breakdown zero-filled across all
// six competencies.
func (s *Session) Summary(now time.Time) (*model.TestResult, error) {
	if s.state != StateCompleted {
		return nil, ErrSessionUnfinished
	}

	skills := model.NewSkillBreakdown()
	for i, q := range s.questions {
		c := q.Competency
		if !c.Valid() {
			c = model.CompetencyUnknown
		}
		stat := skills[c]
		switch s.outcomes[i] {
		case OutcomeCorrect:
			stat.Correct++
			stat.Attempted++
		case OutcomeIncorrect:
			stat.Attempted++
		case OutcomeSkipped:
			if s.SkipPolicy == SkipCountsIncorrect {
				stat.Attempted++
			}
		}
		skills[c] = stat
	}

	total := len(s.questions)
	score := 0.0
	if total > 0 {
		score = float64(s.correct) / float64(total) * 100
	}

	return &model.TestResult{
		UserID:           s.UserID,
		Label:            s.Label,
		Mode:             s.Mode,
		Grade:            s.Grade,
		Semester:         s.Semester,
		LevelServed:      s.LevelServed,
		Score:            score,
		TotalQuestions:   total,
		CorrectAnswers:   s.correct,
		SkippedQuestions: s.skipped,
		TimeSpentSeconds: int(now.Sub(s.startedAt).Seconds()),
		Skills:           skills,
	}, nil
}
