package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Question validation errors. These indicate malformed question data: the
// authoring API rejects such payloads outright, while the query path skips
// the offending row instead of crashing a running session.
var (
	ErrTooFewOptions     = errors.New("question must have at least 2 answer options")
	ErrAnswerOutOfRange  = errors.New("correct answer index is outside the option list")
	ErrInvalidGrade      = errors.New("invalid grade code")
	ErrInvalidSemester   = errors.New("semester must be 1 or 2")
	ErrInvalidLevel      = errors.New("difficulty level must be between 1 and 5")
	ErrInvalidCompetency = errors.New("unknown competency")
)

// gradeCodes are the Thai school-year codes the question bank covers:
// ป.1–ป.6 (prathom) and ม.1–ม.3 (matthayom ton).
var gradeCodes = map[string]bool{
	"P1": true, "P2": true, "P3": true, "P4": true, "P5": true, "P6": true,
	"M1": true, "M2": true, "M3": true,
}

// ValidGrade reports whether code is a supported school-year code.
func ValidGrade(code string) bool {
	return gradeCodes[code]
}

// Question is a single multiple-choice item from the question bank.
type Question struct {
	ID             uuid.UUID  `json:"id"`
	Grade          string     `json:"grade"`
	Semester       int        `json:"semester"`
	Chapter        string     `json:"chapter"`
	Competency     Competency `json:"competency"`
	Level          int        `json:"level"`
	Prompt         string     `json:"prompt"`
	MathExpression string     `json:"math_expression,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	Options        []string   `json:"options"`
	AnswerIndex    int        `json:"answer_index"`
	Explanation    string     `json:"explanation,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Validate enforces the question invariants: a supported grade/semester/level,
// a real competency, at least two options, and an in-bounds answer index.
func (q *Question) Validate() error {
	if !ValidGrade(q.Grade) {
		return fmt.Errorf("%w: %q", ErrInvalidGrade, q.Grade)
	}
	if q.Semester != 1 && q.Semester != 2 {
		return ErrInvalidSemester
	}
	if q.Level < 1 || q.Level > 5 {
		return ErrInvalidLevel
	}
	if !q.Competency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCompetency, q.Competency)
	}
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: index %d with %d options", ErrAnswerOutOfRange, q.AnswerIndex, len(q.Options))
	}
	return nil
}

// StudentView strips the answer key and explanation so a question can be sent
// to the client mid-session without leaking the correct option.
func (q *Question) StudentView() StudentQuestion {
	return StudentQuestion{
		ID:             q.ID,
		Competency:     q.Competency,
		Level:          q.Level,
		Prompt:         q.Prompt,
		MathExpression: q.MathExpression,
		ImageURL:       q.ImageURL,
		Options:        q.Options,
	}
}

// StudentQuestion is the answer-free projection of a Question served to a
// student during a practice run.
type StudentQuestion struct {
	ID             uuid.UUID  `json:"id"`
	Competency     Competency `json:"competency"`
	Level          int        `json:"level"`
	Prompt         string     `json:"prompt"`
	MathExpression string     `json:"math_expression,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	Options        []string   `json:"options"`
}

// CreateQuestionRequest is the authoring payload for adding a question.
type CreateQuestionRequest struct {
	Grade          string   `json:"grade" binding:"required,max=4"`
	Semester       int      `json:"semester" binding:"required,oneof=1 2"`
	Chapter        string   `json:"chapter" binding:"required,min=1,max=200"`
	Competency     string   `json:"competency" binding:"required,oneof=numerical algebraic visual data logical applied"`
	Level          int      `json:"level" binding:"required,min=1,max=5"`
	Prompt         string   `json:"prompt" binding:"required,min=1,max=2000"`
	MathExpression string   `json:"math_expression" binding:"omitempty,max=500"`
	ImageURL       string   `json:"image_url" binding:"omitempty,max=500"`
	Options        []string `json:"options" binding:"required,min=2,max=6,dive,required,max=200"`
	AnswerIndex    int      `json:"answer_index" binding:"min=0"`
	Explanation    string   `json:"explanation" binding:"omitempty,max=2000"`
}

// ToQuestion converts the request into a Question ready for validation.
func (r *CreateQuestionRequest) ToQuestion() *Question {
	return &Question{
		Grade:          r.Grade,
		Semester:       r.Semester,
		Chapter:        r.Chapter,
		Competency:     ParseCompetency(r.Competency),
		Level:          r.Level,
		Prompt:         r.Prompt,
		MathExpression: r.MathExpression,
		ImageURL:       r.ImageURL,
		Options:        r.Options,
		AnswerIndex:    r.AnswerIndex,
		Explanation:    r.Explanation,
	}
}
