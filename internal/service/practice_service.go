package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/adaptive"
	"github.com/mathpath/mathpath-backend/internal/config"
	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/repository"
)

// SessionView is the client-facing snapshot of a running practice session.
type SessionView struct {
	SessionID   uuid.UUID              `json:"session_id"`
	Mode        model.PracticeMode     `json:"mode"`
	Label       string                 `json:"label"`
	LevelServed int                    `json:"level_served"`
	Tier        adaptive.Tier          `json:"tier"`
	Position    int                    `json:"position"`
	Total       int                    `json:"total"`
	Question    *model.StudentQuestion `json:"question,omitempty"`
}

// AnswerFeedback tells the client how the answer went and what comes next.
type AnswerFeedback struct {
	Correct     bool                   `json:"correct"`
	AnswerIndex int                    `json:"answer_index"`
	Explanation string                 `json:"explanation,omitempty"`
	Finished    bool                   `json:"finished"`
	Position    int                    `json:"position"`
	Total       int                    `json:"total"`
	Next        *model.StudentQuestion `json:"next,omitempty"`
}

// FinishResult is the outcome of completing a run. Persisted=false means the
// summary was computed but could not be stored anywhere — the client still
// gets its scores, and the failure is logged for follow-up.
type FinishResult struct {
	Result    *model.TestResult `json:"result"`
	Persisted bool              `json:"persisted"`
}

// PracticeService orchestrates the practice flow: question selection with
// fallback, the per-student session engine, and result persistence through
// the Redis queue with a direct-database fallback.
type PracticeService struct {
	selector *adaptive.Selector
	sessions *adaptive.Manager
	results  *repository.ResultRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	selector *adaptive.Selector,
	sessions *adaptive.Manager,
	results *repository.ResultRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		selector: selector,
		sessions: sessions,
		results:  results,
		rdb:      rdb,
		log:      log.With().Str("component", "practice_service").Logger(),
	}
}

// Start resolves the request into selection criteria, draws a question set
// (with fallback) and registers a fresh session, replacing any unfinished
// one. Returns adaptive.ErrExhausted when no tier produced questions.
func (s *PracticeService) Start(ctx context.Context, userID int, req *model.StartPracticeRequest) (*SessionView, error) {
	mode := model.PracticeMode(req.Mode)
	criteria := adaptive.Criteria{
		Mode:       mode,
		Grade:      req.Grade,
		Semester:   req.Semester,
		Chapter:    req.Chapter,
		Competency: model.ParseCompetency(req.Competency),
		Level:      req.Level,
	}

	switch mode {
	case model.ModeChapter:
		if req.Chapter == "" || !criteria.Competency.Valid() {
			return nil, fmt.Errorf("chapter mode needs chapter and competency: %w", adaptive.ErrExhausted)
		}
	case model.ModeCompetency:
		if !criteria.Competency.Valid() {
			return nil, fmt.Errorf("competency mode needs a competency: %w", adaptive.ErrExhausted)
		}
	case model.ModeAdaptive:
		// The weakest skill and its current level come from mastery state,
		// not from the request.
		weakest, level, err := s.weakestSkill(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("resolve weakest skill: %w", err)
		}
		criteria.Competency = weakest
		criteria.Level = level
		criteria.Chapter = ""
	}
	if criteria.Level == 0 {
		criteria.Level = 1
	}

	draw, err := s.selector.Select(ctx, criteria)
	if err != nil {
		return nil, err
	}

	label := string(mode)
	switch mode {
	case model.ModeChapter:
		label = req.Chapter
	case model.ModeCompetency, model.ModeAdaptive:
		label = string(criteria.Competency)
	}

	sess := adaptive.NewSession(userID, mode, label, req.Grade, req.Semester, draw, time.Now())
	s.sessions.Put(sess)

	s.log.Info().
		Int("user_id", userID).
		Str("mode", string(mode)).
		Str("label", label).
		Int("level_served", draw.LevelServed).
		Str("tier", string(draw.Tier)).
		Int("questions", len(draw.Questions)).
		Msg("practice session started")

	return s.view(sess), nil
}

// Current returns the active session snapshot for reconnecting clients.
func (s *PracticeService) Current(userID int) (*SessionView, error) {
	sess, err := s.sessions.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Answer checks the selected option against the current question, then
// advances. The response carries the correct index and explanation so the
// client can show feedback without a second round-trip.
func (s *PracticeService) Answer(userID, optionIndex int) (*AnswerFeedback, error) {
	var fb *AnswerFeedback
	err := s.sessions.Do(userID, func(sess *adaptive.Session) error {
		q, ok := sess.Current()
		if !ok {
			return adaptive.ErrSessionFinished
		}

		correct, err := sess.CheckAnswer(optionIndex)
		if err != nil {
			return err
		}

		more := sess.Advance()
		pos, total := sess.Position()
		fb = &AnswerFeedback{
			Correct:     correct,
			AnswerIndex: q.AnswerIndex,
			Explanation: q.Explanation,
			Finished:    !more,
			Position:    pos,
			Total:       total,
		}
		if next, ok := sess.Current(); ok {
			v := next.StudentView()
			fb.Next = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// Skip marks the current question skipped and advances.
func (s *PracticeService) Skip(userID int) (*AnswerFeedback, error) {
	var fb *AnswerFeedback
	err := s.sessions.Do(userID, func(sess *adaptive.Session) error {
		more, err := sess.Skip()
		if err != nil {
			return err
		}
		pos, total := sess.Position()
		fb = &AnswerFeedback{Finished: !more, Position: pos, Total: total}
		if next, ok := sess.Current(); ok {
			v := next.StudentView()
			fb.Next = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// Finish computes the summary of a completed run, queues it for persistence
// and discards the session. Persistence failures never block the summary:
// the Redis queue is tried first, then a direct insert, and if both fail the
// student still sees their scores.
func (s *PracticeService) Finish(ctx context.Context, userID int) (*FinishResult, error) {
	var result *model.TestResult
	err := s.sessions.Do(userID, func(sess *adaptive.Session) error {
		res, err := sess.Summary(time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sessions.Remove(userID)
	result.CreatedAt = time.Now()

	persisted := s.persist(ctx, result)
	return &FinishResult{Result: result, Persisted: persisted}, nil
}

// Abandon discards an unfinished session without persisting anything.
func (s *PracticeService) Abandon(userID int) error {
	if _, err := s.sessions.Get(userID); err != nil {
		return err
	}
	s.sessions.Remove(userID)
	return nil
}

func (s *PracticeService) persist(ctx context.Context, res *model.TestResult) bool {
	payload, err := json.Marshal(res)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal result")
		return false
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, payload).Err(); err == nil {
		return true
	} else {
		s.log.Warn().Err(err).Msg("result queue unavailable, inserting directly")
	}

	if err := s.results.Create(ctx, res); err != nil {
		s.log.Error().Err(err).Int("user_id", res.UserID).Msg("result lost: direct insert failed too")
		return false
	}
	return true
}

func (s *PracticeService) weakestSkill(ctx context.Context, userID int) (model.Competency, int, error) {
	history, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	state := adaptive.Aggregate(history, time.Now())
	levels := state.Levels()
	weakest := adaptive.WeakestSkill(levels)
	return weakest, levels[weakest], nil
}

func (s *PracticeService) view(sess *adaptive.Session) *SessionView {
	pos, total := sess.Position()
	v := &SessionView{
		SessionID:   sess.ID,
		Mode:        sess.Mode,
		Label:       sess.Label,
		LevelServed: sess.LevelServed,
		Tier:        sess.Tier,
		Position:    pos,
		Total:       total,
	}
	if q, ok := sess.Current(); ok {
		sq := q.StudentView()
		v.Question = &sq
	}
	return v
}
