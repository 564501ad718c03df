package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/adaptive"
	"github.com/mathpath/mathpath-backend/internal/chart"
	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/repository"
)

// recentHistoryLimit caps the mini-history block on the progress overview.
const recentHistoryLimit = 3

// ProgressService derives mastery state, chart data and overall statistics
// from a student's result history. Nothing here is cached: every read
// recomputes from the stored rows, so a fetch failure is always
// distinguishable from an empty history.
type ProgressService struct {
	results *repository.ResultRepository
	log     zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(results *repository.ResultRepository, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		results: results,
		log:     log.With().Str("component", "progress_service").Logger(),
	}
}

// History returns the student's results, newest first.
func (s *ProgressService) History(ctx context.Context, userID int) ([]model.TestResult, error) {
	history, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if history == nil {
		history = []model.TestResult{}
	}
	return history, nil
}

// Mastery recomputes the student's full mastery state as of now.
func (s *ProgressService) Mastery(ctx context.Context, userID int) (*adaptive.MasteryState, error) {
	history, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	state := adaptive.Aggregate(history, time.Now())
	return &state, nil
}

// Chart builds the radar chart primitives from current mastery percentages.
func (s *ProgressService) Chart(ctx context.Context, userID int) (*chart.Radar, error) {
	state, err := s.Mastery(ctx, userID)
	if err != nil {
		return nil, err
	}
	return chart.Build(state.Percents()), nil
}

// Overview returns whole-history statistics: attempts, average score, letter
// grade and the most recent runs.
func (s *ProgressService) Overview(ctx context.Context, userID int) (*adaptive.Overview, error) {
	history, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	o := adaptive.Summarize(history, recentHistoryLimit)
	return &o, nil
}
