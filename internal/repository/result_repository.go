package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// ResultRepository handles the append-only test result store.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create inserts a single result row.
func (r *ResultRepository) Create(ctx context.Context, res *model.TestResult) error {
	skills, err := json.Marshal(res.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO test_results
		 (user_id, label, mode, grade, semester, level_served, score,
		  total_questions, correct_answers, skipped_questions, time_spent_seconds, skills, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		res.UserID, res.Label, string(res.Mode), res.Grade, res.Semester,
		res.LevelServed, res.Score, res.TotalQuestions, res.CorrectAnswers,
		res.SkippedQuestions, res.TimeSpentSeconds, skills, res.CreatedAt,
	).Scan(&res.ID)
}

// CreateBatch bulk-inserts result rows with a single UNNEST statement. Used
// by the persistence worker to drain the Redis queue efficiently.
func (r *ResultRepository) CreateBatch(ctx context.Context, batch []*model.TestResult) error {
	n := len(batch)
	if n == 0 {
		return nil
	}

	userIDs := make([]int, n)
	labels := make([]string, n)
	modes := make([]string, n)
	grades := make([]string, n)
	semesters := make([]int, n)
	levels := make([]int, n)
	scores := make([]float64, n)
	totals := make([]int, n)
	corrects := make([]int, n)
	skippeds := make([]int, n)
	timeSpents := make([]int, n)
	skills := make([][]byte, n)
	createdAts := make([]time.Time, n)

	for i, res := range batch {
		raw, err := json.Marshal(res.Skills)
		if err != nil {
			return fmt.Errorf("marshal skills: %w", err)
		}
		userIDs[i] = res.UserID
		labels[i] = res.Label
		modes[i] = string(res.Mode)
		grades[i] = res.Grade
		semesters[i] = res.Semester
		levels[i] = res.LevelServed
		scores[i] = res.Score
		totals[i] = res.TotalQuestions
		corrects[i] = res.CorrectAnswers
		skippeds[i] = res.SkippedQuestions
		timeSpents[i] = res.TimeSpentSeconds
		skills[i] = raw
		createdAts[i] = res.CreatedAt
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO test_results
		 (user_id, label, mode, grade, semester, level_served, score,
		  total_questions, correct_answers, skipped_questions, time_spent_seconds, skills, created_at)
		SELECT * FROM UNNEST(
			$1::int[], $2::text[], $3::text[], $4::text[], $5::int[], $6::int[],
			$7::float8[], $8::int[], $9::int[], $10::int[], $11::int[],
			$12::jsonb[], $13::timestamptz[]
		)`,
		userIDs, labels, modes, grades, semesters, levels, scores,
		totals, corrects, skippeds, timeSpents, skills, createdAts)
	return err
}

// ListByUser retrieves a student's full result history, newest first. The
// mastery aggregator re-sorts ascending itself; this ordering matches what
// history views want.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int) ([]model.TestResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, label, mode, grade, semester, level_served, score,
		        total_questions, correct_answers, skipped_questions,
		        time_spent_seconds, skills, created_at
		 FROM test_results
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TestResult
	for rows.Next() {
		var (
			res      model.TestResult
			mode     string
			rawSkill []byte
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.Label, &mode, &res.Grade,
			&res.Semester, &res.LevelServed, &res.Score, &res.TotalQuestions,
			&res.CorrectAnswers, &res.SkippedQuestions, &res.TimeSpentSeconds,
			&rawSkill, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Mode = model.PracticeMode(mode)

		// Stored keys pass through the closed competency enum; anything
		// unrecognized lands in the unknown bucket instead of being trusted.
		var raw map[string]model.SkillStat
		if err := json.Unmarshal(rawSkill, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal skills for result %s: %w", res.ID, err)
		}
		res.Skills = model.NormalizeBreakdown(raw)

		results = append(results, res)
	}
	return results, rows.Err()
}
