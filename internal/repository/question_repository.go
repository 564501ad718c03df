package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/adaptive"
	"github.com/mathpath/mathpath-backend/internal/model"
)

const questionColumns = `id, grade, semester, chapter, competency, level, prompt,
	math_expression, image_url, options, answer_index, explanation, created_at`

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool, log zerolog.Logger) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
		log:  log.With().Str("component", "question_repository").Logger(),
	}
}

// Query retrieves questions matching the filter. Grade and semester are
// always applied; chapter, competency and level only when set. Rows that
// fail validation are skipped with a warning instead of aborting the query —
// one malformed question must not take down a practice run.
func (r *QuestionRepository) Query(ctx context.Context, f adaptive.Filter) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE grade = $1 AND semester = $2`
	args := []any{f.Grade, f.Semester}

	if f.Chapter != "" {
		args = append(args, f.Chapter)
		query += fmt.Sprintf(" AND chapter = $%d", len(args))
	}
	if f.Competency != "" {
		args = append(args, string(f.Competency))
		query += fmt.Sprintf(" AND competency = $%d", len(args))
	}
	if f.Level != 0 {
		args = append(args, f.Level)
		query += fmt.Sprintf(" AND level = $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		if err := q.Validate(); err != nil {
			r.log.Warn().
				Str("question_id", q.ID.String()).
				Err(err).
				Msg("skipping malformed question")
			continue
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	return scanQuestion(row.Scan)
}

// List retrieves questions for the authoring UI with pagination and optional
// grade/semester filters.
func (r *QuestionRepository) List(ctx context.Context, grade string, semester, limit, offset int) ([]model.Question, int, error) {
	base := ` FROM questions WHERE 1=1`
	args := []any{}

	if grade != "" {
		args = append(args, grade)
		base += fmt.Sprintf(" AND grade = $%d", len(args))
	}
	if semester != 0 {
		args = append(args, semester)
		base += fmt.Sprintf(" AND semester = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + questionColumns + base +
		fmt.Sprintf(` ORDER BY grade, semester, chapter, level LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, *q)
	}
	return questions, total, rows.Err()
}

// ListChapters returns the distinct chapter labels for one grade/semester,
// in alphabetical order.
func (r *QuestionRepository) ListChapters(ctx context.Context, grade string, semester int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT chapter FROM questions
		 WHERE grade = $1 AND semester = $2
		 ORDER BY chapter`, grade, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions
		 (grade, semester, chapter, competency, level, prompt, math_expression,
		  image_url, options, answer_index, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''))
		 RETURNING id, created_at`,
		q.Grade, q.Semester, q.Chapter, string(q.Competency), q.Level, q.Prompt,
		q.MathExpression, q.ImageURL, q.Options, q.AnswerIndex, q.Explanation,
	).Scan(&q.ID, &q.CreatedAt)
}

// Update replaces a question's content.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions SET
		 grade = $1, semester = $2, chapter = $3, competency = $4, level = $5,
		 prompt = $6, math_expression = NULLIF($7, ''), image_url = NULLIF($8, ''),
		 options = $9, answer_index = $10, explanation = NULLIF($11, '')
		 WHERE id = $12`,
		q.Grade, q.Semester, q.Chapter, string(q.Competency), q.Level, q.Prompt,
		q.MathExpression, q.ImageURL, q.Options, q.AnswerIndex, q.Explanation, q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", q.ID, pgx.ErrNoRows)
	}
	return nil
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// scanQuestion maps one row onto a Question, normalizing nullable columns
// and the stored competency string.
func scanQuestion(scan func(dest ...any) error) (*model.Question, error) {
	var (
		q          model.Question
		competency string
		mathExpr   *string
		imageURL   *string
		explain    *string
	)
	if err := scan(&q.ID, &q.Grade, &q.Semester, &q.Chapter, &competency, &q.Level,
		&q.Prompt, &mathExpr, &imageURL, &q.Options, &q.AnswerIndex, &explain, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.Competency = model.ParseCompetency(competency)
	if mathExpr != nil {
		q.MathExpression = *mathExpr
	}
	if imageURL != nil {
		q.ImageURL = *imageURL
	}
	if explain != nil {
		q.Explanation = *explain
	}
	return &q, nil
}
