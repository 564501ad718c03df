package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/config"
	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/repository"
	"github.com/mathpath/mathpath-backend/internal/response"
)

// QuestionService handles question bank authoring and the chapter catalog.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	cfg          *config.Config
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		rdb:          rdb,
		cfg:          cfg,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// List retrieves questions for the authoring UI with pagination.
func (s *QuestionService) List(ctx context.Context, grade string, semester, page, perPage int) ([]model.Question, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	questions, total, err := s.questionRepo.List(ctx, grade, semester, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return questions, pagination, nil
}

// GetByID retrieves a single question including its answer key.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create validates and inserts a new question, then invalidates the chapter
// catalog cache for its grade/semester.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return err
	}
	s.invalidateCatalog(ctx, q.Grade, q.Semester)
	return nil
}

// Update validates and replaces a question's content.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return err
	}
	s.invalidateCatalog(ctx, q.Grade, q.Semester)
	return nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx, q.Grade, q.Semester)
	return nil
}

// ListChapters returns the distinct chapters for a grade/semester, cached in
// Redis. A cache failure falls through to the database — the catalog must
// keep working when Redis is down.
func (s *QuestionService) ListChapters(ctx context.Context, grade string, semester int) ([]string, error) {
	key := config.CacheKey.ChapterCatalogKey(grade, semester)

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var chapters []string
		if jsonErr := json.Unmarshal([]byte(cached), &chapters); jsonErr == nil {
			return chapters, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("chapter catalog cache read failed")
	}

	chapters, err := s.questionRepo.ListChapters(ctx, grade, semester)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	if chapters == nil {
		chapters = []string{}
	}

	if raw, err := json.Marshal(chapters); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cfg.ChapterCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("chapter catalog cache write failed")
		}
	}

	return chapters, nil
}

func (s *QuestionService) invalidateCatalog(ctx context.Context, grade string, semester int) {
	key := config.CacheKey.ChapterCatalogKey(grade, semester)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("catalog cache invalidation failed")
	}
}
