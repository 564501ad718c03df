package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// StudentRepository handles student account data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByEmail retrieves a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, grade, created_at
		 FROM students WHERE email = $1`, email,
	).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.DisplayName, &s.Grade, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, grade, created_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.DisplayName, &s.Grade, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new student account.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (email, password_hash, display_name, grade)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		s.Email, s.PasswordHash, s.DisplayName, s.Grade,
	).Scan(&s.ID, &s.CreatedAt)
}
