package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

// AICourseRepository persists canonical AI-generated course records.
type AICourseRepository interface {
	CreateAICourse(ctx context.Context, c *model.AICourse) error
	GetAICourseByID(ctx context.Context, id string) (*model.AICourse, error)
	GetAICoursesByUserID(ctx context.Context, userID string) ([]model.AICourse, error)
	DeleteAICourse(ctx context.Context, id string) error
}

type aiCourseRepo struct {
	db *sql.DB
}

// NewAICourseRepo creates a new AICourseRepository
func NewAICourseRepo(db *sql.DB) AICourseRepository {
	return &aiCourseRepo{db: db}
}

// CreateAICourse inserts the full curriculum record and returns generated fields
func (r *aiCourseRepo) CreateAICourse(ctx context.Context, c *model.AICourse) error {
	query := `
		INSERT INTO ai_courses (user_id, title, description, category, difficulty, duration_weeks, modules, is_ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Title, c.Description, c.Category, c.Difficulty,
		c.DurationWeeks, c.Modules, c.IsAIGenerated).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating ai course: %w", err)
	}
	return nil
}

// GetAICourseByID retrieves a canonical AI-course record by its ID
func (r *aiCourseRepo) GetAICourseByID(ctx context.Context, id string) (*model.AICourse, error) {
	query := `
		SELECT id, user_id, title, description, category, difficulty, duration_weeks, modules, is_ai_generated, created_at, updated_at
		FROM ai_courses
		WHERE id = $1
	`
	var c model.AICourse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Difficulty,
		&c.DurationWeeks,
		&c.Modules,
		&c.IsAIGenerated,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting ai course by id %s: %w", id, err)
	}
	return &c, nil
}

// GetAICoursesByUserID lists a user's generated-course history, newest first
func (r *aiCourseRepo) GetAICoursesByUserID(ctx context.Context, userID string) ([]model.AICourse, error) {
	query := `
		SELECT id, user_id, title, description, category, difficulty, duration_weeks, modules, is_ai_generated, created_at, updated_at
		FROM ai_courses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying ai courses for user %s: %w", userID, err)
	}
	defer rows.Close()

	var courses []model.AICourse
	for rows.Next() {
		var c model.AICourse
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Title,
			&c.Description,
			&c.Category,
			&c.Difficulty,
			&c.DurationWeeks,
			&c.Modules,
			&c.IsAIGenerated,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ai course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ai course rows: %w", err)
	}

	if len(courses) == 0 {
		return []model.AICourse{}, nil
	}
	return courses, nil
}

// DeleteAICourse removes a canonical record by its ID
func (r *aiCourseRepo) DeleteAICourse(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ai_courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting ai course %s: %w", id, err)
	}
	return nil
}
