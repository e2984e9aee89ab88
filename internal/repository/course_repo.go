package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetCourseByID retrieves a course by its ID
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error)
	// DeleteCourse deletes a course by its ID
	DeleteCourse(ctx context.Context, courseID string) error
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

// CreateCourse inserts a new course and returns the created record
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (user_id, title, description, image_url, price, duration_weeks, category, instructor_name, is_ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.Title, c.Description, c.ImageURL, c.Price,
		c.DurationWeeks, c.Category, c.InstructorName, c.IsAIGenerated).
		Scan(&c.CourseID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by its ID
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT id, user_id, title, description, image_url, price, duration_weeks, category, instructor_name, is_ai_generated, created_at, updated_at
		FROM courses
		WHERE id = $1
	`
	var c model.Course
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(
		&c.CourseID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.ImageURL,
		&c.Price,
		&c.DurationWeeks,
		&c.Category,
		&c.InstructorName,
		&c.IsAIGenerated,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course by id %s: %w", courseID, err)
	}
	return &c, nil
}

// GetCoursesByUserID retrieves all courses associated with a given user ID
func (r *courseRepo) GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error) {
	query := `
		SELECT id, user_id, title, description, image_url, price, duration_weeks, category, instructor_name, is_ai_generated, created_at, updated_at
		FROM courses
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying courses for user %s: %w", userID, err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(
			&c.CourseID,
			&c.UserID,
			&c.Title,
			&c.Description,
			&c.ImageURL,
			&c.Price,
			&c.DurationWeeks,
			&c.Category,
			&c.InstructorName,
			&c.IsAIGenerated,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}

	// If no courses found, return an empty slice, not nil
	if len(courses) == 0 {
		return []model.Course{}, nil
	}
	return courses, nil
}

// DeleteCourse deletes a course; related lectures cascade via DB ON DELETE CASCADE
func (r *courseRepo) DeleteCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("deleting course %s: %w", courseID, err)
	}
	return nil
}
