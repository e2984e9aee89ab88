package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

type LectureRepository interface {
	CreateLecture(ctx context.Context, l *model.Lecture) error
	GetLectureByID(ctx context.Context, lectureID string) (*model.Lecture, error)
	GetLecturesByCourseID(ctx context.Context, courseID string) ([]model.Lecture, error)
	UpdateLecture(ctx context.Context, l *model.Lecture) error
	DeleteLecture(ctx context.Context, lectureID string) error
}

type lectureRepository struct {
	db *sql.DB
}

func NewLectureRepository(db *sql.DB) LectureRepository {
	return &lectureRepository{db: db}
}

func (r *lectureRepository) CreateLecture(ctx context.Context, l *model.Lecture) error {
	query := `
		INSERT INTO lectures (course_id, user_id, title, description, storage_path, position, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		l.CourseID, l.UserID, l.Title, l.Description, l.StoragePath, l.Position, l.Status).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating lecture: %w", err)
	}
	return nil
}

func (r *lectureRepository) GetLectureByID(ctx context.Context, lectureID string) (*model.Lecture, error) {
	query := `
		SELECT id, course_id, user_id, title, description, storage_path, position, status, created_at, updated_at
		FROM lectures
		WHERE id = $1
	`
	var l model.Lecture
	err := r.db.QueryRowContext(ctx, query, lectureID).Scan(
		&l.ID,
		&l.CourseID,
		&l.UserID,
		&l.Title,
		&l.Description,
		&l.StoragePath,
		&l.Position,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting lecture by id %s: %w", lectureID, err)
	}
	return &l, nil
}

// GetLecturesByCourseID returns a course's lectures in module order
func (r *lectureRepository) GetLecturesByCourseID(ctx context.Context, courseID string) ([]model.Lecture, error) {
	query := `
		SELECT id, course_id, user_id, title, description, storage_path, position, status, created_at, updated_at
		FROM lectures
		WHERE course_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying lectures by course: %w", err)
	}
	defer rows.Close()

	var lectures []model.Lecture
	for rows.Next() {
		var l model.Lecture
		if err := rows.Scan(
			&l.ID,
			&l.CourseID,
			&l.UserID,
			&l.Title,
			&l.Description,
			&l.StoragePath,
			&l.Position,
			&l.Status,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lecture row: %w", err)
		}
		lectures = append(lectures, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lecture rows: %w", err)
	}

	if len(lectures) == 0 {
		return []model.Lecture{}, nil
	}
	return lectures, nil
}

func (r *lectureRepository) UpdateLecture(ctx context.Context, l *model.Lecture) error {
	query := `
		UPDATE lectures
		SET title = $1, description = $2, storage_path = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, l.Title, l.Description, l.StoragePath, l.Status, l.ID).
		Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating lecture %s: %w", l.ID, err)
	}
	return nil
}

func (r *lectureRepository) DeleteLecture(ctx context.Context, lectureID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lectures WHERE id = $1`, lectureID)
	if err != nil {
		return fmt.Errorf("deleting lecture %s: %w", lectureID, err)
	}
	return nil
}
