package model

import "time"

// Course is the generic course record shown in the catalog. For AI-built
// courses it is a denormalized summary of the canonical AICourse record.
type Course struct {
	CourseID       string    `db:"id" json:"course_id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	Price          float64   `db:"price" json:"price"`
	DurationWeeks  int       `db:"duration_weeks" json:"duration_weeks"`
	Category       string    `db:"category" json:"category"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	IsAIGenerated  bool      `db:"is_ai_generated" json:"is_ai_generated"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
