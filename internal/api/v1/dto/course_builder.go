package dto

import "time"

type GenerateCourseRequestDTO struct {
	Topic         string `json:"topic" validate:"required"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,oneof=1 2 4 8 12"`
	Difficulty    string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	OwnerID       string `json:"owner_id" validate:"required"`
}

type ModuleDTO struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Topics      []string `json:"topics" validate:"required,min=1"`
}

type CurriculumDTO struct {
	Title         string      `json:"title" validate:"required"`
	Description   string      `json:"description" validate:"required"`
	DurationWeeks int         `json:"duration_weeks" validate:"required,gt=0"`
	Difficulty    string      `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Category      string      `json:"category"`
	Modules       []ModuleDTO `json:"modules" validate:"required,min=3,max=6,dive"`
}

type SaveCourseRequestDTO struct {
	Curriculum CurriculumDTO `json:"curriculum" validate:"required"`
	OwnerID    string        `json:"owner_id" validate:"required"`
}

type SaveCourseResponseDTO struct {
	CourseID string `json:"course_id"`
}

type LectureResponseDTO struct {
	LectureID   string    `json:"lecture_id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StoragePath string    `json:"storage_path"`
	Position    int       `json:"position"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type AICourseResponseDTO struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Difficulty    string      `json:"difficulty"`
	DurationWeeks int         `json:"duration_weeks"`
	Modules       []ModuleDTO `json:"modules"`
	IsAIGenerated bool        `json:"is_ai_generated"`
	CreatedAt     time.Time   `json:"created_at"`
}
