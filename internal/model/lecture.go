package model

import "time"

// Lecture is a per-module placeholder created when an AI-built curriculum is
// saved. It holds a non-owning reference to its parent course and a storage
// path pointing at the placeholder media until real content is uploaded.
type Lecture struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	Position    int       `db:"position" json:"position"`
	Status      string    `db:"status" json:"status"` // e.g. "placeholder", "published"
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
