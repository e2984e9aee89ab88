package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"app/internal/curriculum"
)

// AICourse is the canonical record of a generated curriculum: the full module
// structure plus ownership and a provenance flag distinguishing AI-originated
// courses from manually authored ones.
type AICourse struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	Category      string     `db:"category" json:"category"`
	Difficulty    string     `db:"difficulty" json:"difficulty"`
	DurationWeeks int        `db:"duration_weeks" json:"duration_weeks"`
	Modules       ModuleList `db:"modules" json:"modules"`
	IsAIGenerated bool       `db:"is_ai_generated" json:"is_ai_generated"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ModuleList stores the ordered curriculum modules (JSONB)
type ModuleList []curriculum.Module

// Value implements the driver.Valuer interface for JSONB
func (m ModuleList) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal([]curriculum.Module{})
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONB
func (m *ModuleList) Scan(value interface{}) error {
	if value == nil {
		*m = make(ModuleList, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = make(ModuleList, 0)
		return fmt.Errorf("cannot scan %T into ModuleList", value)
	}

	if len(bytes) == 0 {
		*m = make(ModuleList, 0)
		return nil
	}

	return json.Unmarshal(bytes, m)
}
