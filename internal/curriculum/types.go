package curriculum

import (
	"fmt"
	"strings"
)

// Difficulty is the requested depth of a generated course.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AllowedDurations are the course lengths (in weeks) the API accepts.
var AllowedDurations = []int{1, 2, 4, 8, 12}

// ParseDifficulty normalizes a difficulty string into a Difficulty value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyBeginner:
		return DifficultyBeginner, nil
	case DifficultyIntermediate:
		return DifficultyIntermediate, nil
	case DifficultyAdvanced:
		return DifficultyAdvanced, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Module is one unit of a curriculum with its own title, description and
// ordered topic list.
type Module struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// Curriculum is the generated course structure returned to the client for
// review and accepted back for persistence.
type Curriculum struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DurationWeeks int        `json:"duration_weeks"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      Category   `json:"category"`
	Modules       []Module   `json:"modules"`
}

// Validate checks the structural invariants of an accepted curriculum:
// non-empty title and description, positive duration, and between 3 and 6
// modules each carrying at least one topic.
func (c *Curriculum) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("curriculum title is empty")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("curriculum description is empty")
	}
	if c.DurationWeeks <= 0 {
		return fmt.Errorf("duration must be positive, got %d", c.DurationWeeks)
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if len(c.Modules) < 3 || len(c.Modules) > 6 {
		return fmt.Errorf("curriculum must have between 3 and 6 modules, got %d", len(c.Modules))
	}
	for i, m := range c.Modules {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("module %d has an empty title", i)
		}
		if len(m.Topics) == 0 {
			return fmt.Errorf("module %d has no topics", i)
		}
	}
	return nil
}
