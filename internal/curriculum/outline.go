package curriculum

import (
	"fmt"
	"strings"
)

// GeneratorConfig holds the static tables driving the deterministic outline
// generator. Tests substitute fixtures; production uses DefaultGeneratorConfig.
type GeneratorConfig struct {
	// TitleTemplates are indexed by module position. Positions beyond the
	// last entry reuse the final "Mastering" template.
	TitleTemplates []string
	// DescriptionTemplate interpolates the lower-cased module title.
	DescriptionTemplate string
	// TopicPools maps each difficulty to its ordered phrase pool.
	TopicPools map[Difficulty][]string
}

// DefaultGeneratorConfig mirrors the canned templates of the rule-based
// generator. The final template is reused for every module index past it.
var DefaultGeneratorConfig = GeneratorConfig{
	TitleTemplates: []string{
		"Introduction to %s",
		"Getting Started with %s Development",
		"Advanced Concepts in %s",
		"Practical Applications of %s",
		"Mastering %s",
	},
	DescriptionTemplate: "Learn about %s in this comprehensive module.",
	TopicPools: map[Difficulty][]string{
		DifficultyBeginner: {
			"Basic concepts and terminology",
			"Setting up your environment",
			"Your first hands-on exercise",
			"Common patterns and examples",
			"Avoiding beginner mistakes",
			"Where to go next",
		},
		DifficultyIntermediate: {
			"Core principles in depth",
			"Building real-world projects",
			"Debugging and troubleshooting",
			"Working with external tools",
			"Performance considerations",
			"Collaboration workflows",
		},
		DifficultyAdvanced: {
			"Architecture and design trade-offs",
			"Advanced optimization techniques",
			"Scaling to production workloads",
			"Security and hardening",
			"Extending and customizing internals",
			"Industry case studies",
		},
	},
}

// topicCounts fixes the number of topics per module for each difficulty.
var topicCounts = map[Difficulty]int{
	DifficultyBeginner:     4,
	DifficultyIntermediate: 5,
	DifficultyAdvanced:     6,
}

// TopicCount returns the per-module topic count for a difficulty.
func TopicCount(d Difficulty) int {
	return topicCounts[d]
}

// weeksPerModule paces every course at one module per four weeks.
const weeksPerModule = 4

// ModuleCount derives how many modules a course of the given duration gets:
// one per four weeks, with a floor of three. Courses longer than sixteen
// weeks produce a fifth and later modules that reuse the final title
// template; see GenerateOutline.
func ModuleCount(durationWeeks int) int {
	count := (durationWeeks + weeksPerModule - 1) / weeksPerModule
	if count < 3 {
		count = 3
	}
	return count
}

// GenerateOutline produces the rule-based module list for a topic. It performs
// no I/O and no randomness: identical inputs always yield identical outlines.
func GenerateOutline(cfg GeneratorConfig, topic string, durationWeeks int, difficulty Difficulty) ([]Module, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if durationWeeks <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationWeeks)
	}
	topicCount, ok := topicCounts[difficulty]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	pool := cfg.TopicPools[difficulty]
	if topicCount > len(pool) {
		return nil, fmt.Errorf("topic pool for %s has %d phrases, need %d", difficulty, len(pool), topicCount)
	}
	if len(cfg.TitleTemplates) == 0 {
		return nil, fmt.Errorf("no title templates configured")
	}

	moduleCount := ModuleCount(durationWeeks)
	modules := make([]Module, 0, moduleCount)
	for i := 0; i < moduleCount; i++ {
		tmplIdx := i
		if tmplIdx >= len(cfg.TitleTemplates) {
			// Long courses reuse the final "Mastering" template.
			tmplIdx = len(cfg.TitleTemplates) - 1
		}
		title := fmt.Sprintf(cfg.TitleTemplates[tmplIdx], topic)
		topics := make([]string, 0, topicCount)
		for _, phrase := range pool[:topicCount] {
			topics = append(topics, fmt.Sprintf("%s for %s", phrase, topic))
		}
		modules = append(modules, Module{
			Title:       title,
			Description: fmt.Sprintf(cfg.DescriptionTemplate, strings.ToLower(title)),
			Topics:      topics,
		})
	}
	return modules, nil
}
