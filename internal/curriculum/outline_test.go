package curriculum

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutlineShapeForAllInputs(t *testing.T) {
	difficulties := []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
	for _, weeks := range AllowedDurations {
		for _, diff := range difficulties {
			modules, err := GenerateOutline(DefaultGeneratorConfig, "Go", weeks, diff)
			require.NoError(t, err, "weeks=%d difficulty=%s", weeks, diff)
			assert.GreaterOrEqual(t, len(modules), 3)
			assert.LessOrEqual(t, len(modules), 6)
			for _, m := range modules {
				assert.Len(t, m.Topics, TopicCount(diff))
				assert.NotEmpty(t, m.Title)
				assert.NotEmpty(t, m.Description)
			}
		}
	}
}

func TestModuleCount(t *testing.T) {
	cases := map[int]int{1: 3, 2: 3, 4: 3, 8: 3, 12: 3, 16: 4, 20: 5, 24: 6}
	for weeks, want := range cases {
		assert.Equal(t, want, ModuleCount(weeks), "weeks=%d", weeks)
	}
}

func TestGenerateOutlineDeterministic(t *testing.T) {
	a, err := GenerateOutline(DefaultGeneratorConfig, "Rust", 8, DifficultyIntermediate)
	require.NoError(t, err)
	b, err := GenerateOutline(DefaultGeneratorConfig, "Rust", 8, DifficultyIntermediate)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateOutlineTitlesAndTopics(t *testing.T) {
	modules, err := GenerateOutline(DefaultGeneratorConfig, "Machine Learning for Beginners", 16, DifficultyBeginner)
	require.NoError(t, err)
	require.Len(t, modules, 4)
	assert.Equal(t, "Introduction to Machine Learning for Beginners", modules[0].Title)
	assert.Equal(t, "Getting Started with Machine Learning for Beginners Development", modules[1].Title)
	assert.Equal(t, "Advanced Concepts in Machine Learning for Beginners", modules[2].Title)
	assert.Equal(t, "Practical Applications of Machine Learning for Beginners", modules[3].Title)
	for _, m := range modules {
		for _, topic := range m.Topics {
			assert.True(t, strings.HasSuffix(topic, " for Machine Learning for Beginners"), "topic %q", topic)
		}
		assert.Contains(t, m.Description, strings.ToLower(m.Title))
	}
}

func TestGenerateOutlineMasteringTemplateReuse(t *testing.T) {
	// A 24-week course yields 6 modules; indexes 4 and 5 both reuse the final
	// "Mastering" template. This degeneracy is intentional.
	modules, err := GenerateOutline(DefaultGeneratorConfig, "Kubernetes", 24, DifficultyBeginner)
	require.NoError(t, err)
	require.Len(t, modules, 6)
	assert.Equal(t, "Mastering Kubernetes", modules[4].Title)
	assert.Equal(t, "Mastering Kubernetes", modules[5].Title)
}

func TestGenerateOutlineFailsClosedOnShortPool(t *testing.T) {
	cfg := DefaultGeneratorConfig
	cfg.TopicPools = map[Difficulty][]string{
		DifficultyAdvanced: {"only", "three", "phrases"},
	}
	_, err := GenerateOutline(cfg, "Go", 4, DifficultyAdvanced)
	require.Error(t, err)
}

func TestGenerateOutlineRejectsBadInput(t *testing.T) {
	_, err := GenerateOutline(DefaultGeneratorConfig, "", 4, DifficultyBeginner)
	assert.Error(t, err)
	_, err = GenerateOutline(DefaultGeneratorConfig, "Go", 0, DifficultyBeginner)
	assert.Error(t, err)
	_, err = GenerateOutline(DefaultGeneratorConfig, "Go", 4, Difficulty("expert"))
	assert.Error(t, err)
}

func ExampleGenerateOutline() {
	modules, _ := GenerateOutline(DefaultGeneratorConfig, "Go", 1, DifficultyBeginner)
	fmt.Println(len(modules), modules[0].Title)
	// Output: 3 Introduction to Go
}
