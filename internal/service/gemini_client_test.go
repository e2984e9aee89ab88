package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/curriculum"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGenerateContentServer fakes the generateContent endpoint, returning the
// given text as the single candidate part.
func newGenerateContentServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func validCurriculumJSON() string {
	return `{
		"title": "Go for Backend Engineers",
		"description": "A practical course on Go services.",
		"category": "Programming",
		"outline": [
			{"title": "Basics", "description": "Syntax and tooling", "topics": ["values", "functions"]},
			{"title": "Concurrency", "description": "Goroutines and channels", "topics": ["goroutines"]},
			{"title": "Services", "description": "HTTP and databases", "topics": ["net/http"]}
		]
	}`
}

func TestGenerateCurriculumParsesProseWrappedJSON(t *testing.T) {
	// Models wrap the object in prose despite the prompt; the first balanced
	// object span must still parse.
	text := "Sure! Here is your course:\n" + validCurriculumJSON() + "\nLet me know if you need changes."
	srv := newGenerateContentServer(t, text)
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "gemini-1.5-flash", "test-key", zerolog.Nop())
	cur, err := client.GenerateCurriculum(context.Background(), "Go", 4, curriculum.DifficultyBeginner)
	require.NoError(t, err)

	assert.Equal(t, "Go for Backend Engineers", cur.Title)
	assert.Equal(t, curriculum.CategoryProgramming, cur.Category)
	assert.Equal(t, 4, cur.DurationWeeks)
	assert.Equal(t, curriculum.DifficultyBeginner, cur.Difficulty)
	require.Len(t, cur.Modules, 3)
	assert.Equal(t, []string{"values", "functions"}, cur.Modules[0].Topics)
}

func TestGenerateCurriculumUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "gemini-1.5-flash", "test-key", zerolog.Nop())
	_, err := client.GenerateCurriculum(context.Background(), "Go", 4, curriculum.DifficultyBeginner)
	assert.ErrorIs(t, err, ErrUpstream)

	// A dead endpoint is an upstream failure too.
	unreachable := NewGeminiClient("http://127.0.0.1:1", "gemini-1.5-flash", "test-key", zerolog.Nop())
	_, err = unreachable.GenerateCurriculum(context.Background(), "Go", 4, curriculum.DifficultyBeginner)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateCurriculumNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "gemini-1.5-flash", "test-key", zerolog.Nop())
	_, err := client.GenerateCurriculum(context.Background(), "Go", 4, curriculum.DifficultyBeginner)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestParseCurriculumErrors(t *testing.T) {
	c := &geminiClient{logger: zerolog.Nop()}

	cases := []struct {
		name string
		text string
		want error
	}{
		{"no object at all", "I could not generate a curriculum for that topic.", ErrParseFailed},
		{"unbalanced object", `{"title": "Go", "outline": [`, ErrParseFailed},
		{"missing title", `{"description": "d", "outline": [{"title": "m", "description": "d", "topics": []}]}`, ErrSchemaInvalid},
		{"missing description", `{"title": "Go", "outline": [{"title": "m", "description": "d", "topics": []}]}`, ErrSchemaInvalid},
		{"empty outline", `{"title": "Go", "description": "d", "outline": []}`, ErrSchemaInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.parseCurriculum(tc.text, "Go", 4, curriculum.DifficultyBeginner)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseCurriculumCoercesTopics(t *testing.T) {
	c := &geminiClient{logger: zerolog.Nop()}

	// One module omits topics, one mistypes it as a string; both coerce to an
	// empty list instead of failing the response.
	text := `{
		"title": "Go",
		"description": "d",
		"category": "Programming",
		"outline": [
			{"title": "a", "description": "d"},
			{"title": "b", "description": "d", "topics": "goroutines"},
			{"title": "c", "description": "d", "topics": ["ok"]}
		]
	}`
	cur, err := c.parseCurriculum(text, "Go", 4, curriculum.DifficultyBeginner)
	require.NoError(t, err)
	require.Len(t, cur.Modules, 3)
	assert.Equal(t, []string{}, cur.Modules[0].Topics)
	assert.Equal(t, []string{}, cur.Modules[1].Topics)
	assert.Equal(t, []string{"ok"}, cur.Modules[2].Topics)
}

func TestParseCurriculumDefaultsCategory(t *testing.T) {
	c := &geminiClient{logger: zerolog.Nop()}

	text := `{"title": "t", "description": "d", "outline": [{"title": "m", "description": "d", "topics": ["x"]}]}`
	cur, err := c.parseCurriculum(text, "Machine Learning", 4, curriculum.DifficultyBeginner)
	require.NoError(t, err)
	assert.Equal(t, curriculum.CategoryDataScience, cur.Category)

	cur, err = c.parseCurriculum(text, "Woodworking", 4, curriculum.DifficultyBeginner)
	require.NoError(t, err)
	assert.Equal(t, curriculum.CategoryOther, cur.Category)
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, false},
		{"prose around", `prefix {"a": 1} suffix`, `{"a": 1}`, false},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, false},
		{"brace inside string", `{"a": "close } me"}`, `{"a": "close } me"}`, false},
		{"escaped quote inside string", `{"a": "say \"}\" loud"}`, `{"a": "say \"}\" loud"}`, false},
		{"first of two objects", `{"a": 1} {"b": 2}`, `{"a": 1}`, false},
		{"no object", "nothing here", "", true},
		{"never closes", `{"a": "open`, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractJSONObject(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrParseFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
