package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"app/internal/curriculum"

	"github.com/rs/zerolog"
)

const generationTimeout = 30 * time.Second

// CurriculumGenerator produces a curriculum for a topic from an external
// text-generation service.
type CurriculumGenerator interface {
	GenerateCurriculum(ctx context.Context, topic string, durationWeeks int, difficulty curriculum.Difficulty) (*curriculum.Curriculum, error)
}

type geminiClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGeminiClient creates a CurriculumGenerator backed by the Gemini
// generateContent endpoint.
func NewGeminiClient(baseURL, model, apiKey string, logger zerolog.Logger) CurriculumGenerator {
	return &geminiClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: generationTimeout,
		},
		logger: logger.With().Str("service", "GeminiClient").Logger(),
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// curriculumPayload mirrors the JSON shape the prompt asks the model for.
// Topics is raw so a missing or mistyped field coerces to an empty list
// instead of failing the whole response.
type curriculumPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Outline     []modulePayload `json:"outline"`
}

type modulePayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Topics      json.RawMessage `json:"topics"`
}

func buildPrompt(topic string, durationWeeks int, difficulty curriculum.Difficulty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s level course curriculum about %q that takes %d weeks to complete.\n", difficulty, topic, durationWeeks)
	b.WriteString("Respond with ONLY a JSON object, no prose and no markdown fences, matching this shape:\n")
	b.WriteString(`{"title": string, "description": string (at most 3 sentences), "category": string, "outline": [{"title": string, "description": string, "topics": [string]}]}`)
	b.WriteString("\nThe outline must contain between 3 and 6 modules and every module must list its topics.")
	return b.String()
}

// GenerateCurriculum asks Gemini for a curriculum and parses the reply in two
// stages: bounded raw-text capture, then a strict schema-validated parse. The
// model may wrap the JSON in prose despite instructions, so the first balanced
// object span is extracted before unmarshaling.
func (c *geminiClient) GenerateCurriculum(ctx context.Context, topic string, durationWeeks int, difficulty curriculum.Difficulty) (*curriculum.Curriculum, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(topic, durationWeeks, difficulty)}}}},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request body: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status_code", resp.StatusCode).Msg("Generation service returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var gcResp generateContentResponse
	if err := json.Unmarshal(body, &gcResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response envelope: %v", ErrUpstream, err)
	}
	if len(gcResp.Candidates) == 0 || len(gcResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: response has no candidates", ErrSchemaInvalid)
	}
	text := gcResp.Candidates[0].Content.Parts[0].Text

	return c.parseCurriculum(text, topic, durationWeeks, difficulty)
}

// parseCurriculum is the strict second stage over the captured text.
func (c *geminiClient) parseCurriculum(text, topic string, durationWeeks int, difficulty curriculum.Difficulty) (*curriculum.Curriculum, error) {
	span, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var payload curriculumPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	if strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", ErrSchemaInvalid)
	}
	if strings.TrimSpace(payload.Description) == "" {
		return nil, fmt.Errorf("%w: missing description", ErrSchemaInvalid)
	}
	if len(payload.Outline) == 0 {
		return nil, fmt.Errorf("%w: missing or empty outline", ErrSchemaInvalid)
	}

	category := curriculum.Category(payload.Category)
	if strings.TrimSpace(payload.Category) == "" {
		category = curriculum.Classify(topic)
	}

	modules := make([]curriculum.Module, 0, len(payload.Outline))
	for _, m := range payload.Outline {
		// Lenient coercion: a missing or mistyped topics field becomes an
		// empty list rather than rejecting the whole curriculum.
		var topics []string
		if len(m.Topics) > 0 {
			if err := json.Unmarshal(m.Topics, &topics); err != nil {
				topics = nil
			}
		}
		if topics == nil {
			topics = []string{}
		}
		modules = append(modules, curriculum.Module{
			Title:       m.Title,
			Description: m.Description,
			Topics:      topics,
		})
	}

	return &curriculum.Curriculum{
		Title:         payload.Title,
		Description:   payload.Description,
		DurationWeeks: durationWeeks,
		Difficulty:    difficulty,
		Category:      category,
		Modules:       modules,
	}, nil
}

// extractJSONObject returns the first balanced {...} span in s, skipping
// brace characters inside JSON strings.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("%w: no '{' in response text", ErrParseFailed)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced JSON object", ErrParseFailed)
}
