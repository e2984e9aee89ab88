package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"app/internal/curriculum"
	"app/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	cur   *curriculum.Curriculum
	err   error
	calls int
}

func (f *fakeGenerator) GenerateCurriculum(ctx context.Context, topic string, durationWeeks int, difficulty curriculum.Difficulty) (*curriculum.Curriculum, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cur, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
	err   error
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

func (f *fakePublisher) lastTier(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.payloads)
	var event struct {
		Tier string `json:"tier"`
	}
	require.NoError(t, json.Unmarshal(f.payloads[len(f.payloads)-1], &event))
	return event.Tier
}

func knownUsers() map[string]*model.User {
	return map[string]*model.User{"user-1": {UserID: "user-1", Name: "Ada"}}
}

func validGenerationRequest() GenerationRequest {
	return GenerationRequest{
		Topic:         "Go",
		DurationWeeks: 4,
		Difficulty:    curriculum.DifficultyBeginner,
		UserID:        "user-1",
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewGenerationService(gen, &fakeUserRepo{users: knownUsers()}, nil, "t", zerolog.Nop())

	cases := map[string]GenerationRequest{
		"empty topic":        {Topic: "  ", DurationWeeks: 4, Difficulty: curriculum.DifficultyBeginner, UserID: "user-1"},
		"duration not in set": {Topic: "Go", DurationWeeks: 3, Difficulty: curriculum.DifficultyBeginner, UserID: "user-1"},
		"unknown difficulty": {Topic: "Go", DurationWeeks: 4, Difficulty: curriculum.Difficulty("expert"), UserID: "user-1"},
		"missing owner":      {Topic: "Go", DurationWeeks: 4, Difficulty: curriculum.DifficultyBeginner},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, gen.calls, "invalid requests must not reach the AI tier")
}

func TestGenerateOwnerLookup(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewGenerationService(gen, &fakeUserRepo{users: map[string]*model.User{}}, nil, "t", zerolog.Nop())
	_, err := svc.Generate(context.Background(), validGenerationRequest())
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	svc = NewGenerationService(gen, &fakeUserRepo{err: errors.New("db down")}, nil, "t", zerolog.Nop())
	_, err = svc.Generate(context.Background(), validGenerationRequest())
	assert.ErrorIs(t, err, ErrStorage)
	assert.Zero(t, gen.calls)
}

func TestGenerateReturnsAIResult(t *testing.T) {
	aiCur := &curriculum.Curriculum{
		Title:         "Go, Properly",
		Description:   "d",
		DurationWeeks: 4,
		Difficulty:    curriculum.DifficultyBeginner,
		Category:      curriculum.CategoryProgramming,
		Modules: []curriculum.Module{
			{Title: "a", Description: "d", Topics: []string{"x"}},
		},
	}
	pub := &fakePublisher{}
	svc := NewGenerationService(&fakeGenerator{cur: aiCur}, &fakeUserRepo{users: knownUsers()}, pub, "gen-events", zerolog.Nop())

	cur, err := svc.Generate(context.Background(), validGenerationRequest())
	require.NoError(t, err)
	assert.Equal(t, aiCur, cur)
	assert.Equal(t, []string{"gen-events"}, pub.topics)
	assert.Equal(t, TierAI, pub.lastTier(t))
}

func TestGenerateFallsBackOnEveryAIFailure(t *testing.T) {
	for _, genErr := range []error{ErrUpstream, ErrParseFailed, ErrSchemaInvalid, context.DeadlineExceeded} {
		t.Run(genErr.Error(), func(t *testing.T) {
			pub := &fakePublisher{}
			svc := NewGenerationService(&fakeGenerator{err: genErr}, &fakeUserRepo{users: knownUsers()}, pub, "gen-events", zerolog.Nop())

			req := validGenerationRequest()
			cur, err := svc.Generate(context.Background(), req)
			require.NoError(t, err, "a valid request must always yield a curriculum")

			assert.Equal(t, "Complete Go Course", cur.Title)
			assert.Equal(t, "A comprehensive beginner level course on Go designed to be completed in 4 weeks.", cur.Description)
			assert.Equal(t, curriculum.CategoryOther, cur.Category)
			assert.Equal(t, req.DurationWeeks, cur.DurationWeeks)
			assert.Equal(t, req.Difficulty, cur.Difficulty)
			require.NoError(t, cur.Validate())
			assert.Equal(t, TierFallback, pub.lastTier(t))
		})
	}
}

func TestGenerateFallbackShape(t *testing.T) {
	svc := NewGenerationService(&fakeGenerator{err: ErrUpstream}, &fakeUserRepo{users: knownUsers()}, nil, "t", zerolog.Nop())

	cur, err := svc.Generate(context.Background(), GenerationRequest{
		Topic:         "Machine Learning for Beginners",
		DurationWeeks: 4,
		Difficulty:    curriculum.DifficultyBeginner,
		UserID:        "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, curriculum.CategoryDataScience, cur.Category)
	require.Len(t, cur.Modules, 3)
	assert.Equal(t, "Introduction to Machine Learning for Beginners", cur.Modules[0].Title)
	for _, m := range cur.Modules {
		assert.Len(t, m.Topics, 4)
	}
}

func TestGeneratePublisherFailureIsAbsorbed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	svc := NewGenerationService(&fakeGenerator{err: ErrUpstream}, &fakeUserRepo{users: knownUsers()}, pub, "t", zerolog.Nop())

	cur, err := svc.Generate(context.Background(), validGenerationRequest())
	require.NoError(t, err)
	assert.NotNil(t, cur)
}
