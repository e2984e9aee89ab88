package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"app/internal/curriculum"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// Generation tiers recorded in telemetry events.
const (
	TierAI       = "ai"
	TierFallback = "fallback"
)

// GenerationRequest carries one user submission. It is constructed per
// request and never persisted.
type GenerationRequest struct {
	Topic         string
	DurationWeeks int
	Difficulty    curriculum.Difficulty
	UserID        string
}

// GenerationService turns a request into a curriculum, falling back to the
// deterministic generator whenever the AI tier misbehaves.
type GenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (*curriculum.Curriculum, error)
}

type generationService struct {
	generator CurriculumGenerator
	userRepo  repository.UserRepository
	publisher pubsub.Publisher
	topic     string
	genLogger zerolog.Logger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(generator CurriculumGenerator, userRepo repository.UserRepository, publisher pubsub.Publisher, topic string, logger zerolog.Logger) GenerationService {
	return &generationService{
		generator: generator,
		userRepo:  userRepo,
		publisher: publisher,
		topic:     topic,
		genLogger: logger.With().Str("service", "GenerationService").Logger(),
	}
}

func (s *generationService) validate(req GenerationRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	allowed := false
	for _, d := range curriculum.AllowedDurations {
		if req.DurationWeeks == d {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: duration must be one of %v weeks", ErrInvalidInput, curriculum.AllowedDurations)
	}
	if _, err := curriculum.ParseDifficulty(string(req.Difficulty)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	return nil
}

// Generate tries the AI tier once; any failure there is logged and absorbed
// by composing the deterministic fallback curriculum, so valid requests
// always yield a curriculum.
func (s *generationService) Generate(ctx context.Context, req GenerationRequest) (*curriculum.Curriculum, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		s.genLogger.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to look up requesting user")
		return nil, fmt.Errorf("%w: looking up owner: %v", ErrStorage, err)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: user %s", ErrOwnerNotFound, req.UserID)
	}

	cur, err := s.generator.GenerateCurriculum(ctx, req.Topic, req.DurationWeeks, req.Difficulty)
	if err == nil {
		s.publishTierEvent(ctx, req, TierAI)
		return cur, nil
	}

	s.genLogger.Warn().
		Err(err).
		Str("topic", req.Topic).
		Str("user_id", req.UserID).
		Msg("AI generation failed, using deterministic fallback")

	cur, err = s.fallbackCurriculum(req)
	if err != nil {
		// Only unreachable with a broken generator config.
		return nil, fmt.Errorf("fallback generation failed: %w", err)
	}
	s.publishTierEvent(ctx, req, TierFallback)
	return cur, nil
}

func (s *generationService) fallbackCurriculum(req GenerationRequest) (*curriculum.Curriculum, error) {
	modules, err := curriculum.GenerateOutline(curriculum.DefaultGeneratorConfig, req.Topic, req.DurationWeeks, req.Difficulty)
	if err != nil {
		return nil, err
	}
	return &curriculum.Curriculum{
		Title: fmt.Sprintf("Complete %s Course", req.Topic),
		Description: fmt.Sprintf("A comprehensive %s level course on %s designed to be completed in %d weeks.",
			req.Difficulty, req.Topic, req.DurationWeeks),
		DurationWeeks: req.DurationWeeks,
		Difficulty:    req.Difficulty,
		Category:      curriculum.Classify(req.Topic),
		Modules:       modules,
	}, nil
}

// publishTierEvent records which tier served a request. Telemetry only: a
// publish failure must never fail the generation call.
func (s *generationService) publishTierEvent(ctx context.Context, req GenerationRequest, tier string) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(struct {
		Topic         string `json:"topic"`
		DurationWeeks int    `json:"duration_weeks"`
		Difficulty    string `json:"difficulty"`
		UserID        string `json:"user_id"`
		Tier          string `json:"tier"`
	}{
		Topic:         req.Topic,
		DurationWeeks: req.DurationWeeks,
		Difficulty:    string(req.Difficulty),
		UserID:        req.UserID,
		Tier:          tier,
	})
	if err != nil {
		s.genLogger.Error().Err(err).Msg("Failed to marshal generation tier event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.topic, payload); err != nil {
		s.genLogger.Warn().Err(err).Str("topic", s.topic).Msg("Failed to publish generation tier event")
	}
}
