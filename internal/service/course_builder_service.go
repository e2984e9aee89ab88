package service

import (
	"context"
	"fmt"

	"app/internal/curriculum"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// CourseBuilderService persists an accepted curriculum as the three dependent
// records: the canonical AI-course record, the generic course record, and one
// lecture placeholder per module.
type CourseBuilderService interface {
	// SaveCourse writes the bundle and returns the generic course record's ID.
	SaveCourse(ctx context.Context, cur *curriculum.Curriculum, ownerID string) (string, error)
	// GetLecturesForCourse lists a saved course's placeholders in module order.
	GetLecturesForCourse(ctx context.Context, courseID, userID string) ([]model.Lecture, error)
	// GetAICourseHistory lists the owner's canonical AI-course records.
	GetAICourseHistory(ctx context.Context, userID string) ([]model.AICourse, error)
}

type courseBuilderService struct {
	aiCourseRepo  repository.AICourseRepository
	courseRepo    repository.CourseRepository
	lectureRepo   repository.LectureRepository
	userRepo      repository.UserRepository
	storage       MediaStorage
	templateKey   string
	defaultImage  string
	builderLogger zerolog.Logger
}

// NewCourseBuilderService creates a new CourseBuilderService
func NewCourseBuilderService(
	aiCourseRepo repository.AICourseRepository,
	courseRepo repository.CourseRepository,
	lectureRepo repository.LectureRepository,
	userRepo repository.UserRepository,
	storage MediaStorage,
	templateKey string,
	defaultImage string,
	logger zerolog.Logger,
) CourseBuilderService {
	return &courseBuilderService{
		aiCourseRepo:  aiCourseRepo,
		courseRepo:    courseRepo,
		lectureRepo:   lectureRepo,
		userRepo:      userRepo,
		storage:       storage,
		templateKey:   templateKey,
		defaultImage:  defaultImage,
		builderLogger: logger.With().Str("service", "CourseBuilderService").Logger(),
	}
}

// SaveCourse writes the AI-course record, the course record, then the lecture
// placeholders in module order. The writes are not transactional across
// stores, so on a later failure the already-applied writes are compensated
// with best-effort deletes before surfacing ErrStorage.
func (s *courseBuilderService) SaveCourse(ctx context.Context, cur *curriculum.Curriculum, ownerID string) (string, error) {
	if cur == nil {
		return "", fmt.Errorf("%w: curriculum is required", ErrInvalidInput)
	}
	if ownerID == "" {
		return "", fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := cur.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	owner, err := s.userRepo.GetUserByID(ctx, ownerID)
	if err != nil {
		s.builderLogger.Error().Err(err).Str("user_id", ownerID).Msg("Failed to look up owner")
		return "", fmt.Errorf("%w: looking up owner: %v", ErrStorage, err)
	}
	if owner == nil {
		return "", fmt.Errorf("%w: user %s", ErrOwnerNotFound, ownerID)
	}

	// 1. Canonical AI-course record with the provenance flag set.
	aiCourse := &model.AICourse{
		UserID:        ownerID,
		Title:         cur.Title,
		Description:   cur.Description,
		Category:      string(cur.Category),
		Difficulty:    string(cur.Difficulty),
		DurationWeeks: cur.DurationWeeks,
		Modules:       model.ModuleList(cur.Modules),
		IsAIGenerated: true,
	}
	if err := s.aiCourseRepo.CreateAICourse(ctx, aiCourse); err != nil {
		s.builderLogger.Error().Err(err).Str("user_id", ownerID).Msg("Failed to create AI course record")
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// 2. Denormalized course record for the catalog.
	course := &model.Course{
		UserID:         ownerID,
		Title:          cur.Title,
		Description:    cur.Description,
		ImageURL:       s.defaultImage,
		Price:          0,
		DurationWeeks:  cur.DurationWeeks,
		Category:       string(cur.Category),
		InstructorName: owner.Name,
		IsAIGenerated:  true,
	}
	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		s.builderLogger.Error().Err(err).Str("user_id", ownerID).Msg("Failed to create course record")
		s.compensate(ctx, aiCourse.ID, "", nil)
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// 3. One placeholder lecture per module, in module order. Lecture records
	// hold a non-owning reference to the course record's ID.
	var lectureIDs []string
	for i, m := range cur.Modules {
		lecture := &model.Lecture{
			CourseID:    course.CourseID,
			UserID:      ownerID,
			Title:       m.Title,
			Description: m.Description,
			StoragePath: s.placeholderPath(ctx, course.CourseID, i),
			Position:    i,
			Status:      "placeholder",
		}
		if err := s.lectureRepo.CreateLecture(ctx, lecture); err != nil {
			s.builderLogger.Error().Err(err).
				Str("course_id", course.CourseID).
				Int("position", i).
				Msg("Failed to create lecture placeholder")
			s.compensate(ctx, aiCourse.ID, course.CourseID, lectureIDs)
			return "", fmt.Errorf("%w: %v", ErrStorage, err)
		}
		lectureIDs = append(lectureIDs, lecture.ID)
	}

	return course.CourseID, nil
}

// placeholderPath provisions per-lecture placeholder media, falling back to
// the shared template key when the copy fails. Media provisioning never
// fails the save.
func (s *courseBuilderService) placeholderPath(ctx context.Context, courseID string, position int) string {
	if s.storage == nil {
		return s.templateKey
	}
	path, err := s.storage.ProvisionPlaceholder(ctx, courseID, position)
	if err != nil {
		s.builderLogger.Warn().Err(err).
			Str("course_id", courseID).
			Int("position", position).
			Msg("Placeholder media provisioning failed, using template key")
		return s.templateKey
	}
	return path
}

// compensate rolls back the bundle's already-applied writes in reverse order.
// Each delete is best-effort: a failed compensation is logged and leaves an
// orphan for offline cleanup.
func (s *courseBuilderService) compensate(ctx context.Context, aiCourseID, courseID string, lectureIDs []string) {
	for i := len(lectureIDs) - 1; i >= 0; i-- {
		if err := s.lectureRepo.DeleteLecture(ctx, lectureIDs[i]); err != nil {
			s.builderLogger.Error().Err(err).Str("lecture_id", lectureIDs[i]).Msg("Failed to roll back lecture placeholder")
		}
	}
	if courseID != "" {
		if err := s.courseRepo.DeleteCourse(ctx, courseID); err != nil {
			s.builderLogger.Error().Err(err).Str("course_id", courseID).Msg("Failed to roll back course record")
		}
	}
	if aiCourseID != "" {
		if err := s.aiCourseRepo.DeleteAICourse(ctx, aiCourseID); err != nil {
			s.builderLogger.Error().Err(err).Str("ai_course_id", aiCourseID).Msg("Failed to roll back AI course record")
		}
	}
}

// GetLecturesForCourse returns the placeholders of a course owned by userID.
func (s *courseBuilderService) GetLecturesForCourse(ctx context.Context, courseID, userID string) ([]model.Lecture, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		s.builderLogger.Error().Err(err).Str("course_id", courseID).Msg("Failed to get course")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if course == nil || course.UserID != userID {
		return nil, fmt.Errorf("%w: course %s", ErrOwnerNotFound, courseID)
	}
	lectures, err := s.lectureRepo.GetLecturesByCourseID(ctx, courseID)
	if err != nil {
		s.builderLogger.Error().Err(err).Str("course_id", courseID).Msg("Failed to get lectures")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return lectures, nil
}

// GetAICourseHistory returns the caller's generated-course records.
func (s *courseBuilderService) GetAICourseHistory(ctx context.Context, userID string) ([]model.AICourse, error) {
	courses, err := s.aiCourseRepo.GetAICoursesByUserID(ctx, userID)
	if err != nil {
		s.builderLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to get AI course history")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return courses, nil
}
