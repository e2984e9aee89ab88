package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/curriculum"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseBuilderHandler exposes curriculum generation and persistence endpoints
type CourseBuilderHandler struct {
	genService     service.GenerationService
	builderService service.CourseBuilderService
	validate       *validator.Validate
	logger         zerolog.Logger
}

// NewCourseBuilderHandler creates a new CourseBuilderHandler
func NewCourseBuilderHandler(
	genService service.GenerationService,
	builderService service.CourseBuilderService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *CourseBuilderHandler {
	return &CourseBuilderHandler{
		genService:     genService,
		builderService: builderService,
		validate:       validate,
		logger:         logger,
	}
}

// RegisterRoutes mounts the course builder routes
func (h *CourseBuilderHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/generate-course", authMw(http.HandlerFunc(h.generateCourse)))
	mux.Handle("/save-course", authMw(http.HandlerFunc(h.saveCourse)))
	mux.Handle("/courses/", authMw(http.HandlerFunc(h.courseLectures)))
	mux.Handle("/users/me/ai-courses", authMw(http.HandlerFunc(h.aiCourseHistory)))
}

func authenticatedUser(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	return userID, ok && userID != ""
}

// writeServiceError maps the service error taxonomy onto response codes.
func (h *CourseBuilderHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOwnerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// generateCourse godoc
// @Summary Generate a course curriculum
// @Description Generates a curriculum for a topic via the AI backend, falling back to the rule-based generator when the backend is unavailable or returns malformed output.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.GenerateCourseRequestDTO true "Generation request"
// @Success 200 {object} dto.CurriculumDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Owner not found"
// @Failure 500 {string} string "Failed to generate course"
// @Router /generate-course [post]
func (h *CourseBuilderHandler) generateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := authenticatedUser(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.GenerateCourseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.OwnerID != userID {
		http.Error(w, "Forbidden: owner does not match authenticated user", http.StatusForbidden)
		return
	}

	difficulty, err := curriculum.ParseDifficulty(req.Difficulty)
	if err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	cur, err := h.genService.Generate(r.Context(), service.GenerationRequest{
		Topic:         req.Topic,
		DurationWeeks: req.DurationWeeks,
		Difficulty:    difficulty,
		UserID:        req.OwnerID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(curriculumToDTO(cur)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// saveCourse godoc
// @Summary Save an accepted curriculum
// @Description Persists the curriculum as an AI-course record, a course record, and one lecture placeholder per module, returning the course ID.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.SaveCourseRequestDTO true "Save request"
// @Success 201 {object} dto.SaveCourseResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Owner not found"
// @Failure 500 {string} string "Failed to save course"
// @Router /save-course [post]
func (h *CourseBuilderHandler) saveCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := authenticatedUser(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SaveCourseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.OwnerID != userID {
		http.Error(w, "Forbidden: owner does not match authenticated user", http.StatusForbidden)
		return
	}

	courseID, err := h.builderService.SaveCourse(r.Context(), curriculumFromDTO(&req.Curriculum), req.OwnerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto.SaveCourseResponseDTO{CourseID: courseID}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// courseLectures godoc
// @Summary List a course's lecture placeholders
// @Description Returns the lecture placeholders of a saved course in module order.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {array} dto.LectureResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to list lectures"
// @Router /courses/{courseId}/lectures [get]
func (h *CourseBuilderHandler) courseLectures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/courses/")
	courseID, tail, found := strings.Cut(rest, "/")
	if !found || tail != "lectures" || courseID == "" {
		http.NotFound(w, r)
		return
	}
	userID, ok := authenticatedUser(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	lectures, err := h.builderService.GetLecturesForCourse(r.Context(), courseID, userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]dto.LectureResponseDTO, 0, len(lectures))
	for _, l := range lectures {
		resp = append(resp, dto.LectureResponseDTO{
			LectureID:   l.ID,
			CourseID:    l.CourseID,
			Title:       l.Title,
			Description: l.Description,
			StoragePath: l.StoragePath,
			Position:    l.Position,
			Status:      l.Status,
			CreatedAt:   l.CreatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// aiCourseHistory godoc
// @Summary List the caller's generated courses
// @Description Returns the authenticated user's canonical AI-course records, newest first.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.AICourseResponseDTO
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to list AI courses"
// @Router /users/me/ai-courses [get]
func (h *CourseBuilderHandler) aiCourseHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := authenticatedUser(r)
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	courses, err := h.builderService.GetAICourseHistory(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]dto.AICourseResponseDTO, 0, len(courses))
	for _, c := range courses {
		modules := make([]dto.ModuleDTO, 0, len(c.Modules))
		for _, m := range c.Modules {
			modules = append(modules, dto.ModuleDTO{Title: m.Title, Description: m.Description, Topics: m.Topics})
		}
		resp = append(resp, dto.AICourseResponseDTO{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			Category:      c.Category,
			Difficulty:    c.Difficulty,
			DurationWeeks: c.DurationWeeks,
			Modules:       modules,
			IsAIGenerated: c.IsAIGenerated,
			CreatedAt:     c.CreatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func curriculumToDTO(c *curriculum.Curriculum) dto.CurriculumDTO {
	modules := make([]dto.ModuleDTO, 0, len(c.Modules))
	for _, m := range c.Modules {
		modules = append(modules, dto.ModuleDTO{
			Title:       m.Title,
			Description: m.Description,
			Topics:      m.Topics,
		})
	}
	return dto.CurriculumDTO{
		Title:         c.Title,
		Description:   c.Description,
		DurationWeeks: c.DurationWeeks,
		Difficulty:    string(c.Difficulty),
		Category:      string(c.Category),
		Modules:       modules,
	}
}

func curriculumFromDTO(d *dto.CurriculumDTO) *curriculum.Curriculum {
	modules := make([]curriculum.Module, 0, len(d.Modules))
	for _, m := range d.Modules {
		modules = append(modules, curriculum.Module{
			Title:       m.Title,
			Description: m.Description,
			Topics:      m.Topics,
		})
	}
	return &curriculum.Curriculum{
		Title:         d.Title,
		Description:   d.Description,
		DurationWeeks: d.DurationWeeks,
		Difficulty:    curriculum.Difficulty(d.Difficulty),
		Category:      curriculum.Category(d.Category),
		Modules:       modules,
	}
}
