package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course browsing, enrollment and lesson
// progress requests.
type CourseHandler struct {
	courseService   service.CourseService
	progressService service.ProgressService
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(courseService service.CourseService, progressService service.ProgressService) *CourseHandler {
	return &CourseHandler{
		courseService:   courseService,
		progressService: progressService,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description Returns the course catalog, optionally filtered by category and level
// @Tags courses
// @Produce json
// @Param category query string false "Category filter"
// @Param level query string false "Level filter"
// @Success 200 {object} dto.CourseListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	response, err := h.courseService.ListCourses(c.Context(), c.Query("category"), c.Query("level"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetCourse godoc
// @Summary Get a course
// @Description Returns a course with its lessons; includes the caller's progress when authenticated
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.CourseDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	response, err := h.courseService.GetCourse(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Creates the caller's progress record for the course; enrolling twice is a no-op
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 204
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	if err := h.courseService.Enroll(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteLesson godoc
// @Summary Record a lesson completion
// @Description Marks the lesson as completed and recomputes the course percentage
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param lessonNumber path int true "Lesson number"
// @Param request body dto.CompleteLessonRequest true "Completion event"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/lessons/{lessonNumber}/complete [post]
func (h *CourseHandler) CompleteLesson(c *fiber.Ctx) error {
	lessonNumber, err := c.ParamsInt("lessonNumber")
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("lessonNumber", c.Params("lessonNumber"))}
	}

	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	response, err := h.progressService.RecordLessonCompletion(
		c.Context(), middleware.UserID(c), c.Params("id"), lessonNumber, req.InitialLoad)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetProgress godoc
// @Summary Get course progress
// @Description Returns the caller's progress record for the course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.ProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/progress [get]
func (h *CourseHandler) GetProgress(c *fiber.Ctx) error {
	response, err := h.progressService.GetProgress(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
