package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StudyHandler handles study session tracking requests.
type StudyHandler struct {
	studyService service.StudyService
}

// NewStudyHandler creates a new StudyHandler instance
func NewStudyHandler(studyService service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// Begin godoc
// @Summary Start a study session
// @Tags study
// @Produce json
// @Success 200 {object} dto.StudySessionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /study/sessions [post]
func (h *StudyHandler) Begin(c *fiber.Ctx) error {
	response, err := h.studyService.BeginSession(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// End godoc
// @Summary End a study session
// @Description Credits the elapsed time and adjusts the daily streak; very short sessions are discarded
// @Tags study
// @Accept json
// @Produce json
// @Param request body dto.EndStudySessionRequest true "Session to end"
// @Success 200 {object} dto.StudySummaryResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /study/sessions/end [post]
func (h *StudyHandler) End(c *fiber.Ctx) error {
	var req dto.EndStudySessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.SessionID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("session_id")}
	}
	response, err := h.studyService.EndSession(c.Context(), middleware.UserID(c), req.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}
