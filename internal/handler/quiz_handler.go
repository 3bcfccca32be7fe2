package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/service"
	"hangeul-path/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{service: service, validator: validator}
}

// Start godoc
// @Summary Start a quiz
// @Description Generates a quiz for the course and opens an answering session
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.StartQuizRequest true "Course to quiz"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/start [post]
func (h *QuizHandler) Start(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStartQuizRequest(req); len(errs) > 0 {
		return errs
	}
	response, err := h.service.Start(c.Context(), middleware.UserID(c), req.CourseID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetState godoc
// @Summary Get quiz state
// @Description Returns the current session snapshot
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId} [get]
func (h *QuizHandler) GetState(c *fiber.Ctx) error {
	response, err := h.service.GetState(c.Context(), middleware.UserID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Select godoc
// @Summary Select an answer
// @Description Records a multiple-choice candidate answer; re-selectable until checked
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.SelectAnswerRequest true "Selected option"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/select [post]
func (h *QuizHandler) Select(c *fiber.Ctx) error {
	var req dto.SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSelectAnswerRequest(req); len(errs) > 0 {
		return errs
	}
	response, err := h.service.Select(c.Context(), middleware.UserID(c), c.Params("sessionId"), req.Option)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// PlaceChar godoc
// @Summary Place a character
// @Description Moves a token from the available pool to the built sequence
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.CharOpRequest true "Token to place"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/chars [post]
func (h *QuizHandler) PlaceChar(c *fiber.Ctx) error {
	var req dto.CharOpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	response, err := h.service.PlaceChar(c.Context(), middleware.UserID(c), c.Params("sessionId"), req.TokenID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// RemoveChar godoc
// @Summary Remove a placed character
// @Description Moves a placed token back to the available pool
// @Tags quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.CharOpRequest true "Token to remove"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/chars/remove [post]
func (h *QuizHandler) RemoveChar(c *fiber.Ctx) error {
	var req dto.CharOpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	response, err := h.service.RemoveChar(c.Context(), middleware.UserID(c), c.Params("sessionId"), req.TokenID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Backspace godoc
// @Summary Remove the last placed character
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/backspace [post]
func (h *QuizHandler) Backspace(c *fiber.Ctx) error {
	response, err := h.service.Backspace(c.Context(), middleware.UserID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Check godoc
// @Summary Check the current answer
// @Description Grades the current question; checking is one-way
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/check [post]
func (h *QuizHandler) Check(c *fiber.Ctx) error {
	response, err := h.service.Check(c.Context(), middleware.UserID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Advance godoc
// @Summary Advance to the next question
// @Description Moves past a checked question; finishing a passing quiz completes the course
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/advance [post]
func (h *QuizHandler) Advance(c *fiber.Ctx) error {
	response, err := h.service.Advance(c.Context(), middleware.UserID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Restart godoc
// @Summary Restart the quiz
// @Description Abandons the session and deals a fresh quiz for the same course
// @Tags quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.QuizStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quiz/{sessionId}/restart [post]
func (h *QuizHandler) Restart(c *fiber.Ctx) error {
	response, err := h.service.Restart(c.Context(), middleware.UserID(c), c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
