package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile and dashboard requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe godoc
// @Summary Get my profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	response, err := h.userService.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// UpdateMe godoc
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	response, err := h.userService.UpdateProfile(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetRanking godoc
// @Summary Get the learner leaderboard
// @Description Top learners ordered by weighted completion score
// @Tags users
// @Produce json
// @Success 200 {object} dto.RankingResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /users/ranking [get]
func (h *UserHandler) GetRanking(c *fiber.Ctx) error {
	response, err := h.userService.GetRanking(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetDashboard godoc
// @Summary Get my dashboard
// @Description Aggregates the profile, enrolled courses and achievements
// @Tags users
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /users/me/dashboard [get]
func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	response, err := h.userService.GetDashboard(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
