package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/service"
	"hangeul-path/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles community post requests.
type PostHandler struct {
	communityService service.CommunityService
	validator        *validation.Validator
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(communityService service.CommunityService, validator *validation.Validator) *PostHandler {
	return &PostHandler{communityService: communityService, validator: validator}
}

func userName(c *fiber.Ctx) string {
	if email, ok := c.Locals(middleware.UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "New post"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateCreatePostRequest(req); len(errs) > 0 {
		return errs
	}
	response, err := h.communityService.CreatePost(c.Context(), middleware.UserID(c), userName(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// List godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param category query string false "Category filter"
// @Param limit query int false "Maximum number of posts"
// @Success 200 {object} dto.PostListResponse
// @Router /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	response, err := h.communityService.ListPosts(c.Context(), c.Query("category"), middleware.UserID(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Get godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	response, err := h.communityService.GetPost(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Update godoc
// @Summary Edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Post changes"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	response, err := h.communityService.UpdatePost(c.Context(), c.Params("id"), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Param id path string true "Post ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	if err := h.communityService.DeletePost(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Like godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (h *PostHandler) Like(c *fiber.Ctx) error {
	response, err := h.communityService.SetLike(c.Context(), c.Params("id"), middleware.UserID(c), true)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Unlike godoc
// @Summary Remove a like
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Security BearerAuth
// @Router /posts/{id}/like [delete]
func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	response, err := h.communityService.SetLike(c.Context(), c.Params("id"), middleware.UserID(c), false)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// Comment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.AddCommentRequest true "New comment"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	response, err := h.communityService.AddComment(c.Context(), c.Params("id"), middleware.UserID(c), userName(c), req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}
