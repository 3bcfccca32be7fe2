package handler

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"hangeul-path/internal/dto"
	"hangeul-path/internal/service"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles the Google login flow.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin godoc
// @Summary Start the Google login flow
// @Description Redirects to Google's consent screen
// @Tags auth
// @Success 302
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := randomState()
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusFound)
}

// LoginResponse bundles the issued token with the profile.
type LoginResponse struct {
	Token *dto.TokenResponse       `json:"token"`
	User  *dto.UserProfileResponse `json:"user"`
}

// GoogleCallback godoc
// @Summary Complete the Google login flow
// @Description Exchanges the authorization code and returns an access token
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Anti-forgery state"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	token, user, err := h.authService.HandleGoogleCallback(
		c.Context(), c.Query("code"), c.Query("state"), c.Cookies(oauthStateCookie))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	c.ClearCookie(oauthStateCookie)
	return c.JSON(LoginResponse{Token: token, User: user})
}

// Refresh godoc
// @Summary Refresh the token pair
// @Description Trades a valid refresh token for a new access and refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "refresh_token is required")
	}
	tokens, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(tokens)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
