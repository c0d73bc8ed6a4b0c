package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/middleware"
	"github.com/techmaster-vietnam/kidsenglish/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// Login handles login request
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	// Token trả trong body cho API client, cookie cho trình duyệt
	h.setTokenCookie(c, resp.Token, time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// Register handles registration request
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Profile returns the current user
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Authentication required")
	}

	user, err := h.authService.Profile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateProfile handles self profile update
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Authentication required")
	}

	var req service.UpdateProfileRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// ChangePassword handles change password request
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Authentication required")
	}

	var req service.ChangePasswordRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed",
	})
}

// Logout xóa cookie token. Token đã cấp cho API client vẫn hợp lệ tới khi hết hạn.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setTokenCookie(c, "", time.Now().Add(-1*time.Hour))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: "Strict",
		Path:     "/",
	})
}
