package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/middleware"
	"github.com/techmaster-vietnam/kidsenglish/service"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AssignRoleRequest represents assign role request
type AssignRoleRequest struct {
	RoleID uint `json:"role_id" validate:"required"`
}

// SetStatusRequest represents activate/deactivate request
type SetStatusRequest struct {
	Active *bool `json:"is_active" validate:"required"`
}

// ListUsers handles list users request
// GET /api/users?offset=0&limit=20&email=&full_name=&role_id=&is_active=
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	filter := &core.UserFilter{
		Email:    c.Query("email"),
		FullName: c.Query("full_name"),
	}
	if raw := c.Query("role_id"); raw != "" {
		roleID, err := parseUintID(raw, "role_id")
		if err != nil {
			return err
		}
		filter.RoleID = &roleID
	}
	if raw := c.Query("is_active"); raw != "" {
		active := c.QueryBool("is_active")
		filter.Active = &active
	}

	result, err := h.userService.ListUsers(c.UserContext(), c.QueryInt("offset", 0), c.QueryInt("limit", 0), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetUser handles get user request
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// CreateUser handles admin provisioning request
// POST /api/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// AssignRole handles assign role request
// PUT /api/users/:id/role
func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	var req AssignRoleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.AssignRole(c.UserContext(), c.Params("id"), req.RoleID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// SetStatus handles activate/deactivate request
// PATCH /api/users/:id/status
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return goerrorkit.NewAuthError(401, "Authentication required")
	}

	var req SetStatusRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.SetActive(c.UserContext(), actorID, c.Params("id"), *req.Active)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}
