package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/service"
)

// RoleHandler handles role endpoints
type RoleHandler struct {
	roleService *service.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListRoles handles list roles request
// GET /api/roles
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roleService.ListRoles(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    roles,
	})
}

// GetRole handles get role request
// GET /api/roles/:id
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	roleID, err := parseRoleID(c)
	if err != nil {
		return err
	}

	role, err := h.roleService.GetRole(c.UserContext(), roleID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    role,
	})
}

// CreateRole handles create role request
// POST /api/roles
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req service.CreateRoleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roleService.CreateRole(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    role,
	})
}

// UpdateRole handles update role request
// PUT /api/roles/:id
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	roleID, err := parseRoleID(c)
	if err != nil {
		return err
	}

	var req service.UpdateRoleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	role, err := h.roleService.UpdateRole(c.UserContext(), roleID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    role,
	})
}

// DeleteRole handles delete role request
// DELETE /api/roles/:id
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	roleID, err := parseRoleID(c)
	if err != nil {
		return err
	}

	if err := h.roleService.DeleteRole(c.UserContext(), roleID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role deleted",
	})
}

func parseRoleID(c *fiber.Ctx) (uint, error) {
	return parseUintParam(c, "id")
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	return parseUintID(c.Params(name), name)
}

// parseUintID parse id dương; số âm, 0 hoặc vượt uint32 đều bị từ chối
func parseUintID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, goerrorkit.NewValidationError("Invalid ID", map[string]interface{}{
			name: raw,
		})
	}
	return uint(id), nil
}
