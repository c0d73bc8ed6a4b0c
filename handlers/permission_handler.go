package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"github.com/techmaster-vietnam/kidsenglish/router"
)

// PermissionHandler exposes the permission catalog and route declarations
type PermissionHandler struct {
	registry *router.RouteRegistry
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(registry *router.RouteRegistry) *PermissionHandler {
	return &PermissionHandler{registry: registry}
}

// RouteInfo là một route kèm permission đã khai báo
type RouteInfo struct {
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	Declared    bool                `json:"declared"`
	Permissions []models.Permission `json:"permissions"`
	Description string              `json:"description,omitempty"`
}

// ListPermissions returns the permission catalog
// GET /api/permissions
func (h *PermissionHandler) ListPermissions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.PermissionCatalog(),
	})
}

// ListRoutes returns every registered route with its effective requirement.
// Khi có ?method=&path= thì chỉ trả về route khớp với request thực tế đó.
// GET /api/permissions/routes
func (h *PermissionHandler) ListRoutes(c *fiber.Ctx) error {
	method, path := c.Query("method"), c.Query("path")
	if method != "" || path != "" {
		return h.lookupRoute(c, method, path)
	}

	routes := h.registry.GetAllRoutes()
	infos := make([]RouteInfo, 0, len(routes))
	for _, r := range routes {
		infos = append(infos, toRouteInfo(r))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    infos,
	})
}

func (h *PermissionHandler) lookupRoute(c *fiber.Ctx, method, path string) error {
	if method == "" || path == "" {
		return goerrorkit.NewValidationError("Both method and path are required", map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	route := h.registry.FindRoute(method, path)
	if route == nil {
		return goerrorkit.NewBusinessError(404, "Route not found").WithData(map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toRouteInfo(route),
	})
}

func toRouteInfo(r *router.RouteMetadata) RouteInfo {
	return RouteInfo{
		Method:      r.Method,
		Path:        r.FullPath,
		Declared:    r.Requirement.Declared(),
		Permissions: r.Requirement.Permissions(),
		Description: r.Description,
	}
}
