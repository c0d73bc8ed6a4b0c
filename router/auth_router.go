package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/kidsenglish/authz"
	"github.com/techmaster-vietnam/kidsenglish/middleware"
	"github.com/techmaster-vietnam/kidsenglish/models"
)

// AuthRouter wrapper cho fiber.Router với fluent API để khai báo permission cho routes
type AuthRouter struct {
	router      fiber.Router
	registry    *RouteRegistry
	authMw      *middleware.AuthMiddleware
	guard       *middleware.PermissionGuard
	prefix      string            // Prefix path của group (để build full path)
	requirement authz.Requirement // Khai báo ở cấp group, có thể chưa khai báo
}

// NewAuthRouter tạo mới AuthRouter
func NewAuthRouter(
	router fiber.Router,
	registry *RouteRegistry,
	authMw *middleware.AuthMiddleware,
	guard *middleware.PermissionGuard,
) *AuthRouter {
	return &AuthRouter{
		router:      router,
		registry:    registry,
		authMw:      authMw,
		guard:       guard,
		requirement: authz.NoRequirement(),
	}
}

// RequirePermissions khai báo permission cấp group.
// Route nào tự khai báo Require sẽ thay thế hoàn toàn khai báo này.
func (ar *AuthRouter) RequirePermissions(perms ...models.Permission) *AuthRouter {
	ar.requirement = authz.Require(perms...)
	return ar
}

// Get tạo GET route với fluent API
func (ar *AuthRouter) Get(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder(fiber.MethodGet, path, handler)
}

// Post tạo POST route với fluent API
func (ar *AuthRouter) Post(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder(fiber.MethodPost, path, handler)
}

// Put tạo PUT route với fluent API
func (ar *AuthRouter) Put(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder(fiber.MethodPut, path, handler)
}

// Delete tạo DELETE route với fluent API
func (ar *AuthRouter) Delete(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder(fiber.MethodDelete, path, handler)
}

// Patch tạo PATCH route với fluent API
func (ar *AuthRouter) Patch(path string, handler fiber.Handler) *RouteBuilder {
	return ar.createRouteBuilder(fiber.MethodPatch, path, handler)
}

// Group tạo router group; group con kế thừa khai báo permission của group cha
func (ar *AuthRouter) Group(prefix string, handlers ...fiber.Handler) *AuthRouter {
	group := ar.router.Group(prefix, handlers...)
	newRouter := NewAuthRouter(group, ar.registry, ar.authMw, ar.guard)
	newRouter.requirement = ar.requirement
	newRouter.prefix = joinPath(ar.prefix, prefix)
	if newRouter.prefix == "/" {
		newRouter.prefix = ""
	}
	return newRouter
}

// joinPath nối prefix và path, luôn bắt đầu bằng "/" và không có "/" ở cuối (trừ root)
func joinPath(prefix, path string) string {
	full := strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
	full = strings.Trim(full, "/")
	return "/" + full
}

// convertPathToPattern converts path parameters to wildcard pattern
// Ví dụ: /api/roles/:id -> /api/roles/*, /api/users/:id/role -> /api/users/*/role
func convertPathToPattern(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, "/")
}

// createRouteBuilder tạo RouteBuilder cho route
func (ar *AuthRouter) createRouteBuilder(method, path string, handler fiber.Handler) *RouteBuilder {
	fullPath := convertPathToPattern(joinPath(ar.prefix, path))

	return &RouteBuilder{
		metadata: &RouteMetadata{
			Method:   method,
			Path:     path,
			FullPath: fullPath,
			Handler:  handler,
		},
		groupRequirement: ar.requirement,
		requirement:      authz.NoRequirement(),
		router:           ar.router,
		registry:         ar.registry,
		authMw:           ar.authMw,
		guard:            ar.guard,
	}
}
