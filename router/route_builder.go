package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/kidsenglish/authz"
	"github.com/techmaster-vietnam/kidsenglish/middleware"
	"github.com/techmaster-vietnam/kidsenglish/models"
)

// RouteBuilder cung cấp fluent API để khai báo permission cho một route
type RouteBuilder struct {
	metadata         *RouteMetadata
	groupRequirement authz.Requirement
	requirement      authz.Requirement
	router           fiber.Router
	registry         *RouteRegistry
	authMw           *middleware.AuthMiddleware
	guard            *middleware.PermissionGuard
}

// Require khai báo permission cấp operation (any-of).
// Require() không tham số là khai báo rỗng: chỉ super admin truy cập được.
func (rb *RouteBuilder) Require(perms ...models.Permission) *RouteBuilder {
	rb.requirement = authz.Require(perms...)
	return rb
}

// Description thêm mô tả cho route
func (rb *RouteBuilder) Description(desc string) *RouteBuilder {
	rb.metadata.Description = desc
	return rb
}

// Register hoàn tất việc đăng ký route và gắn middleware.
// Route không có khai báo nào (cả group lẫn operation) không qua PermissionGuard
// và không từ chối token hỏng.
func (rb *RouteBuilder) Register() {
	effective := authz.Effective(rb.groupRequirement, rb.requirement)
	rb.metadata.Requirement = effective

	rb.registry.Register(rb.metadata)

	var handlers []fiber.Handler
	if effective.Declared() {
		handlers = append(handlers, rb.authMw.Authenticate(), rb.guard.Require(effective))
	} else {
		handlers = append(handlers, rb.authMw.AuthenticateOptional())
	}
	handlers = append(handlers, rb.metadata.Handler)

	rb.router.Add(rb.metadata.Method, rb.metadata.Path, handlers...)
}
