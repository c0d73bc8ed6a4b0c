package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/authz"
)

const localDecision = "authzDecision"

// PermissionGuard chặn request theo quyết định của authz.Resolver
type PermissionGuard struct {
	resolver *authz.Resolver
}

// NewPermissionGuard creates a new permission guard
func NewPermissionGuard(resolver *authz.Resolver) *PermissionGuard {
	return &PermissionGuard{resolver: resolver}
}

// Require trả về handler kiểm tra requirement cho mỗi request.
// Mọi từ chối đều là 403; chỉ payload khác nhau theo lý do.
func (g *PermissionGuard) Require(requirement authz.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := GetUserIDFromContext(c)

		decision, err := g.resolver.Decide(c.UserContext(), requirement, userID)
		if err != nil {
			return goerrorkit.WrapWithMessage(err, "Failed to load user role").WithData(map[string]interface{}{
				"user_id": userID,
				"method":  c.Method(),
				"path":    c.Path(),
			})
		}

		c.Locals(localDecision, decision)

		if !decision.Allowed {
			return denialError(decision)
		}
		return c.Next()
	}
}

// denialError maps a denied decision to an AppError.
// UNAUTHENTICATED không kèm dữ liệu để không lộ endpoint cần quyền gì.
func denialError(decision authz.Decision) error {
	if decision.Reason == authz.ReasonUnauthenticated {
		return goerrorkit.NewAuthError(403, decision.Message())
	}

	data := map[string]interface{}{
		"reason": string(decision.Reason),
	}
	if decision.Reason == authz.ReasonPermissionDenied {
		required := make([]string, 0, len(decision.Required))
		for _, p := range decision.Required {
			required = append(required, p.String())
		}
		data["required"] = required
	}
	return goerrorkit.NewAuthError(403, decision.Message()).WithData(data)
}

// GetDecisionFromContext gets the authorization decision of the current request
func GetDecisionFromContext(c *fiber.Ctx) (authz.Decision, bool) {
	decision, ok := c.Locals(localDecision).(authz.Decision)
	return decision, ok
}
