package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/utils"
)

const (
	localUserID = "userID"
	localEmail  = "email"

	// TokenCookie là tên cookie chứa access token
	TokenCookie = "token"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	config *config.Config
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{config: cfg}
}

// Authenticate xác thực token nếu có.
// Không có token: đi tiếp không kèm principal, PermissionGuard sẽ quyết định.
// Token sai hoặc hết hạn: 401. Không đọc database.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := utils.ValidateToken(token, m.config.JWT.Secret)
		if err != nil {
			return goerrorkit.NewAuthError(401, "Invalid or expired token").WithData(map[string]interface{}{
				"error": err.Error(),
			})
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// AuthenticateOptional dùng cho route không khai báo permission:
// token sai hoặc hết hạn bị bỏ qua, request đi tiếp như anonymous.
func (m *AuthMiddleware) AuthenticateOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Next()
		}

		if claims, err := utils.ValidateToken(token, m.config.JWT.Secret); err == nil {
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, claims *utils.JWTClaims) {
	c.Locals(localUserID, claims.UserID)
	c.Locals(localEmail, claims.Email)
}

// extractToken extracts token from Authorization header or cookie
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Cookies(TokenCookie)
}

// GetUserIDFromContext gets user ID from context
func GetUserIDFromContext(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(localUserID).(string)
	return userID, ok && userID != ""
}

// GetEmailFromContext gets email from context
func GetEmailFromContext(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(localEmail).(string)
	return email, ok && email != ""
}
