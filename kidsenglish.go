// Package kidsenglish lắp ráp repository, service, middleware và handler của
// hệ thống phân quyền thành một Kit gắn vào fiber app.
package kidsenglish

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/techmaster-vietnam/kidsenglish/authz"
	"github.com/techmaster-vietnam/kidsenglish/cache"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/database"
	"github.com/techmaster-vietnam/kidsenglish/handlers"
	"github.com/techmaster-vietnam/kidsenglish/middleware"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"github.com/techmaster-vietnam/kidsenglish/repository"
	"github.com/techmaster-vietnam/kidsenglish/router"
	"github.com/techmaster-vietnam/kidsenglish/service"
	"gorm.io/gorm"
)

// Config alias
type Config = config.Config

// Model aliases
type (
	User       = models.User
	Role       = models.Role
	Permission = models.Permission
)

// Kit chứa toàn bộ thành phần đã khởi tạo
type Kit struct {
	DB     *gorm.DB
	Config *Config

	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository

	// PrincipalStore là store resolver dùng: UserRepo hoặc bản có Redis cache
	PrincipalStore authz.PrincipalStore
	Resolver       *authz.Resolver

	AuthService *service.AuthService
	RoleService *service.RoleService
	UserService *service.UserService

	AuthMiddleware  *middleware.AuthMiddleware
	PermissionGuard *middleware.PermissionGuard

	AuthHandler       *handlers.AuthHandler
	RoleHandler       *handlers.RoleHandler
	UserHandler       *handlers.UserHandler
	PermissionHandler *handlers.PermissionHandler

	RouteRegistry *router.RouteRegistry

	app         *fiber.App
	invalidator core.CacheInvalidator
}

// Builder builds a Kit with fluent API
type Builder struct {
	app         *fiber.App
	db          *gorm.DB
	config      *Config
	redisClient *redis.Client
}

// New tạo builder
func New(app *fiber.App, db *gorm.DB) *Builder {
	return &Builder{app: app, db: db}
}

// WithConfig sets config
func (b *Builder) WithConfig(cfg *Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis bật principal cache trên Redis
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redisClient = client
	return b
}

// Initialize migrates the schema and wires every component
func (b *Builder) Initialize() (*Kit, error) {
	if b.config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		b.config = cfg
	}

	if err := database.Migrate(b.db); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(b.db)
	roleRepo := repository.NewRoleRepository(b.db)

	var store authz.PrincipalStore = userRepo
	var invalidator core.CacheInvalidator
	if b.redisClient != nil {
		principalCache := cache.NewPrincipalCache(userRepo, b.redisClient, b.config.Cache.TTL, b.config.Cache.Prefix)
		store = principalCache
		invalidator = principalCache
	}

	resolver := authz.NewResolver(store, b.config.Authz.SuperAdminRole)

	authService := service.NewAuthService(userRepo, roleRepo, b.config)
	roleService := service.NewRoleService(roleRepo, userRepo, resolver.SuperAdminRole())
	userService := service.NewUserService(userRepo, roleRepo, b.config)
	if invalidator != nil {
		roleService.SetCacheInvalidator(invalidator)
		userService.SetCacheInvalidator(invalidator)
	}

	routeRegistry := router.NewRouteRegistry()

	return &Kit{
		DB:                b.db,
		Config:            b.config,
		UserRepo:          userRepo,
		RoleRepo:          roleRepo,
		PrincipalStore:    store,
		Resolver:          resolver,
		AuthService:       authService,
		RoleService:       roleService,
		UserService:       userService,
		AuthMiddleware:    middleware.NewAuthMiddleware(b.config),
		PermissionGuard:   middleware.NewPermissionGuard(resolver),
		AuthHandler:       handlers.NewAuthHandler(authService, b.config.Server.CookieSecure),
		RoleHandler:       handlers.NewRoleHandler(roleService),
		UserHandler:       handlers.NewUserHandler(userService),
		PermissionHandler: handlers.NewPermissionHandler(routeRegistry),
		RouteRegistry:     routeRegistry,
		app:               b.app,
		invalidator:       invalidator,
	}, nil
}

// Router trả về AuthRouter gốc để khai báo thêm route có phân quyền
func (k *Kit) Router() *router.AuthRouter {
	return router.NewAuthRouter(k.app, k.RouteRegistry, k.AuthMiddleware, k.PermissionGuard)
}

// RegisterRoutes mounts the auth, role, user and permission APIs under /api
func (k *Kit) RegisterRoutes() {
	api := k.Router().Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", k.AuthHandler.Register).
		Description("Self registration with the default role").
		Register()
	auth.Post("/login", k.AuthHandler.Login).
		Description("Exchange credentials for a token").
		Register()
	auth.Post("/logout", k.AuthHandler.Logout).
		Description("Clear the token cookie").
		Register()
	auth.Get("/profile", k.AuthHandler.Profile).
		Require(models.PermViewOwnProfile).
		Description("Current user profile").
		Register()
	auth.Put("/profile", k.AuthHandler.UpdateProfile).
		Require(models.PermUpdateOwnProfile).
		Description("Update own profile").
		Register()
	auth.Post("/change-password", k.AuthHandler.ChangePassword).
		Require(models.PermUpdateOwnProfile).
		Description("Change own password").
		Register()

	roles := api.Group("/roles").RequirePermissions(models.PermViewRole)
	roles.Get("/", k.RoleHandler.ListRoles).Description("List roles").Register()
	roles.Get("/:id", k.RoleHandler.GetRole).Description("Get role").Register()
	roles.Post("/", k.RoleHandler.CreateRole).Require(models.PermCreateRole).Description("Create role").Register()
	roles.Put("/:id", k.RoleHandler.UpdateRole).Require(models.PermUpdateRole).Description("Update role").Register()
	roles.Delete("/:id", k.RoleHandler.DeleteRole).Require(models.PermDeleteRole).Description("Delete role").Register()

	users := api.Group("/users").RequirePermissions(models.PermViewUser)
	users.Get("/", k.UserHandler.ListUsers).Description("List users").Register()
	users.Get("/:id", k.UserHandler.GetUser).Description("Get user").Register()
	users.Post("/", k.UserHandler.CreateUser).Require(models.PermCreateUser).Description("Provision user").Register()
	users.Put("/:id/role", k.UserHandler.AssignRole).Require(models.PermAssignRole).Description("Assign role").Register()
	users.Patch("/:id/status", k.UserHandler.SetStatus).Require(models.PermUpdateUserStatus).Description("Activate or deactivate user").Register()

	perms := api.Group("/permissions")
	perms.Get("/", k.PermissionHandler.ListPermissions).
		Require(models.PermViewPermission, models.PermViewRole).
		Description("Permission catalog").
		Register()
	perms.Get("/routes", k.PermissionHandler.ListRoutes).
		Require(models.PermViewPermission).
		Description("Routes with their declared permissions").
		Register()
}

// InvalidateCache xóa principal cache, no-op khi không dùng Redis
func (k *Kit) InvalidateCache(ctx context.Context) error {
	if k.invalidator == nil {
		return nil
	}
	return k.invalidator.InvalidatePrincipals(ctx)
}
