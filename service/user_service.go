package service

import (
	"context"
	"errors"
	"strings"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"github.com/techmaster-vietnam/kidsenglish/utils"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService handles user administration
type UserService struct {
	userRepo         core.UserRepositoryInterface
	roleRepo         core.RoleRepositoryInterface
	config           *config.Config
	cacheInvalidator core.CacheInvalidator
}

// NewUserService creates a new user service
func NewUserService(userRepo core.UserRepositoryInterface, roleRepo core.RoleRepositoryInterface, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		config:   cfg,
	}
}

// SetCacheInvalidator sets cache invalidator
func (s *UserService) SetCacheInvalidator(invalidator core.CacheInvalidator) {
	s.cacheInvalidator = invalidator
}

// CreateUserRequest represents admin user provisioning request
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=255"`
	RoleID   uint   `json:"role_id" validate:"required"`
}

// ListUsersResult là một trang kết quả
type ListUsersResult struct {
	Users  []models.User `json:"users"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// CreateUser provisions a user with an explicit role
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, goerrorkit.NewValidationError("Email is required", map[string]interface{}{
			"field": "email",
		})
	}
	if err := utils.ValidatePassword(req.Password, s.config.Password); err != nil {
		return nil, err
	}

	role, err := s.assignableRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, goerrorkit.NewBusinessError(409, "Email already registered").WithData(map[string]interface{}{
			"email": email,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to check email")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to hash password")
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
		Active:   true,
		RoleID:   &role.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create user")
	}
	user.Role = role

	return user, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "User not found").WithData(map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load user")
	}
	return user, nil
}

// ListUsers lists users page by page
func (s *UserService) ListUsers(ctx context.Context, offset, limit int, filter *core.UserFilter) (*ListUsersResult, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	users, total, err := s.userRepo.List(ctx, offset, limit, filter)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to list users")
	}
	return &ListUsersResult{Users: users, Total: total, Offset: offset, Limit: limit}, nil
}

// AssignRole replaces the role of a user. The super admin role cannot be assigned via API.
func (s *UserService) AssignRole(ctx context.Context, userID string, roleID uint) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotSuperAdmin(user); err != nil {
		return nil, err
	}

	role, err := s.assignableRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	user.RoleID = &role.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to assign role")
	}
	user.Role = role

	invalidatePrincipals(ctx, s.cacheInvalidator, "UserService.AssignRole")
	return user, nil
}

// SetActive activates or deactivates a user. actorID không được tự khóa chính mình.
func (s *UserService) SetActive(ctx context.Context, actorID, userID string, active bool) (*models.User, error) {
	if !active && actorID == userID {
		return nil, goerrorkit.NewBusinessError(403, "You cannot deactivate your own account").WithData(map[string]interface{}{
			"user_id": userID,
		})
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotSuperAdmin(user); err != nil {
		return nil, err
	}

	if user.Active == active {
		return user, nil
	}

	user.Active = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to update user status")
	}

	invalidatePrincipals(ctx, s.cacheInvalidator, "UserService.SetActive")
	return user, nil
}

// assignableRole loads roleID và từ chối role super admin
func (s *UserService) assignableRole(ctx context.Context, roleID uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Role not found").WithData(map[string]interface{}{
				"role_id": roleID,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load role")
	}
	if role.IsSystem && role.Name == s.config.Authz.SuperAdminRole {
		return nil, goerrorkit.NewBusinessError(403, "Super admin role cannot be assigned via API").WithData(map[string]interface{}{
			"role_id": roleID,
		})
	}
	return role, nil
}

// ensureNotSuperAdmin chặn thay đổi tài khoản super admin qua API
func (s *UserService) ensureNotSuperAdmin(user *models.User) error {
	if user.Role != nil && user.Role.IsSystem && user.Role.Name == s.config.Authz.SuperAdminRole {
		return goerrorkit.NewBusinessError(403, "Super admin accounts cannot be modified via API").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}
	return nil
}
