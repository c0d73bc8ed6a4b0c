package service

import (
	"context"
	"errors"
	"strings"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"gorm.io/gorm"
)

// RoleService handles role business logic
type RoleService struct {
	roleRepo         core.RoleRepositoryInterface
	userRepo         core.UserRepositoryInterface
	superAdminRole   string
	cacheInvalidator core.CacheInvalidator // Optional: invalidate principal cache khi role thay đổi
}

// NewRoleService creates a new role service.
// superAdminRole là tên role được bảo lưu, không tạo hay đổi tên thành qua API.
func NewRoleService(roleRepo core.RoleRepositoryInterface, userRepo core.UserRepositoryInterface, superAdminRole string) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		userRepo:       userRepo,
		superAdminRole: superAdminRole,
	}
}

// SetCacheInvalidator sets cache invalidator
func (s *RoleService) SetCacheInvalidator(invalidator core.CacheInvalidator) {
	s.cacheInvalidator = invalidator
}

// CreateRoleRequest represents create role request
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

// UpdateRoleRequest represents update role request. Field nil = giữ nguyên.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,permission"`
}

// CreateRole creates a new non-system role
func (s *RoleService) CreateRole(ctx context.Context, req CreateRoleRequest) (*models.Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, goerrorkit.NewValidationError("Role name is required", map[string]interface{}{
			"field": "name",
		})
	}
	if err := s.checkReservedName(name); err != nil {
		return nil, err
	}

	perms, err := parsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsSystem:    false,
		Permissions: perms,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create role")
	}

	invalidatePrincipals(ctx, s.cacheInvalidator, "RoleService.CreateRole")
	return role, nil
}

// UpdateRole updates name, description or permissions of a non-system role
func (s *RoleService) UpdateRole(ctx context.Context, id uint, req UpdateRoleRequest) (*models.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if role.IsSystem {
		return nil, goerrorkit.NewBusinessError(403, "System roles cannot be modified").WithData(map[string]interface{}{
			"role_id":   role.ID,
			"role_name": role.Name,
		})
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, goerrorkit.NewValidationError("Role name must not be empty", map[string]interface{}{
				"field": "name",
			})
		}
		if name != role.Name {
			if err := s.checkReservedName(name); err != nil {
				return nil, err
			}
			if err := s.ensureNameAvailable(ctx, name, role.ID); err != nil {
				return nil, err
			}
			role.Name = name
		}
	}

	if req.Description != nil {
		role.Description = strings.TrimSpace(*req.Description)
	}

	if req.Permissions != nil {
		perms, err := parsePermissions(*req.Permissions)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to update role")
	}

	invalidatePrincipals(ctx, s.cacheInvalidator, "RoleService.UpdateRole")
	return role, nil
}

// DeleteRole deletes a non-system role that no user references
func (s *RoleService) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return goerrorkit.NewBusinessError(403, "System roles cannot be deleted").WithData(map[string]interface{}{
			"role_id":   role.ID,
			"role_name": role.Name,
		})
	}

	count, err := s.userRepo.CountByRole(ctx, role.ID)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to count users of role")
	}
	if count > 0 {
		return goerrorkit.NewBusinessError(409, "Role is still assigned to users").WithData(map[string]interface{}{
			"role_id":    role.ID,
			"user_count": count,
		})
	}

	if err := s.roleRepo.Delete(ctx, role.ID); err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to delete role")
	}

	invalidatePrincipals(ctx, s.cacheInvalidator, "RoleService.DeleteRole")
	return nil
}

// GetRole gets a role by ID
func (s *RoleService) GetRole(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "Role not found").WithData(map[string]interface{}{
				"role_id": id,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load role")
	}
	return role, nil
}

// ListRoles lists all roles
func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to list roles")
	}
	return roles, nil
}

func (s *RoleService) checkReservedName(name string) error {
	if strings.EqualFold(name, s.superAdminRole) {
		return goerrorkit.NewBusinessError(403, "Role name is reserved").WithData(map[string]interface{}{
			"role_name": name,
		})
	}
	return nil
}

// ensureNameAvailable trả lỗi 409 nếu name đã thuộc về role khác exceptID
func (s *RoleService) ensureNameAvailable(ctx context.Context, name string, exceptID uint) error {
	existing, err := s.roleRepo.GetByName(ctx, name)
	if err == nil {
		if existing.ID == exceptID {
			return nil
		}
		return goerrorkit.NewBusinessError(409, "Role name already exists").WithData(map[string]interface{}{
			"name": name,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return goerrorkit.WrapWithMessage(err, "Failed to check role name")
	}
	return nil
}

func parsePermissions(raw []string) ([]models.Permission, error) {
	perms, err := models.ParsePermissions(raw)
	if err != nil {
		return nil, goerrorkit.NewValidationError("Unknown permission", map[string]interface{}{
			"field":  "permissions",
			"reason": err.Error(),
		})
	}
	return perms, nil
}
