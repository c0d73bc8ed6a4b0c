// Package authz quyết định một request có được phép đi tiếp tới handler hay không,
// dựa trên permission mà endpoint khai báo và role hiện tại của principal.
package authz

import (
	"context"
	"errors"

	"github.com/techmaster-vietnam/kidsenglish/models"
)

// DefaultSuperAdminRole là tên role hệ thống được bypass mọi kiểm tra
const DefaultSuperAdminRole = "Super Admin"

// ErrPrincipalNotFound is returned by a PrincipalStore when no user record exists
var ErrPrincipalNotFound = errors.New("authz: principal not found")

// RoleGrant là snapshot role của principal tại thời điểm kiểm tra
type RoleGrant struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	IsSystem    bool                `json:"is_system"`
	Permissions []models.Permission `json:"permissions"`
}

// Principal là snapshot user đọc từ store, Role = nil khi user chưa được gán role
type Principal struct {
	UserID string     `json:"user_id"`
	Active bool       `json:"active"`
	Role   *RoleGrant `json:"role,omitempty"`
}

// PrincipalStore loads a principal with its role resolved.
// Implementations return ErrPrincipalNotFound when the user does not exist.
type PrincipalStore interface {
	LoadPrincipal(ctx context.Context, userID string) (*Principal, error)
}

// Resolver là PermissionResolver: mỗi lần gọi Decide đọc lại principal từ store,
// không giữ state giữa các request.
type Resolver struct {
	store          PrincipalStore
	superAdminRole string
}

// NewResolver creates a Resolver. Empty superAdminRole falls back to DefaultSuperAdminRole.
func NewResolver(store PrincipalStore, superAdminRole string) *Resolver {
	if superAdminRole == "" {
		superAdminRole = DefaultSuperAdminRole
	}
	return &Resolver{store: store, superAdminRole: superAdminRole}
}

// SuperAdminRole returns the reserved bypass role name
func (r *Resolver) SuperAdminRole() string {
	return r.superAdminRole
}

// Decide evaluates requirement for principalID ("" = unauthenticated).
// Error chỉ trả về khi store lỗi; mọi trường hợp từ chối đều nằm trong Decision.
func (r *Resolver) Decide(ctx context.Context, requirement Requirement, principalID string) (Decision, error) {
	if !requirement.Declared() {
		return allow(), nil
	}

	if principalID == "" {
		return deny(ReasonUnauthenticated), nil
	}

	principal, err := r.store.LoadPrincipal(ctx, principalID)
	if errors.Is(err, ErrPrincipalNotFound) {
		return deny(ReasonAccountMisconfigured), nil
	}
	if err != nil {
		return Decision{}, err
	}
	if principal == nil || principal.Role == nil {
		return deny(ReasonAccountMisconfigured), nil
	}
	if !principal.Active {
		return deny(ReasonAccountDisabled), nil
	}

	role := principal.Role
	// Bypass gắn với tên role: đổi tên role super admin sẽ mất bypass
	if role.IsSystem && role.Name == r.superAdminRole {
		return Decision{Allowed: true, Bypassed: true}, nil
	}

	required := requirement.Permissions()
	if hasAnyPermission(role.Permissions, required) {
		return allow(), nil
	}

	return Decision{Reason: ReasonPermissionDenied, Required: required}, nil
}

func hasAnyPermission(granted, required []models.Permission) bool {
	if len(required) == 0 {
		return false
	}
	set := make(map[models.Permission]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}
