package core

import (
	"context"

	"github.com/techmaster-vietnam/kidsenglish/models"
)

// UserFilter chứa các điều kiện lọc khi list users
type UserFilter struct {
	Email    string
	FullName string
	RoleID   *uint
	Active   *bool
}

// UserRepositoryInterface định nghĩa interface cho User Repository
// Cho phép mock repository trong tests
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int, filter *UserFilter) ([]models.User, int64, error)
	CountByRole(ctx context.Context, roleID uint) (int64, error)
}

// RoleRepositoryInterface định nghĩa interface cho Role Repository
// Cho phép mock repository trong tests
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Role, error)
}

// CacheInvalidator định nghĩa interface để invalidate cache
// Cho phép service layer invalidate cache mà không cần biết chi tiết implementation
type CacheInvalidator interface {
	// InvalidatePrincipals xóa toàn bộ principal đã cache sau khi role hoặc user thay đổi
	InvalidatePrincipals(ctx context.Context) error
}
