package repository

import (
	"context"
	"errors"

	"github.com/techmaster-vietnam/kidsenglish/authz"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	return &user, err
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	return &user, err
}

// Update updates a user. Role đã preload không bị ghi lại, chỉ RoleID được lưu.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// List lists users with pagination and filter
func (r *UserRepository) List(ctx context.Context, offset, limit int, filter *core.UserFilter) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter != nil {
		if filter.Email != "" {
			query = query.Where("email LIKE ?", "%"+filter.Email+"%")
		}
		if filter.FullName != "" {
			query = query.Where("full_name LIKE ?", "%"+filter.FullName+"%")
		}
		if filter.RoleID != nil {
			query = query.Where("role_id = ?", *filter.RoleID)
		}
		if filter.Active != nil {
			query = query.Where("active = ?", *filter.Active)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Role").Order("created_at").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// CountByRole đếm số user đang được gán roleID
func (r *UserRepository) CountByRole(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// LoadPrincipal đọc user cùng role trong một lần truy vấn cho permission resolver
func (r *UserRepository) LoadPrincipal(ctx context.Context, userID string) (*authz.Principal, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authz.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}

	principal := &authz.Principal{UserID: user.ID, Active: user.Active}
	if user.Role != nil {
		principal.Role = &authz.RoleGrant{
			ID:          user.Role.ID,
			Name:        user.Role.Name,
			IsSystem:    user.Role.IsSystem,
			Permissions: user.Role.Permissions,
		}
	}
	return principal, nil
}
