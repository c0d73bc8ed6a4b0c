package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"github.com/techmaster-vietnam/kidsenglish/utils"
	"gorm.io/gorm"
)

// SeedRole mô tả một role mặc định
type SeedRole struct {
	Name        string
	Description string
	IsSystem    bool
	Permissions []models.Permission
}

// DefaultRoles trả về các role mặc định của nền tảng.
// Role super admin không cần permission vì được bypass theo tên.
func DefaultRoles(superAdminRole string) []SeedRole {
	return []SeedRole{
		{
			Name:        superAdminRole,
			Description: "Full access, bypasses every permission check",
			IsSystem:    true,
		},
		{
			Name:        "Admin",
			Description: "Platform administrator",
			Permissions: models.AllPermissions(),
		},
		{
			Name:        "Teacher",
			Description: "Teaches classes and manages learning content",
			Permissions: []models.Permission{
				models.PermViewOwnProfile,
				models.PermUpdateOwnProfile,
				models.PermViewCourse,
				models.PermManageLesson,
				models.PermManageQuiz,
				models.PermViewBooking,
				models.PermManageBooking,
				models.PermJoinLiveClass,
				models.PermUploadFile,
				models.PermViewStudentProgress,
			},
		},
		{
			Name:        "Student",
			Description: "Learns through courses, quizzes and live classes",
			Permissions: []models.Permission{
				models.PermViewOwnProfile,
				models.PermUpdateOwnProfile,
				models.PermViewCourse,
				models.PermCreateBooking,
				models.PermViewBooking,
				models.PermTakeQuiz,
				models.PermJoinLiveClass,
				models.PermUseAIChat,
			},
		},
		{
			Name:        "Parent",
			Description: "Follows a child's progress and books classes",
			Permissions: []models.Permission{
				models.PermViewOwnProfile,
				models.PermUpdateOwnProfile,
				models.PermViewCourse,
				models.PermCreateBooking,
				models.PermViewBooking,
				models.PermViewStudentProgress,
			},
		},
	}
}

// Seed tạo các role mặc định và super admin (nếu có cấu hình). Gọi nhiều lần không tạo trùng.
// Role đã tồn tại được giữ nguyên để không ghi đè chỉnh sửa của admin.
func Seed(db *gorm.DB, cfg *config.Config) error {
	for _, seed := range DefaultRoles(cfg.Authz.SuperAdminRole) {
		if err := seedRole(db, seed); err != nil {
			return err
		}
	}

	if err := seedSuperAdmin(db, cfg); err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to seed super admin").
			WithData(map[string]interface{}{
				"email": cfg.Authz.SuperAdminEmail,
			})
	}
	return nil
}

func seedRole(db *gorm.DB, seed SeedRole) error {
	role := &models.Role{
		Name:        seed.Name,
		Description: seed.Description,
		IsSystem:    seed.IsSystem,
		Permissions: seed.Permissions,
	}

	// FirstOrCreate: tìm theo Name, nếu không có thì tạo mới
	result := db.Where("name = ?", seed.Name).FirstOrCreate(role)
	if result.Error != nil {
		return goerrorkit.WrapWithMessage(result.Error, fmt.Sprintf("Failed to initialize role %s", seed.Name)).
			WithData(map[string]interface{}{
				"role_name": seed.Name,
			})
	}
	return nil
}

func seedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Authz.SuperAdminEmail))
	if email == "" || cfg.Authz.SuperAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var role models.Role
	if err := db.Where("name = ? AND is_system = ?", cfg.Authz.SuperAdminRole, true).First(&role).Error; err != nil {
		return err
	}

	hashed, err := utils.HashPassword(cfg.Authz.SuperAdminPassword)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		FullName: "Super Admin",
		Active:   true,
		RoleID:   &role.ID,
	}
	return db.Create(user).Error
}
