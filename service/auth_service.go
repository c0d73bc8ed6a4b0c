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

// AuthService handles authentication business logic
type AuthService struct {
	userRepo core.UserRepositoryInterface
	roleRepo core.RoleRepositoryInterface
	config   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo core.UserRepositoryInterface, roleRepo core.RoleRepositoryInterface, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		config:   cfg,
	}
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *models.User `json:"user"`
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"max=255"`
}

// UpdateProfileRequest represents self profile update request
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
}

// ChangePasswordRequest represents change password request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, goerrorkit.NewValidationError("Email is required", map[string]interface{}{
			"field": "email",
		})
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewAuthError(401, "Invalid email or password")
		}
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load user for login")
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, goerrorkit.NewAuthError(401, "Invalid email or password")
	}

	// Kiểm tra active sau password để không lộ trạng thái tài khoản cho người đoán mật khẩu
	if !user.Active {
		return nil, goerrorkit.NewAuthError(403, "Account is disabled").WithData(map[string]interface{}{
			"user_id": user.ID,
		})
	}

	jwtCfg := s.config.JWT
	token, err := utils.GenerateToken(user.ID, user.Email, jwtCfg.Issuer, jwtCfg.Secret, jwtCfg.Expiration)
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to issue token")
	}

	return &LoginResponse{
		Token:     token,
		ExpiresIn: int64(jwtCfg.Expiration.Seconds()),
		User:      user,
	}, nil
}

// Register creates a new user account with the configured default role
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, goerrorkit.NewValidationError("Email is required", map[string]interface{}{
			"field": "email",
		})
	}
	if err := utils.ValidatePassword(req.Password, s.config.Password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, goerrorkit.NewBusinessError(409, "Email already registered").WithData(map[string]interface{}{
			"email": email,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to check email")
	}

	defaultRole := s.config.Authz.DefaultRole
	role, err := s.roleRepo.GetByName(ctx, defaultRole)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(500, "Default role is not provisioned").WithData(map[string]interface{}{
				"role": defaultRole,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, "Failed to load default role")
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
		return nil, goerrorkit.WrapWithMessage(err, "Failed to create account")
	}
	user.Role = role

	return user, nil
}

// Profile returns the current user with role
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.loadUser(ctx, userID, "Failed to load profile")
}

// UpdateProfile đổi thông tin cá nhân của chính user. Role và trạng thái không đổi ở đây.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, goerrorkit.NewValidationError("Full name is required", map[string]interface{}{
			"field": "full_name",
		})
	}

	user, err := s.loadUser(ctx, userID, "Failed to load profile")
	if err != nil {
		return nil, err
	}

	user.FullName = fullName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Failed to update profile")
	}
	return user, nil
}

// ChangePassword kiểm tra mật khẩu cũ rồi lưu mật khẩu mới theo password policy
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := utils.ValidatePassword(req.NewPassword, s.config.Password); err != nil {
		return err
	}
	if req.NewPassword == req.OldPassword {
		return goerrorkit.NewValidationError("New password must differ from the current password", map[string]interface{}{
			"field": "new_password",
		})
	}

	user, err := s.loadUser(ctx, userID, "Failed to load user")
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.Password, req.OldPassword) {
		return goerrorkit.NewAuthError(401, "Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to hash password")
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return goerrorkit.WrapWithMessage(err, "Failed to update password")
	}
	return nil
}

func (s *AuthService) loadUser(ctx context.Context, userID, failureMsg string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerrorkit.NewBusinessError(404, "User not found").WithData(map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, goerrorkit.WrapWithMessage(err, failureMsg)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
