package service

import (
	"context"
	"errors"
	"testing"

	"github.com/techmaster-vietnam/kidsenglish/utils"
)

func newTestAuthService() (*AuthService, *MockUserRepository, *MockRoleRepository) {
	roleRepo := NewMockRoleRepository()
	seedPlatformRoles(roleRepo)
	userRepo := NewMockUserRepository(roleRepo)
	return NewAuthService(userRepo, roleRepo, testConfig()), userRepo, roleRepo
}

func TestAuthService_RegisterAssignsDefaultRole(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Kid@Example.com",
		Password: "abcdef12",
		FullName: "  Be Na  ",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Email != "kid@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}
	if user.FullName != "Be Na" {
		t.Errorf("Expected trimmed full name, got %q", user.FullName)
	}
	if user.Role == nil || user.Role.Name != "Student" {
		t.Fatalf("Expected default Student role, got %+v", user.Role)
	}
	stored, _ := userRepo.GetByEmail(context.Background(), "kid@example.com")
	if !utils.CheckPassword(stored.Password, "abcdef12") {
		t.Error("Stored password hash does not match")
	}
}

func TestAuthService_RegisterErrors(t *testing.T) {
	tests := []struct {
		name             string
		req              RegisterRequest
		setup            func(svc *AuthService, users *MockUserRepository, roles *MockRoleRepository)
		expectedErrType  string
		expectedErrorMsg string
	}{
		{
			name:             "Thiếu email - lỗi validation",
			req:              RegisterRequest{Password: "abcdef12"},
			expectedErrType:  "validation",
			expectedErrorMsg: "Email is required",
		},
		{
			name:             "Password thiếu chữ số - lỗi validation",
			req:              RegisterRequest{Email: "a@example.com", Password: "abcdefgh"},
			expectedErrType:  "validation",
			expectedErrorMsg: "a digit",
		},
		{
			name: "Email đã đăng ký - lỗi conflict",
			req:  RegisterRequest{Email: "dup@example.com", Password: "abcdef12"},
			setup: func(_ *AuthService, users *MockUserRepository, _ *MockRoleRepository) {
				addUser(users, "dup000000001", "dup@example.com", 4, true)
			},
			expectedErrType:  "business",
			expectedErrorMsg: "Email already registered",
		},
		{
			name: "Default role chưa seed - lỗi nghiệp vụ",
			req:  RegisterRequest{Email: "new@example.com", Password: "abcdef12"},
			setup: func(_ *AuthService, _ *MockUserRepository, roles *MockRoleRepository) {
				_ = roles.Delete(context.Background(), 4)
			},
			expectedErrType:  "business",
			expectedErrorMsg: "Default role is not provisioned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, roles := newTestAuthService()
			if tt.setup != nil {
				tt.setup(svc, users, roles)
			}
			_, err := svc.Register(context.Background(), tt.req)
			assertAppError(t, err, tt.expectedErrType, tt.expectedErrorMsg)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "kid@example.com", Password: "abcdef12"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "KID@example.com", Password: "abcdef12"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("Expected expires_in 3600, got %d", resp.ExpiresIn)
	}
	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("Issued token is invalid: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Email != "kid@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	_, err = svc.Login(ctx, LoginRequest{Email: "kid@example.com", Password: "wrong-pass1"})
	assertAppError(t, err, "", "Invalid email or password")

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "abcdef12"})
	assertAppError(t, err, "", "Invalid email or password")

	stored, _ := userRepo.GetByEmail(ctx, "kid@example.com")
	stored.Active = false
	_ = userRepo.Update(ctx, stored)

	_, err = svc.Login(ctx, LoginRequest{Email: "kid@example.com", Password: "abcdef12"})
	assertAppError(t, err, "", "Account is disabled")
}

func TestAuthService_LoginRepositoryFailure(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	userRepo.failWith = errors.New("db down")

	_, err := svc.Login(context.Background(), LoginRequest{Email: "kid@example.com", Password: "abcdef12"})
	if err == nil {
		t.Fatal("Expected error when repository fails")
	}
}

func TestAuthService_Profile(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	addUser(userRepo, "teacher00001", "hoa@example.com", 3, true)

	user, err := svc.Profile(context.Background(), "teacher00001")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if user.Role == nil || user.Role.Name != "Teacher" {
		t.Errorf("Expected Teacher role on profile, got %+v", user.Role)
	}

	_, err = svc.Profile(context.Background(), "missing")
	assertAppError(t, err, "business", "User not found")
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	addUser(userRepo, "student00001", "kid@example.com", 4, true)
	ctx := context.Background()

	user, err := svc.UpdateProfile(ctx, "student00001", UpdateProfileRequest{FullName: "  Be Na  "})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if user.FullName != "Be Na" {
		t.Errorf("Expected trimmed full name, got %q", user.FullName)
	}
	stored, _ := userRepo.GetByID(ctx, "student00001")
	if stored.FullName != "Be Na" {
		t.Errorf("Full name not persisted, got %q", stored.FullName)
	}
	if stored.RoleID == nil || *stored.RoleID != 4 {
		t.Errorf("Role must be unchanged, got %v", stored.RoleID)
	}

	_, err = svc.UpdateProfile(ctx, "student00001", UpdateProfileRequest{FullName: "   "})
	assertAppError(t, err, "validation", "Full name is required")

	_, err = svc.UpdateProfile(ctx, "missing", UpdateProfileRequest{FullName: "X"})
	assertAppError(t, err, "business", "User not found")
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name             string
		userID           string
		req              ChangePasswordRequest
		expectedErrType  string
		expectedErrorMsg string
	}{
		{
			name:   "Đổi mật khẩu - thành công",
			req:  ChangePasswordRequest{OldPassword: "abcdef12", NewPassword: "newpass34"},
		},
		{
			name:             "Mật khẩu mới vi phạm policy",
			req:              ChangePasswordRequest{OldPassword: "abcdef12", NewPassword: "short"},
			expectedErrType:  "validation",
			expectedErrorMsg: "at least 8 characters",
		},
		{
			name:             "Mật khẩu mới trùng mật khẩu cũ",
			req:              ChangePasswordRequest{OldPassword: "abcdef12", NewPassword: "abcdef12"},
			expectedErrType:  "validation",
			expectedErrorMsg: "must differ",
		},
		{
			name:             "Mật khẩu cũ sai",
			req:              ChangePasswordRequest{OldPassword: "wrong-pass1", NewPassword: "newpass34"},
			expectedErrorMsg: "Current password is incorrect",
		},
		{
			name:             "User không tồn tại",
			userID:           "missing",
			req:              ChangePasswordRequest{OldPassword: "abcdef12", NewPassword: "newpass34"},
			expectedErrType:  "business",
			expectedErrorMsg: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newTestAuthService()
			ctx := context.Background()
			user, err := svc.Register(ctx, RegisterRequest{Email: "kid@example.com", Password: "abcdef12"})
			if err != nil {
				t.Fatalf("Register() error: %v", err)
			}
			userID := tt.userID
			if userID == "" {
				userID = user.ID
			}

			err = svc.ChangePassword(ctx, userID, tt.req)
			if tt.expectedErrorMsg != "" {
				assertAppError(t, err, tt.expectedErrType, tt.expectedErrorMsg)
				stored, _ := userRepo.GetByID(ctx, user.ID)
				if !utils.CheckPassword(stored.Password, "abcdef12") {
					t.Error("Password must be unchanged after a failed change")
				}
				return
			}
			if err != nil {
				t.Fatalf("ChangePassword() error: %v", err)
			}
			if _, err := svc.Login(ctx, LoginRequest{Email: "kid@example.com", Password: "newpass34"}); err != nil {
				t.Errorf("Login with new password failed: %v", err)
			}
			_, err = svc.Login(ctx, LoginRequest{Email: "kid@example.com", Password: "abcdef12"})
			assertAppError(t, err, "", "Invalid email or password")
		})
	}
}
