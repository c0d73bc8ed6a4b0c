package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/core"
	"github.com/techmaster-vietnam/kidsenglish/models"
	"gorm.io/gorm"
)

// MockRoleRepository là mock repository cho testing
type MockRoleRepository struct {
	roles  map[uint]*models.Role
	nextID uint
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{roles: make(map[uint]*models.Role), nextID: 1}
}

func (m *MockRoleRepository) Create(_ context.Context, role *models.Role) error {
	if role.ID == 0 {
		role.ID = m.nextID
	}
	if role.ID >= m.nextID {
		m.nextID = role.ID + 1
	}
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *MockRoleRepository) GetByID(_ context.Context, id uint) (*models.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *role
	return &cp, nil
}

func (m *MockRoleRepository) GetByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range m.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleRepository) Update(_ context.Context, role *models.Role) error {
	if _, ok := m.roles[role.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *MockRoleRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.roles, id)
	return nil
}

func (m *MockRoleRepository) List(_ context.Context) ([]models.Role, error) {
	result := make([]models.Role, 0, len(m.roles))
	for id := uint(1); id < m.nextID; id++ {
		if role, ok := m.roles[id]; ok {
			result = append(result, *role)
		}
	}
	return result, nil
}

// MockUserRepository là mock repository cho testing, preload Role từ roleRepo
type MockUserRepository struct {
	users    map[string]*models.User
	roleRepo *MockRoleRepository
	seq      int
	failWith error
}

func NewMockUserRepository(roleRepo *MockRoleRepository) *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*models.User), roleRepo: roleRepo}
}

func (m *MockUserRepository) withRole(user *models.User) *models.User {
	cp := *user
	cp.Role = nil
	if cp.RoleID != nil {
		if role, ok := m.roleRepo.roles[*cp.RoleID]; ok {
			r := *role
			cp.Role = &r
		}
	}
	return &cp
}

func (m *MockUserRepository) Create(_ context.Context, user *models.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user%07d", m.seq)
	}
	cp := *user
	cp.Role = nil
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withRole(user), nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, user := range m.users {
		if user.Email == email {
			return m.withRole(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	cp.Role = nil
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) List(_ context.Context, offset, limit int, filter *core.UserFilter) ([]models.User, int64, error) {
	var matched []models.User
	for _, user := range m.users {
		if filter != nil && filter.Email != "" && !strings.Contains(user.Email, filter.Email) {
			continue
		}
		matched = append(matched, *m.withRole(user))
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.User{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *MockUserRepository) CountByRole(_ context.Context, roleID uint) (int64, error) {
	var count int64
	for _, user := range m.users {
		if user.RoleID != nil && *user.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

// mockCacheInvalidator đếm số lần invalidate
type mockCacheInvalidator struct {
	calls int
	err   error
}

func (m *mockCacheInvalidator) InvalidatePrincipals(_ context.Context) error {
	m.calls++
	return m.err
}

func createTestRole(id uint, name string, system bool, perms ...models.Permission) *models.Role {
	return &models.Role{ID: id, Name: name, IsSystem: system, Permissions: perms}
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "kidsenglish-test"},
		Password: config.PasswordConfig{
			MinLength:        8,
			RequireLowercase: true,
			RequireDigit:     true,
			MinSpecialChars:  1,
		},
		Authz: config.AuthzConfig{SuperAdminRole: "Super Admin", DefaultRole: "Student"},
	}
}

// seedPlatformRoles tạo các role cơ bản: 1 Super Admin, 2 Admin, 3 Teacher, 4 Student
func seedPlatformRoles(repo *MockRoleRepository) {
	ctx := context.Background()
	_ = repo.Create(ctx, createTestRole(1, "Super Admin", true))
	_ = repo.Create(ctx, createTestRole(2, "Admin", false, models.PermViewUser, models.PermCreateUser))
	_ = repo.Create(ctx, createTestRole(3, "Teacher", false, models.PermManageLesson))
	_ = repo.Create(ctx, createTestRole(4, "Student", false, models.PermTakeQuiz))
}

// assertAppError kiểm tra err là *goerrorkit.AppError chứa msg.
// kind: "business", "validation" hoặc "" (không kiểm tra loại)
func assertAppError(t *testing.T, err error, kind string, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing '%s' but got nil", msg)
	}
	var appErr *goerrorkit.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T: %v", err, err)
	}
	switch kind {
	case "business":
		if appErr.Type != goerrorkit.BusinessError {
			t.Errorf("Expected business error, got %v", appErr.Type)
		}
	case "validation":
		if appErr.Type != goerrorkit.ValidationError {
			t.Errorf("Expected validation error, got %v", appErr.Type)
		}
	}
	if msg != "" && !strings.Contains(appErr.Error(), msg) {
		t.Errorf("Expected error message to contain '%s', got '%s'", msg, appErr.Error())
	}
}
