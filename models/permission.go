package models

import (
	"fmt"
	"strings"
)

// Permission là định danh quyền dạng chuỗi (ví dụ "CREATE_USER").
// Tập quyền hợp lệ là đóng: chỉ các hằng số khai báo bên dưới được chấp nhận.
type Permission string

// Quản trị user, role, permission
const (
	PermCreateUser       Permission = "CREATE_USER"
	PermViewUser         Permission = "VIEW_USER"
	PermUpdateUserStatus Permission = "UPDATE_USER_STATUS"
	PermAssignRole       Permission = "ASSIGN_ROLE"
	PermCreateRole       Permission = "CREATE_ROLE"
	PermViewRole         Permission = "VIEW_ROLE"
	PermUpdateRole       Permission = "UPDATE_ROLE"
	PermDeleteRole       Permission = "DELETE_ROLE"
	PermViewPermission   Permission = "VIEW_PERMISSION"
	PermViewOwnProfile   Permission = "VIEW_OWN_PROFILE"
	PermUpdateOwnProfile Permission = "UPDATE_OWN_PROFILE"
)

// Nghiệp vụ học tập
const (
	PermViewCourse          Permission = "VIEW_COURSE"
	PermManageCourse        Permission = "MANAGE_COURSE"
	PermManageLesson        Permission = "MANAGE_LESSON"
	PermCreateBooking       Permission = "CREATE_BOOKING"
	PermViewBooking         Permission = "VIEW_BOOKING"
	PermManageBooking       Permission = "MANAGE_BOOKING"
	PermTakeQuiz            Permission = "TAKE_QUIZ"
	PermManageQuiz          Permission = "MANAGE_QUIZ"
	PermManageVoucher       Permission = "MANAGE_VOUCHER"
	PermManageSupportTicket Permission = "MANAGE_SUPPORT_TICKET"
	PermJoinLiveClass       Permission = "JOIN_LIVE_CLASS"
	PermUseAIChat           Permission = "USE_AI_CHAT"
	PermUploadFile          Permission = "UPLOAD_FILE"
	PermViewStudentProgress Permission = "VIEW_STUDENT_PROGRESS"
)

// PermissionInfo mô tả một permission trong catalog
type PermissionInfo struct {
	Name        Permission `json:"name"`
	Group       string     `json:"group"`
	Description string     `json:"description"`
}

var permissionCatalog = []PermissionInfo{
	{PermCreateUser, "users", "Create user accounts"},
	{PermViewUser, "users", "View user accounts"},
	{PermUpdateUserStatus, "users", "Activate or deactivate user accounts"},
	{PermAssignRole, "users", "Assign a role to a user"},
	{PermCreateRole, "roles", "Create roles"},
	{PermViewRole, "roles", "View roles"},
	{PermUpdateRole, "roles", "Update roles and their permissions"},
	{PermDeleteRole, "roles", "Delete roles"},
	{PermViewPermission, "permissions", "View the permission catalog"},
	{PermViewOwnProfile, "profile", "View own profile"},
	{PermUpdateOwnProfile, "profile", "Update own name and password"},
	{PermViewCourse, "courses", "Browse courses and lessons"},
	{PermManageCourse, "courses", "Create and edit courses"},
	{PermManageLesson, "courses", "Create and edit lessons"},
	{PermCreateBooking, "bookings", "Book a class"},
	{PermViewBooking, "bookings", "View bookings"},
	{PermManageBooking, "bookings", "Start, complete or cancel classes"},
	{PermTakeQuiz, "quizzes", "Take quizzes"},
	{PermManageQuiz, "quizzes", "Create and edit quizzes"},
	{PermManageVoucher, "marketing", "Manage vouchers"},
	{PermManageSupportTicket, "support", "Handle support tickets"},
	{PermJoinLiveClass, "classes", "Join live classes"},
	{PermUseAIChat, "classes", "Use the AI chat assistant"},
	{PermUploadFile, "files", "Upload files"},
	{PermViewStudentProgress, "students", "View a student's learning progress"},
}

var knownPermissions = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(permissionCatalog))
	for _, info := range permissionCatalog {
		m[info.Name] = struct{}{}
	}
	return m
}()

// PermissionCatalog trả về bản sao catalog theo thứ tự khai báo
func PermissionCatalog() []PermissionInfo {
	out := make([]PermissionInfo, len(permissionCatalog))
	copy(out, permissionCatalog)
	return out
}

// AllPermissions returns every known permission
func AllPermissions() []Permission {
	out := make([]Permission, 0, len(permissionCatalog))
	for _, info := range permissionCatalog {
		out = append(out, info.Name)
	}
	return out
}

// IsKnownPermission reports whether s names a permission in the catalog
func IsKnownPermission(s string) bool {
	_, ok := knownPermissions[Permission(s)]
	return ok
}

// String returns permission as string
func (p Permission) String() string {
	return string(p)
}

// ParsePermission chuẩn hóa khoảng trắng rồi kiểm tra permission có trong catalog.
// So khớp phân biệt hoa thường.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	if !IsKnownPermission(s) {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return Permission(s), nil
}

// ParsePermissions parse danh sách permission, loại bỏ trùng lặp và giữ nguyên thứ tự.
// Trả về lỗi ở permission không hợp lệ đầu tiên.
func ParsePermissions(values []string) ([]Permission, error) {
	out := make([]Permission, 0, len(values))
	seen := make(map[Permission]struct{}, len(values))
	for _, v := range values {
		p, err := ParsePermission(v)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
