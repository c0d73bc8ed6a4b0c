package authz

import (
	"fmt"

	"github.com/techmaster-vietnam/kidsenglish/models"
)

// Requirement là danh sách permission mà một endpoint khai báo.
// Zero value nghĩa là "không khai báo", khác với khai báo danh sách rỗng.
type Requirement struct {
	declared    bool
	permissions []models.Permission
}

// NoRequirement returns an undeclared requirement
func NoRequirement() Requirement {
	return Requirement{}
}

// Require khai báo danh sách permission cho endpoint.
// Panic nếu có permission không nằm trong catalog, để lỗi gõ sai lộ ra khi đăng ký route
// thay vì âm thầm không bao giờ khớp lúc kiểm tra.
func Require(perms ...models.Permission) Requirement {
	list := make([]models.Permission, 0, len(perms))
	for _, p := range perms {
		if !models.IsKnownPermission(string(p)) {
			panic(fmt.Sprintf("authz: unknown permission %q", p))
		}
		list = append(list, p)
	}
	return Requirement{declared: true, permissions: list}
}

// Declared reports whether the endpoint declared a requirement at all
func (r Requirement) Declared() bool {
	return r.declared
}

// Permissions returns a copy of the declared permissions in declaration order
func (r Requirement) Permissions() []models.Permission {
	out := make([]models.Permission, len(r.permissions))
	copy(out, r.permissions)
	return out
}

// Effective chọn requirement áp dụng cho một operation: khai báo ở operation
// (nếu có) thay thế hoàn toàn khai báo ở group, không gộp.
func Effective(group, operation Requirement) Requirement {
	if operation.declared {
		return operation
	}
	return group
}
