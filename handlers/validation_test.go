package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/service"
)

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{"valid role", &service.CreateRoleRequest{Name: "Parent", Permissions: []string{"VIEW_BOOKING"}}, false},
		{"unknown permission", &service.CreateRoleRequest{Name: "Parent", Permissions: []string{"VIEW_BOOKING", "FLY"}}, true},
		{"missing role name", &service.CreateRoleRequest{}, true},
		{"update without fields", &service.UpdateRoleRequest{}, false},
		{"update unknown permission", &service.UpdateRoleRequest{Permissions: &[]string{"nope"}}, true},
		{"invalid email", &service.RegisterRequest{Email: "not-an-email", Password: "abcdef12"}, true},
		{"valid login", &service.LoginRequest{Email: "kid@example.com", Password: "x"}, false},
		{"missing role id", &AssignRoleRequest{}, true},
		{"missing status", &SetStatusRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("validateStruct() unexpected error: %v", err)
				}
				return
			}
			var appErr *goerrorkit.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T: %v", err, err)
			}
			if appErr.Type != goerrorkit.ValidationError {
				t.Errorf("Expected validation error, got %v", appErr.Type)
			}
			if !strings.Contains(appErr.Error(), "Validation failed") {
				t.Errorf("Expected 'Validation failed', got '%s'", appErr.Error())
			}
		})
	}
}

func TestParseUintID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"4294967296", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseUintID(tt.raw, "role_id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseUintID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseUintID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewValidator_RegistersPermissionTag(t *testing.T) {
	v := newValidator()
	req := &service.CreateRoleRequest{Name: "Parent", Permissions: []string{"FLY"}}
	if err := v.Struct(req); err == nil {
		t.Error("permission tag should reject unknown permissions")
	}
}
