package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
)

const passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?/~`"

// ValidatePassword kiểm tra password theo password policy trong config.
// Mọi yêu cầu còn thiếu được gom vào một lỗi validation duy nhất.
func ValidatePassword(password string, cfg config.PasswordConfig) error {
	if strings.TrimSpace(password) == "" {
		return goerrorkit.NewValidationError("Password is required", map[string]interface{}{
			"field": "password",
		})
	}

	if len(password) < cfg.MinLength {
		return goerrorkit.NewValidationError(fmt.Sprintf("Password must be at least %d characters", cfg.MinLength), map[string]interface{}{
			"field":      "password",
			"min_length": cfg.MinLength,
		})
	}

	var upper, lower, digit bool
	special := 0
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			special++
		}
	}

	checks := []struct {
		enabled bool
		ok      bool
		label   string
		key     string
	}{
		{cfg.RequireUppercase, upper, "an uppercase letter", "require_uppercase"},
		{cfg.RequireLowercase, lower, "a lowercase letter", "require_lowercase"},
		{cfg.RequireDigit, digit, "a digit", "require_digit"},
		{cfg.RequireSpecialChar, special >= cfg.MinSpecialChars, fmt.Sprintf("%d special character(s)", cfg.MinSpecialChars), "require_special_char"},
	}

	var missing []string
	data := map[string]interface{}{"field": "password"}
	for _, c := range checks {
		if c.enabled && !c.ok {
			missing = append(missing, c.label)
			data[c.key] = true
		}
	}
	if len(missing) > 0 {
		return goerrorkit.NewValidationError("Password must contain "+strings.Join(missing, ", "), data)
	}

	return nil
}
