package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/models"
)

const permissionTag = "permission"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Dùng tên json trong thông báo lỗi thay vì tên field Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.RegisterValidation(permissionTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && models.IsKnownPermission(strings.TrimSpace(s))
	})
	if err != nil {
		panic(fmt.Sprintf("handlers: register %q validation: %v", permissionTag, err))
	}
	return v
}

// parseAndValidate đọc body JSON vào req rồi validate theo struct tag
func parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return goerrorkit.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return validateStruct(req)
}

// validateStruct chuyển lỗi validator thành một goerrorkit validation error
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerrorkit.NewValidationError("Invalid request", map[string]interface{}{
			"error": err.Error(),
		})
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return goerrorkit.NewValidationError("Validation failed", map[string]interface{}{
		"fields": fields,
	})
}

// fieldName trả về tên json, giữ index cho phần tử slice (ví dụ permissions[2])
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case permissionTag:
		return fmt.Sprintf("unknown permission %q", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
