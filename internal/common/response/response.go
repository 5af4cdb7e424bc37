package response

import (
	"errors"
	"fmt"
	"strings"

	"seedcare/internal/common/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Bind parses the JSON body into req and validates its struct tags
func Bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperror.Validation("invalid request body")
	}
	return Validate(req)
}

// Validate runs validator/v10 and converts failures into ErrValidation
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperror.Validation("invalid input")
	}

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", toSnake(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s (%s)", toSnake(fe.Field()), fe.Tag()))
		}
	}
	return apperror.Validation("invalid fields: %s", strings.Join(fields, ", "))
}

// Error writes the mapped status code and a client-safe message
func Error(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": apperror.PublicMessage(err)}
	if nes, ok := apperror.IsNoEligibleStaff(err); ok {
		body["department"] = nes.Department
		body["reason"] = nes.Reason
	}
	return c.Status(apperror.HTTPStatus(err)).JSON(body)
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
