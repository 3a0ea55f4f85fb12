package authValidator

import (
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin guru siswa"`
	NIS      string `json:"nis" validate:"omitempty,numeric,max=20"`
	NoHp     string `json:"noHp" validate:"omitempty,numeric,min=10,max=15"`
	KelasID  uint   `json:"kelasId" validate:"required_if=Role siswa"`
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// CreateUser validates POST /admin/users
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

type LoginHistoryQuery struct {
	Page  int `query:"page" json:"page" validate:"gte=1"`
	Limit int `query:"limit" json:"limit" validate:"gte=1,lte=100"`
}

// LoginHistoryList validates GET /auth/login/history?page=&limit=
func LoginHistoryList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &LoginHistoryQuery{Page: 1, Limit: 10}
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedLoginHistory", reqData)
		return c.Next()
	}
}
