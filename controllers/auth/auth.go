package authController

import (
	"lms/logger"
	"lms/middleware"
	"lms/services/auth"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Auth *auth.Service
	Log  *logger.Logger
}

func New(svc *auth.Service, log *logger.Logger) *Controller {
	return &Controller{Auth: svc, Log: log.With("controller", "auth")}
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	result, err := ctl.Auth.Login(c.UserContext(), auth.LoginInput{
		Email:     reqData.Email,
		Password:  reqData.Password,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", result)
}

// CreateUser registers an account; siswa accounts also get a student record
func (ctl *Controller) CreateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.CreateUserRequest)

	result, err := ctl.Auth.CreateUser(c.UserContext(), auth.CreateUserInput{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: reqData.Password,
		Role:     reqData.Role,
		NIS:      reqData.NIS,
		Phone:    reqData.NoHp,
		ClassID:  reqData.KelasID,
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", result)
}

// Me returns the account behind the session
func (ctl *Controller) Me(c *fiber.Ctx) error {
	user, err := ctl.Auth.UserByID(c.UserContext(), c.Locals("userId").(uint))
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// LoginHistory lists the logins of the session user
func (ctl *Controller) LoginHistory(c *fiber.Ctx) error {
	q := c.Locals("validatedLoginHistory").(*authValidator.LoginHistoryQuery)

	history, err := ctl.Auth.LoginHistory(c.UserContext(), c.Locals("userId").(uint), q.Page, q.Limit)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login History List.", history)
}
