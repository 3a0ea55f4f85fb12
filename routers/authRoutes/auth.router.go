package authRoutes

import (
	authControllers "lms/controllers/auth"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes mounts login on app and account management on admin,
// which must already be guarded for staff.
func SetupAuthRoutes(app *fiber.App, admin fiber.Router, ctl *authControllers.Controller, jwt fiber.Handler) {
	authGroup := app.Group("/auth")
	authGroup.Post("/login", authValidators.Login(), ctl.Login)
	authGroup.Get("/me", jwt, ctl.Me)
	authGroup.Get("/login/history", jwt, authValidators.LoginHistoryList(), ctl.LoginHistory)

	admin.Post("/users", authValidators.CreateUser(), ctl.CreateUser)
}
