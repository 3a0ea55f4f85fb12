package progressValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type StartRequest struct {
	SubModulID uint `json:"subModulId" validate:"required"`
}

type UpdateRequest struct {
	SubModulID           uint     `json:"subModulId" validate:"required"`
	WatchTime            *int     `json:"watchTime" validate:"omitempty,gte=0"`
	TotalWatchTime       *int     `json:"totalWatchTime" validate:"omitempty,gte=0"`
	CompletionPercentage *float64 `json:"completionPercentage" validate:"omitempty,gte=0,lte=100"`
}

type CompleteRequest struct {
	SubModulID uint    `json:"subModulId" validate:"required"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
}

// Start validates POST /student-progress/start
func Start() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StartRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedStart", reqData)
		return c.Next()
	}
}

// Update validates PATCH /student-progress/update
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedUpdate", reqData)
		return c.Next()
	}
}

// Complete validates PATCH /student-progress/complete
func Complete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedComplete", reqData)
		return c.Next()
	}
}

// ModuleID validates the :modulId route parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := validators.ParamID(c, "modulId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}
		c.Locals("moduleId", moduleID)
		return c.Next()
	}
}

// SubModuleID validates a sub module id held in the named route parameter
func SubModuleID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subModuleID, ok := validators.ParamID(c, param)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sub module ID!", nil)
		}
		c.Locals("subModuleId", subModuleID)
		return c.Next()
	}
}
