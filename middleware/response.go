package middleware

import (
	"lms/apperror"
	"lms/logger"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// ErrorResponse writes a service error in the common envelope. Internal
// errors only expose their client message.
func ErrorResponse(c *fiber.Ctx, err error) error {
	ae, ok := apperror.As(err)
	if !ok {
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}

	switch ae.Kind {
	case apperror.KindValidation:
		if len(ae.Fields) > 0 {
			return JsonResponse(c, fiber.StatusBadRequest, false, ae.Message, ae.Fields)
		}
		return JsonResponse(c, fiber.StatusBadRequest, false, ae.Message, nil)
	case apperror.KindNotFound:
		return JsonResponse(c, fiber.StatusNotFound, false, ae.Message, nil)
	case apperror.KindUnauthorized:
		return JsonResponse(c, fiber.StatusUnauthorized, false, ae.Message, nil)
	case apperror.KindForbidden:
		return JsonResponse(c, fiber.StatusForbidden, false, ae.Message, nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, ae.Message, nil)
	}
}

// HandleError logs internal failures with the request id and writes err in
// the common envelope.
func HandleError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if apperror.KindOf(err) == apperror.KindInternal {
		log.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestId"),
			"error", err,
		)
	}
	return ErrorResponse(c, err)
}
