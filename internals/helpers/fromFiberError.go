package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"erp_backend/internals/configs"
)

// ErrorHandler is the app-wide fiber.Config.ErrorHandler.
// *fiber.Error keeps its code; anything else is a logged and reported 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			report(c, err)
		}
		return JsonError(c, fe.Code, fe.Message)
	}

	if errs, ok := AsValidationError(err); ok {
		return JsonValidationError(c, errs)
	}

	report(c, err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// FromFiberError renders err inline (inside a handler) the same way ErrorHandler does.
func FromFiberError(c *fiber.Ctx, err error) error {
	return ErrorHandler(c, err)
}

func report(c *fiber.Ctx, err error) {
	reqID, _ := c.Locals("request_id").(string)
	log.Error().
		Err(err).
		Str("request_id", reqID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	configs.ReportError(err, map[string]interface{}{
		"request_id": reqID,
		"method":     c.Method(),
		"path":       c.Path(),
	})
}
