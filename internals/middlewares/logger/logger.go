package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"erp_backend/internals/helpers/dbtime"
)

// LoggerMiddleware writes one access line per request, stamped in the school timezone.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   dbtime.Location().String(),
		Format:     "[${time}] ${ip} - ${locals:request_id} ${method} ${path} - ${status} - ${latency}\n",
	})
}
