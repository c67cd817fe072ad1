// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"erp_backend/internals/features/base"
	blacklist "erp_backend/internals/features/users/auth/repository"
	helper "erp_backend/internals/helpers"
	"erp_backend/internals/middlewares/auth"
	routeDetails "erp_backend/internals/route/details"
)

var startTime time.Time

// NewApp builds the fiber app with the sonic codec and the envelope error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
}

// SetupRoutes mounts /health and the authenticated /api tree.
func SetupRoutes(app *fiber.App, deps base.Deps, jwtSecret string) {
	startTime = time.Now()

	BaseRoutes(app, deps.DB)

	log.Info().Msg("setting up /api (JWT)")
	api := app.Group("/api",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:           jwtSecret,
			BlacklistChecker: blacklist.Checker(deps.DB, jwtSecret),
		}),
	)

	log.Info().Msg("mounting student routes")
	houses := routeDetails.StudentRoutes(api, deps)

	log.Info().Msg("mounting master routes")
	routeDetails.MasterRoutes(api, deps, houses)
}
