package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/students/houses/controller"
	"erp_backend/internals/features/students/houses/model"
)

// HouseRoutes mounts /house under r (/api/student).
func HouseRoutes(r fiber.Router, deps base.Deps) *base.Endpoint[model.House] {
	h := controller.NewHouseEndpoint(deps)
	h.Mount(r.Group("/house"))
	return h
}
