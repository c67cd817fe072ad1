package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	ctrl "erp_backend/internals/features/master/transport/controller"
)

// TransportRoutes mounts /transport/* under r (/api/master).
func TransportRoutes(r fiber.Router, deps base.Deps) *ctrl.TransportController {
	h := ctrl.NewTransportController(deps)

	t := r.Group("/transport")
	h.Routes.Mount(t.Group("/routes"))
	h.Vehicles.Mount(t.Group("/vehicles"))
	h.PickupPoints.Mount(t.Group("/pickup-points"))
	h.RouteVehicles.Mount(t.Group("/route-vehicles"))
	h.RoutePickupPoints.Mount(t.Group("/route-pickup-points"))

	return h
}
