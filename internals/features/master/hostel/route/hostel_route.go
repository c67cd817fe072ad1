package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	ctrl "erp_backend/internals/features/master/hostel/controller"
)

// HostelRoutes mounts /hostel/{room-types,hostels,rooms} under r (/api/master).
func HostelRoutes(r fiber.Router, deps base.Deps) *ctrl.HostelController {
	h := ctrl.NewHostelController(deps)

	g := r.Group("/hostel")
	h.RoomTypes.Mount(g.Group("/room-types"))
	h.Hostels.Mount(g.Group("/hostels"))
	h.Rooms.Mount(g.Group("/rooms"))

	return h
}
