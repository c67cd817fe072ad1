package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	ctrl "erp_backend/internals/features/master/academics/controller"
)

// AcademicsRoutes mounts classes, sections, castes and sessions under r (/api/master).
func AcademicsRoutes(r fiber.Router, deps base.Deps) *ctrl.AcademicsController {
	h := ctrl.NewAcademicsController(deps)

	h.Classes.Mount(r.Group("/classes"))
	h.Sections.Mount(r.Group("/sections"))
	h.Castes.Mount(r.Group("/castes"))
	h.Sessions.Mount(r.Group("/sessions"))

	return h
}
