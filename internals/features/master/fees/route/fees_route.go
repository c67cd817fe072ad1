package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	ctrl "erp_backend/internals/features/master/fees/controller"
)

// FeesRoutes mounts /fees/{type,group,master,discount} under r (/api/master).
func FeesRoutes(r fiber.Router, deps base.Deps) *ctrl.FeesController {
	h := ctrl.NewFeesController(deps)

	fees := r.Group("/fees")
	h.Types.Mount(fees.Group("/type"))
	h.Groups.Mount(fees.Group("/group"))
	h.Masters.Mount(fees.Group("/master"))
	h.Discounts.Mount(fees.Group("/discount"))

	return h
}
