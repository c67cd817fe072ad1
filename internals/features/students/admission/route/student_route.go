package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	ctrl "erp_backend/internals/features/students/admission/controller"
	"erp_backend/internals/middlewares"
)

// StudentRoutes mounts the student root under r (/api/student).
func StudentRoutes(r fiber.Router, deps base.Deps) *ctrl.StudentController {
	h := ctrl.NewStudentController(deps)

	r.Post("/", h.Endpoint.HandleList)
	r.Post("/create", h.CreateStudent)
	r.Get("/all", h.Endpoint.HandleAll)
	r.Get("/export", middlewares.ExportRateLimiter(), h.ExportStudents)
	r.Get("/:id<int>", h.Endpoint.HandleRetrieve)
	r.Patch("/:id<int>", h.PatchStudent)
	r.Delete("/:id<int>", h.Endpoint.HandleDestroy)

	return h
}
