package details

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	admissionRoute "erp_backend/internals/features/students/admission/route"
	houseModel "erp_backend/internals/features/students/houses/model"
	houseRoute "erp_backend/internals/features/students/houses/route"
)

// StudentRoutes mounts /api/student/house and the student root; it returns the house
// endpoint for the masters snapshot.
func StudentRoutes(api fiber.Router, deps base.Deps) *base.Endpoint[houseModel.House] {
	student := api.Group("/student")

	// /house is registered before the student /:id routes
	houses := houseRoute.HouseRoutes(student, deps)
	admissionRoute.StudentRoutes(student, deps)

	return houses
}
