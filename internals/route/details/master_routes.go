package details

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	academicsRoute "erp_backend/internals/features/master/academics/route"
	feesRoute "erp_backend/internals/features/master/fees/route"
	hostelRoute "erp_backend/internals/features/master/hostel/route"
	snapshotRoute "erp_backend/internals/features/master/snapshot/route"
	transportRoute "erp_backend/internals/features/master/transport/route"
	houseModel "erp_backend/internals/features/students/houses/model"
)

// MasterRoutes mounts every reference-data module and the snapshot under /api/master.
// houses is owned by the student tree but is part of the snapshot.
func MasterRoutes(api fiber.Router, deps base.Deps, houses *base.Endpoint[houseModel.House]) {
	master := api.Group("/master")

	academics := academicsRoute.AcademicsRoutes(master, deps)
	fees := feesRoute.FeesRoutes(master, deps)
	transport := transportRoute.TransportRoutes(master, deps)
	hostel := hostelRoute.HostelRoutes(master, deps)

	snapshotRoute.SnapshotRoutes(master, deps, snapshotRoute.Sources{
		Academics: academics,
		Fees:      fees,
		Transport: transport,
		Hostel:    hostel,
		Houses:    houses,
	})
}
