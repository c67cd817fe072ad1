package route

import (
	"github.com/gofiber/fiber/v2"

	"erp_backend/internals/features/base"
	academics "erp_backend/internals/features/master/academics/controller"
	fees "erp_backend/internals/features/master/fees/controller"
	hostel "erp_backend/internals/features/master/hostel/controller"
	"erp_backend/internals/features/master/snapshot/controller"
	transport "erp_backend/internals/features/master/transport/controller"
	houses "erp_backend/internals/features/students/houses/model"
)

// Sources are the endpoints whose projections make up the snapshot.
type Sources struct {
	Academics *academics.AcademicsController
	Fees      *fees.FeesController
	Transport *transport.TransportController
	Hostel    *hostel.HostelController
	Houses    *base.Endpoint[houses.House]
}

// SnapshotRoutes mounts GET /masters/all under r (/api/master).
func SnapshotRoutes(r fiber.Router, deps base.Deps, s Sources) *controller.SnapshotController {
	h := controller.NewSnapshotController(deps,
		controller.Collection{Key: "houses", Source: s.Houses},
		controller.Collection{Key: "fees_types", Source: s.Fees.Types},
		controller.Collection{Key: "fees_groups", Source: s.Fees.Groups},
		controller.Collection{Key: "fees_discounts", Source: s.Fees.Discounts},
		controller.Collection{Key: "room_types", Source: s.Hostel.RoomTypes},
		controller.Collection{Key: "hostels", Source: s.Hostel.Hostels},
		controller.Collection{Key: "hostel_rooms", Source: s.Hostel.Rooms},
		controller.Collection{Key: "routes", Source: s.Transport.Routes},
		controller.Collection{Key: "vehicles", Source: s.Transport.Vehicles},
		controller.Collection{Key: "pickup_points", Source: s.Transport.PickupPoints},
		controller.Collection{Key: "route_vehicles", Source: s.Transport.RouteVehicles},
		controller.Collection{Key: "route_pickup_points", Source: s.Transport.RoutePickupPoints},
		controller.Collection{Key: "classes", Source: s.Academics.Classes},
		controller.Collection{Key: "sections", Source: s.Academics.Sections},
	)

	r.Get("/masters/all", h.GetAllMasters)
	return h
}
