package controller

import (
	"fmt"

	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/master/transport/model"
	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/oss"
)

const MsgEmptyList = "This list may not be empty."

type TransportController struct {
	Routes            *base.Endpoint[model.Route]
	Vehicles          *base.Endpoint[model.Vehicle]
	PickupPoints      *base.Endpoint[model.PickupPoint]
	RouteVehicles     *base.Endpoint[model.RouteVehicle]
	RoutePickupPoints *base.Endpoint[model.RoutePickupPoint]
}

func NewTransportController(deps base.Deps) *TransportController {
	return &TransportController{
		Routes: base.New(deps, base.Config[model.Route]{
			Name:     "route",
			Required: []string{"title"},
			Search:   []string{"routes.title"},
			Check: func(tx *gorm.DB, m *model.Route) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.Route{}, m.ID, "title",
					fmt.Sprintf("Route with title '%s' already exists.", m.Title), "title = ?", m.Title)
				return errs
			},
		}),
		Vehicles: base.New(deps, base.Config[model.Vehicle]{
			Name:     "vehicle",
			Required: []string{"vehicle_number", "vehicle_model"},
			Search:   []string{"vehicles.vehicle_number", "vehicles.vehicle_model"},
			Check: func(tx *gorm.DB, m *model.Vehicle) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.Vehicle{}, m.ID, "vehicle_number",
					fmt.Sprintf("Vehicle with number '%s' already exists.", m.VehicleNumber),
					"vehicle_number = ?", m.VehicleNumber)
				return errs
			},
			Upload: &base.UploadField{Field: "vehicle_photo", Rule: oss.VehiclePhotoRule},
		}),
		PickupPoints: base.New(deps, base.Config[model.PickupPoint]{
			Name:     "pickup_point",
			Required: []string{"pickup_point", "latitude", "longitude"},
			Search:   []string{"pickup_points.pickup_point"},
			Check: func(tx *gorm.DB, m *model.PickupPoint) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.PickupPoint{}, m.ID, "pickup_point",
					fmt.Sprintf("Pickup point '%s' already exists.", m.PickupPoint),
					"pickup_point = ?", m.PickupPoint)
				return errs
			},
		}),
		RouteVehicles: base.New(deps, base.Config[model.RouteVehicle]{
			Name:     "route_vehicle",
			Required: []string{"route", "vehicles"},
			Search:   []string{"(SELECT r.title FROM routes r WHERE r.id = route_vehicles.route_id)"},
			Preload:  []string{"Route", "Vehicles"},
			Check:    checkRouteVehicle,
			AfterSave: func(tx *gorm.DB, m *model.RouteVehicle) error {
				if m.VehicleIDs == nil {
					return nil
				}
				vehicles := make([]model.Vehicle, 0, len(m.VehicleIDs))
				for _, id := range m.VehicleIDs {
					vehicles = append(vehicles, model.Vehicle{ID: id})
				}
				return tx.Model(m).Omit("Vehicles.*").Association("Vehicles").Replace(vehicles)
			},
			BeforeDelete: func(tx *gorm.DB, m *model.RouteVehicle) error {
				return tx.Model(m).Association("Vehicles").Clear()
			},
			Project: func(m *model.RouteVehicle) any { return model.NewRouteVehicleView(m) },
		}),
		RoutePickupPoints: base.New(deps, base.Config[model.RoutePickupPoint]{
			Name:     "route_pickup_point",
			Required: []string{"route", "pickup_point", "distance", "pickup_time", "monthly_fees"},
			Search: []string{
				"(SELECT r.title FROM routes r WHERE r.id = route_pickup_points.route_id)",
				"(SELECT p.pickup_point FROM pickup_points p WHERE p.id = route_pickup_points.pickup_point_id)",
			},
			Preload: []string{"Route", "PickupPoint"},
			Check: func(tx *gorm.DB, m *model.RoutePickupPoint) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckExists(tx, errs, "route", &model.Route{}, m.RouteID)
				base.CheckExists(tx, errs, "pickup_point", &model.PickupPoint{}, m.PickupPointID)
				return errs
			},
			Project: func(m *model.RoutePickupPoint) any { return model.NewRoutePickupPointView(m) },
		}),
	}
}

func checkRouteVehicle(tx *gorm.DB, m *model.RouteVehicle) helper.FieldErrors {
	errs := helper.FieldErrors{}
	base.CheckExists(tx, errs, "route", &model.Route{}, m.RouteID)

	if m.VehicleIDs == nil {
		return errs
	}
	if len(m.VehicleIDs) == 0 {
		errs.Add("vehicles", MsgEmptyList)
		return errs
	}
	var found []uint
	if err := tx.Model(&model.Vehicle{}).Where("id IN ?", m.VehicleIDs).Pluck("id", &found).Error; err != nil {
		errs.Add("non_field_errors", err.Error())
		return errs
	}
	known := make(map[uint]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	for _, id := range m.VehicleIDs {
		if !known[id] {
			errs.Add("vehicles", base.InvalidPK(id))
			break
		}
	}
	return errs
}
