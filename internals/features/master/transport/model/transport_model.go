package model

import (
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/numeric"
)

type Route struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null;uniqueIndex" json:"title" validate:"max=255"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (Route) TableName() string { return "routes" }

func (r *Route) SetDefaults() { r.IsActive = true }

type Vehicle struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	VehicleNumber      string  `gorm:"size:50;not null;uniqueIndex" json:"vehicle_number" validate:"max=50"`
	VehicleModel       string  `gorm:"size:100;not null" json:"vehicle_model" validate:"max=100"`
	YearMade           int     `gorm:"not null;default:0" json:"year_made" validate:"gte=0"`
	RegistrationNumber string  `gorm:"size:100;not null;default:''" json:"registration_number" validate:"max=100"`
	ChasisNumber       string  `gorm:"size:100;not null;default:''" json:"chasis_number" validate:"max=100"`
	MaxSeatingCapacity int     `gorm:"not null;default:0" json:"max_seating_capacity" validate:"gte=0"`
	DriverName         string  `gorm:"size:255;not null;default:''" json:"driver_name" validate:"max=255"`
	DriverLicence      string  `gorm:"size:100;not null;default:''" json:"driver_licence" validate:"max=100"`
	DriverContactNo    string  `gorm:"size:15;not null;default:''" json:"driver_contact_no" validate:"max=15"`
	VehiclePhoto       *string `gorm:"size:255" json:"vehicle_photo"`
	Note               *string `gorm:"type:text" json:"note"`
	IsActive           bool    `gorm:"not null" json:"is_active"`
}

func (Vehicle) TableName() string { return "vehicles" }

func (v *Vehicle) SetDefaults() { v.IsActive = true }

type PickupPoint struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	PickupPoint string        `gorm:"size:255;not null;uniqueIndex" json:"pickup_point" validate:"max=255"`
	Latitude    numeric.Coord `gorm:"not null" json:"latitude"`
	Longitude   numeric.Coord `gorm:"not null" json:"longitude"`
	IsActive    bool          `gorm:"not null" json:"is_active"`
}

func (PickupPoint) TableName() string { return "pickup_points" }

func (p *PickupPoint) SetDefaults() { p.IsActive = true }

// RouteVehicle attaches a set of vehicles to a route.
// VehicleIDs is the write side of the association; nil leaves it untouched.
type RouteVehicle struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RouteID    *uint     `gorm:"column:route_id;not null;index" json:"route"`
	Route      *Route    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Vehicles   []Vehicle `gorm:"many2many:route_vehicle_vehicles;constraint:OnDelete:CASCADE" json:"-"`
	VehicleIDs []uint    `gorm:"-" json:"vehicles"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
}

func (RouteVehicle) TableName() string { return "route_vehicles" }

func (rv *RouteVehicle) SetDefaults() { rv.IsActive = true }

type RoutePickupPoint struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	RouteID       *uint         `gorm:"column:route_id;not null;index" json:"route"`
	Route         *Route        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PickupPointID *uint         `gorm:"column:pickup_point_id;not null;index" json:"pickup_point"`
	PickupPoint   *PickupPoint  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Distance      numeric.Money `gorm:"type:numeric(6,2);not null" json:"distance"`
	PickupTime    *dbtime.Tod   `gorm:"type:time;not null" json:"pickup_time"`
	MonthlyFees   numeric.Money `gorm:"not null" json:"monthly_fees"`
	IsActive      bool          `gorm:"not null" json:"is_active"`
}

func (RoutePickupPoint) TableName() string { return "route_pickup_points" }

func (rp *RoutePickupPoint) SetDefaults() { rp.IsActive = true }

// Label is "{route title} - {pickup point}", used by the student reader.
func (rp *RoutePickupPoint) Label() string {
	title, point := "", ""
	if rp.Route != nil {
		title = rp.Route.Title
	}
	if rp.PickupPoint != nil {
		point = rp.PickupPoint.PickupPoint
	}
	return title + " - " + point
}

/* ===============================
   Read projections
=================================*/

type RouteVehicleView struct {
	RouteVehicle
	RouteTitle   *string   `json:"route_title"`
	VehiclesData []Vehicle `json:"vehicles_data"`
}

func NewRouteVehicleView(m *RouteVehicle) RouteVehicleView {
	v := RouteVehicleView{RouteVehicle: *m, VehiclesData: m.Vehicles}
	if v.VehiclesData == nil {
		v.VehiclesData = []Vehicle{}
	}
	v.VehicleIDs = make([]uint, 0, len(m.Vehicles))
	for _, veh := range m.Vehicles {
		v.VehicleIDs = append(v.VehicleIDs, veh.ID)
	}
	if m.Route != nil {
		v.RouteTitle = &m.Route.Title
	}
	return v
}

type RoutePickupPointView struct {
	RoutePickupPoint
	RouteTitle      *string `json:"route_title"`
	PickupPointName *string `json:"pickup_point_name"`
}

func NewRoutePickupPointView(m *RoutePickupPoint) RoutePickupPointView {
	v := RoutePickupPointView{RoutePickupPoint: *m}
	if m.Route != nil {
		v.RouteTitle = &m.Route.Title
	}
	if m.PickupPoint != nil {
		v.PickupPointName = &m.PickupPoint.PickupPoint
	}
	return v
}
