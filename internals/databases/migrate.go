package database

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	academics "erp_backend/internals/features/master/academics/model"
	fees "erp_backend/internals/features/master/fees/model"
	hostel "erp_backend/internals/features/master/hostel/model"
	transport "erp_backend/internals/features/master/transport/model"
	admission "erp_backend/internals/features/students/admission/model"
	houses "erp_backend/internals/features/students/houses/model"
	auth "erp_backend/internals/features/users/auth/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&academics.SchoolSession{},
		&academics.SchoolClass{},
		&academics.Section{},
		&academics.CasteCategory{},

		&fees.FeesType{},
		&fees.FeesGroup{},
		&fees.FeesMaster{},
		&fees.FeesDiscount{},

		&transport.Route{},
		&transport.Vehicle{},
		&transport.PickupPoint{},
		&transport.RouteVehicle{},
		&transport.RoutePickupPoint{},

		&hostel.RoomType{},
		&hostel.Hostel{},
		&hostel.HostelRoom{},

		&houses.House{},

		&admission.StudentAdmission{},
		&admission.StudentPersonalDetail{},
		&admission.StudentPhysicalDetail{},
		&admission.StudentTransportDetail{},
		&admission.StudentHostelDetail{},
		&admission.StudentParentDetail{},
		&admission.StudentGuardianDetail{},
		&admission.StudentAddressDetail{},
		&admission.StudentBankDetail{},
		&admission.StudentFeesDetail{},
		&admission.StudentDocument{},

		&auth.TokenBlacklist{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Info().Int("tables", len(Models())).Msg("running auto-migrate")
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto-migrate")
	}
	return nil
}
