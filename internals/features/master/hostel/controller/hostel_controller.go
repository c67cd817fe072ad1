package controller

import (
	"fmt"

	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/master/hostel/model"
	helper "erp_backend/internals/helpers"
)

type HostelController struct {
	RoomTypes *base.Endpoint[model.RoomType]
	Hostels   *base.Endpoint[model.Hostel]
	Rooms     *base.Endpoint[model.HostelRoom]
}

func NewHostelController(deps base.Deps) *HostelController {
	return &HostelController{
		RoomTypes: base.New(deps, base.Config[model.RoomType]{
			Name:     "room_type",
			Required: []string{"room_type"},
			Search:   []string{"room_types.room_type"},
			Check: func(tx *gorm.DB, m *model.RoomType) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.RoomType{}, m.ID, "room_type",
					fmt.Sprintf("Room type '%s' already exists.", m.RoomType), "room_type = ?", m.RoomType)
				return errs
			},
			BeforeDelete: protectRoomType,
		}),
		Hostels: base.New(deps, base.Config[model.Hostel]{
			Name:     "hostel",
			Required: []string{"name", "hostel_type", "address", "intake"},
			Search:   []string{"hostels.name", "hostels.hostel_type", "hostels.address"},
			Check: func(tx *gorm.DB, m *model.Hostel) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.Hostel{}, m.ID, "name",
					fmt.Sprintf("Hostel with name '%s' already exists.", m.Name), "name = ?", m.Name)
				return errs
			},
		}),
		Rooms: base.New(deps, base.Config[model.HostelRoom]{
			Name:     "hostel_room",
			Required: []string{"room_no", "hostel", "room_type", "number_of_beds", "cost_per_bed"},
			Search: []string{
				"hostel_rooms.room_no",
				"(SELECT h.name FROM hostels h WHERE h.id = hostel_rooms.hostel_id)",
				"(SELECT t.room_type FROM room_types t WHERE t.id = hostel_rooms.room_type_id)",
			},
			Preload: []string{"Hostel", "RoomType"},
			Check:   checkHostelRoom,
			Project: func(m *model.HostelRoom) any { return model.NewHostelRoomView(m) },
		}),
	}
}

func checkHostelRoom(tx *gorm.DB, m *model.HostelRoom) helper.FieldErrors {
	errs := helper.FieldErrors{}
	base.CheckExists(tx, errs, "hostel", &model.Hostel{}, m.HostelID)
	base.CheckExists(tx, errs, "room_type", &model.RoomType{}, m.RoomTypeID)
	if errs.Has("hostel") || m.HostelID == nil {
		return errs
	}

	var hostel model.Hostel
	if err := tx.Select("id", "name").Where("id = ?", *m.HostelID).Take(&hostel).Error; err != nil {
		errs.Add("non_field_errors", err.Error())
		return errs
	}
	base.CheckUnique(tx, errs, &model.HostelRoom{}, m.ID, "room_no",
		fmt.Sprintf("Hostel room with number '%s' already exists in the hostel '%s'.", m.RoomNo, hostel.Name),
		"room_no = ? AND hostel_id = ?", m.RoomNo, *m.HostelID)
	return errs
}

// protectRoomType refuses to delete a room type still referenced by rooms.
func protectRoomType(tx *gorm.DB, m *model.RoomType) error {
	var n int64
	if err := tx.Model(&model.HostelRoom{}).Where("room_type_id = ?", m.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return helper.FieldError("non_field_errors",
			fmt.Sprintf("Cannot delete room type '%s' because %d hostel room(s) still use it.", m.RoomType, n))
	}
	return nil
}
