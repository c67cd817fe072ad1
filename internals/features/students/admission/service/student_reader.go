package service

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"erp_backend/internals/features/students/admission/model"
)

// Preloads are the relations the flat projection reads.
var Preloads = []string{
	"SchoolClass",
	"Section",
	"Personal",
	"Physical",
	"Physical.House",
	"Transport",
	"Transport.Vehicle",
	"Transport.RoutePoint",
	"Transport.RoutePoint.Route",
	"Transport.RoutePoint.PickupPoint",
	"Hostel",
	"Hostel.Hostel",
	"Hostel.HostelRoom",
	"Hostel.HostelRoom.RoomType",
	"Parent",
	"Guardian",
	"Address",
	"Bank",
	"FeeDetails",
	"Documents",
}

// Flat is the reader projection of one student.
type Flat map[string]json.RawMessage

// LoadStudent reads one student with every relation of the projection.
func LoadStudent(db *gorm.DB, id uint) (*model.StudentAdmission, error) {
	q := db
	for _, rel := range Preloads {
		switch rel {
		case "FeeDetails", "Documents":
			q = q.Preload(rel, func(db *gorm.DB) *gorm.DB { return db.Order("id") })
		default:
			q = q.Preload(rel)
		}
	}
	var s model.StudentAdmission
	if err := q.Where("id = ?", id).Take(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Flatten merges the root, the eight sub-records and the display names into one object.
// Sub-record ids and student back references are left out; a missing sub-record adds no keys.
func Flatten(s *model.StudentAdmission) (Flat, error) {
	out := Flat{}
	if err := mergeJSON(out, s, nil); err != nil {
		return nil, err
	}
	for _, g := range model.SubGroups {
		target := s.Target(g)
		if target == nil {
			continue
		}
		if err := mergeJSON(out, target, model.FieldsOf(g, true)); err != nil {
			return nil, err
		}
	}

	display := displayFields(s)
	for k, v := range display {
		b, err := sonic.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", k)
		}
		out[k] = b
	}

	feeDetails := s.FeeDetails
	if feeDetails == nil {
		feeDetails = []model.StudentFeesDetail{}
	}
	documents := s.Documents
	if documents == nil {
		documents = []model.StudentDocument{}
	}
	var err error
	if out["fee_details"], err = sonic.Marshal(feeDetails); err != nil {
		return nil, errors.Wrap(err, "encode fee_details")
	}
	if out["documents"], err = sonic.Marshal(documents); err != nil {
		return nil, errors.Wrap(err, "encode documents")
	}
	return out, nil
}

// mergeJSON copies keys of v's JSON object into out; all keys when only is nil.
func mergeJSON(out Flat, v any, only []string) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode student")
	}
	var m map[string]json.RawMessage
	if err := sonic.Unmarshal(b, &m); err != nil {
		return errors.Wrap(err, "decode student")
	}
	if only == nil {
		for k, raw := range m {
			out[k] = raw
		}
		return nil
	}
	for _, k := range only {
		if raw, ok := m[k]; ok {
			out[k] = raw
		}
	}
	return nil
}

func displayFields(s *model.StudentAdmission) map[string]any {
	d := map[string]any{
		"school_class_name": nil,
		"section_name":      nil,
		"house_name":        nil,
		"vehicle_name":      nil,
		"pickup_point_name": nil,
		"hostel_name":       nil,
		"hostel_room_no":    nil,
		"hostel_room_type":  nil,
		"route_name":        nil,
		"route_id":          nil,
	}
	if s.SchoolClass != nil {
		d["school_class_name"] = s.SchoolClass.Name
	}
	if s.Section != nil {
		d["section_name"] = s.Section.Name
	}
	if s.Physical != nil && s.Physical.House != nil {
		d["house_name"] = s.Physical.House.Name
	}
	if t := s.Transport; t != nil {
		if t.Vehicle != nil {
			d["vehicle_name"] = t.Vehicle.VehicleNumber
		}
		if rp := t.RoutePoint; rp != nil {
			d["pickup_point_name"] = rp.Label()
			if rp.Route != nil {
				d["route_name"] = rp.Route.Title
				d["route_id"] = rp.Route.ID
			}
		}
	}
	if h := s.Hostel; h != nil {
		if h.Hostel != nil {
			d["hostel_name"] = h.Hostel.Name
		}
		if room := h.HostelRoom; room != nil {
			d["hostel_room_no"] = room.RoomNo
			if room.RoomType != nil {
				d["hostel_room_type"] = room.RoomType.RoomType
			}
		}
	}
	return d
}
