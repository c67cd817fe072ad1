package model

import "erp_backend/internals/helpers/dbtime"

// Group names the sub-record a flat field is stored in.
type Group string

const (
	GroupRoot      Group = "root"
	GroupPersonal  Group = "personal"
	GroupPhysical  Group = "physical"
	GroupTransport Group = "transport"
	GroupHostel    Group = "hostel"
	GroupParent    Group = "parent"
	GroupGuardian  Group = "guardian"
	GroupAddress   Group = "address"
	GroupBank      Group = "bank"
)

// SubGroups are the eight 1:1 sub-records, in write and read order.
var SubGroups = []Group{
	GroupPersonal, GroupPhysical, GroupTransport, GroupHostel,
	GroupParent, GroupGuardian, GroupAddress, GroupBank,
}

// FlatField maps one flat payload key to its group. The key equals the json name
// of the column in the group's struct. ReadOnly fields are projected but never written.
type FlatField struct {
	Name     string
	Group    Group
	ReadOnly bool
}

var FlatFields = []FlatField{
	{Name: "roll_number", Group: GroupRoot},
	{Name: "school_class", Group: GroupRoot},
	{Name: "section", Group: GroupRoot},
	{Name: "admission_date", Group: GroupRoot},
	{Name: "caste_category", Group: GroupRoot},

	{Name: "first_name", Group: GroupPersonal},
	{Name: "last_name", Group: GroupPersonal},
	{Name: "gender", Group: GroupPersonal},
	{Name: "date_of_birth", Group: GroupPersonal},
	{Name: "religion", Group: GroupPersonal},
	{Name: "caste", Group: GroupPersonal},
	{Name: "mobile_number", Group: GroupPersonal},
	{Name: "email", Group: GroupPersonal},
	{Name: "student_photo", Group: GroupPersonal},

	{Name: "blood_group", Group: GroupPhysical},
	{Name: "house", Group: GroupPhysical},
	{Name: "height", Group: GroupPhysical},
	{Name: "weight", Group: GroupPhysical},
	{Name: "measurement_date", Group: GroupPhysical, ReadOnly: true},

	{Name: "vehicle", Group: GroupTransport},
	{Name: "pickup_point", Group: GroupTransport},
	{Name: "fees_month", Group: GroupTransport, ReadOnly: true},

	{Name: "hostel", Group: GroupHostel},
	{Name: "hostel_room", Group: GroupHostel},
	{Name: "bed_number", Group: GroupHostel, ReadOnly: true},
	{Name: "allocation_date", Group: GroupHostel, ReadOnly: true},
	{Name: "cost_per_bed", Group: GroupHostel, ReadOnly: true},

	{Name: "father_name", Group: GroupParent},
	{Name: "father_phone", Group: GroupParent},
	{Name: "father_occupation", Group: GroupParent},
	{Name: "father_photo", Group: GroupParent},
	{Name: "mother_name", Group: GroupParent},
	{Name: "mother_phone", Group: GroupParent},
	{Name: "mother_occupation", Group: GroupParent},
	{Name: "mother_photo", Group: GroupParent},

	{Name: "guardian_type", Group: GroupGuardian},
	{Name: "guardian_name", Group: GroupGuardian},
	{Name: "guardian_relation", Group: GroupGuardian},
	{Name: "guardian_phone", Group: GroupGuardian},
	{Name: "guardian_occupation", Group: GroupGuardian},
	{Name: "guardian_email", Group: GroupGuardian},
	{Name: "guardian_photo", Group: GroupGuardian},
	{Name: "guardian_address", Group: GroupGuardian},

	{Name: "current_address", Group: GroupAddress},
	{Name: "permanent_address", Group: GroupAddress},
	{Name: "is_guardian_address_same_as_current", Group: GroupAddress},
	{Name: "is_permanent_same_as_current", Group: GroupAddress},

	{Name: "bank_account_number", Group: GroupBank},
	{Name: "bank_name", Group: GroupBank},
	{Name: "ifsc_code", Group: GroupBank},
	{Name: "national_id", Group: GroupBank},
	{Name: "local_id", Group: GroupBank},
	{Name: "rte", Group: GroupBank},
	{Name: "previous_school_note", Group: GroupBank},
	{Name: "note", Group: GroupBank},
}

// PhotoFields are flat fields filled from multipart files.
var PhotoFields = []string{"student_photo", "father_photo", "mother_photo", "guardian_photo"}

// FieldsOf lists the flat fields of g in table order.
func FieldsOf(g Group, withReadOnly bool) []string {
	var out []string
	for _, f := range FlatFields {
		if f.Group == g && (withReadOnly || !f.ReadOnly) {
			out = append(out, f.Name)
		}
	}
	return out
}

// GroupOf returns the group of a flat field.
func GroupOf(name string) (Group, bool) {
	for _, f := range FlatFields {
		if f.Name == name {
			return f.Group, true
		}
	}
	return "", false
}

// Target returns the struct that stores group g of s, or nil when that sub-record is missing.
func (s *StudentAdmission) Target(g Group) any {
	switch g {
	case GroupRoot:
		return s
	case GroupPersonal:
		return nilIfNil(s.Personal)
	case GroupPhysical:
		return nilIfNil(s.Physical)
	case GroupTransport:
		return nilIfNil(s.Transport)
	case GroupHostel:
		return nilIfNil(s.Hostel)
	case GroupParent:
		return nilIfNil(s.Parent)
	case GroupGuardian:
		return nilIfNil(s.Guardian)
	case GroupAddress:
		return nilIfNil(s.Address)
	case GroupBank:
		return nilIfNil(s.Bank)
	}
	return nil
}

// Ensure creates a blank sub-record for g when it is missing and returns it.
func (s *StudentAdmission) Ensure(g Group) any {
	if t := s.Target(g); t != nil {
		return t
	}
	switch g {
	case GroupPersonal:
		s.Personal = &StudentPersonalDetail{StudentID: s.ID}
	case GroupPhysical:
		s.Physical = &StudentPhysicalDetail{StudentID: s.ID, MeasurementDate: dbtime.Today()}
	case GroupTransport:
		s.Transport = &StudentTransportDetail{StudentID: s.ID}
	case GroupHostel:
		s.Hostel = &StudentHostelDetail{StudentID: s.ID, AllocationDate: dbtime.Today()}
	case GroupParent:
		s.Parent = &StudentParentDetail{StudentID: s.ID}
	case GroupGuardian:
		s.Guardian = &StudentGuardianDetail{StudentID: s.ID, GuardianType: GuardianTypeDefault}
	case GroupAddress:
		s.Address = &StudentAddressDetail{StudentID: s.ID}
	case GroupBank:
		s.Bank = &StudentBankDetail{StudentID: s.ID, Rte: RteDefault}
	}
	return s.Target(g)
}

func nilIfNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}
