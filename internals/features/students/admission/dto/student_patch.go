package dto

import (
	"encoding/json"
	"reflect"
	"strings"

	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/numeric"
)

// StudentPatch is the writable flat field set of a student PATCH.
// Absent and null fields leave the stored value unchanged.
type StudentPatch struct {
	RollNumber    helper.PatchField[string]      `json:"roll_number"`
	SchoolClass   helper.PatchField[uint]        `json:"school_class"`
	Section       helper.PatchField[uint]        `json:"section"`
	AdmissionDate helper.PatchField[dbtime.Date] `json:"admission_date"`
	CasteCategory helper.PatchField[string]      `json:"caste_category"`

	FirstName    helper.PatchField[string]      `json:"first_name"`
	LastName     helper.PatchField[string]      `json:"last_name"`
	Gender       helper.PatchField[string]      `json:"gender"`
	DateOfBirth  helper.PatchField[dbtime.Date] `json:"date_of_birth"`
	Religion     helper.PatchField[string]      `json:"religion"`
	Caste        helper.PatchField[string]      `json:"caste"`
	MobileNumber helper.PatchField[string]      `json:"mobile_number"`
	Email        helper.PatchField[string]      `json:"email"`
	StudentPhoto helper.PatchField[string]      `json:"student_photo"`

	BloodGroup helper.PatchField[string]        `json:"blood_group"`
	House      helper.PatchField[uint]          `json:"house"`
	Height     helper.PatchField[numeric.Money] `json:"height"`
	Weight     helper.PatchField[numeric.Money] `json:"weight"`

	Vehicle     helper.PatchField[uint] `json:"vehicle"`
	PickupPoint helper.PatchField[uint] `json:"pickup_point"`

	Hostel     helper.PatchField[uint] `json:"hostel"`
	HostelRoom helper.PatchField[uint] `json:"hostel_room"`

	FatherName       helper.PatchField[string] `json:"father_name"`
	FatherPhone      helper.PatchField[string] `json:"father_phone"`
	FatherOccupation helper.PatchField[string] `json:"father_occupation"`
	FatherPhoto      helper.PatchField[string] `json:"father_photo"`
	MotherName       helper.PatchField[string] `json:"mother_name"`
	MotherPhone      helper.PatchField[string] `json:"mother_phone"`
	MotherOccupation helper.PatchField[string] `json:"mother_occupation"`
	MotherPhoto      helper.PatchField[string] `json:"mother_photo"`

	GuardianType       helper.PatchField[string] `json:"guardian_type"`
	GuardianName       helper.PatchField[string] `json:"guardian_name"`
	GuardianRelation   helper.PatchField[string] `json:"guardian_relation"`
	GuardianPhone      helper.PatchField[string] `json:"guardian_phone"`
	GuardianOccupation helper.PatchField[string] `json:"guardian_occupation"`
	GuardianEmail      helper.PatchField[string] `json:"guardian_email"`
	GuardianPhoto      helper.PatchField[string] `json:"guardian_photo"`
	GuardianAddress    helper.PatchField[string] `json:"guardian_address"`

	CurrentAddress                 helper.PatchField[string] `json:"current_address"`
	PermanentAddress               helper.PatchField[string] `json:"permanent_address"`
	IsGuardianAddressSameAsCurrent helper.PatchField[bool]   `json:"is_guardian_address_same_as_current"`
	IsPermanentSameAsCurrent       helper.PatchField[bool]   `json:"is_permanent_same_as_current"`

	BankAccountNumber  helper.PatchField[string] `json:"bank_account_number"`
	BankName           helper.PatchField[string] `json:"bank_name"`
	IfscCode           helper.PatchField[string] `json:"ifsc_code"`
	NationalID         helper.PatchField[string] `json:"national_id"`
	LocalID            helper.PatchField[string] `json:"local_id"`
	Rte                helper.PatchField[string] `json:"rte"`
	PreviousSchoolNote helper.PatchField[string] `json:"previous_school_note"`
	Note               helper.PatchField[string] `json:"note"`
}

type settable interface {
	Set() bool
}

// DecodeStudentPatch decodes p into a StudentPatch; type errors are keyed by field.
func DecodeStudentPatch(p helper.Payload) (StudentPatch, helper.FieldErrors) {
	var out StudentPatch
	errs := helper.ApplyPayload(&out, p)
	return out, errs
}

// Supplied re-encodes every non-null field as a payload, dropping absent and null ones.
func (sp *StudentPatch) Supplied() helper.Payload {
	out := helper.Payload{}
	rv := reflect.ValueOf(sp).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := strings.SplitN(rt.Field(i).Tag.Get("json"), ",", 2)[0]
		fv := rv.Field(i).Interface()
		s, ok := fv.(settable)
		if !ok || !s.Set() {
			continue
		}
		b, err := json.Marshal(fv)
		if err != nil {
			continue
		}
		out[name] = b
	}
	return out
}

// FieldNames lists the json names of StudentPatch.
func FieldNames() []string {
	rt := reflect.TypeOf(StudentPatch{})
	out := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		out = append(out, strings.SplitN(rt.Field(i).Tag.Get("json"), ",", 2)[0])
	}
	return out
}
