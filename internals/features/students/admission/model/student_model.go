package model

import (
	academics "erp_backend/internals/features/master/academics/model"
	hostel "erp_backend/internals/features/master/hostel/model"
	transport "erp_backend/internals/features/master/transport/model"
	houses "erp_backend/internals/features/students/houses/model"
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/numeric"
)

const (
	GuardianTypeDefault = "Other"
	RteDefault          = "No"
)

// StudentAdmission is the root of the composite student record.
type StudentAdmission struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	RollNumber      string                 `gorm:"size:20;not null;uniqueIndex" json:"roll_number" validate:"max=20"`
	SchoolClassID   *uint                  `gorm:"column:school_class_id;not null;index" json:"school_class"`
	SchoolClass     *academics.SchoolClass `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	SectionID       *uint                  `gorm:"column:section_id;not null;index" json:"section"`
	Section         *academics.Section     `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	AdmissionDate   dbtime.Date            `gorm:"type:date;not null" json:"admission_date"`
	CasteCategory   *string                `gorm:"size:222" json:"caste_category" validate:"omitempty,max=222"`
	FeesTotalAmount numeric.Money          `gorm:"not null" json:"fees_total_amount"`

	Personal  *StudentPersonalDetail  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Physical  *StudentPhysicalDetail  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Transport *StudentTransportDetail `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Hostel    *StudentHostelDetail    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Parent    *StudentParentDetail    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Guardian  *StudentGuardianDetail  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Address   *StudentAddressDetail   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Bank      *StudentBankDetail      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`

	FeeDetails []StudentFeesDetail `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Documents  []StudentDocument   `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (StudentAdmission) TableName() string { return "student_admissions" }

type StudentPersonalDetail struct {
	ID           uint         `gorm:"primaryKey" json:"-"`
	StudentID    uint         `gorm:"not null;uniqueIndex" json:"-"`
	FirstName    string       `gorm:"size:100;not null;default:''" json:"first_name" validate:"max=100"`
	LastName     string       `gorm:"size:100;not null;default:''" json:"last_name" validate:"max=100"`
	Gender       string       `gorm:"size:10;not null;default:''" json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth  *dbtime.Date `gorm:"type:date" json:"date_of_birth"`
	Religion     string       `gorm:"size:100" json:"religion" validate:"max=100"`
	Caste        string       `gorm:"size:100" json:"caste" validate:"max=100"`
	MobileNumber string       `gorm:"size:15" json:"mobile_number" validate:"max=15"`
	Email        string       `gorm:"size:254" json:"email" validate:"omitempty,email"`
	StudentPhoto string       `gorm:"size:255" json:"student_photo"`
}

func (StudentPersonalDetail) TableName() string { return "student_personal_details" }

type StudentPhysicalDetail struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	StudentID       uint           `gorm:"not null;uniqueIndex" json:"-"`
	BloodGroup      *string        `gorm:"size:5" json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	HouseID         *uint          `gorm:"column:house_id;index" json:"house"`
	House           *houses.House  `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Height          *numeric.Money `gorm:"type:numeric(5,2)" json:"height"`
	Weight          *numeric.Money `gorm:"type:numeric(5,2)" json:"weight"`
	MeasurementDate dbtime.Date    `gorm:"type:date;not null" json:"measurement_date"`
}

func (StudentPhysicalDetail) TableName() string { return "student_physical_details" }

type StudentTransportDetail struct {
	ID           uint                        `gorm:"primaryKey" json:"-"`
	StudentID    uint                        `gorm:"not null;uniqueIndex" json:"-"`
	VehicleID    *uint                       `gorm:"column:vehicle_id;index" json:"vehicle"`
	Vehicle      *transport.Vehicle          `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	// RoutePointID names a route_pickup_points row, not a bare pickup point.
	RoutePointID *uint                       `gorm:"column:pickup_point_id;index" json:"pickup_point"`
	RoutePoint   *transport.RoutePickupPoint `gorm:"foreignKey:RoutePointID;references:ID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	FeesMonth    *string                     `gorm:"size:2" json:"fees_month" validate:"omitempty,oneof=1 2 3 4 5 6 7 8 9 10 11 12"`
}

func (StudentTransportDetail) TableName() string { return "student_transport_details" }

type StudentHostelDetail struct {
	ID             uint               `gorm:"primaryKey" json:"-"`
	StudentID      uint               `gorm:"not null;uniqueIndex" json:"-"`
	HostelID       *uint              `gorm:"column:hostel_id;index" json:"hostel"`
	Hostel         *hostel.Hostel     `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	HostelRoomID   *uint              `gorm:"column:hostel_room_id;index" json:"hostel_room"`
	HostelRoom     *hostel.HostelRoom `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	BedNumber      *string            `gorm:"size:10" json:"bed_number"`
	AllocationDate dbtime.Date        `gorm:"type:date;not null" json:"allocation_date"`
	CostPerBed     numeric.Money      `gorm:"not null" json:"cost_per_bed"`
}

func (StudentHostelDetail) TableName() string { return "student_hostel_details" }

type StudentParentDetail struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	StudentID        uint   `gorm:"not null;uniqueIndex" json:"-"`
	FatherName       string `gorm:"size:100" json:"father_name" validate:"max=100"`
	FatherPhone      string `gorm:"size:15" json:"father_phone" validate:"max=15"`
	FatherOccupation string `gorm:"size:100" json:"father_occupation" validate:"max=100"`
	FatherPhoto      string `gorm:"size:255" json:"father_photo"`
	MotherName       string `gorm:"size:100" json:"mother_name" validate:"max=100"`
	MotherPhone      string `gorm:"size:15" json:"mother_phone" validate:"max=15"`
	MotherOccupation string `gorm:"size:100" json:"mother_occupation" validate:"max=100"`
	MotherPhoto      string `gorm:"size:255" json:"mother_photo"`
}

func (StudentParentDetail) TableName() string { return "student_parent_details" }

type StudentGuardianDetail struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	StudentID          uint   `gorm:"not null;uniqueIndex" json:"-"`
	GuardianType       string `gorm:"size:10;not null" json:"guardian_type" validate:"oneof=Father Mother Other"`
	GuardianName       string `gorm:"size:100" json:"guardian_name" validate:"max=100"`
	GuardianRelation   string `gorm:"size:50" json:"guardian_relation" validate:"max=50"`
	GuardianPhone      string `gorm:"size:15" json:"guardian_phone" validate:"max=15"`
	GuardianOccupation string `gorm:"size:100" json:"guardian_occupation" validate:"max=100"`
	GuardianEmail      string `gorm:"size:254" json:"guardian_email" validate:"omitempty,email"`
	GuardianPhoto      string `gorm:"size:255" json:"guardian_photo"`
	GuardianAddress    string `gorm:"type:text" json:"guardian_address"`
}

func (StudentGuardianDetail) TableName() string { return "student_guardian_details" }

type StudentAddressDetail struct {
	ID                             uint   `gorm:"primaryKey" json:"-"`
	StudentID                      uint   `gorm:"not null;uniqueIndex" json:"-"`
	CurrentAddress                 string `gorm:"type:text" json:"current_address"`
	PermanentAddress               string `gorm:"type:text" json:"permanent_address"`
	IsGuardianAddressSameAsCurrent bool   `gorm:"not null;default:false" json:"is_guardian_address_same_as_current"`
	IsPermanentSameAsCurrent       bool   `gorm:"not null;default:false" json:"is_permanent_same_as_current"`
}

func (StudentAddressDetail) TableName() string { return "student_address_details" }

type StudentBankDetail struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	StudentID          uint   `gorm:"not null;uniqueIndex" json:"-"`
	BankAccountNumber  string `gorm:"size:30" json:"bank_account_number" validate:"max=30"`
	BankName           string `gorm:"size:100" json:"bank_name" validate:"max=100"`
	IfscCode           string `gorm:"size:20" json:"ifsc_code" validate:"max=20"`
	NationalID         string `gorm:"size:50" json:"national_id" validate:"max=50"`
	LocalID            string `gorm:"size:50" json:"local_id" validate:"max=50"`
	Rte                string `gorm:"size:5;not null" json:"rte" validate:"oneof=Yes No"`
	PreviousSchoolNote string `gorm:"type:text" json:"previous_school_note"`
	Note               string `gorm:"type:text" json:"note"`
}

func (StudentBankDetail) TableName() string { return "student_bank_details" }

// StudentFeesDetail is a student's copy of one fee template.
type StudentFeesDetail struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	StudentID   uint          `gorm:"not null;uniqueIndex:uq_student_fee_group_type" json:"-"`
	FeesGroupID uint          `gorm:"column:fees_group_id;not null;uniqueIndex:uq_student_fee_group_type" json:"fees_group"`
	FeesTypeID  uint          `gorm:"column:fees_type_id;not null;uniqueIndex:uq_student_fee_group_type" json:"fees_type"`
	Amount      numeric.Money `gorm:"not null" json:"amount"`
	Paid        numeric.Money `gorm:"not null" json:"paid"`
	Discount    numeric.Money `gorm:"not null" json:"discount"`
	DueDate     *dbtime.Date  `gorm:"type:date" json:"due_date"`
	Remarks     *string       `gorm:"type:text" json:"remarks"`
}

func (StudentFeesDetail) TableName() string { return "student_fees_details" }

type StudentDocument struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	StudentID uint    `gorm:"not null;index" json:"-"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Document  *string `gorm:"size:255" json:"document"`
}

func (StudentDocument) TableName() string { return "student_documents" }

// NewStudentAdmission returns a root with every sub-record present and create defaults applied.
func NewStudentAdmission() *StudentAdmission {
	today := dbtime.Today()
	return &StudentAdmission{
		AdmissionDate: today,
		Personal:      &StudentPersonalDetail{},
		Physical:      &StudentPhysicalDetail{MeasurementDate: today},
		Transport:     &StudentTransportDetail{},
		Hostel:        &StudentHostelDetail{AllocationDate: today},
		Parent:        &StudentParentDetail{},
		Guardian:      &StudentGuardianDetail{GuardianType: GuardianTypeDefault},
		Address:       &StudentAddressDetail{},
		Bank:          &StudentBankDetail{Rte: RteDefault},
	}
}
