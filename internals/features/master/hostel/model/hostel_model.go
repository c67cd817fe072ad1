package model

import "erp_backend/internals/helpers/numeric"

type RoomType struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	RoomType    string  `gorm:"size:100;not null;uniqueIndex" json:"room_type" validate:"max=100"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"not null" json:"is_active"`
}

func (RoomType) TableName() string { return "room_types" }

func (r *RoomType) SetDefaults() { r.IsActive = true }

type Hostel struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name" validate:"max=255"`
	HostelType  string  `gorm:"size:10;not null" json:"hostel_type" validate:"oneof=Girls Boys Combine"`
	Address     string  `gorm:"type:text;not null" json:"address"`
	Intake      int     `gorm:"not null" json:"intake" validate:"gte=0"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"not null" json:"is_active"`
}

func (Hostel) TableName() string { return "hostels" }

func (h *Hostel) SetDefaults() { h.IsActive = true }

// HostelRoom belongs to a hostel (cascade) and a room type (restrict).
type HostelRoom struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RoomNo       string        `gorm:"size:50;not null;uniqueIndex:uq_hostel_rooms_no_hostel" json:"room_no" validate:"max=50"`
	HostelID     *uint         `gorm:"column:hostel_id;not null;uniqueIndex:uq_hostel_rooms_no_hostel" json:"hostel"`
	Hostel       *Hostel       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RoomTypeID   *uint         `gorm:"column:room_type_id;not null;index" json:"room_type"`
	RoomType     *RoomType     `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	NumberOfBeds int           `gorm:"not null" json:"number_of_beds" validate:"gte=0"`
	CostPerBed   numeric.Money `gorm:"type:numeric(8,2);not null" json:"cost_per_bed"`
	Description  *string       `gorm:"type:text" json:"description"`
	IsActive     bool          `gorm:"not null" json:"is_active"`
}

func (HostelRoom) TableName() string { return "hostel_rooms" }

func (r *HostelRoom) SetDefaults() { r.IsActive = true }

type HostelRoomView struct {
	HostelRoom
	HostelName   *string `json:"hostel_name"`
	RoomTypeName *string `json:"room_type_name"`
}

func NewHostelRoomView(m *HostelRoom) HostelRoomView {
	v := HostelRoomView{HostelRoom: *m}
	if m.Hostel != nil {
		v.HostelName = &m.Hostel.Name
	}
	if m.RoomType != nil {
		v.RoomTypeName = &m.RoomType.RoomType
	}
	return v
}
