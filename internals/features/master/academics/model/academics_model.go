package model

import (
	"erp_backend/internals/helpers/dbtime"
)

type SchoolSession struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"size:50;not null;uniqueIndex" json:"name" validate:"max=50"`
	StartDate *dbtime.Date `gorm:"type:date" json:"start_date"`
	EndDate   *dbtime.Date `gorm:"type:date" json:"end_date"`
	IsActive  bool         `gorm:"not null;default:false" json:"is_active"`
}

func (SchoolSession) TableName() string { return "school_sessions" }

type SchoolClass struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"max=100"`
	IsActive bool   `gorm:"not null;default:false" json:"is_active"`
}

func (SchoolClass) TableName() string { return "school_classes" }

type Section struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"size:100;not null;uniqueIndex:uq_sections_name_class" json:"name" validate:"max=100"`
	ClassID  *uint        `gorm:"column:class_id;not null;uniqueIndex:uq_sections_name_class" json:"class_id"`
	Class    *SchoolClass `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"-"`
	IsActive bool         `gorm:"not null" json:"is_active"`
}

func (Section) TableName() string { return "sections" }

func (s *Section) SetDefaults() { s.IsActive = true }

type CasteCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"max=100"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

func (CasteCategory) TableName() string { return "caste_categories" }

func (c *CasteCategory) SetDefaults() { c.IsActive = true }

// SectionView adds the class name to a section.
type SectionView struct {
	Section
	ClassName *string `json:"class_name"`
}

func NewSectionView(s *Section) SectionView {
	v := SectionView{Section: *s}
	if s.Class != nil {
		v.ClassName = &s.Class.Name
	}
	return v
}
