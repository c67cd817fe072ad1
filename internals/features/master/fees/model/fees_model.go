package model

import (
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/numeric"
)

const (
	FineNone       = "None"
	FinePercentage = "Percentage"
	FineFix        = "Fix"
)

type FeesType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"max=100"`
	FeesCode    string `gorm:"size:50;not null;uniqueIndex" json:"fees_code" validate:"max=50"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

func (FeesType) TableName() string { return "fees_types" }

func (t *FeesType) SetDefaults() { t.IsActive = true }

type FeesGroup struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"max=100"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

func (FeesGroup) TableName() string { return "fees_groups" }

func (g *FeesGroup) SetDefaults() { g.IsActive = true }

// FeesMaster is a fee template: (group, type, due date) with an amount and a fine rule.
type FeesMaster struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FeesGroupID *uint          `gorm:"column:fees_group_id;not null;uniqueIndex:uq_fees_master_group_type_due" json:"fees_group"`
	FeesGroup   *FeesGroup     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FeesTypeID  *uint          `gorm:"column:fees_type_id;not null;uniqueIndex:uq_fees_master_group_type_due" json:"fees_type"`
	FeesType    *FeesType      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DueDate     *dbtime.Date   `gorm:"type:date;not null;uniqueIndex:uq_fees_master_group_type_due" json:"due_date"`
	Amount      numeric.Money  `gorm:"not null" json:"amount"`
	FineType    string         `gorm:"size:20;not null;default:'None'" json:"fine_type" validate:"oneof=None Percentage Fix"`
	Percentage  *numeric.Money `json:"percentage"`
	FixAmount   *numeric.Money `json:"fix_amount"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
}

func (FeesMaster) TableName() string { return "fees_masters" }

func (m *FeesMaster) SetDefaults() {
	m.FineType = FineNone
	m.IsActive = true
}

type FeesDiscount struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name" validate:"max=100"`
	DiscountCode string         `gorm:"size:50;not null;uniqueIndex" json:"discount_code" validate:"max=50"`
	DiscountType string         `gorm:"size:20;not null" json:"discount_type" validate:"oneof=Percentage Fix"`
	Percentage   *numeric.Money `json:"percentage"`
	Amount       *numeric.Money `json:"amount"`
	Description  string         `gorm:"type:text;not null;default:''" json:"description"`
	IsActive     bool           `gorm:"not null" json:"is_active"`
}

func (FeesDiscount) TableName() string { return "fees_discounts" }

func (d *FeesDiscount) SetDefaults() { d.IsActive = true }

// FeesMasterView adds group and type names to a template.
type FeesMasterView struct {
	FeesMaster
	FeesGroupName *string `json:"fees_group_name"`
	FeesTypeName  *string `json:"fees_type_name"`
}

func NewFeesMasterView(m *FeesMaster) FeesMasterView {
	v := FeesMasterView{FeesMaster: *m}
	if m.FeesGroup != nil {
		v.FeesGroupName = &m.FeesGroup.Name
	}
	if m.FeesType != nil {
		v.FeesTypeName = &m.FeesType.Name
	}
	return v
}
