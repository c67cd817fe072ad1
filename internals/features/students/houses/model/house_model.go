package model

type House struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null;uniqueIndex" json:"name" validate:"max=255"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (House) TableName() string { return "houses" }

func (h *House) SetDefaults() { h.IsActive = true }
