package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	fees "erp_backend/internals/features/master/fees/model"
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/numeric"
)

type FeesTypeEntry struct {
	FeesTypeID   uint           `json:"fees_type_id"`
	FeesTypeName string         `json:"fees_type_name"`
	FeesCode     string         `json:"fees_code"`
	Description  string         `json:"description"`
	DueDate      *dbtime.Date   `json:"due_date"`
	Amount       numeric.Money  `json:"amount"`
	FineType     string         `json:"fine_type"`
	Percentage   *numeric.Money `json:"percentage"`
	FixAmount    *numeric.Money `json:"fix_amount"`
	IsActive     bool           `json:"is_active"`
}

// FeesGroupEntry is one fee group with its templates.
// Amount is the sum over every template of every group, not just this one.
type FeesGroupEntry struct {
	GroupID     uint            `json:"group_id"`
	GroupName   string          `json:"group_name"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	FeesTypes   []FeesTypeEntry `json:"fees_types"`
	Amount      numeric.Money   `json:"amount"`
}

// FeesMasterGroups lists every fee group (by id) with its templates.
func FeesMasterGroups(db *gorm.DB) ([]FeesGroupEntry, error) {
	var masters []fees.FeesMaster
	if err := db.Preload("FeesType").Order("id").Find(&masters).Error; err != nil {
		return nil, errors.Wrap(err, "load fees masters")
	}

	byGroup := map[uint][]FeesTypeEntry{}
	total := numeric.Money{}
	for _, m := range masters {
		if m.FeesGroupID == nil {
			continue
		}
		e := FeesTypeEntry{
			DueDate:    m.DueDate,
			Amount:     m.Amount,
			FineType:   m.FineType,
			Percentage: m.Percentage,
			FixAmount:  m.FixAmount,
			IsActive:   m.IsActive,
		}
		if m.FeesType != nil {
			e.FeesTypeID = m.FeesType.ID
			e.FeesTypeName = m.FeesType.Name
			e.FeesCode = m.FeesType.FeesCode
			e.Description = m.FeesType.Description
		}
		byGroup[*m.FeesGroupID] = append(byGroup[*m.FeesGroupID], e)
		total = total.Add(m.Amount)
	}

	var groups []fees.FeesGroup
	if err := db.Order("id").Find(&groups).Error; err != nil {
		return nil, errors.Wrap(err, "load fees groups")
	}
	out := make([]FeesGroupEntry, 0, len(groups))
	for _, g := range groups {
		types := byGroup[g.ID]
		if types == nil {
			types = []FeesTypeEntry{}
		}
		out = append(out, FeesGroupEntry{
			GroupID:     g.ID,
			GroupName:   g.Name,
			Description: g.Description,
			IsActive:    g.IsActive,
			FeesTypes:   types,
			Amount:      total,
		})
	}
	return out, nil
}
