package controller

import (
	"fmt"

	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/master/fees/model"
	helper "erp_backend/internals/helpers"
)

type FeesController struct {
	Types     *base.Endpoint[model.FeesType]
	Groups    *base.Endpoint[model.FeesGroup]
	Masters   *base.Endpoint[model.FeesMaster]
	Discounts *base.Endpoint[model.FeesDiscount]
}

func NewFeesController(deps base.Deps) *FeesController {
	return &FeesController{
		Types: base.New(deps, base.Config[model.FeesType]{
			Name:     "fees_type",
			Required: []string{"name", "fees_code"},
			Search:   []string{"fees_types.name", "fees_types.fees_code"},
			Check: func(tx *gorm.DB, m *model.FeesType) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.FeesType{}, m.ID, "name",
					fmt.Sprintf("Fees type with name '%s' already exists.", m.Name), "name = ?", m.Name)
				base.CheckUnique(tx, errs, &model.FeesType{}, m.ID, "fees_code",
					"fees type with this fees code already exists.", "fees_code = ?", m.FeesCode)
				return errs
			},
		}),
		Groups: base.New(deps, base.Config[model.FeesGroup]{
			Name:     "fees_group",
			Required: []string{"name"},
			Search:   []string{"fees_groups.name"},
			Check: func(tx *gorm.DB, m *model.FeesGroup) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.FeesGroup{}, m.ID, "name",
					fmt.Sprintf("Fees group with name '%s' already exists.", m.Name), "name = ?", m.Name)
				return errs
			},
		}),
		Masters: base.New(deps, base.Config[model.FeesMaster]{
			Name:     "fees_master",
			Required: []string{"fees_group", "fees_type", "due_date", "amount", "fine_type"},
			Search: []string{
				"(SELECT g.name FROM fees_groups g WHERE g.id = fees_masters.fees_group_id)",
				"(SELECT t.name FROM fees_types t WHERE t.id = fees_masters.fees_type_id)",
			},
			Preload: []string{"FeesGroup", "FeesType"},
			Check:   checkFeesMaster,
			Project: func(m *model.FeesMaster) any { return model.NewFeesMasterView(m) },
		}),
		Discounts: base.New(deps, base.Config[model.FeesDiscount]{
			Name:     "fees_discount",
			Required: []string{"name", "discount_code", "discount_type"},
			Search:   []string{"fees_discounts.name", "fees_discounts.discount_code"},
			Check: func(tx *gorm.DB, m *model.FeesDiscount) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.FeesDiscount{}, m.ID, "discount_code",
					fmt.Sprintf("Discount with code '%s' already exists.", m.DiscountCode),
					"discount_code = ?", m.DiscountCode)
				return errs
			},
		}),
	}
}

func checkFeesMaster(tx *gorm.DB, m *model.FeesMaster) helper.FieldErrors {
	errs := helper.FieldErrors{}
	base.CheckExists(tx, errs, "fees_group", &model.FeesGroup{}, m.FeesGroupID)
	base.CheckExists(tx, errs, "fees_type", &model.FeesType{}, m.FeesTypeID)
	if errs.Empty() && m.FeesGroupID != nil && m.FeesTypeID != nil && m.DueDate != nil {
		base.CheckUnique(tx, errs, &model.FeesMaster{}, m.ID, "due_date",
			"A fees master record with this group, type, and due date already exists.",
			"fees_group_id = ? AND fees_type_id = ? AND due_date = ?", *m.FeesGroupID, *m.FeesTypeID, *m.DueDate)
	}
	return errs
}
