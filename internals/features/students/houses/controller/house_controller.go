package controller

import (
	"fmt"

	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/students/houses/model"
	helper "erp_backend/internals/helpers"
)

func NewHouseEndpoint(deps base.Deps) *base.Endpoint[model.House] {
	return base.New(deps, base.Config[model.House]{
		Name:     "house",
		Required: []string{"name"},
		Search:   []string{"houses.name"},
		Check: func(tx *gorm.DB, m *model.House) helper.FieldErrors {
			errs := helper.FieldErrors{}
			base.CheckUnique(tx, errs, &model.House{}, m.ID, "name",
				fmt.Sprintf("House with name '%s' already exists.", m.Name), "name = ?", m.Name)
			return errs
		},
	})
}
