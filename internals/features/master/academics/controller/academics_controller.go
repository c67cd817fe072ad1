// internals/features/master/academics/controller/academics_controller.go
package controller

import (
	"fmt"

	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/master/academics/model"
	helper "erp_backend/internals/helpers"
)

type AcademicsController struct {
	Sessions *base.Endpoint[model.SchoolSession]
	Classes  *base.Endpoint[model.SchoolClass]
	Sections *base.Endpoint[model.Section]
	Castes   *base.Endpoint[model.CasteCategory]
}

func NewAcademicsController(deps base.Deps) *AcademicsController {
	return &AcademicsController{
		Sessions: base.New(deps, base.Config[model.SchoolSession]{
			Name:     "school_session",
			Required: []string{"name"},
			Search:   []string{"school_sessions.name"},
			AllOrder: "start_date DESC",
			Check: func(tx *gorm.DB, m *model.SchoolSession) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.SchoolSession{}, m.ID, "name",
					fmt.Sprintf("Session with name '%s' already exists.", m.Name), "name = ?", m.Name)
				return errs
			},
		}),
		Classes: base.New(deps, base.Config[model.SchoolClass]{
			Name:     "school_class",
			Required: []string{"name"},
			Search:   []string{"school_classes.name"},
			Check: func(tx *gorm.DB, m *model.SchoolClass) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.SchoolClass{}, m.ID, "name",
					fmt.Sprintf("Class with name '%s' already exists.", m.Name), "name = ?", m.Name)
				return errs
			},
		}),
		Sections: base.New(deps, base.Config[model.Section]{
			Name:     "section",
			Required: []string{"name", "class_id"},
			Search:   []string{"sections.name"},
			Preload:  []string{"Class"},
			Check: func(tx *gorm.DB, m *model.Section) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckExists(tx, errs, "class_id", &model.SchoolClass{}, m.ClassID)
				if m.ClassID != nil {
					base.CheckUnique(tx, errs, &model.Section{}, m.ID, "name",
						fmt.Sprintf("A section with the name '%s' already exists in the selected class.", m.Name),
						"name = ? AND class_id = ?", m.Name, *m.ClassID)
				}
				return errs
			},
			Project: func(m *model.Section) any { return model.NewSectionView(m) },
		}),
		Castes: base.New(deps, base.Config[model.CasteCategory]{
			Name:     "caste_category",
			Required: []string{"name"},
			Search:   []string{"caste_categories.name"},
			Check: func(tx *gorm.DB, m *model.CasteCategory) helper.FieldErrors {
				errs := helper.FieldErrors{}
				base.CheckUnique(tx, errs, &model.CasteCategory{}, m.ID, "name",
					fmt.Sprintf("Caste category with name '%s' already exists.", m.Name), "name = ?", m.Name)
				return errs
			},
		}),
	}
}
