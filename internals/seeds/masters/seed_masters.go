package masters

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	academics "erp_backend/internals/features/master/academics/model"
	fees "erp_backend/internals/features/master/fees/model"
	hostel "erp_backend/internals/features/master/hostel/model"
	houses "erp_backend/internals/features/students/houses/model"
)

// File is the seed document.
type File struct {
	Classes    []ClassSeed    `json:"classes"`
	Castes     []string       `json:"castes"`
	Houses     []string       `json:"houses"`
	FeesTypes  []FeesTypeSeed `json:"fees_types"`
	FeesGroups []string       `json:"fees_groups"`
	RoomTypes  []string       `json:"room_types"`
}

type ClassSeed struct {
	Name     string   `json:"name"`
	Sections []string `json:"sections"`
}

type FeesTypeSeed struct {
	Name     string `json:"name"`
	FeesCode string `json:"fees_code"`
}

// Seed inserts every missing row of f in one transaction.
func Seed(db *gorm.DB, f File) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range f.Classes {
			class := academics.SchoolClass{}
			if err := tx.Where(academics.SchoolClass{Name: c.Name}).
				Attrs(academics.SchoolClass{IsActive: true}).
				FirstOrCreate(&class).Error; err != nil {
				return errors.Wrapf(err, "seed class %q", c.Name)
			}
			for _, name := range c.Sections {
				sec := academics.Section{}
				if err := tx.Where("name = ? AND class_id = ?", name, class.ID).
					Attrs(academics.Section{Name: name, ClassID: &class.ID, IsActive: true}).
					FirstOrCreate(&sec).Error; err != nil {
					return errors.Wrapf(err, "seed section %q of %q", name, c.Name)
				}
			}
		}
		for _, name := range f.Castes {
			if err := firstOrCreate(tx, &academics.CasteCategory{}, academics.CasteCategory{Name: name, IsActive: true}, "name = ?", name); err != nil {
				return err
			}
		}
		for _, name := range f.Houses {
			if err := firstOrCreate(tx, &houses.House{}, houses.House{Name: name, IsActive: true}, "name = ?", name); err != nil {
				return err
			}
		}
		for _, t := range f.FeesTypes {
			row := fees.FeesType{Name: t.Name, FeesCode: t.FeesCode, IsActive: true}
			if err := firstOrCreate(tx, &fees.FeesType{}, row, "name = ? OR fees_code = ?", t.Name, t.FeesCode); err != nil {
				return err
			}
		}
		for _, name := range f.FeesGroups {
			if err := firstOrCreate(tx, &fees.FeesGroup{}, fees.FeesGroup{Name: name, IsActive: true}, "name = ?", name); err != nil {
				return err
			}
		}
		for _, name := range f.RoomTypes {
			if err := firstOrCreate(tx, &hostel.RoomType{}, hostel.RoomType{RoomType: name, IsActive: true}, "room_type = ?", name); err != nil {
				return err
			}
		}
		return nil
	})
}

func firstOrCreate[M any](tx *gorm.DB, dst *M, attrs M, where string, args ...any) error {
	res := tx.Where(where, args...).Attrs(attrs).FirstOrCreate(dst)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "seed %T", attrs)
	}
	if res.RowsAffected > 0 {
		log.Debug().Str("model", tableOf(tx, dst)).Msg("seeded")
	}
	return nil
}

func tableOf(tx *gorm.DB, m any) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(m); err != nil {
		return ""
	}
	return stmt.Schema.Table
}
