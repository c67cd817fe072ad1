package service

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"erp_backend/internals/features/students/admission/model"
)

const ExportSheet = "Students"

var exportHeader = []any{
	"id", "roll_number", "first_name", "last_name", "class", "section", "admission_date", "fees_total_amount",
}

// ExportWorkbook writes one row per student (by id) to the Students sheet.
func ExportWorkbook(db *gorm.DB) (*excelize.File, error) {
	var students []model.StudentAdmission
	err := db.Preload("SchoolClass").Preload("Section").Preload("Personal").
		Order("id").Find(&students).Error
	if err != nil {
		return nil, errors.Wrap(err, "load students")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "name sheet")
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write header")
	}

	for i, s := range students {
		row := []any{s.ID, s.RollNumber, "", "", "", "", s.AdmissionDate.String(), s.FeesTotalAmount.String()}
		if s.Personal != nil {
			row[2], row[3] = s.Personal.FirstName, s.Personal.LastName
		}
		if s.SchoolClass != nil {
			row[4] = s.SchoolClass.Name
		}
		if s.Section != nil {
			row[5] = s.Section.Name
		}
		if err := f.SetSheetRow(ExportSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "write row %d", i+2)
		}
	}
	return f, nil
}
