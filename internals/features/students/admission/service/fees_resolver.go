package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	fees "erp_backend/internals/features/master/fees/model"
	"erp_backend/internals/features/students/admission/model"
	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/numeric"
)

const (
	FieldFeeDetails     = "fee_details"
	MsgFeeDetailsFormat = "Invalid fee_details format. Must be a JSON string."
	MsgFeeDetailsUnique = "The fields student, fees_group, fees_type must make a unique set."
)

// ParseFeeGroupIDs reads fee_details: a JSON-encoded list of fee-group ids sent as a string,
// or the list itself. Absent, null and blank mean no groups.
func ParseFeeGroupIDs(p helper.Payload) ([]uint, error) {
	raw, ok := p[FieldFeeDetails]
	if !ok || p.IsNull(FieldFeeDetails) {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, helper.FieldError(FieldFeeDetails, MsgFeeDetailsFormat)
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		raw = []byte(s)
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, helper.FieldError(FieldFeeDetails, MsgFeeDetailsFormat)
	}
	return ids, nil
}

// ActiveTemplates returns the active templates of the given groups whose group and type
// are active too, ordered by group then template id.
func ActiveTemplates(tx *gorm.DB, groupIDs []uint) ([]fees.FeesMaster, error) {
	var rows []fees.FeesMaster
	err := tx.
		Joins("JOIN fees_groups ON fees_groups.id = fees_masters.fees_group_id").
		Joins("JOIN fees_types ON fees_types.id = fees_masters.fees_type_id").
		Where("fees_masters.fees_group_id IN ?", groupIDs).
		Where("fees_masters.is_active = ? AND fees_groups.is_active = ? AND fees_types.is_active = ?", true, true, true).
		Order("fees_masters.fees_group_id, fees_masters.id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "load active fee templates")
	}
	return rows, nil
}

// MaterializeFees replaces the student's line items with one per active template of groupIDs
// and stores their sum as fees_total_amount.
func MaterializeFees(tx *gorm.DB, studentID uint, groupIDs []uint) (numeric.Money, error) {
	if err := tx.Where("student_id = ?", studentID).Delete(&model.StudentFeesDetail{}).Error; err != nil {
		return numeric.Money{}, errors.Wrap(err, "delete fee details")
	}

	templates, err := ActiveTemplates(tx, groupIDs)
	if err != nil {
		return numeric.Money{}, err
	}

	type pair struct{ group, typ uint }
	seen := map[pair]bool{}
	items := make([]model.StudentFeesDetail, 0, len(templates))
	amounts := make([]numeric.Money, 0, len(templates))
	for _, t := range templates {
		k := pair{*t.FeesGroupID, *t.FeesTypeID}
		if seen[k] {
			return numeric.Money{}, helper.FieldError(FieldFeeDetails, MsgFeeDetailsUnique)
		}
		seen[k] = true
		items = append(items, model.StudentFeesDetail{
			StudentID:   studentID,
			FeesGroupID: k.group,
			FeesTypeID:  k.typ,
			Amount:      t.Amount,
			DueDate:     t.DueDate,
		})
		amounts = append(amounts, t.Amount)
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return numeric.Money{}, errors.Wrap(err, "create fee details")
		}
	}

	total := numeric.SumMoney(amounts...)
	if err := tx.Model(&model.StudentAdmission{}).Where("id = ?", studentID).
		Update("fees_total_amount", total).Error; err != nil {
		return numeric.Money{}, errors.Wrap(err, "update fees total")
	}
	return total, nil
}
