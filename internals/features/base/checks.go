package base

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	helper "erp_backend/internals/helpers"
)

const MsgDuplicate = "A record with these values already exists."

// CheckUnique adds msg on field when another row (id != selfID) matches where.
func CheckUnique(tx *gorm.DB, errs helper.FieldErrors, model any, selfID uint, field, msg, where string, args ...any) {
	var n int64
	q := tx.Model(model).Where(where, args...)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		errs.Add("non_field_errors", err.Error())
		return
	}
	if n > 0 {
		errs.Add(field, msg)
	}
}

// CheckExists adds the "Invalid pk" message when id does not reference a row of model.
// A nil or zero id is left to the required-field rule.
func CheckExists(tx *gorm.DB, errs helper.FieldErrors, field string, model any, id *uint) {
	if id == nil || *id == 0 || errs.Has(field) {
		return
	}
	var n int64
	if err := tx.Model(model).Where("id = ?", *id).Count(&n).Error; err != nil {
		errs.Add("non_field_errors", err.Error())
		return
	}
	if n == 0 {
		errs.Add(field, InvalidPK(*id))
	}
}

func InvalidPK(id any) string {
	return fmt.Sprintf(`Invalid pk "%v" - object does not exist.`, id)
}

// IsDuplicateKey recognises unique violations from postgres and sqlite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// recordID reads the ID field of a model struct.
func recordID(m any) uint {
	rv := reflect.ValueOf(m)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	f := rv.FieldByName("ID")
	if !f.IsValid() {
		return 0
	}
	switch f.Kind() {
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return uint(f.Uint())
	case reflect.Int, reflect.Int32, reflect.Int64:
		return uint(f.Int())
	}
	return 0
}
