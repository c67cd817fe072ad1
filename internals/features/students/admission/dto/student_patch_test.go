package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp_backend/internals/features/students/admission/model"
	helper "erp_backend/internals/helpers"
)

func TestFieldNamesMatchWritableFields(t *testing.T) {
	var writable []string
	for _, f := range model.FlatFields {
		if !f.ReadOnly {
			writable = append(writable, f.Name)
		}
	}
	assert.ElementsMatch(t, writable, FieldNames())
}

func TestSuppliedDropsAbsentAndNull(t *testing.T) {
	var p helper.Payload
	require.NoError(t, json.Unmarshal([]byte(`{
		"first_name": "Asha",
		"last_name": null,
		"school_class": "3",
		"height": "120.5",
		"measurement_date": "2024-01-01",
		"unknown": 1
	}`), &p))

	patch, errs := DecodeStudentPatch(p)
	require.True(t, errs.Empty(), "%v", errs)

	got := patch.Supplied()
	assert.ElementsMatch(t, []string{"first_name", "school_class", "height"}, keys(got))
	assert.JSONEq(t, `"Asha"`, string(got["first_name"]))
	assert.JSONEq(t, `3`, string(got["school_class"]))
	assert.JSONEq(t, `"120.50"`, string(got["height"]))
}

func TestDecodeStudentPatchTypeErrors(t *testing.T) {
	var p helper.Payload
	require.NoError(t, json.Unmarshal([]byte(`{"section": "abc", "date_of_birth": "03/02/2014"}`), &p))

	_, errs := DecodeStudentPatch(p)
	assert.Equal(t, []string{helper.MsgInvalidInteger}, errs["section"])
	assert.Len(t, errs["date_of_birth"], 1)
}

func keys(p helper.Payload) []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	return out
}
