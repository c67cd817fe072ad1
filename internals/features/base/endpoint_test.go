package base_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp_backend/internals/testutil"
)

const classes = "/api/master/classes"

func names(rows []any) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		m, _ := r.(map[string]any)
		s, _ := m["name"].(string)
		out = append(out, s)
	}
	return out
}

func TestCreateAndDuplicate(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.JSON(http.MethodPost, classes+"/create", fiber.Map{"name": "Grade 5"})
	require.Equal(t, fiber.StatusOK, res.Code)
	assert.Equal(t, fiber.StatusCreated, res.Status())
	assert.Equal(t, "Record created successfully.", res.Body["message"])
	assert.Equal(t, "Grade 5", res.Data()["name"])
	assert.Equal(t, false, res.Data()["is_active"])

	res = env.JSON(http.MethodPost, classes+"/create", fiber.Map{"name": "Grade 5"})
	require.Equal(t, fiber.StatusOK, res.Code)
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Equal(t, "Validation failed", res.Body["message"])
	assert.Equal(t, []string{"Class with name 'Grade 5' already exists."}, res.FieldErrors("name"))
}

func TestRequiredBlankMatchesOmitted(t *testing.T) {
	env := testutil.NewEnv(t)

	for _, body := range []fiber.Map{{}, {"name": nil}, {"name": "   "}} {
		res := env.JSON(http.MethodPost, classes+"/create", body)
		assert.Equal(t, fiber.StatusBadRequest, res.Status())
		assert.Equal(t, []string{"This field is required and cannot be blank."}, res.FieldErrors("name"))
	}
}

func TestListPagination(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, n := range []string{"Grade 1", "Grade 2", "Grade 3"} {
		env.Create(classes, fiber.Map{"name": n})
	}

	res := env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 2, "pageSize": 1})
	assert.Equal(t, fiber.StatusOK, res.Status())
	assert.EqualValues(t, 3, res.Body["count"])
	assert.EqualValues(t, 2, res.Body["page"])
	assert.EqualValues(t, 1, res.Body["pageSize"])
	assert.EqualValues(t, 3, res.Body["no_of_pages"])
	assert.Equal(t, []string{"Grade 2"}, names(res.List()))

	// past the end
	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 9, "pageSize": 1})
	assert.EqualValues(t, 3, res.Body["count"])
	assert.Empty(t, res.List())
}

func TestListSortAndClamp(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, n := range []string{"B", "C", "A"} {
		env.Create(classes, fiber.Map{"name": n})
	}

	res := env.JSON(http.MethodPost, classes+"/", fiber.Map{"order_by_field": "name", "order_by_value": "asc", "pageSize": 500})
	assert.Equal(t, []string{"A", "B", "C"}, names(res.List()))
	assert.EqualValues(t, 100, res.Body["pageSize"])

	// unknown field falls back to id, descending by default
	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"order_by_field": "nope"})
	assert.Equal(t, []string{"A", "C", "B"}, names(res.List()))
}

func TestListEmptyShortCircuit(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Create(classes, fiber.Map{"name": "Grade 1"})

	res := env.JSON(http.MethodPost, classes+"/", fiber.Map{"search_text": "zzz"})
	assert.Equal(t, fiber.StatusOK, res.Status())
	assert.EqualValues(t, 0, res.Body["count"])
	assert.EqualValues(t, 0, res.Body["no_of_pages"])
	assert.NotNil(t, res.Body["data"])
	assert.Empty(t, res.List())
}

func TestSearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, n := range []string{"Batch 100%", "Batch 1000", "Other"} {
		env.Create(classes, fiber.Map{"name": n})
	}

	res := env.JSON(http.MethodPost, classes+"/", fiber.Map{"search_text": "batch"})
	assert.EqualValues(t, 2, res.Body["count"])

	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"search_text": "100%"})
	assert.Equal(t, []string{"Batch 100%"}, names(res.List()))
}

func TestSearchMatchesAnyField(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Create("/api/master/transport/vehicles", fiber.Map{"vehicle_number": "KA-01", "vehicle_model": "Tata Starbus"})
	env.Create("/api/master/transport/vehicles", fiber.Map{"vehicle_number": "KA-02", "vehicle_model": "Eicher"})

	res := env.JSON(http.MethodPost, "/api/master/transport/vehicles/", fiber.Map{"search_text": "starbus"})
	require.Len(t, res.List(), 1)
	assert.Equal(t, "KA-01", res.List()[0].(map[string]any)["vehicle_number"])
}

func TestPageResetsWhenPageSizeChanges(t *testing.T) {
	env := testutil.NewEnv(t)
	for _, n := range []string{"G1", "G2", "G3", "G4", "G5", "G6"} {
		env.Create(classes, fiber.Map{"name": n})
	}

	res := env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 1, "pageSize": 2})
	assert.EqualValues(t, 1, res.Body["page"])

	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 2, "pageSize": 2})
	assert.EqualValues(t, 2, res.Body["page"])

	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 2, "pageSize": 3})
	assert.EqualValues(t, 1, res.Body["page"])
	assert.Equal(t, []string{"G6", "G5", "G4"}, names(res.List()))

	res = env.JSON(http.MethodPost, classes+"/", fiber.Map{"page": 2, "pageSize": 3})
	assert.EqualValues(t, 2, res.Body["page"])
}

func TestRetrieveUpdateDestroy(t *testing.T) {
	env := testutil.NewEnv(t)
	id := env.Create(classes, fiber.Map{"name": "Grade 1"})
	other := env.Create(classes, fiber.Map{"name": "Grade 2"})
	path := classes + "/" + itoa(id)

	res := env.JSON(http.MethodGet, path, nil)
	assert.Equal(t, fiber.StatusOK, res.Status())
	assert.Equal(t, "Grade 1", res.Data()["name"])

	// full update checks required fields
	res = env.JSON(http.MethodPut, path, fiber.Map{"is_active": true})
	assert.Equal(t, []string{"This field is required and cannot be blank."}, res.FieldErrors("name"))

	// partial update skips absent fields
	res = env.JSON(http.MethodPatch, path, fiber.Map{"is_active": true})
	assert.Equal(t, fiber.StatusOK, res.Status())
	assert.Equal(t, "Record updated successfully.", res.Body["message"])
	assert.Equal(t, "Grade 1", res.Data()["name"])
	assert.Equal(t, true, res.Data()["is_active"])

	// saving its own name again is not a duplicate
	res = env.JSON(http.MethodPut, path, fiber.Map{"name": "Grade 1", "is_active": false})
	assert.Equal(t, fiber.StatusOK, res.Status())

	res = env.JSON(http.MethodPatch, classes+"/"+itoa(other), fiber.Map{"name": "Grade 1"})
	assert.Equal(t, []string{"Class with name 'Grade 1' already exists."}, res.FieldErrors("name"))

	res = env.JSON(http.MethodDelete, path, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status())
	assert.Equal(t, "Record deleted successfully.", res.Body["message"])

	res = env.JSON(http.MethodGet, path, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status())
	assert.Equal(t, "Record not found.", res.Body["message"])

	res = env.JSON(http.MethodPatch, path, fiber.Map{"name": "x"})
	assert.Equal(t, fiber.StatusNotFound, res.Status())
}

func TestListAll(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Create(classes, fiber.Map{"name": "Grade 1"})
	env.Create(classes, fiber.Map{"name": "Grade 2"})

	res := env.JSON(http.MethodGet, classes+"/all", nil)
	assert.Equal(t, fiber.StatusOK, res.Status())
	assert.EqualValues(t, 2, res.Body["count"])
	assert.Equal(t, []string{"Grade 1", "Grade 2"}, names(res.List()))
}

func TestTypeErrorsAreAggregated(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.JSON(http.MethodPost, "/api/master/hostel/hostels/create", fiber.Map{
		"name":        "North",
		"hostel_type": "Mixed",
		"address":     "Main road",
		"intake":      "many",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Equal(t, []string{"A valid integer is required."}, res.FieldErrors("intake"))
	assert.Equal(t, []string{`"Mixed" is not a valid choice.`}, res.FieldErrors("hostel_type"))
}

func TestMalformedBody(t *testing.T) {
	env := testutil.NewEnv(t)
	req := httptest.NewRequest(http.MethodPost, classes+"/create", stringsReader(`{"name":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	res := env.Do(req)
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Len(t, res.FieldErrors("detail"), 1)
}
