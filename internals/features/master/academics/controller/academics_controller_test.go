package controller_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"erp_backend/internals/testutil"
)

func TestSectionNeedsExistingClass(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.JSON(http.MethodPost, "/api/master/sections/create", fiber.Map{"name": "A", "class_id": 99})
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Equal(t, []string{`Invalid pk "99" - object does not exist.`}, res.FieldErrors("class_id"))

	res = env.JSON(http.MethodPost, "/api/master/sections/create", fiber.Map{"name": "A"})
	assert.Equal(t, []string{"This field is required and cannot be blank."}, res.FieldErrors("class_id"))
}

func TestSectionUniquePerClass(t *testing.T) {
	env := testutil.NewEnv(t)
	c1 := env.Create("/api/master/classes", fiber.Map{"name": "Grade 1"})
	c2 := env.Create("/api/master/classes", fiber.Map{"name": "Grade 2"})

	res := env.JSON(http.MethodPost, "/api/master/sections/create", fiber.Map{"name": "A", "class_id": c1})
	assert.Equal(t, fiber.StatusCreated, res.Status())
	assert.Equal(t, "Grade 1", res.Data()["class_name"])
	assert.Equal(t, true, res.Data()["is_active"])

	res = env.JSON(http.MethodPost, "/api/master/sections/create", fiber.Map{"name": "A", "class_id": c2})
	assert.Equal(t, fiber.StatusCreated, res.Status())

	res = env.JSON(http.MethodPost, "/api/master/sections/create", fiber.Map{"name": "A", "class_id": c1})
	assert.Equal(t, []string{"A section with the name 'A' already exists in the selected class."}, res.FieldErrors("name"))
}

func TestSessionsAndCastes(t *testing.T) {
	env := testutil.NewEnv(t)

	env.Create("/api/master/sessions", fiber.Map{"name": "2023-24", "start_date": "2023-06-01", "end_date": "2024-03-31"})
	env.Create("/api/master/sessions", fiber.Map{"name": "2024-25", "start_date": "2024-06-01", "end_date": "2025-03-31"})

	res := env.JSON(http.MethodGet, "/api/master/sessions/all", nil)
	rows := res.List()
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "2024-25", rows[0].(map[string]any)["name"])
		assert.Equal(t, "2024-06-01", rows[0].(map[string]any)["start_date"])
	}

	res = env.JSON(http.MethodPost, "/api/master/sessions/create", fiber.Map{"name": "2025-26", "start_date": "01/06/2025"})
	assert.Equal(t, []string{"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}, res.FieldErrors("start_date"))

	id := env.Create("/api/master/castes", fiber.Map{"name": "General", "description": "open"})
	res = env.JSON(http.MethodPost, "/api/master/castes/create", fiber.Map{"name": "General"})
	assert.Equal(t, []string{"Caste category with name 'General' already exists."}, res.FieldErrors("name"))

	res = env.JSON(http.MethodPatch, "/api/master/castes/"+strconv.Itoa(int(id)), fiber.Map{"is_active": false})
	assert.Equal(t, false, res.Data()["is_active"])
	assert.Equal(t, "open", res.Data()["description"])
}
