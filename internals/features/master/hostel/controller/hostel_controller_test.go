package controller_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"erp_backend/internals/testutil"
)

func TestHostelRooms(t *testing.T) {
	env := testutil.NewEnv(t)
	rt := env.Create("/api/master/hostel/room-types", fiber.Map{"room_type": "Dorm"})
	h := env.Create("/api/master/hostel/hostels", fiber.Map{
		"name": "North", "hostel_type": "Boys", "address": "Main road", "intake": 40,
	})

	room := fiber.Map{"room_no": "101", "hostel": h, "room_type": rt, "number_of_beds": 4, "cost_per_bed": "1200.5"}
	res := env.JSON(http.MethodPost, "/api/master/hostel/rooms/create", room)
	assert.Equal(t, fiber.StatusCreated, res.Status(), string(res.Raw))
	assert.Equal(t, "North", res.Data()["hostel_name"])
	assert.Equal(t, "Dorm", res.Data()["room_type_name"])
	assert.Equal(t, "1200.50", res.Data()["cost_per_bed"])

	res = env.JSON(http.MethodPost, "/api/master/hostel/rooms/create", room)
	assert.Equal(t, []string{"Hostel room with number '101' already exists in the hostel 'North'."}, res.FieldErrors("room_no"))

	res = env.JSON(http.MethodPost, "/api/master/hostel/rooms/", fiber.Map{"search_text": "dorm"})
	assert.EqualValues(t, 1, res.Body["count"])

	res = env.JSON(http.MethodDelete, "/api/master/hostel/room-types/"+strconv.Itoa(int(rt)), nil)
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Equal(t, []string{"Cannot delete room type 'Dorm' because 1 hostel room(s) still use it."}, res.FieldErrors("non_field_errors"))
}

func TestHostelChoices(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.JSON(http.MethodPost, "/api/master/hostel/hostels/create", fiber.Map{
		"name": "South", "hostel_type": "Combine", "address": "x", "intake": -1,
	})
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, res.FieldErrors("intake"))
}

func TestHostelSearchAnyOfThreeFields(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Create("/api/master/hostel/hostels", fiber.Map{"name": "Rose", "hostel_type": "Girls", "address": "Lake view", "intake": 10})
	env.Create("/api/master/hostel/hostels", fiber.Map{"name": "Oak", "hostel_type": "Boys", "address": "Hill top", "intake": 10})

	res := env.JSON(http.MethodPost, "/api/master/hostel/hostels/", fiber.Map{"search_text": "girl"})
	rows := res.List()
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Rose", rows[0].(map[string]any)["name"])
	}
}
