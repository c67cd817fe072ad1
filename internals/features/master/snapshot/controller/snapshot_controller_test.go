package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp_backend/internals/testutil"
)

func TestAllMasters(t *testing.T) {
	env := testutil.NewEnv(t)
	g1 := env.Create("/api/master/fees/group", fiber.Map{"name": "Term 1"})
	g2 := env.Create("/api/master/fees/group", fiber.Map{"name": "Term 2"})
	env.Create("/api/master/fees/group", fiber.Map{"name": "Empty"})
	tui := env.Create("/api/master/fees/type", fiber.Map{"name": "Tuition", "fees_code": "TUI"})
	bus := env.Create("/api/master/fees/type", fiber.Map{"name": "Bus", "fees_code": "BUS"})

	for _, m := range []fiber.Map{
		{"fees_group": g1, "fees_type": tui, "due_date": "2024-06-10", "amount": "1000", "fine_type": "None"},
		{"fees_group": g1, "fees_type": bus, "due_date": "2024-06-10", "amount": "250.50", "fine_type": "None"},
		{"fees_group": g2, "fees_type": tui, "due_date": "2024-10-10", "amount": "1200", "fine_type": "Fix", "fix_amount": "50"},
	} {
		env.Create("/api/master/fees/master", m)
	}
	env.Create("/api/master/classes", fiber.Map{"name": "Grade 1"})
	env.Create("/api/student/house", fiber.Map{"name": "Red"})

	res := env.JSON(http.MethodGet, "/api/master/masters/all", nil)
	require.Equal(t, fiber.StatusOK, res.Status(), string(res.Raw))
	data := res.Data()

	for _, key := range []string{
		"houses", "fees_types", "fees_groups", "fees_master", "fees_discounts", "room_types",
		"hostels", "hostel_rooms", "routes", "vehicles", "pickup_points", "route_vehicles",
		"route_pickup_points", "classes", "sections",
	} {
		assert.Contains(t, data, key)
		assert.NotNil(t, data[key], key)
	}
	assert.Len(t, data["classes"], 1)
	assert.Len(t, data["houses"], 1)
	assert.Empty(t, data["vehicles"])

	groups, _ := data["fees_master"].([]any)
	require.Len(t, groups, 3)

	first := groups[0].(map[string]any)
	assert.Equal(t, "Term 1", first["group_name"])
	assert.Len(t, first["fees_types"], 2)
	// every group carries the total over all templates
	for _, g := range groups {
		assert.Equal(t, "2450.50", g.(map[string]any)["amount"])
	}

	second := groups[1].(map[string]any)
	types := second["fees_types"].([]any)
	require.Len(t, types, 1)
	entry := types[0].(map[string]any)
	assert.Equal(t, "TUI", entry["fees_code"])
	assert.Equal(t, "Fix", entry["fine_type"])
	assert.Equal(t, "50.00", entry["fix_amount"])
	assert.Equal(t, "2024-10-10", entry["due_date"])

	third := groups[2].(map[string]any)
	assert.Equal(t, []any{}, third["fees_types"])
}
