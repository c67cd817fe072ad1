package controller_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp_backend/internals/testutil"
)

func TestRouteVehicles(t *testing.T) {
	env := testutil.NewEnv(t)
	route := env.Create("/api/master/transport/routes", fiber.Map{"title": "East"})
	v1 := env.Create("/api/master/transport/vehicles", fiber.Map{"vehicle_number": "KA-01", "vehicle_model": "Bus"})
	v2 := env.Create("/api/master/transport/vehicles", fiber.Map{"vehicle_number": "KA-02", "vehicle_model": "Van"})

	res := env.JSON(http.MethodPost, "/api/master/transport/route-vehicles/create", fiber.Map{"route": route, "vehicles": []uint{}})
	assert.Equal(t, []string{"This list may not be empty."}, res.FieldErrors("vehicles"))

	res = env.JSON(http.MethodPost, "/api/master/transport/route-vehicles/create", fiber.Map{"route": route, "vehicles": []uint{v1, 77}})
	assert.Equal(t, []string{`Invalid pk "77" - object does not exist.`}, res.FieldErrors("vehicles"))

	res = env.JSON(http.MethodPost, "/api/master/transport/route-vehicles/create", fiber.Map{"route": route, "vehicles": []uint{v1, v2}})
	require.Equal(t, fiber.StatusCreated, res.Status(), string(res.Raw))
	assert.Equal(t, "East", res.Data()["route_title"])
	assert.Equal(t, []any{float64(v1), float64(v2)}, res.Data()["vehicles"])
	assert.Len(t, res.Data()["vehicles_data"], 2)
	id := int(res.Data()["id"].(float64))

	// replace the set
	res = env.JSON(http.MethodPatch, "/api/master/transport/route-vehicles/"+strconv.Itoa(id), fiber.Map{"vehicles": []uint{v2}})
	assert.Equal(t, []any{float64(v2)}, res.Data()["vehicles"])

	// patch without vehicles leaves the set alone
	res = env.JSON(http.MethodPatch, "/api/master/transport/route-vehicles/"+strconv.Itoa(id), fiber.Map{"is_active": false})
	assert.Equal(t, []any{float64(v2)}, res.Data()["vehicles"])

	res = env.JSON(http.MethodPost, "/api/master/transport/route-vehicles/", fiber.Map{"search_text": "eas"})
	assert.EqualValues(t, 1, res.Body["count"])

	res = env.JSON(http.MethodDelete, "/api/master/transport/route-vehicles/"+strconv.Itoa(id), nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status())
	var n int64
	require.NoError(t, env.DB.Table("route_vehicle_vehicles").Count(&n).Error)
	assert.Zero(t, n)
}

func TestRoutePickupPoints(t *testing.T) {
	env := testutil.NewEnv(t)
	route := env.Create("/api/master/transport/routes", fiber.Map{"title": "East"})
	point := env.Create("/api/master/transport/pickup-points", fiber.Map{
		"pickup_point": "Market", "latitude": "12.97", "longitude": "77.59",
	})

	res := env.JSON(http.MethodPost, "/api/master/transport/pickup-points/create", fiber.Map{
		"pickup_point": "Market", "latitude": "1", "longitude": "1",
	})
	assert.Equal(t, []string{"Pickup point 'Market' already exists."}, res.FieldErrors("pickup_point"))

	res = env.JSON(http.MethodPost, "/api/master/transport/route-pickup-points/create", fiber.Map{
		"route": route, "pickup_point": point, "distance": "3.5", "pickup_time": "07:45", "monthly_fees": "800",
	})
	require.Equal(t, fiber.StatusCreated, res.Status(), string(res.Raw))
	assert.Equal(t, "East", res.Data()["route_title"])
	assert.Equal(t, "Market", res.Data()["pickup_point_name"])
	assert.Equal(t, "07:45:00", res.Data()["pickup_time"])
	assert.Equal(t, "3.50", res.Data()["distance"])
	assert.Equal(t, "800.00", res.Data()["monthly_fees"])

	res = env.JSON(http.MethodPost, "/api/master/transport/route-pickup-points/create", fiber.Map{
		"route": route, "pickup_point": point, "distance": "1", "pickup_time": "7 am", "monthly_fees": "1",
	})
	assert.Equal(t, []string{"Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."}, res.FieldErrors("pickup_time"))

	res = env.JSON(http.MethodPost, "/api/master/transport/route-pickup-points/", fiber.Map{"search_text": "market"})
	assert.EqualValues(t, 1, res.Body["count"])
}

func TestVehiclePhoto(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.Multipart(http.MethodPost, "/api/master/transport/vehicles/create",
		map[string]string{"vehicle_number": "KA-09", "vehicle_model": "Bus"},
		testutil.File{Field: "vehicle_photo", Filename: "bus.txt", ContentType: "text/plain", Data: []byte("x")},
	)
	assert.Equal(t, fiber.StatusBadRequest, res.Status())
	assert.Equal(t, []string{"Only image files are allowed."}, res.FieldErrors("vehicle_photo"))
	assert.Zero(t, env.Blob.Len())

	res = env.Multipart(http.MethodPost, "/api/master/transport/vehicles/create",
		map[string]string{"vehicle_number": "KA-09", "vehicle_model": "Bus", "max_seating_capacity": "40"},
		testutil.File{Field: "vehicle_photo", Filename: "bus.png", ContentType: "image/png", Data: []byte("not really a png")},
	)
	require.Equal(t, fiber.StatusCreated, res.Status(), string(res.Raw))
	photo, _ := res.Data()["vehicle_photo"].(string)
	assert.True(t, strings.HasPrefix(photo, "vehicles/"), photo)
	assert.EqualValues(t, 40, res.Data()["max_seating_capacity"])
	assert.Equal(t, 1, env.Blob.Len())

	res = env.JSON(http.MethodPost, "/api/master/transport/vehicles/create", fiber.Map{"vehicle_number": "KA-09", "vehicle_model": "Van"})
	assert.Equal(t, []string{"Vehicle with number 'KA-09' already exists."}, res.FieldErrors("vehicle_number"))
}
