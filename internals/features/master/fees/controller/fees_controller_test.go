package controller_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"erp_backend/internals/testutil"
)

func TestFeesMaster(t *testing.T) {
	env := testutil.NewEnv(t)
	group := env.Create("/api/master/fees/group", fiber.Map{"name": "Term 1"})
	typ := env.Create("/api/master/fees/type", fiber.Map{"name": "Tuition", "fees_code": "TUI"})

	master := fiber.Map{"fees_group": group, "fees_type": typ, "due_date": "2024-06-10", "amount": "1500", "fine_type": "None"}
	res := env.JSON(http.MethodPost, "/api/master/fees/master/create", master)
	assert.Equal(t, fiber.StatusCreated, res.Status(), string(res.Raw))
	assert.Equal(t, "1500.00", res.Data()["amount"])
	assert.Equal(t, "None", res.Data()["fine_type"])
	assert.Equal(t, "Term 1", res.Data()["fees_group_name"])
	assert.Equal(t, "Tuition", res.Data()["fees_type_name"])
	assert.Nil(t, res.Data()["percentage"])

	res = env.JSON(http.MethodPost, "/api/master/fees/master/create", master)
	assert.Equal(t, []string{"A fees master record with this group, type, and due date already exists."}, res.FieldErrors("due_date"))

	res = env.JSON(http.MethodPost, "/api/master/fees/master/create", fiber.Map{
		"fees_group": group, "fees_type": 42, "due_date": "2024-07-10", "amount": "10", "fine_type": "Daily",
	})
	assert.Equal(t, []string{`"Daily" is not a valid choice.`}, res.FieldErrors("fine_type"))

	res = env.JSON(http.MethodPost, "/api/master/fees/master/create", fiber.Map{
		"fees_group": group, "fees_type": 42, "due_date": "2024-07-10", "amount": "10", "fine_type": "Fix", "fix_amount": "50",
	})
	assert.Equal(t, []string{`Invalid pk "42" - object does not exist.`}, res.FieldErrors("fees_type"))

	res = env.JSON(http.MethodPost, "/api/master/fees/master/", fiber.Map{"search_text": "tuition"})
	assert.EqualValues(t, 1, res.Body["count"])
}

func TestFeesTypeCodes(t *testing.T) {
	env := testutil.NewEnv(t)
	env.Create("/api/master/fees/type", fiber.Map{"name": "Tuition", "fees_code": "TUI"})

	res := env.JSON(http.MethodPost, "/api/master/fees/type/create", fiber.Map{"name": "Tuition", "fees_code": "TUI"})
	assert.Equal(t, []string{"Fees type with name 'Tuition' already exists."}, res.FieldErrors("name"))
	assert.Equal(t, []string{"fees type with this fees code already exists."}, res.FieldErrors("fees_code"))

	res = env.JSON(http.MethodPost, "/api/master/fees/type/", fiber.Map{"search_text": "tui"})
	assert.EqualValues(t, 1, res.Body["count"])
}

func TestFeesDiscount(t *testing.T) {
	env := testutil.NewEnv(t)

	res := env.JSON(http.MethodPost, "/api/master/fees/discount/create", fiber.Map{
		"name": "Sibling", "discount_code": "SIB", "discount_type": "Percentage", "percentage": "10",
	})
	assert.Equal(t, fiber.StatusCreated, res.Status())
	assert.Equal(t, "10.00", res.Data()["percentage"])

	res = env.JSON(http.MethodPost, "/api/master/fees/discount/create", fiber.Map{
		"name": "Other", "discount_code": "SIB", "discount_type": "Fix",
	})
	assert.Equal(t, []string{"Discount with code 'SIB' already exists."}, res.FieldErrors("discount_code"))
}
