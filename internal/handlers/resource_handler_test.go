package handlers

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userApp(users *fakeStore[models.User]) *fiber.App {
	return newApp("/api/v1/users", NewUserHandler(users).Register)
}

func addressApp(addresses *fakeStore[models.Address], users *fakeStore[models.User]) *fiber.App {
	return newApp("/api/v1/addresses", NewAddressHandler(addresses, users).Register)
}

func TestCreateUser(t *testing.T) {
	users := newUserStore()
	app := userApp(users)

	status, raw := call(t, app, fiber.MethodPost, "/api/v1/users/new", map[string]any{
		"userId":    99,
		"id":        7,
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@example.com",
	})

	require.Equal(t, fiber.StatusOK, status, string(raw))
	user := decode[models.User](t, raw)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "John", user.FirstName)

	require.Len(t, users.created, 1)
	assert.NotContains(t, users.created[0], "userId")
	assert.NotContains(t, users.created[0], "id")
}

func TestCreateRequiresFields(t *testing.T) {
	users := newUserStore()
	app := userApp(users)

	cases := []struct {
		name string
		body any
	}{
		{"empty object", map[string]any{}},
		{"missing email", map[string]any{"firstName": "John", "lastName": "Doe"}},
		{"null email", map[string]any{"firstName": "John", "lastName": "Doe", "email": nil}},
		{"blank email", map[string]any{"firstName": "John", "lastName": "Doe", "email": "  "}},
		{"no body", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := call(t, app, fiber.MethodPost, "/api/v1/users/new", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, `"firstName", "lastName" and "email" fields are required!`, errorOf(t, raw))
		})
	}
	assert.Empty(t, users.created)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	app := userApp(newUserStore())

	status, raw := call(t, app, fiber.MethodPost, "/api/v1/users/new", `{"firstName":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", errorOf(t, raw))
}

func TestCreateChecksParentUser(t *testing.T) {
	users := newUserStore()
	users.put(1, 0, models.User{UserID: 1, FirstName: "John"})
	addresses := newAddressStore()
	app := addressApp(addresses, users)

	body := map[string]any{"userId": 999, "line1": "1 Main St", "postalCode": "12345", "country": "US"}
	status, raw := call(t, app, fiber.MethodPost, "/api/v1/addresses/new", body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User with id '999' does not exist. Please provide a valid UserID.", errorOf(t, raw))
	assert.Empty(t, addresses.created)

	body["userId"] = 1
	status, raw = call(t, app, fiber.MethodPost, "/api/v1/addresses/new", body)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	assert.Equal(t, int64(1), decode[models.Address](t, raw).UserID)
}

func TestCreateParentWithUnusableID(t *testing.T) {
	addresses := newAddressStore()
	app := addressApp(addresses, newUserStore())

	body := map[string]any{"userId": "abc", "line1": "1 Main St", "postalCode": "12345", "country": "US"}
	status, raw := call(t, app, fiber.MethodPost, "/api/v1/addresses/new", body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User with id 'abc' does not exist. Please provide a valid UserID.", errorOf(t, raw))
	assert.Empty(t, addresses.created)
}

func TestGetByID(t *testing.T) {
	users := newUserStore()
	users.put(1, 0, models.User{UserID: 1, FirstName: "John"})
	app := userApp(users)

	status, raw := call(t, app, fiber.MethodGet, "/api/v1/users/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "John", decode[models.User](t, raw).FirstName)

	status, raw = call(t, app, fiber.MethodGet, "/api/v1/users/999999", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User '999999' not found", errorOf(t, raw))

	status, raw = call(t, app, fiber.MethodGet, "/api/v1/users/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid User ID 'abc'", errorOf(t, raw))
}

func TestListForUser(t *testing.T) {
	users := newUserStore()
	addresses := newAddressStore()
	addresses.put(10, 1, models.Address{AddressID: 10, UserID: 1})
	addresses.put(11, 1, models.Address{AddressID: 11, UserID: 1})
	addresses.put(12, 2, models.Address{AddressID: 12, UserID: 2})
	app := addressApp(addresses, users)

	status, raw := call(t, app, fiber.MethodGet, "/api/v1/addresses/user/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]models.Address](t, raw), 2)

	status, raw = call(t, app, fiber.MethodGet, "/api/v1/addresses/user/3", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No Address records found for User with ID '3'", errorOf(t, raw))
}

func TestUpdate(t *testing.T) {
	users := newUserStore()
	addresses := newAddressStore()
	addresses.put(10, 1, models.Address{AddressID: 10, UserID: 1, Line1: "1 Main St"})
	app := addressApp(addresses, users)

	status, raw := call(t, app, fiber.MethodPut, "/api/v1/addresses/10", map[string]any{
		"addressId": 55,
		"userId":    2,
		"line1":     "2 Side St",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))
	require.Len(t, addresses.updated, 1)
	assert.Equal(t, map[string]any{"line1": "2 Side St"}, addresses.updated[0])

	status, raw = call(t, app, fiber.MethodPut, "/api/v1/addresses/404", map[string]any{"line1": "x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Address with ID '404' does not exist.", errorOf(t, raw))
	assert.Len(t, addresses.updated, 1)
}

func TestUpdateStripsOwnerInAnySpelling(t *testing.T) {
	users := newUserStore()
	addresses := newAddressStore()
	addresses.put(10, 1, models.Address{AddressID: 10, UserID: 1, Line1: "1 Main St"})
	app := addressApp(addresses, users)

	status, raw := call(t, app, fiber.MethodPut, "/api/v1/addresses/10", map[string]any{
		"userID":    2,
		"userId":    3,
		"user_id":   4,
		"AddressID": 55,
		"country":   "UK",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))
	require.Len(t, addresses.updated, 1)
	assert.Equal(t, map[string]any{"country": "UK"}, addresses.updated[0])
}

func TestUpdateChecksOwnEntity(t *testing.T) {
	// A product id that happens to match a user id must not pass the check.
	users := newUserStore()
	users.put(5, 0, models.User{UserID: 5})
	products := newProductStore()
	app := newApp("/api/v1/products", NewProductHandler(products).Register)

	status, raw := call(t, app, fiber.MethodPut, "/api/v1/products/5", map[string]any{"price": 9.5})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Product with ID '5' does not exist.", errorOf(t, raw))
}

func TestDeleteIsIdempotent(t *testing.T) {
	users := newUserStore()
	users.put(1, 0, models.User{UserID: 1})
	app := userApp(users)

	for i := 0; i < 2; i++ {
		status, raw := call(t, app, fiber.MethodDelete, "/api/v1/users/1", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "User '1' deleted successfully.", str(decode[map[string]any](t, raw)["message"]))
	}
	assert.Equal(t, []int64{1, 1}, users.deleted)
}

func TestDeleteReferencedRowIsIntegrityError(t *testing.T) {
	users := newUserStore()
	users.deleteErr = &services.StoreError{
		Kind:       services.KindIntegrity,
		Entity:     "User",
		Op:         "delete",
		Code:       "23503",
		Message:    `update or delete on table "users" violates foreign key constraint "orders_user_id_fkey" on table "orders"`,
		Detail:     `Key (user_id)=(1) is still referenced from table "orders".`,
		Table:      "orders",
		Constraint: "orders_user_id_fkey",
	}
	app := userApp(users)

	status, raw := call(t, app, fiber.MethodDelete, "/api/v1/users/1", nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	body := decode[map[string]any](t, raw)
	assert.Equal(t, "23503", body["code"])
	assert.Contains(t, body["detail"], "orders")
}

func TestStoreFaultIsServerError(t *testing.T) {
	users := newUserStore()
	users.createErr = &services.StoreError{
		Kind:    services.KindUnknown,
		Code:    "42703",
		Message: `column "shoe_size" of relation "users" does not exist`,
	}
	app := userApp(users)

	status, raw := call(t, app, fiber.MethodPost, "/api/v1/users/new", map[string]any{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com", "shoeSize": 44,
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, errorOf(t, raw), "shoe_size")

	users.err = errors.New("connection refused")
	status, raw = call(t, app, fiber.MethodGet, "/api/v1/users/1", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "connection refused", errorOf(t, raw))
}

func TestInvalidFieldNameIsBadRequest(t *testing.T) {
	users := newUserStore()
	users.createErr = services.ErrInvalidField
	app := userApp(users)

	status, _ := call(t, app, fiber.MethodPost, "/api/v1/users/new", map[string]any{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com", "bad name?": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOrderReliesOnForeignKeys(t *testing.T) {
	orders := newOrderStore()
	orders.createErr = &services.StoreError{
		Kind:   services.KindIntegrity,
		Code:   "23503",
		Detail: `Key (address_id)=(999) is not present in table "addresses".`,
	}
	app := newApp("/api/v1/orders", NewOrderHandler(orders).Register)

	status, raw := call(t, app, fiber.MethodPost, "/api/v1/orders/new", map[string]any{"addressId": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, `"addressId", "basketId" and "paymentInfoId" fields are required!`, errorOf(t, raw))

	status, raw = call(t, app, fiber.MethodPost, "/api/v1/orders/new", map[string]any{
		"addressId": 999, "basketId": 1, "paymentInfoId": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, decode[map[string]any](t, raw)["detail"], "addresses")
}

func TestPaymentInfoRequiredFields(t *testing.T) {
	app := newApp("/api/v1/paymentinfo", NewPaymentInfoHandler(newFakeStore("PaymentInfo", func(id int64, _ map[string]any) models.PaymentInfo {
		return models.PaymentInfo{PaymentInfoID: id}
	}), newUserStore()).Register)

	status, raw := call(t, app, fiber.MethodPost, "/api/v1/paymentinfo/new", map[string]any{"userId": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, `"userId", "cardNumber", "expiryDate", "cvv" and "accountNumber" fields are required!`, errorOf(t, raw))
}
