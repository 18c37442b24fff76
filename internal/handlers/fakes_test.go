package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps rows in memory and records what the handler passed down.
type fakeStore[T any] struct {
	entity string
	rows   map[int64]T
	owner  map[int64]int64
	nextID int64
	build  func(id int64, fields map[string]any) T

	err       error
	createErr error
	deleteErr error

	created []map[string]any
	updated []map[string]any
	deleted []int64
}

func newFakeStore[T any](entity string, build func(id int64, fields map[string]any) T) *fakeStore[T] {
	return &fakeStore[T]{entity: entity, rows: map[int64]T{}, owner: map[int64]int64{}, build: build}
}

func (s *fakeStore[T]) put(id, userID int64, row T) {
	s.rows[id] = row
	s.owner[id] = userID
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *fakeStore[T]) GetByID(_ context.Context, id int64) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	if row, ok := s.rows[id]; ok {
		return []T{row}, nil
	}
	return []T{}, nil
}

func (s *fakeStore[T]) Exists(ctx context.Context, id int64) (bool, error) {
	rows, err := s.GetByID(ctx, id)
	return len(rows) > 0, err
}

func (s *fakeStore[T]) Create(_ context.Context, fields map[string]any) ([]T, error) {
	s.created = append(s.created, fields)
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	row := s.build(s.nextID, fields)
	s.rows[s.nextID] = row
	return []T{row}, nil
}

func (s *fakeStore[T]) Update(_ context.Context, id int64, fields map[string]any) ([]T, error) {
	s.updated = append(s.updated, fields)
	row, ok := s.rows[id]
	if !ok {
		return []T{}, nil
	}
	return []T{row}, nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id int64) (*services.DeleteResult, error) {
	s.deleted = append(s.deleted, id)
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	delete(s.rows, id)
	return &services.DeleteResult{Message: fmt.Sprintf("%s '%d' deleted successfully.", s.entity, id)}, nil
}

func (s *fakeStore[T]) ListForUser(_ context.Context, userID int64) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows := make([]T, 0)
	for id, row := range s.rows {
		if s.owner[id] == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *fakeStore[T]) CredentialsMatch(_ context.Context, email, password string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return email == "john@example.com" && password == "secret", nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int64 {
	id, _ := idFromValue(v)
	return id
}

func newUserStore() *fakeStore[models.User] {
	return newFakeStore("User", func(id int64, f map[string]any) models.User {
		return models.User{UserID: id, FirstName: str(f["firstName"]), LastName: str(f["lastName"]), Email: str(f["email"])}
	})
}

func newAddressStore() *fakeStore[models.Address] {
	return newFakeStore("Address", func(id int64, f map[string]any) models.Address {
		return models.Address{AddressID: id, UserID: num(f["userId"]), Line1: str(f["line1"]), PostalCode: str(f["postalCode"]), Country: str(f["country"])}
	})
}

func newBasketStore() *fakeStore[models.Basket] {
	return newFakeStore("Basket", func(id int64, f map[string]any) models.Basket {
		return models.Basket{BasketID: id, UserID: num(f["userId"]), Status: models.BasketStatusOpen}
	})
}

func newProductStore() *fakeStore[models.Product] {
	return newFakeStore("Product", func(id int64, f map[string]any) models.Product {
		price, _ := f["price"].(float64)
		return models.Product{ProductID: id, Name: str(f["name"]), Brand: str(f["brand"]), Price: price, Quantity: int(num(f["quantity"]))}
	})
}

func newOrderStore() *fakeStore[models.Order] {
	return newFakeStore("Order", func(id int64, f map[string]any) models.Order {
		return models.Order{OrderID: id, AddressID: num(f["addressId"]), BasketID: num(f["basketId"]), PaymentInfoID: num(f["paymentInfoId"])}
	})
}

type itemKey struct{ basket, product int64 }

type fakeItemStore struct {
	items map[itemKey]int
	err   error
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: map[itemKey]int{}}
}

func (s *fakeItemStore) ListForBasket(_ context.Context, basketID int64) ([]models.BasketItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	items := make([]models.BasketItem, 0)
	for k, q := range s.items {
		if k.basket == basketID {
			items = append(items, models.BasketItem{BasketID: k.basket, ProductID: k.product, Quantity: q})
		}
	}
	return items, nil
}

func (s *fakeItemStore) Get(_ context.Context, basketID, productID int64) ([]models.BasketItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if q, ok := s.items[itemKey{basketID, productID}]; ok {
		return []models.BasketItem{{BasketID: basketID, ProductID: productID, Quantity: q}}, nil
	}
	return []models.BasketItem{}, nil
}

func (s *fakeItemStore) Add(_ context.Context, basketID, productID int64, quantity int) ([]models.BasketItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items[itemKey{basketID, productID}] = quantity
	return []models.BasketItem{{BasketID: basketID, ProductID: productID, Quantity: quantity}}, nil
}

func (s *fakeItemStore) AdjustQuantity(ctx context.Context, basketID, productID int64, delta int) ([]models.BasketItem, *services.DeleteResult, error) {
	q, ok := s.items[itemKey{basketID, productID}]
	if !ok {
		return nil, nil, services.ErrBasketItemNotFound
	}
	if q+delta > services.MaxQuantity {
		return nil, nil, services.ErrQuantityOutOfRange
	}
	if q+delta <= 0 {
		removed, err := s.Remove(ctx, basketID, productID)
		return nil, removed, err
	}
	s.items[itemKey{basketID, productID}] = q + delta
	return []models.BasketItem{{BasketID: basketID, ProductID: productID, Quantity: q + delta}}, nil, nil
}

func (s *fakeItemStore) Remove(_ context.Context, basketID, productID int64) (*services.DeleteResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	delete(s.items, itemKey{basketID, productID})
	return &services.DeleteResult{
		Message: fmt.Sprintf("Product '%d' removed from Basket '%d' successfully.", productID, basketID),
	}, nil
}

func newApp(prefix string, register func(fiber.Router)) *fiber.App {
	app := fiber.New()
	register(app.Group(prefix))
	return app
}

// call sends a JSON request and returns the status and raw response body.
func call(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func errorOf(t *testing.T, raw []byte) string {
	t.Helper()
	return str(decode[map[string]any](t, raw)["error"])
}
