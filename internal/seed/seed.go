// Package seed loads storefront fixtures from YAML and inserts them through
// the entity services, resolving symbolic references to generated ids.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Record is one row to create. Key names the row for later references;
// the owning user (if any) is given by User.
type Record struct {
	Key    string         `yaml:"key"`
	User   string         `yaml:"user,omitempty"`
	Fields map[string]any `yaml:"fields"`
}

type BasketItem struct {
	Basket   string `yaml:"basket"`
	Product  string `yaml:"product"`
	Quantity int    `yaml:"quantity"`
}

type Order struct {
	Address     string `yaml:"address"`
	Basket      string `yaml:"basket"`
	PaymentInfo string `yaml:"paymentInfo"`
}

type Fixture struct {
	Users       []Record     `yaml:"users"`
	Products    []Record     `yaml:"products"`
	Addresses   []Record     `yaml:"addresses"`
	PaymentInfo []Record     `yaml:"paymentInfo"`
	Baskets     []Record     `yaml:"baskets"`
	BasketItems []BasketItem `yaml:"basketItems"`
	Orders      []Order      `yaml:"orders"`
}

// Creator is the create half of an entity service.
type Creator[T any] interface {
	Create(ctx context.Context, fields map[string]any) ([]T, error)
}

type ItemAdder interface {
	Add(ctx context.Context, basketID, productID int64, quantity int) ([]models.BasketItem, error)
}

type Stores struct {
	Users       Creator[models.User]
	Products    Creator[models.Product]
	Addresses   Creator[models.Address]
	PaymentInfo Creator[models.PaymentInfo]
	Baskets     Creator[models.Basket]
	Items       ItemAdder
	Orders      Creator[models.Order]
}

// Result counts the rows inserted per entity.
type Result struct {
	Users, Products, Addresses, PaymentInfo, Baskets, BasketItems, Orders int
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return &f, nil
}

type refs map[string]int64

func (r refs) resolve(kind, key string) (int64, error) {
	id, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("unknown %s reference %q", kind, key)
	}
	return id, nil
}

func (r refs) remember(kind, key string, id int64) error {
	if key == "" {
		return nil
	}
	if _, dup := r[key]; dup {
		return fmt.Errorf("duplicate %s key %q", kind, key)
	}
	r[key] = id
	return nil
}

// Run inserts the fixture parents first. It stops at the first failure;
// rows already inserted stay.
func Run(ctx context.Context, stores Stores, f *Fixture) (*Result, error) {
	res := &Result{}
	users, products, addresses, payments, baskets := refs{}, refs{}, refs{}, refs{}, refs{}

	for _, rec := range f.Users {
		if err := insert(ctx, stores.Users, "user", rec, nil, users, func(u models.User) int64 { return u.UserID }); err != nil {
			return res, err
		}
		res.Users++
	}
	for _, rec := range f.Products {
		if err := insert(ctx, stores.Products, "product", rec, nil, products, func(p models.Product) int64 { return p.ProductID }); err != nil {
			return res, err
		}
		res.Products++
	}
	for _, rec := range f.Addresses {
		if err := insert(ctx, stores.Addresses, "address", rec, users, addresses, func(a models.Address) int64 { return a.AddressID }); err != nil {
			return res, err
		}
		res.Addresses++
	}
	for _, rec := range f.PaymentInfo {
		if err := insert(ctx, stores.PaymentInfo, "paymentInfo", rec, users, payments, func(p models.PaymentInfo) int64 { return p.PaymentInfoID }); err != nil {
			return res, err
		}
		res.PaymentInfo++
	}
	for _, rec := range f.Baskets {
		if err := insert(ctx, stores.Baskets, "basket", rec, users, baskets, func(b models.Basket) int64 { return b.BasketID }); err != nil {
			return res, err
		}
		res.Baskets++
	}

	for _, item := range f.BasketItems {
		basketID, err := baskets.resolve("basket", item.Basket)
		if err != nil {
			return res, err
		}
		productID, err := products.resolve("product", item.Product)
		if err != nil {
			return res, err
		}
		if _, err := stores.Items.Add(ctx, basketID, productID, item.Quantity); err != nil {
			return res, fmt.Errorf("basket item %s/%s: %w", item.Basket, item.Product, err)
		}
		res.BasketItems++
	}

	for i, order := range f.Orders {
		fields := map[string]any{}
		for _, ref := range []struct {
			field, kind, key string
			from             refs
		}{
			{"addressId", "address", order.Address, addresses},
			{"basketId", "basket", order.Basket, baskets},
			{"paymentInfoId", "paymentInfo", order.PaymentInfo, payments},
		} {
			id, err := ref.from.resolve(ref.kind, ref.key)
			if err != nil {
				return res, fmt.Errorf("order %d: %w", i, err)
			}
			fields[ref.field] = id
		}
		if _, err := stores.Orders.Create(ctx, fields); err != nil {
			return res, fmt.Errorf("order %d: %w", i, err)
		}
		res.Orders++
	}

	slog.Info("fixtures seeded",
		"users", res.Users, "products", res.Products, "addresses", res.Addresses,
		"payment_info", res.PaymentInfo, "baskets", res.Baskets,
		"basket_items", res.BasketItems, "orders", res.Orders)
	return res, nil
}

// insert creates one record. When owners is non-nil the record's User
// reference is resolved into userId.
func insert[T any](ctx context.Context, store Creator[T], kind string, rec Record, owners, into refs, idOf func(T) int64) error {
	fields := make(map[string]any, len(rec.Fields)+1)
	for k, v := range rec.Fields {
		fields[k] = v
	}
	if owners != nil {
		userID, err := owners.resolve("user", rec.User)
		if err != nil {
			return fmt.Errorf("%s %q: %w", kind, rec.Key, err)
		}
		fields["userId"] = userID
	}

	rows, err := store.Create(ctx, fields)
	if err != nil {
		return fmt.Errorf("%s %q: %w", kind, rec.Key, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s %q: no row returned", kind, rec.Key)
	}
	return into.remember(kind, rec.Key, idOf(rows[0]))
}
