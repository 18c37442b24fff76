package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

var basketTable = tableSpec{
	Entity:   "Basket",
	Table:    "baskets",
	IDColumn: "basket_id",
	Columns:  []string{"basket_id", "user_id", "date_created", "status"},
}

type BasketService struct {
	*EntityService[models.Basket]
}

func NewBasketService(db *gorm.DB) *BasketService {
	return &BasketService{EntityService: newEntityService[models.Basket](db, basketTable)}
}

func (s *BasketService) ListForUser(ctx context.Context, userID int64) ([]models.Basket, error) {
	return s.listBy(ctx, "list_for_user", "user_id", userID)
}

const basketItemEntity = "BasketItem"
const basketItemTable = "basketproducts"

const basketItemColumns = `"basket_id", "product_id", "quantity"`

// BasketItemService manages the product lines of a basket. Quantity changes
// read the stored value and write the new one in two statements; concurrent
// changes to the same line can lose an update.
type BasketItemService struct {
	db *gorm.DB
}

func NewBasketItemService(db *gorm.DB) *BasketItemService {
	return &BasketItemService{db: db}
}

func (s *BasketItemService) ListForBasket(ctx context.Context, basketID int64) ([]models.BasketItem, error) {
	ctx, span := startSpan(ctx, basketItemEntity, basketItemTable, "list_for_basket", attribute.Int64("storefront.basket_id", basketID))
	defer span.End()

	items := make([]models.BasketItem, 0)
	err := s.db.WithContext(ctx).
		Raw(`SELECT `+basketItemColumns+` FROM "basketproducts" WHERE "basket_id" = ? ORDER BY "product_id"`, basketID).
		Scan(&items).Error
	if err != nil {
		return nil, fail(ctx, span, basketItemEntity, "list_for_basket", &basketID, err)
	}
	return items, nil
}

func (s *BasketItemService) Get(ctx context.Context, basketID, productID int64) ([]models.BasketItem, error) {
	ctx, span := startSpan(ctx, basketItemEntity, basketItemTable, "get",
		attribute.Int64("storefront.basket_id", basketID), attribute.Int64("storefront.product_id", productID))
	defer span.End()

	items := make([]models.BasketItem, 0, 1)
	err := s.db.WithContext(ctx).
		Raw(`SELECT `+basketItemColumns+` FROM "basketproducts" WHERE "basket_id" = ? AND "product_id" = ?`, basketID, productID).
		Scan(&items).Error
	if err != nil {
		return nil, fail(ctx, span, basketItemEntity, "get", &basketID, err)
	}
	return items, nil
}

func (s *BasketItemService) Add(ctx context.Context, basketID, productID int64, quantity int) ([]models.BasketItem, error) {
	ctx, span := startSpan(ctx, basketItemEntity, basketItemTable, "create",
		attribute.Int64("storefront.basket_id", basketID), attribute.Int64("storefront.product_id", productID))
	defer span.End()

	items := make([]models.BasketItem, 0, 1)
	err := s.db.WithContext(ctx).
		Raw(`INSERT INTO "basketproducts" ("basket_id", "product_id", "quantity") VALUES (?, ?, ?) RETURNING `+basketItemColumns,
			basketID, productID, quantity).
		Scan(&items).Error
	if err != nil {
		return nil, fail(ctx, span, basketItemEntity, "create", &basketID, err)
	}
	return items, nil
}

// SetQuantity overwrites the quantity of an existing line.
func (s *BasketItemService) SetQuantity(ctx context.Context, basketID, productID int64, quantity int) ([]models.BasketItem, error) {
	ctx, span := startSpan(ctx, basketItemEntity, basketItemTable, "update",
		attribute.Int64("storefront.basket_id", basketID), attribute.Int64("storefront.product_id", productID))
	defer span.End()

	items := make([]models.BasketItem, 0, 1)
	err := s.db.WithContext(ctx).
		Raw(`UPDATE "basketproducts" SET "quantity" = ? WHERE "basket_id" = ? AND "product_id" = ? RETURNING `+basketItemColumns,
			quantity, basketID, productID).
		Scan(&items).Error
	if err != nil {
		return nil, fail(ctx, span, basketItemEntity, "update", &basketID, err)
	}
	return items, nil
}

func (s *BasketItemService) Remove(ctx context.Context, basketID, productID int64) (*DeleteResult, error) {
	ctx, span := startSpan(ctx, basketItemEntity, basketItemTable, "delete",
		attribute.Int64("storefront.basket_id", basketID), attribute.Int64("storefront.product_id", productID))
	defer span.End()

	err := s.db.WithContext(ctx).
		Exec(`DELETE FROM "basketproducts" WHERE "basket_id" = ? AND "product_id" = ?`, basketID, productID).
		Error
	if err != nil {
		return nil, fail(ctx, span, basketItemEntity, "delete", &basketID, err)
	}
	return &DeleteResult{
		Message: fmt.Sprintf("Product '%d' removed from Basket '%d' successfully.", productID, basketID),
	}, nil
}

// MaxQuantity is the largest quantity the basketproducts.quantity column holds.
const MaxQuantity = math.MaxInt32

var (
	// ErrBasketItemNotFound is returned when adjusting a line that is not in the basket.
	ErrBasketItemNotFound = errors.New("basket item not found")
	// ErrQuantityOutOfRange is returned when an adjustment would push a line past MaxQuantity.
	ErrQuantityOutOfRange = errors.New("basket item quantity out of range")
)

// AdjustQuantity adds delta (which may be negative) to a line's quantity.
// A result of zero or less removes the line and returns the removal message
// instead of an item.
func (s *BasketItemService) AdjustQuantity(ctx context.Context, basketID, productID int64, delta int) ([]models.BasketItem, *DeleteResult, error) {
	current, err := s.Get(ctx, basketID, productID)
	if err != nil {
		return nil, nil, err
	}
	if len(current) == 0 {
		return nil, nil, ErrBasketItemNotFound
	}

	if delta > MaxQuantity || delta < -MaxQuantity {
		return nil, nil, ErrQuantityOutOfRange
	}
	quantity := current[0].Quantity + delta
	if quantity > MaxQuantity {
		return nil, nil, ErrQuantityOutOfRange
	}
	if quantity <= 0 {
		removed, err := s.Remove(ctx, basketID, productID)
		return nil, removed, err
	}

	items, err := s.SetQuantity(ctx, basketID, productID, quantity)
	return items, nil, err
}
