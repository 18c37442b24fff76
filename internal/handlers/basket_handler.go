package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// BasketItemStore is the data access for the product lines of a basket.
type BasketItemStore interface {
	ListForBasket(ctx context.Context, basketID int64) ([]models.BasketItem, error)
	Get(ctx context.Context, basketID, productID int64) ([]models.BasketItem, error)
	Add(ctx context.Context, basketID, productID int64, quantity int) ([]models.BasketItem, error)
	AdjustQuantity(ctx context.Context, basketID, productID int64, delta int) ([]models.BasketItem, *services.DeleteResult, error)
	Remove(ctx context.Context, basketID, productID int64) (*services.DeleteResult, error)
}

type BasketHandler struct {
	*resourceHandler[models.Basket]
	items    BasketItemStore
	products ExistenceChecker
}

func NewBasketHandler(baskets OwnedStore[models.Basket], items BasketItemStore, users, products ExistenceChecker) *BasketHandler {
	return &BasketHandler{
		resourceHandler: newOwnedResourceHandler(baskets, resourceConfig{
			Entity:          "Basket",
			IDFields:        []string{"id", "basketId", "basket_id"},
			ImmutableFields: []string{"userId", "user_id"},
			Required:        []string{"userId"},
			Parents:         []parentRef{{Field: "userId", Entity: "User", Checker: users}},
		}),
		items:    items,
		products: products,
	}
}

func (h *BasketHandler) Register(router fiber.Router) {
	router.Get("/:id/items", h.ListItems)
	router.Post("/:id/items", h.AddItem)
	router.Put("/:id/items/:productId", h.AdjustItem)
	router.Delete("/:id/items/:productId", h.RemoveItem)
	h.register(router)
}

func (h *BasketHandler) ListItems(c *fiber.Ctx) error {
	basketID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "Basket", "id")
	}

	items, err := h.items.ListForBasket(c.UserContext(), basketID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(items) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("No BasketItem records found for Basket with ID '%d'", basketID),
		})
	}
	return c.JSON(items)
}

func (h *BasketHandler) AddItem(c *fiber.Ctx) error {
	basketID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "Basket", "id")
	}

	var req dto.AddBasketItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.ProductID == nil || req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: requiredMessage([]string{"productId", "quantity"}),
		})
	}
	if *req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: `"quantity" must be greater than zero`,
		})
	}
	if *req.Quantity > services.MaxQuantity {
		return quantityTooLarge(c)
	}
	productID := *req.ProductID

	ctx := c.UserContext()
	exists, err := h.store.Exists(ctx, basketID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if !exists {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: parentMissingMessage("Basket", basketID),
		})
	}

	exists, err = h.products.Exists(ctx, productID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if !exists {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: parentMissingMessage("Product", productID),
		})
	}

	current, err := h.items.Get(ctx, basketID, productID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(current) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("Basket '%d' already includes Product '%d'. Please update the quantity instead.", basketID, productID),
		})
	}

	items, err := h.items.Add(ctx, basketID, productID, *req.Quantity)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(items) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "BasketItem was not created"})
	}
	return c.JSON(items[0])
}

// AdjustItem adds the signed quantity to the stored one. Reaching zero or
// below removes the line.
func (h *BasketHandler) AdjustItem(c *fiber.Ctx) error {
	basketID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "Basket", "id")
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return invalidID(c, "Product", "productId")
	}

	var req dto.AdjustBasketItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: requiredMessage([]string{"quantity"}),
		})
	}
	if *req.Quantity > services.MaxQuantity || *req.Quantity < -services.MaxQuantity {
		return quantityTooLarge(c)
	}

	items, removed, err := h.items.AdjustQuantity(c.UserContext(), basketID, productID, *req.Quantity)
	if errors.Is(err, services.ErrQuantityOutOfRange) {
		return quantityTooLarge(c)
	}
	if errors.Is(err, services.ErrBasketItemNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("Basket '%d' does not include Product '%d'.", basketID, productID),
		})
	}
	if err != nil {
		return respondStoreError(c, err)
	}
	if removed != nil {
		return c.JSON(dto.MessageResponse{Message: removed.Message})
	}
	if len(items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("Basket '%d' does not include Product '%d'.", basketID, productID),
		})
	}
	return c.JSON(items[0])
}

func quantityTooLarge(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: fmt.Sprintf(`"quantity" is out of range (limit %d)`, services.MaxQuantity),
	})
}

func (h *BasketHandler) RemoveItem(c *fiber.Ctx) error {
	basketID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "Basket", "id")
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return invalidID(c, "Product", "productId")
	}

	result, err := h.items.Remove(c.UserContext(), basketID, productID)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: result.Message})
}
