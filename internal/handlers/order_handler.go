package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler leaves address, basket and payment references to the
// foreign keys; a dangling one comes back as an integrity error.
type OrderHandler struct {
	*resourceHandler[models.Order]
}

func NewOrderHandler(orders EntityStore[models.Order]) *OrderHandler {
	return &OrderHandler{resourceHandler: newResourceHandler(orders, resourceConfig{
		Entity:   "Order",
		IDFields: []string{"id", "orderId", "order_id"},
		Required: []string{"addressId", "basketId", "paymentInfoId"},
	})}
}

func (h *OrderHandler) Register(router fiber.Router) {
	h.register(router)
}
