package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	*resourceHandler[models.Product]
}

func NewProductHandler(products EntityStore[models.Product]) *ProductHandler {
	return &ProductHandler{resourceHandler: newResourceHandler(products, resourceConfig{
		Entity:   "Product",
		IDFields: []string{"id", "productId", "product_id"},
		Required: []string{"name", "brand", "price", "quantity"},
	})}
}

func (h *ProductHandler) Register(router fiber.Router) {
	h.register(router)
}
