package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	*resourceHandler[models.User]
}

func NewUserHandler(users EntityStore[models.User]) *UserHandler {
	return &UserHandler{resourceHandler: newResourceHandler(users, resourceConfig{
		Entity:   "User",
		IDFields: []string{"id", "userId", "user_id"},
		Required: []string{"firstName", "lastName", "email"},
	})}
}

func (h *UserHandler) Register(router fiber.Router) {
	h.register(router)
}
