package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type AddressHandler struct {
	*resourceHandler[models.Address]
}

func NewAddressHandler(addresses OwnedStore[models.Address], users ExistenceChecker) *AddressHandler {
	return &AddressHandler{resourceHandler: newOwnedResourceHandler(addresses, resourceConfig{
		Entity:          "Address",
		IDFields:        []string{"id", "addressId", "address_id"},
		ImmutableFields: []string{"userId", "user_id"},
		Required:        []string{"userId", "line1", "postalCode", "country"},
		Parents:         []parentRef{{Field: "userId", Entity: "User", Checker: users}},
	})}
}

func (h *AddressHandler) Register(router fiber.Router) {
	h.register(router)
}
