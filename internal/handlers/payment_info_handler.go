package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type PaymentInfoHandler struct {
	*resourceHandler[models.PaymentInfo]
}

func NewPaymentInfoHandler(payments OwnedStore[models.PaymentInfo], users ExistenceChecker) *PaymentInfoHandler {
	return &PaymentInfoHandler{resourceHandler: newOwnedResourceHandler(payments, resourceConfig{
		Entity:          "PaymentInfo",
		IDFields:        []string{"id", "paymentInfoId", "payment_info_id"},
		ImmutableFields: []string{"userId", "user_id"},
		Required:        []string{"userId", "cardNumber", "expiryDate", "cvv", "accountNumber"},
		Parents:         []parentRef{{Field: "userId", Entity: "User", Checker: users}},
	})}
}

func (h *PaymentInfoHandler) Register(router fiber.Router) {
	h.register(router)
}
