package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// CredentialChecker compares a login attempt against the stored user.
type CredentialChecker interface {
	CredentialsMatch(ctx context.Context, email, password string) (bool, error)
}

type AuthHandler struct {
	users CredentialChecker
}

func NewAuthHandler(users CredentialChecker) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login answers 200 either way; the message says whether the pair matched.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if !isPresent(req.Email) || !isPresent(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: requiredMessage([]string{"email", "password"}),
		})
	}

	ok, err := h.users.CredentialsMatch(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondStoreError(c, err)
	}
	if !ok {
		return c.JSON(dto.MessageResponse{Message: dto.LoginMismatch})
	}
	return c.JSON(dto.MessageResponse{Message: dto.LoginSucceeded})
}
