package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// respondStoreError is the one place a storage failure becomes an HTTP answer.
// Integrity violations (SQLSTATE class 23) are the caller's fault and go back
// as 400 with the database detail; everything else is a 500.
func respondStoreError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidField) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	var storeErr *services.StoreError
	if !errors.As(err, &storeErr) {
		reportServerError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	body := dto.StoreErrorResponse{
		Error:      storeErr.Error(),
		Code:       storeErr.Code,
		Detail:     storeErr.Detail,
		Table:      storeErr.Table,
		Constraint: storeErr.Constraint,
		Column:     storeErr.Column,
	}
	if storeErr.Kind == services.KindIntegrity {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	reportServerError(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func reportServerError(c *fiber.Ctx, err error) {
	slog.ErrorContext(c.UserContext(), "request failed with server error",
		"method", c.Method(), "path", c.Path(), "error", err.Error())
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}
