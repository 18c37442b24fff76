package handlers

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ExistenceChecker answers whether a row with the given id exists.
type ExistenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// EntityStore is the data access a resource handler needs for one entity.
type EntityStore[T any] interface {
	ExistenceChecker
	GetByID(ctx context.Context, id int64) ([]T, error)
	Create(ctx context.Context, fields map[string]any) ([]T, error)
	Update(ctx context.Context, id int64, fields map[string]any) ([]T, error)
	Delete(ctx context.Context, id int64) (*services.DeleteResult, error)
}

// OwnedStore is an EntityStore whose rows belong to a user.
type OwnedStore[T any] interface {
	EntityStore[T]
	ListForUser(ctx context.Context, userID int64) ([]T, error)
}

// parentRef names a body field that must point at an existing row before a create.
type parentRef struct {
	Field   string
	Entity  string
	Checker ExistenceChecker
}

type resourceConfig struct {
	Entity string
	// IDFields are dropped from create and update bodies.
	IDFields []string
	// ImmutableFields are dropped from update bodies only.
	ImmutableFields []string
	Required        []string
	Parents         []parentRef
}

// resourceHandler serves GET /:id, POST /new, PUT /:id, DELETE /:id and,
// when listForUser is set, GET /user/:id for one entity.
type resourceHandler[T any] struct {
	store       EntityStore[T]
	listForUser func(ctx context.Context, userID int64) ([]T, error)
	cfg         resourceConfig
}

func newResourceHandler[T any](store EntityStore[T], cfg resourceConfig) *resourceHandler[T] {
	return &resourceHandler[T]{store: store, cfg: cfg}
}

func newOwnedResourceHandler[T any](store OwnedStore[T], cfg resourceConfig) *resourceHandler[T] {
	return &resourceHandler[T]{store: store, listForUser: store.ListForUser, cfg: cfg}
}

func (h *resourceHandler[T]) register(router fiber.Router) {
	if h.listForUser != nil {
		router.Get("/user/:id", h.ListForUser)
	}
	router.Post("/new", h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}

func (h *resourceHandler[T]) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, h.cfg.Entity, "id")
	}

	rows, err := h.store.GetByID(c.UserContext(), id)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("%s '%d' not found", h.cfg.Entity, id),
		})
	}
	return c.JSON(rows[0])
}

func (h *resourceHandler[T]) ListForUser(c *fiber.Ctx) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "User", "id")
	}

	rows, err := h.listForUser(c.UserContext(), userID)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("No %s records found for User with ID '%d'", h.cfg.Entity, userID),
		})
	}
	return c.JSON(rows)
}

func (h *resourceHandler[T]) Create(c *fiber.Ctx) error {
	fields, err := parseFields(c)
	if err != nil {
		return invalidBody(c)
	}
	stripFields(fields, h.cfg.IDFields)

	if !hasAll(fields, h.cfg.Required) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: requiredMessage(h.cfg.Required),
		})
	}

	ctx := c.UserContext()
	for _, parent := range h.cfg.Parents {
		raw := fields[parent.Field]
		exists := false
		if parentID, ok := idFromValue(raw); ok {
			exists, err = parent.Checker.Exists(ctx, parentID)
			if err != nil {
				return respondStoreError(c, err)
			}
		}
		if !exists {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: parentMissingMessage(parent.Entity, raw),
			})
		}
	}

	rows, err := h.store.Create(ctx, fields)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("%s was not created", h.cfg.Entity),
		})
	}
	return c.Status(fiber.StatusOK).JSON(rows[0])
}

func (h *resourceHandler[T]) Update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, h.cfg.Entity, "id")
	}

	fields, err := parseFields(c)
	if err != nil {
		return invalidBody(c)
	}
	stripFields(fields, h.cfg.IDFields)
	stripFields(fields, h.cfg.ImmutableFields)

	ctx := c.UserContext()
	existing, err := h.store.GetByID(ctx, id)
	if err != nil {
		return respondStoreError(c, err)
	}
	if len(existing) == 0 {
		return h.notExisting(c, id)
	}

	rows, err := h.store.Update(ctx, id, fields)
	if err != nil {
		return respondStoreError(c, err)
	}
	// Removed between the check and the update.
	if len(rows) == 0 {
		return h.notExisting(c, id)
	}
	return c.JSON(rows[0])
}

func (h *resourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, h.cfg.Entity, "id")
	}

	result, err := h.store.Delete(c.UserContext(), id)
	if err != nil {
		return respondStoreError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: result.Message})
}

func (h *resourceHandler[T]) notExisting(c *fiber.Ctx, id int64) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: fmt.Sprintf("%s with ID '%d' does not exist.", h.cfg.Entity, id),
	})
}
