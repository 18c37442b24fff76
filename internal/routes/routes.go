package routes

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Addresses   *handlers.AddressHandler
	Baskets     *handlers.BasketHandler
	Orders      *handlers.OrderHandler
	PaymentInfo *handlers.PaymentInfoHandler
	Products    *handlers.ProductHandler
}

// Setup mounts every route. limiterStorage may be nil for in-memory counters.
func Setup(app *fiber.App, cfg *config.Config, h Handlers, limiterStorage fiber.Storage) {
	// Health sits outside the rate-limited group.
	app.Get("/api/health", h.Health.Check)

	api := app.Group(cfg.APIPrefix, middleware.RateLimit(cfg, limiterStorage))

	users := api.Group("/users")
	users.Post("/login", h.Auth.Login)
	h.Users.Register(users)

	h.Addresses.Register(api.Group("/addresses"))
	h.Baskets.Register(api.Group("/baskets"))
	h.Orders.Register(api.Group("/orders"))
	h.PaymentInfo.Register(api.Group("/paymentinfo"))
	h.Products.Register(api.Group("/products"))
}
