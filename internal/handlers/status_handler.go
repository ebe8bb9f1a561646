package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalog/internal/services"
)

// StatusHandler serves the root status summary.
type StatusHandler struct {
	service *services.CatalogService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(service *services.CatalogService) *StatusHandler {
	return &StatusHandler{
		service: service,
	}
}

// RegisterRoutes registers the root route with the Fiber app.
func (h *StatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleStatus)
}

// HandleStatus reports a running message, live store connectivity, and the
// total product count (sample-set size when the store is unreachable or empty).
func (h *StatusHandler) HandleStatus(c *fiber.Ctx) error {
	summary := h.service.Summary(c.Context())

	database := "Disconnected"
	if summary.DatabaseConnected {
		database = "Connected"
	}

	return c.JSON(fiber.Map{
		"message":       "E-commerce Catalog System is running!",
		"status":        "Server is active",
		"database":      database,
		"totalProducts": summary.TotalProducts,
		"featuredEndpoints": fiber.Map{
			"GET /products":                      "Get all products",
			"GET /products/category/Electronics": "Get products by category",
			"GET /products/by-color/Blue":        "Get products by color variant",
			"POST /products":                     "Create new product",
			"POST /products/:id/variants":        "Add variant to product",
		},
		"examplePayload": fiber.Map{
			"createProduct": fiber.Map{
				"name":     "Product Name",
				"price":    100,
				"category": "Electronics",
				"variants": []fiber.Map{
					{"color": "Black", "size": "M", "stock": 10},
				},
			},
			"addVariant": fiber.Map{
				"color": "Red",
				"size":  "L",
				"stock": 5,
			},
		},
	})
}
