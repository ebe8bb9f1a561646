package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// Filter routes are registered before the :id route so they take precedence.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/category/:category", h.HandleListByCategory)
	products.Get("/by-color/:color", h.HandleListByColor)
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", h.HandleCreateProduct)
	products.Post("/:id/variants", h.HandleAddVariant)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns all products, or the sample set if the store is down.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListProducts(c.Context()))
}

// HandleListByCategory returns products filtered by category.
func (h *ProductHandler) HandleListByCategory(c *fiber.Ctx) error {
	return c.JSON(h.service.ListByCategory(c.Context(), c.Params("category")))
}

// HandleListByColor returns products containing a variant of the given color.
func (h *ProductHandler) HandleListByColor(c *fiber.Ctx) error {
	return c.JSON(h.service.ListByColor(c.Context(), c.Params("color")))
}

// HandleGetProduct returns a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct validates and creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// addVariantRequest uses a pointer for stock so that an explicit 0 is
// distinguishable from an absent field.
type addVariantRequest struct {
	Color string   `json:"color"`
	Size  string   `json:"size"`
	Stock *float64 `json:"stock"`
}

// HandleAddVariant appends a variant to a product's variants sequence.
func (h *ProductHandler) HandleAddVariant(c *fiber.Ctx) error {
	var req addVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.Color == "" || req.Size == "" || req.Stock == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Color, size, and stock are required",
		})
	}

	stockCount := int(*req.Stock)
	variant := models.Variant{
		Color: req.Color,
		Size:  req.Size,
		Stock: &stockCount,
	}
	product, err := h.service.AddVariant(c.Context(), c.Params("id"), variant)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct applies a partial or full update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(c.Context(), c.Params("id"), update)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its owned variants.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
		"product": product,
	})
}

// writeError maps repository and validation errors to the HTTP responses
// shared by the add-variant and update routes.
func (h *ProductHandler) writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	if errors.Is(err, repositories.ErrInvalidProductID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product ID",
		})
	}
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Message,
		})
	}
	log.Printf("Unexpected store error: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
