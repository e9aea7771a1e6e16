package handlers

import (
	"errors"

	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MsgProductNotFound is returned for well-formed ids with no matching product.
const MsgProductNotFound = "Product not found"

// MsgProductDeleted confirms a deletion.
const MsgProductDeleted = "Prducto eliminado"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", middleware.Gate(validation.IDRules), h.HandleGetProductByID)
	productRoutes.Post("/", middleware.Gate(validation.CreateRules), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.Gate(validation.UpdateRules), h.HandleUpdateProduct)
	productRoutes.Patch("/:id", middleware.Gate(validation.IDRules), h.HandleToggleAvailability)
	productRoutes.Delete("/:id", middleware.Gate(validation.IDRules), h.HandleDeleteProduct)
}

// HandleGetProducts lists every product, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return h.fail(c, 0, err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a product from a validated name and price.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in := middleware.ValidatedInput(c)
	product, err := h.service.CreateProduct(c.UserContext(),
		validation.Text(in.BodyField("name")),
		validation.Number(in.BodyField("price")),
	)
	if err != nil {
		return h.fail(c, 0, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces name, price and availability.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	in := middleware.ValidatedInput(c)
	availability, _ := validation.Bool(in.BodyField("availability"))

	product, err := h.service.UpdateProduct(c.UserContext(), id, models.ProductFields{
		Name:         validation.Text(in.BodyField("name")),
		Price:        validation.Number(in.BodyField("price")),
		Availability: availability,
	})
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability of a product.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, id, err)
	}
	return c.JSON(fiber.Map{"data": MsgProductDeleted})
}

// productID reads the :id parameter. The Gate has already checked it, so a
// failure here means the route was registered without one.
func productID(c *fiber.Ctx) (int64, error) {
	id, err := validation.ParseID(middleware.ValidatedInput(c).Param("id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, validation.MsgInvalidID)
	}
	return id, nil
}

func (h *ProductHandler) fail(c *fiber.Ctx, id int64, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": MsgProductNotFound})
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	}
	if id != 0 {
		fields = append(fields, zap.Int64("product_id", id))
	}
	h.logger.Error("product operation failed", fields...)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": middleware.MsgInternalError})
}
