package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"productpanel/internal/models"
	"productpanel/internal/repositories"
	"productpanel/internal/services"
	"productpanel/internal/views"
	"productpanel/pkg/validator"
)

// action identifies one of the admin panel operations. Dispatch happens over
// this closed set; anything outside it gets the invalid-action response.
type action string

const (
	actionRead    action = "read"
	actionSearch  action = "search"
	actionGetOne  action = "getOne"
	actionGetForm action = "getForm"
	actionCreate  action = "create"
	actionUpdate  action = "update"
	actionDelete  action = "delete"
)

// ProductHandler handles HTTP requests for the product admin panel.
type ProductHandler struct {
	service   *services.ProductService
	validator *validator.CustomValidator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the panel endpoint with the Fiber app. The client
// drives everything through one URL and an action query parameter.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleAction)
	router.Post("/products", h.HandleAction)
}

// HandleAction dispatches the request on its action query parameter.
func (h *ProductHandler) HandleAction(c *fiber.Ctx) error {
	switch action(c.Query("action", string(actionRead))) {
	case actionRead:
		return h.handleRead(c)
	case actionSearch:
		return h.handleSearch(c)
	case actionGetOne:
		return h.handleGetOne(c)
	case actionGetForm:
		return h.handleGetForm(c)
	case actionCreate:
		return h.handleCreate(c)
	case actionUpdate:
		return h.handleUpdate(c)
	case actionDelete:
		return h.handleDelete(c)
	default:
		return c.JSON(fiber.Map{"success": false, "message": "Invalid action"})
	}
}

func (h *ProductHandler) handleRead(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	result, err := h.service.ListPage(page)
	if err != nil {
		logrus.Errorf("Failed to list products: %v", err)
		return storeFailure(c, "Failed to load products")
	}
	return h.renderListing(c, result, "")
}

func (h *ProductHandler) handleSearch(c *fiber.Ctx) error {
	searchTerm := c.Query("search")
	if searchTerm == "" {
		return h.handleRead(c)
	}
	page := c.QueryInt("page", 1)

	result, err := h.service.SearchPage(searchTerm, page)
	if err != nil {
		logrus.Errorf("Failed to search products for %q: %v", searchTerm, err)
		return storeFailure(c, "Failed to load products")
	}
	return h.renderListing(c, result, searchTerm)
}

func (h *ProductHandler) handleGetOne(c *fiber.Ctx) error {
	id := c.QueryInt("id")
	if id <= 0 {
		return c.JSON(fiber.Map{"success": false, "message": "Product ID required"})
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		logrus.Errorf("Failed to get product %d: %v", id, err)
		return storeFailure(c, "Failed to load product")
	}

	formHTML, err := views.RenderForm(product)
	if err != nil {
		logrus.Errorf("Failed to render form for product %d: %v", id, err)
		return storeFailure(c, "Failed to load product")
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"formHtml": formHTML,
		"product":  product,
	})
}

func (h *ProductHandler) handleGetForm(c *fiber.Ctx) error {
	formHTML, err := views.RenderForm(nil)
	if err != nil {
		logrus.Errorf("Failed to render empty form: %v", err)
		return storeFailure(c, "Failed to load form")
	}
	return c.JSON(fiber.Map{"success": true, "formHtml": formHTML})
}

func (h *ProductHandler) handleCreate(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if fieldErrors := h.validator.Validate(&input); len(fieldErrors) > 0 {
		return c.JSON(fiber.Map{"success": false, "errors": fieldErrors})
	}

	if err := h.service.CreateProduct(&input); err != nil {
		logrus.Errorf("Failed to create product: %v", err)
		return storeFailure(c, "Failed to create product")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product created successfully"})
}

func (h *ProductHandler) handleUpdate(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if input.ID == 0 {
		return c.JSON(fiber.Map{"success": false, "message": "Product ID required"})
	}

	if fieldErrors := h.validator.Validate(&input); len(fieldErrors) > 0 {
		return c.JSON(fiber.Map{"success": false, "errors": fieldErrors})
	}

	if err := h.service.UpdateProduct(input.ID, &input); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		logrus.Errorf("Failed to update product %d: %v", input.ID, err)
		return storeFailure(c, "Failed to update product")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product updated successfully"})
}

func (h *ProductHandler) handleDelete(c *fiber.Ctx) error {
	id := c.QueryInt("id")
	if id <= 0 {
		return c.JSON(fiber.Map{"success": false, "message": "Product ID required"})
	}

	if err := h.service.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		logrus.Errorf("Failed to delete product %d: %v", id, err)
		return storeFailure(c, "Failed to delete product")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

// renderListing renders the table and pagination fragments and wraps them in
// the listing envelope. searchTerm is echoed back when non-empty.
func (h *ProductHandler) renderListing(c *fiber.Ctx, page *services.ProductPage, searchTerm string) error {
	tableHTML, err := views.RenderTable(page.Products, searchTerm)
	if err != nil {
		logrus.Errorf("Failed to render products table: %v", err)
		return storeFailure(c, "Failed to load products")
	}
	paginationHTML, err := views.RenderPagination(page.CurrentPage, page.TotalPages)
	if err != nil {
		logrus.Errorf("Failed to render pagination: %v", err)
		return storeFailure(c, "Failed to load products")
	}

	response := fiber.Map{
		"success":        true,
		"tableHtml":      tableHTML,
		"paginationHtml": paginationHTML,
		"currentPage":    page.CurrentPage,
		"totalPages":     page.TotalPages,
		"totalProducts":  page.TotalProducts,
	}
	if searchTerm != "" {
		response["searchTerm"] = searchTerm
	}
	return c.JSON(response)
}

func storeFailure(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
