package handlers

import (
	"errors"
	"strconv"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{DB: db, Cfg: cfg}
}

// CreateProductRequest
type CreateProductRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	Category    string  `json:"category" form:"category" validate:"required,max=50"`
	Location    string  `json:"location" form:"location" validate:"max=200"`
}

// UpdateProductRequest carries only the fields present in the request body.
type UpdateProductRequest struct {
	Title       *string  `json:"title" form:"title"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price"`
	Category    *string  `json:"category" form:"category"`
	Location    *string  `json:"location" form:"location"`
}

// GetAllProducts - GET /api/products (public)
// Filters combine with AND semantics; default order is newest first.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	query := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, avatar_path, email")
	}).Model(&models.Product{})

	if q := utils.Sanitize(c.Query("q")); q != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if category := utils.Sanitize(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if location := utils.Sanitize(c.Query("location")); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if min := c.Query("minPrice"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if max := c.Query("maxPrice"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(products)
}

// GetCategories - GET /api/products/categories (public)
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	var categories []string
	err := h.DB.Model(&models.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}
	return c.JSON(categories)
}

// GetProduct - GET /api/products/:id (public)
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var product models.Product
	if err := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, avatar_path, email") // email shown for contact
	}).First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(product)
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	req.Title = utils.Sanitize(req.Title)
	req.Description = utils.Sanitize(req.Description)
	req.Category = utils.Sanitize(req.Category)
	req.Location = utils.Sanitize(req.Location)
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	imagePath, err := saveUpload(c, h.Cfg, "image", "products")
	if err != nil && !errors.Is(err, errNoFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := utils.CurrentUser(c)
	product := models.Product{
		SellerID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		ImagePath:   imagePath,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct - PATCH /api/products/:id
// Only the owner or an admin may mutate; untouched fields stay as they are.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	user := utils.CurrentUser(c)
	if product.SellerID != user.ID && user.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.Sanitize(*req.Title)
		if len(title) < 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title must be at least 2 characters"})
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = utils.Sanitize(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be at least 0"})
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		category := utils.Sanitize(*req.Category)
		if category == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category is required"})
		}
		updates["category"] = category
	}
	if req.Location != nil {
		updates["location"] = utils.Sanitize(*req.Location)
	}

	imagePath, err := saveUpload(c, h.Cfg, "image", "products")
	if err != nil && !errors.Is(err, errNoFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if imagePath != "" {
		updates["image_path"] = imagePath
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
		}
	}

	h.DB.First(&product, id)
	return c.JSON(product)
}

// DeleteProduct - DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	user := utils.CurrentUser(c)
	if product.SellerID != user.ID && user.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
