package handlers

import (
	"strconv"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db}
}

type CreateOrderRequest struct {
	ProductID uint `json:"product_id"`
}

type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// CreateOrder - POST /api/orders
// The seller is snapshotted from the product owner at creation time.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product_id required"})
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	user := utils.CurrentUser(c)
	if product.SellerID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot order your own product"})
	}

	order := models.Order{
		ProductID: product.ID,
		BuyerID:   user.ID,
		SellerID:  product.SellerID,
		Status:    "pending",
	}
	if err := h.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrder - PATCH /api/orders/:id
// Buyer, seller, or admin may set any of the four statuses.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	user := utils.CurrentUser(c)
	canUpdate := order.BuyerID == user.ID || order.SellerID == user.ID || user.Role == "admin"
	if !canUpdate {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if !models.ValidOrderStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
	}

	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update order"})
	}

	h.DB.First(&order, id)
	return c.JSON(order)
}

// GetMyOrders - GET /api/orders/my
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var orders []models.Order
	err := h.DB.Preload("Product").
		Preload("Buyer", func(db *gorm.DB) *gorm.DB { return db.Select("id, name, avatar_path") }).
		Preload("Seller", func(db *gorm.DB) *gorm.DB { return db.Select("id, name, avatar_path") }).
		Where("buyer_id = ? OR seller_id = ?", user.ID, user.ID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}

	return c.JSON(orders)
}
