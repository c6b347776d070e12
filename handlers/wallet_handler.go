package handlers

import (
	"time"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletHandler struct {
	DB *gorm.DB
}

func NewWalletHandler(db *gorm.DB) *WalletHandler {
	return &WalletHandler{DB: db}
}

// GetBalance - GET /api/users/me/balance. A missing row reads as zero.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var balance models.UserBalance
	if err := h.DB.First(&balance, "user_id = ?", user.ID).Error; err != nil {
		return c.JSON(fiber.Map{"balance": 0.0})
	}
	return c.JSON(fiber.Map{"balance": balance.Balance})
}

// CreditBalance - POST /api/users/me/balance/credit
func (h *WalletHandler) CreditBalance(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil || req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
	}

	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", req.Amount),
			"updated_at": time.Now(),
		}),
	}).Create(&models.UserBalance{UserID: user.ID, Balance: req.Amount}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not credit balance"})
	}

	var balance models.UserBalance
	h.DB.First(&balance, "user_id = ?", user.ID)
	return c.JSON(fiber.Map{"balance": balance.Balance, "credited": req.Amount})
}
