package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserHandler(db *gorm.DB, cfg *config.Config) *UserHandler {
	return &UserHandler{DB: db, Cfg: cfg}
}

// UpdateMeRequest - profile fields a user may change about themselves.
type UpdateMeRequest struct {
	Name       *string  `json:"name"`
	Profession *string  `json:"profession"`
	Latitude   *float64 `json:"lat"`
	Longitude  *float64 `json:"lng"`
}

// Me - GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(utils.CurrentUser(c).Public())
}

// UpdateMe - PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.Sanitize(*req.Name)
		if len(name) > 200 {
			name = name[:200]
		}
		updates["name"] = name
	}
	if req.Profession != nil {
		updates["profession"] = utils.Sanitize(*req.Profession)
	}
	if req.Latitude != nil && *req.Latitude >= -90 && *req.Latitude <= 90 {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil && *req.Longitude >= -180 && *req.Longitude <= 180 {
		updates["longitude"] = *req.Longitude
	}

	if len(updates) > 0 {
		if err := h.DB.Model(user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update profile"})
		}
	}

	var fresh models.User
	h.DB.First(&fresh, user.ID)
	return c.JSON(fresh.Public())
}

// GetMyOrders - GET /api/users/me/orders
// Orders split by role in the transaction.
func (h *UserHandler) GetMyOrders(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	type orderRow struct {
		ID        uint      `json:"id"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
		Title     string    `json:"title"`
		Price     float64   `json:"price"`
		ImagePath string    `json:"image_path"`
		OtherName string    `json:"other_name"`
	}

	var asBuyer []orderRow
	h.DB.Raw(`
		SELECT o.id, o.status, o.created_at, p.title, p.price, p.image_path, u.name as other_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.seller_id
		WHERE o.buyer_id = ?
		ORDER BY o.created_at DESC
	`, user.ID).Scan(&asBuyer)

	var asSeller []orderRow
	h.DB.Raw(`
		SELECT o.id, o.status, o.created_at, p.title, p.price, p.image_path, u.name as other_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.buyer_id
		WHERE o.seller_id = ?
		ORDER BY o.created_at DESC
	`, user.ID).Scan(&asSeller)

	if asBuyer == nil {
		asBuyer = []orderRow{}
	}
	if asSeller == nil {
		asSeller = []orderRow{}
	}

	return c.JSON(fiber.Map{"asBuyer": asBuyer, "asSeller": asSeller})
}

// UploadAvatar - POST /api/users/me/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	rel, err := saveUpload(c, h.Cfg, "avatar", "avatars")
	if err != nil {
		if errors.Is(err, errNoFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Avatar file is required"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.DB.Model(user).Update("avatar_path", rel).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save avatar"})
	}

	return c.JSON(fiber.Map{"avatar_path": rel})
}

// GetPublicProfile - GET /api/users/:id (public)
func (h *UserHandler) GetPublicProfile(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"avatar_path": user.AvatarPath,
		"verified":    user.EmailVerified,
	})
}

// Heartbeat - POST /api/users/me/heartbeat
// Keeps the professional "online" marker fresh.
func (h *UserHandler) Heartbeat(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	now := time.Now()
	if err := h.DB.Model(user).Update("last_seen_at", now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update presence"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
