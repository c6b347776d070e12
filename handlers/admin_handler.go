package handlers

import (
	"strconv"
	"time"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// GetStats - GET /api/admin/stats
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	var users, products, orders, reportsPending int64
	h.DB.Model(&models.User{}).Count(&users)
	h.DB.Model(&models.Product{}).Count(&products)
	h.DB.Model(&models.Order{}).Count(&orders)
	h.DB.Model(&models.Report{}).Where("status = ?", "pending").Count(&reportsPending)

	return c.JSON(fiber.Map{
		"users":           users,
		"products":        products,
		"orders":          orders,
		"reports_pending": reportsPending,
	})
}

// CreateReport - POST /api/reports (any authenticated user)
func (h *AdminHandler) CreateReport(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var req struct {
		ReportedType string `json:"reported_type" validate:"required,oneof=user product message"`
		ReportedID   string `json:"reported_id" validate:"required"`
		Reason       string `json:"reason" validate:"required,max=200"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	req.Reason = utils.Sanitize(req.Reason)
	req.Description = utils.Sanitize(req.Description)
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report := models.Report{
		ReporterID:   user.ID,
		ReportedType: req.ReportedType,
		ReportedID:   req.ReportedID,
		Reason:       req.Reason,
		Description:  req.Description,
		Status:       "pending",
	}
	if err := h.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create report"})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports - GET /api/admin/reports?status=
func (h *AdminHandler) GetReports(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Report{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Order("created_at desc").Limit(100).Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reports"})
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// GetReport - GET /api/admin/reports/:id
func (h *AdminHandler) GetReport(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var report models.Report
	if err := h.DB.First(&report, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	return c.JSON(report)
}

// AssignReport - POST /api/admin/reports/:id/assign
func (h *AdminHandler) AssignReport(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req struct {
		AssignedTo uint `json:"assigned_to"`
	}
	if err := c.BodyParser(&req); err != nil || req.AssignedTo == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "assigned_to required"})
	}

	res := h.DB.Model(&models.Report{}).Where("id = ?", id).Update("assigned_to", req.AssignedTo)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not assign report"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ResolveReport - POST /api/admin/reports/:id/resolve
func (h *AdminHandler) ResolveReport(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req struct {
		Resolution string `json:"resolution"`
		Status     string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "resolution required"})
	}
	if req.Status == "" {
		req.Status = "resolved"
	}

	res := h.DB.Model(&models.Report{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      req.Status,
		"resolution":  utils.Sanitize(req.Resolution),
		"resolved_at": time.Now(),
	})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not resolve report"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetUser - GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var ban models.Ban
	var banned interface{}
	err := h.DB.Where("user_id = ? AND lifted_at IS NULL", user.ID).
		Order("created_at desc").
		First(&ban).Error
	if err == nil {
		banned = fiber.Map{"reason": ban.Reason, "expires_at": ban.ExpiresAt}
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
		"banned":     banned,
	})
}

// BanUser - POST /api/admin/users/:id/ban
func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	admin := utils.CurrentUser(c)
	id, _ := strconv.Atoi(c.Params("id"))

	var target models.User
	if err := h.DB.First(&target, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req struct {
		Reason    string     `json:"reason"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.BodyParser(&req); err != nil || req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reason required"})
	}

	ban := models.Ban{
		UserID:    target.ID,
		BannedBy:  admin.ID,
		Reason:    utils.Sanitize(req.Reason),
		ExpiresAt: req.ExpiresAt,
	}
	if err := h.DB.Create(&ban).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not ban user"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// UnbanUser - POST /api/admin/users/:id/unban
func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	admin := utils.CurrentUser(c)
	id, _ := strconv.Atoi(c.Params("id"))

	res := h.DB.Model(&models.Ban{}).
		Where("user_id = ? AND lifted_at IS NULL", id).
		Updates(map[string]interface{}{"lifted_at": time.Now(), "lifted_by": admin.ID})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not unban user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active ban"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
