package handlers

import (
	"strings"
	"time"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/internal/throttle"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Attempts *throttle.Store
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, attempts *throttle.Store) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Attempts: attempts}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=200"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	req.Email = strings.ToLower(utils.Sanitize(req.Email))
	req.Name = utils.Sanitize(req.Name)
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	verifyToken := utils.NewSecretToken()
	user := models.User{
		Email:            req.Email,
		Password:         hash,
		Name:             req.Name,
		Role:             "user",
		EmailVerifyToken: &verifyToken,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}

	// TODO: send verification email with verifyToken once SMTP is wired up

	token, err := utils.GenerateToken(user.ID, h.Cfg.JWTSecret, h.Cfg.JWTExpires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not issue token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user.Public(),
		"token": token,
	})
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	addr := c.IP()
	if h.Attempts.Blocked(addr) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many login attempts, try again later"})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	req.Email = strings.ToLower(utils.Sanitize(req.Email))
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	err := h.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		h.Attempts.Fail(addr)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	h.Attempts.Reset(addr)

	token, err := utils.GenerateToken(user.ID, h.Cfg.JWTSecret, h.Cfg.JWTExpires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not issue token"})
	}

	return c.JSON(fiber.Map{
		"user":  user.Public(),
		"token": token,
	})
}

// Logout - POST /api/auth/logout. Tokens are stateless; the client drops it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// ConfirmEmail - GET /api/auth/confirm-email?token=...
func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token required"})
	}

	res := h.DB.Model(&models.User{}).
		Where("email_verify_token = ?", token).
		Updates(map[string]interface{}{"email_verified": true, "email_verify_token": nil})
	if res.Error != nil || res.RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// ForgotPassword - POST /api/auth/forgot-password. Always answers ok so the
// endpoint cannot be used to probe which emails are registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	email := strings.ToLower(utils.Sanitize(req.Email))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email required"})
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.JSON(fiber.Map{"ok": true})
	}

	resetToken := utils.NewSecretToken()
	expires := time.Now().Add(time.Hour)
	h.DB.Model(&user).Updates(map[string]interface{}{
		"reset_token":         resetToken,
		"reset_token_expires": expires,
	})

	// TODO: send password reset email with resetToken once SMTP is wired up

	return c.JSON(fiber.Map{"ok": true})
}

// ResetPassword - POST /api/auth/reset-password. Consumes the token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	err := h.DB.Where("reset_token = ? AND reset_token_expires > ?", req.Token, time.Now()).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	h.DB.Model(&user).Updates(map[string]interface{}{
		"password":            hash,
		"reset_token":         nil,
		"reset_token_expires": nil,
	})

	return c.JSON(fiber.Map{"ok": true})
}
