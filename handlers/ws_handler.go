package handlers

import (
	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/internal/ws"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WSHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
	Hub *ws.Hub
}

func NewWSHandler(db *gorm.DB, cfg *config.Config, hub *ws.Hub) *WSHandler {
	return &WSHandler{DB: db, Cfg: cfg, Hub: hub}
}

// Upgrade authenticates the connection. Browsers cannot set headers on
// websocket dials, so the bearer token arrives as a query parameter.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token provided"})
	}
	userID, err := utils.ParseToken(token, h.Cfg.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is invalid"})
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	c.Locals("user_id", user.ID)
	return c.Next()
}

// Handler returns the websocket handler function
func (h *WSHandler) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("user_id").(uint)
		if !ok || userID == 0 {
			conn.Close()
			return
		}

		client := &ws.Client{
			Hub:    h.Hub,
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: userID,
		}

		client.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
