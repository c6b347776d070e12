package handlers

import (
	"strconv"
	"time"

	"github.com/bertogassin/OMNIXIUS/internal/ws"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MessageHandler struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

func NewMessageHandler(db *gorm.DB, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{DB: db, Hub: hub}
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

func (h *MessageHandler) isParticipant(conversationID, userID uint) bool {
	var count int64
	h.DB.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count)
	return count > 0
}

// GetMessages - GET /api/messages/conversation/:id
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	conversationID, _ := strconv.Atoi(c.Params("id"))

	if !h.isParticipant(uint(conversationID), user.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No access to this conversation"})
	}

	var messages []models.Message
	err := h.DB.Preload("Sender", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, avatar_path")
	}).Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch messages"})
	}

	return c.JSON(messages)
}

// SendMessage - POST /api/messages/conversation/:id
// Persists the message, bumps the conversation and pushes a notification to
// the other participant.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	conversationID, _ := strconv.Atoi(c.Params("id"))

	if !h.isParticipant(uint(conversationID), user.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No access to this conversation"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	req.Body = utils.Sanitize(req.Body)
	if req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message body is required"})
	}

	message := models.Message{
		ConversationID: uint(conversationID),
		SenderID:       user.ID,
		Body:           req.Body,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not send message"})
	}

	h.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now())

	if h.Hub != nil {
		var other models.ConversationParticipant
		err := h.DB.Where("conversation_id = ? AND user_id != ?", conversationID, user.ID).
			First(&other).Error
		if err == nil {
			h.Hub.NotifyUser(other.UserID, ws.MessageEvent{
				Type:           "message",
				ConversationID: uint(conversationID),
				MessageID:      message.ID,
				SenderID:       user.ID,
				Body:           message.Body,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkRead - POST /api/messages/:id/read
// Marking your own message is a no-op; read_at is set at most once.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)
	id, _ := strconv.Atoi(c.Params("id"))

	var message models.Message
	if err := h.DB.First(&message, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}

	if message.SenderID == user.ID {
		return c.JSON(fiber.Map{"ok": true})
	}

	if !h.isParticipant(message.ConversationID, user.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No access"})
	}

	h.DB.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now())

	return c.JSON(fiber.Map{"ok": true})
}
