package handlers

import (
	"time"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ConversationHandler struct {
	DB *gorm.DB
}

func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{DB: db}
}

// CreateConversationRequest defines the payload for starting a dialog.
type CreateConversationRequest struct {
	UserID    uint  `json:"user_id"`
	ProductID *uint `json:"product_id"`
}

// GetMyConversations - GET /api/conversations
// Each entry carries the last message, unread count, the other participant
// and the product the dialog is about (if any).
func (h *ConversationHandler) GetMyConversations(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	type convRow struct {
		ID          uint      `json:"id"`
		ProductID   *uint     `json:"product_id"`
		UpdatedAt   time.Time `json:"updated_at"`
		LastMessage *string   `json:"last_message"`
		Unread      int64     `json:"unread"`
	}

	var rows []convRow
	err := h.DB.Raw(`
		SELECT c.id, c.product_id, c.updated_at,
			(SELECT body FROM messages WHERE conversation_id = c.id ORDER BY created_at DESC LIMIT 1) as last_message,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.sender_id != ? AND m.read_at IS NULL) as unread
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = ?
		ORDER BY c.updated_at DESC
	`, user.ID, user.ID).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch conversations"})
	}

	list := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		var other struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		h.DB.Raw(`
			SELECT u.id, u.name, u.email FROM users u
			JOIN conversation_participants cp ON cp.user_id = u.id
			WHERE cp.conversation_id = ? AND u.id != ?
		`, row.ID, user.ID).Scan(&other)

		entry := fiber.Map{
			"id":           row.ID,
			"product_id":   row.ProductID,
			"updated_at":   row.UpdatedAt,
			"last_message": row.LastMessage,
			"unread":       row.Unread,
			"other":        other,
			"product":      nil,
		}
		if row.ProductID != nil {
			var product models.Product
			if err := h.DB.Select("id, title").First(&product, *row.ProductID).Error; err == nil {
				entry["product"] = fiber.Map{"id": product.ID, "title": product.Title}
			}
		}
		list = append(list, entry)
	}

	return c.JSON(list)
}

// CreateConversation - POST /api/conversations
// Find-or-create: at most one conversation exists per (pair of users,
// product) tuple, including the product = none case. Creation commits the
// conversation and both participant rows in one transaction.
func (h *ConversationHandler) CreateConversation(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var req CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.UserID == 0 || req.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid user_id of another user required"})
	}

	var other models.User
	if err := h.DB.First(&other, req.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var existing struct{ ID uint }
	h.DB.Raw(`
		SELECT c.id FROM conversations c
		JOIN conversation_participants cp1 ON cp1.conversation_id = c.id AND cp1.user_id = ?
		JOIN conversation_participants cp2 ON cp2.conversation_id = c.id AND cp2.user_id = ?
		WHERE (c.product_id IS NULL AND ? IS NULL) OR (c.product_id = ?)
		LIMIT 1
	`, user.ID, other.ID, req.ProductID, req.ProductID).Scan(&existing)

	convID := existing.ID
	if convID == 0 {
		tx := h.DB.Begin()

		conversation := models.Conversation{ProductID: req.ProductID}
		if err := tx.Create(&conversation).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create conversation"})
		}

		participants := []models.ConversationParticipant{
			{ConversationID: conversation.ID, UserID: user.ID},
			{ConversationID: conversation.ID, UserID: other.ID},
		}
		if err := tx.Create(&participants).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add participants"})
		}

		if err := tx.Commit().Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create conversation"})
		}
		convID = conversation.ID
	}

	var conversation models.Conversation
	h.DB.First(&conversation, convID)
	return c.JSON(conversation)
}

// GetUnreadCount - GET /api/conversations/unread-count
func (h *ConversationHandler) GetUnreadCount(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var unread int64
	h.DB.Raw(`
		SELECT COUNT(*) FROM messages m
		JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id AND cp.user_id = ?
		WHERE m.sender_id != ? AND m.read_at IS NULL
	`, user.ID, user.ID).Scan(&unread)

	return c.JSON(fiber.Map{"unread": unread})
}
