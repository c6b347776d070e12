package handlers_test

import (
	"fmt"
	"testing"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convPath(conversationID uint) string {
	return fmt.Sprintf("/api/messages/conversation/%d", conversationID)
}

func TestMessageSendAndFetch(t *testing.T) {
	env := setupEnv(t)
	_, tokenAlice := env.createUser(t, "ma@example.com", "user")
	bob, tokenBob := env.createUser(t, "mb@example.com", "user")
	convID := startConversation(t, env, tokenAlice, bob.ID, nil)

	resp := env.request(t, "POST", convPath(convID), tokenAlice, map[string]interface{}{
		"body": "first",
	})
	require.Equal(t, 201, resp.StatusCode)
	resp = env.request(t, "POST", convPath(convID), tokenBob, map[string]interface{}{
		"body": "second",
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "GET", convPath(convID), tokenAlice, nil)
	require.Equal(t, 200, resp.StatusCode)
	messages := decodeList(t, resp)
	require.Len(t, messages, 2)
	// Oldest first.
	assert.Equal(t, "first", messages[0]["body"])
	assert.Equal(t, "second", messages[1]["body"])
}

func TestMessageNonParticipantForbidden(t *testing.T) {
	env := setupEnv(t)
	_, tokenAlice := env.createUser(t, "mc@example.com", "user")
	bob, _ := env.createUser(t, "md@example.com", "user")
	_, tokenMallory := env.createUser(t, "me@example.com", "user")
	convID := startConversation(t, env, tokenAlice, bob.ID, nil)

	resp := env.request(t, "GET", convPath(convID), tokenMallory, nil)
	assert.Equal(t, 403, resp.StatusCode)

	resp = env.request(t, "POST", convPath(convID), tokenMallory, map[string]interface{}{
		"body": "let me in",
	})
	assert.Equal(t, 403, resp.StatusCode)

	var count int64
	env.db.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMessageBodyRequired(t *testing.T) {
	env := setupEnv(t)
	_, tokenAlice := env.createUser(t, "mf@example.com", "user")
	bob, _ := env.createUser(t, "mg@example.com", "user")
	convID := startConversation(t, env, tokenAlice, bob.ID, nil)

	resp := env.request(t, "POST", convPath(convID), tokenAlice, map[string]interface{}{
		"body": "   ",
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMessageMarkRead(t *testing.T) {
	env := setupEnv(t)
	_, tokenAlice := env.createUser(t, "mh@example.com", "user")
	bob, tokenBob := env.createUser(t, "mi@example.com", "user")
	_, tokenMallory := env.createUser(t, "mj@example.com", "user")
	convID := startConversation(t, env, tokenAlice, bob.ID, nil)

	resp := env.request(t, "POST", convPath(convID), tokenAlice, map[string]interface{}{
		"body": "read me",
	})
	require.Equal(t, 201, resp.StatusCode)
	messageID := uint(decodeMap(t, resp)["id"].(float64))
	readPath := fmt.Sprintf("/api/messages/%d/read", messageID)

	// Outsiders cannot mark anything.
	resp = env.request(t, "POST", readPath, tokenMallory, nil)
	assert.Equal(t, 403, resp.StatusCode)

	// Marking your own message is a quiet no-op.
	resp = env.request(t, "POST", readPath, tokenAlice, nil)
	assert.Equal(t, 200, resp.StatusCode)
	var message models.Message
	env.db.First(&message, messageID)
	assert.Nil(t, message.ReadAt)

	resp = env.request(t, "POST", readPath, tokenBob, nil)
	require.Equal(t, 200, resp.StatusCode)
	env.db.First(&message, messageID)
	require.NotNil(t, message.ReadAt)
	firstRead := *message.ReadAt

	// read_at is set once; a second mark does not move it.
	resp = env.request(t, "POST", readPath, tokenBob, nil)
	require.Equal(t, 200, resp.StatusCode)
	env.db.First(&message, messageID)
	assert.Equal(t, firstRead, *message.ReadAt)

	resp = env.request(t, "GET", "/api/conversations/unread-count", tokenBob, nil)
	assert.Equal(t, float64(0), decodeMap(t, resp)["unread"])
}

func TestMessageMarkReadMissing(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "mk@example.com", "user")

	resp := env.request(t, "POST", "/api/messages/9999/read", token, nil)
	assert.Equal(t, 404, resp.StatusCode)
}
