package handlers_test

import (
	"fmt"
	"testing"

	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderOwnProductRejected(t *testing.T) {
	env := setupEnv(t)
	seller, token := env.createUser(t, "owner@example.com", "user")
	product := env.createProduct(t, seller.ID, "Mirror", 25)

	resp := env.request(t, "POST", "/api/orders", token, map[string]interface{}{
		"product_id": product.ID,
	})
	assert.Equal(t, 400, resp.StatusCode)

	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderLifecycle(t *testing.T) {
	env := setupEnv(t)
	seller, tokenSeller := env.createUser(t, "s@example.com", "user")
	_, tokenBuyer := env.createUser(t, "buy@example.com", "user")

	product := env.createProduct(t, seller.ID, "Couch", 200)

	resp := env.request(t, "POST", "/api/orders", tokenBuyer, map[string]interface{}{
		"product_id": product.ID,
	})
	require.Equal(t, 201, resp.StatusCode)
	order := decodeMap(t, resp)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(seller.ID), order["seller_id"])
	orderID := uint(order["id"].(float64))

	// Seller confirms.
	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenSeller, map[string]interface{}{
		"status": "confirmed",
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "confirmed", decodeMap(t, resp)["status"])

	// Buyer may set any valid status too; no transition graph applies.
	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenBuyer, map[string]interface{}{
		"status": "confirmed",
	})
	assert.Equal(t, 200, resp.StatusCode)

	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenBuyer, map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, 200, resp.StatusCode)

	// Even a cancelled order can be reopened.
	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenSeller, map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestOrderStatusValidation(t *testing.T) {
	env := setupEnv(t)
	seller, _ := env.createUser(t, "s2@example.com", "user")
	_, tokenBuyer := env.createUser(t, "b2@example.com", "user")
	product := env.createProduct(t, seller.ID, "Table", 75)

	resp := env.request(t, "POST", "/api/orders", tokenBuyer, map[string]interface{}{
		"product_id": product.ID,
	})
	require.Equal(t, 201, resp.StatusCode)
	orderID := uint(decodeMap(t, resp)["id"].(float64))

	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenBuyer, map[string]interface{}{
		"status": "shipped",
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestOrderStrangerForbidden(t *testing.T) {
	env := setupEnv(t)
	seller, _ := env.createUser(t, "s3@example.com", "user")
	_, tokenBuyer := env.createUser(t, "b3@example.com", "user")
	_, tokenStranger := env.createUser(t, "x3@example.com", "user")
	product := env.createProduct(t, seller.ID, "Shelf", 30)

	resp := env.request(t, "POST", "/api/orders", tokenBuyer, map[string]interface{}{
		"product_id": product.ID,
	})
	require.Equal(t, 201, resp.StatusCode)
	orderID := uint(decodeMap(t, resp)["id"].(float64))

	resp = env.request(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), tokenStranger, map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, 403, resp.StatusCode)
}

func TestOrderMissingProduct(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "b4@example.com", "user")

	resp := env.request(t, "POST", "/api/orders", token, map[string]interface{}{
		"product_id": 9999,
	})
	assert.Equal(t, 404, resp.StatusCode)

	resp = env.request(t, "POST", "/api/orders", token, map[string]interface{}{})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMyOrders(t *testing.T) {
	env := setupEnv(t)
	seller, tokenSeller := env.createUser(t, "s5@example.com", "user")
	_, tokenBuyer := env.createUser(t, "b5@example.com", "user")
	product := env.createProduct(t, seller.ID, "Vase", 12)

	resp := env.request(t, "POST", "/api/orders", tokenBuyer, map[string]interface{}{
		"product_id": product.ID,
	})
	require.Equal(t, 201, resp.StatusCode)

	resp = env.request(t, "GET", "/api/orders/my", tokenBuyer, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// The seller side sees the same order.
	resp = env.request(t, "GET", "/api/orders/my", tokenSeller, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// Split view under /users/me/orders.
	resp = env.request(t, "GET", "/api/users/me/orders", tokenBuyer, nil)
	require.Equal(t, 200, resp.StatusCode)
	split := decodeMap(t, resp)
	assert.Len(t, split["asBuyer"], 1)
	assert.Len(t, split["asSeller"], 0)
}
