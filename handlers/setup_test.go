package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/handlers"
	"github.com/bertogassin/OMNIXIUS/internal/throttle"
	"github.com/bertogassin/OMNIXIUS/models"
	"github.com/bertogassin/OMNIXIUS/router"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// setupEnv builds the full route table over a throwaway SQLite file.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		DBPath:            filepath.Join(dir, "test.db"),
		JWTSecret:         "test-secret",
		JWTExpires:        time.Hour,
		BcryptCost:        4, // keep tests fast
		MaxLoginAttempts:  5,
		LoginWindow:       15 * time.Minute,
		UploadDir:         filepath.Join(dir, "uploads"),
		MaxFileSize:       5 * 1024 * 1024,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
	}

	db, err := config.Connect(cfg.DBPath, true)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db, zap.NewNop()))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})

	r := &router.Router{
		Auth:          handlers.NewAuthHandler(db, cfg, throttle.NewStore(cfg.MaxLoginAttempts, cfg.LoginWindow)),
		Users:         handlers.NewUserHandler(db, cfg),
		Products:      handlers.NewProductHandler(db, cfg),
		Orders:        handlers.NewOrderHandler(db),
		Conversations: handlers.NewConversationHandler(db),
		Messages:      handlers.NewMessageHandler(db, nil),
		Professionals: handlers.NewProfessionalHandler(db),
		Wallet:        handlers.NewWalletHandler(db),
		Admin:         handlers.NewAdminHandler(db),
		AuthMW:        utils.AuthMiddleware(db, cfg.JWTSecret),
		AdminMW:       utils.RoleRequired("admin"),
	}
	r.RegisterRoutes(app)

	return &testEnv{app: app, db: db, cfg: cfg}
}

// createUser inserts a user directly and returns it with a valid token.
func (e *testEnv) createUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123", e.cfg.BcryptCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: hash, Name: "Test User", Role: role}
	require.NoError(t, e.db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, e.cfg.JWTSecret, e.cfg.JWTExpires)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createProduct(t *testing.T, sellerID uint, title string, price float64) models.Product {
	t.Helper()

	product := models.Product{SellerID: sellerID, Title: title, Price: price, Category: "misc"}
	require.NoError(t, e.db.Create(&product).Error)
	return product
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
