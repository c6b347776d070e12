package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/bertogassin/OMNIXIUS/config"
	"github.com/bertogassin/OMNIXIUS/handlers"
	"github.com/bertogassin/OMNIXIUS/internal/throttle"
	"github.com/bertogassin/OMNIXIUS/internal/ws"
	"github.com/bertogassin/OMNIXIUS/middleware"
	"github.com/bertogassin/OMNIXIUS/router"
	"github.com/bertogassin/OMNIXIUS/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	initDB := flag.Bool("init", false, "create the database, run migrations and seed demo data, then exit")
	flag.Parse()

	cfg := config.LoadConfig()

	log, err := utils.NewLogger()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.Connect(cfg.DBPath, *initDB)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		os.Exit(1)
	}

	if err := config.Migrate(db, log); err != nil {
		os.Exit(1)
	}

	if *initDB {
		config.SeedUsers(db, cfg, log)
		config.SeedProducts(db, log)
		log.Info("database initialized", zap.String("path", cfg.DBPath))
		return
	}

	for _, sub := range []string{"products", "avatars"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, sub), 0o755); err != nil {
			log.Error("could not create upload directory", zap.Error(err))
			os.Exit(1)
		}
	}

	hub := ws.NewHub(log)
	go hub.Run()

	attempts := throttle.NewStore(cfg.MaxLoginAttempts, cfg.LoginWindow)
	authMW := utils.AuthMiddleware(db, cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		AppName: "OMNIXIUS API",
		// Leave headroom above the per-file ceiling so the handler can
		// answer with the taxonomy's 400 instead of a bare 413.
		BodyLimit: int(cfg.MaxFileSize) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal server error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			if code == fiber.StatusRequestEntityTooLarge {
				code = fiber.StatusBadRequest
				msg = "File too large"
			}
			if code == fiber.StatusInternalServerError {
				log.Error("unhandled error", zap.Error(err))
				msg = "Internal server error"
			}

			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})

	middleware.SetupMiddleware(app, cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Static("/uploads", cfg.UploadDir)

	r := &router.Router{
		Auth:          handlers.NewAuthHandler(db, cfg, attempts),
		Users:         handlers.NewUserHandler(db, cfg),
		Products:      handlers.NewProductHandler(db, cfg),
		Orders:        handlers.NewOrderHandler(db),
		Conversations: handlers.NewConversationHandler(db),
		Messages:      handlers.NewMessageHandler(db, hub),
		Professionals: handlers.NewProfessionalHandler(db),
		Wallet:        handlers.NewWalletHandler(db),
		Admin:         handlers.NewAdminHandler(db),
		WS:            handlers.NewWSHandler(db, cfg, hub),
		AuthMW:        authMW,
		AdminMW:       utils.RoleRequired("admin"),
	}
	r.RegisterRoutes(app)

	addr := cfg.HOST + ":" + cfg.AppPort
	log.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
