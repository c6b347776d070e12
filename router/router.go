package router

import (
	"github.com/bertogassin/OMNIXIUS/handlers"
	"github.com/gofiber/fiber/v2"
)

// Router wires handlers to routes. Kept separate from main so tests can
// assemble the same route table.
type Router struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Products      *handlers.ProductHandler
	Orders        *handlers.OrderHandler
	Conversations *handlers.ConversationHandler
	Messages      *handlers.MessageHandler
	Professionals *handlers.ProfessionalHandler
	Wallet        *handlers.WalletHandler
	Admin         *handlers.AdminHandler
	WS            *handlers.WSHandler

	AuthMW  fiber.Handler
	AdminMW fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth (public)
	api.Post("/auth/register", r.Auth.Register)
	api.Post("/auth/login", r.Auth.Login)
	api.Post("/auth/logout", r.AuthMW, r.Auth.Logout)
	api.Get("/auth/confirm-email", r.Auth.ConfirmEmail)
	api.Post("/auth/forgot-password", r.Auth.ForgotPassword)
	api.Post("/auth/reset-password", r.Auth.ResetPassword)

	// Users
	api.Get("/users/me", r.AuthMW, r.Users.Me)
	api.Patch("/users/me", r.AuthMW, r.Users.UpdateMe)
	api.Get("/users/me/orders", r.AuthMW, r.Users.GetMyOrders)
	api.Post("/users/me/avatar", r.AuthMW, r.Users.UploadAvatar)
	api.Post("/users/me/heartbeat", r.AuthMW, r.Users.Heartbeat)
	api.Get("/users/me/balance", r.AuthMW, r.Wallet.GetBalance)
	api.Post("/users/me/balance/credit", r.AuthMW, r.Wallet.CreditBalance)
	api.Get("/users/:id", r.Users.GetPublicProfile)

	// Products (reads are public)
	api.Get("/products", r.Products.GetAllProducts)
	api.Get("/products/categories", r.Products.GetCategories)
	api.Get("/products/:id", r.Products.GetProduct)
	api.Post("/products", r.AuthMW, r.Products.CreateProduct)
	api.Patch("/products/:id", r.AuthMW, r.Products.UpdateProduct)
	api.Delete("/products/:id", r.AuthMW, r.Products.DeleteProduct)

	// Orders
	api.Post("/orders", r.AuthMW, r.Orders.CreateOrder)
	api.Get("/orders/my", r.AuthMW, r.Orders.GetMyOrders)
	api.Patch("/orders/:id", r.AuthMW, r.Orders.UpdateOrder)

	// Conversations & messages
	api.Get("/conversations", r.AuthMW, r.Conversations.GetMyConversations)
	api.Get("/conversations/unread-count", r.AuthMW, r.Conversations.GetUnreadCount)
	api.Post("/conversations", r.AuthMW, r.Conversations.CreateConversation)
	api.Get("/messages/conversation/:id", r.AuthMW, r.Messages.GetMessages)
	api.Post("/messages/conversation/:id", r.AuthMW, r.Messages.SendMessage)
	api.Post("/messages/:id/read", r.AuthMW, r.Messages.MarkRead)

	// Professionals
	api.Get("/professionals/search", r.Professionals.Search)

	// Reports & admin
	api.Post("/reports", r.AuthMW, r.Admin.CreateReport)
	admin := api.Group("/admin", r.AuthMW, r.AdminMW)
	admin.Get("/stats", r.Admin.GetStats)
	admin.Get("/reports", r.Admin.GetReports)
	admin.Get("/reports/:id", r.Admin.GetReport)
	admin.Post("/reports/:id/assign", r.Admin.AssignReport)
	admin.Post("/reports/:id/resolve", r.Admin.ResolveReport)
	admin.Get("/users/:id", r.Admin.GetUser)
	admin.Post("/users/:id/ban", r.Admin.BanUser)
	admin.Post("/users/:id/unban", r.Admin.UnbanUser)

	// Notifications
	if r.WS != nil {
		api.Get("/ws", r.WS.Upgrade, r.WS.Handler())
	}
}
