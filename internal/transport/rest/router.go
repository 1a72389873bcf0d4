package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-chatbot/internal/auth"
	"github.com/frahmantamala/finance-chatbot/internal/category"
	"github.com/frahmantamala/finance-chatbot/internal/chatbot"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transport/middleware"
	"github.com/frahmantamala/finance-chatbot/internal/transport/swagger"
	"github.com/frahmantamala/finance-chatbot/internal/user"
	"github.com/go-chi/chi"
)

// RouterDeps bundles everything route registration needs.
type RouterDeps struct {
	DB                 *sql.DB
	AuthHandler        *auth.Handler
	UserHandler        *user.Handler
	TransactionHandler *transaction.Handler
	CategoryHandler    *category.Handler
	ChatbotHandler     *chatbot.Handler
	AllowedOrigins     string
	Logger             *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(deps.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Post("/register", deps.AuthHandler.Register)
				sr.Post("/refresh", deps.AuthHandler.RefreshToken)
				sr.Post("/logout", deps.AuthHandler.Logout)
			})

			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(deps.AuthHandler.AuthMiddleware)

				// Current user
				if deps.UserHandler != nil {
					pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
				}

				// Chatbot query route
				if deps.ChatbotHandler != nil {
					pr.Post("/chat", deps.ChatbotHandler.HandleChatQuery)
				}

				// Transaction routes
				if deps.TransactionHandler != nil {
					pr.Route("/transactions", func(tr chi.Router) {
						tr.Post("/", deps.TransactionHandler.CreateTransaction)
						tr.Get("/", deps.TransactionHandler.GetTransactions)
						tr.Get("/{id}", deps.TransactionHandler.GetTransaction)
						tr.Patch("/{id}", deps.TransactionHandler.UpdateTransaction)
						tr.Delete("/{id}", deps.TransactionHandler.DeleteTransaction)
					})
				}

				// Category routes
				if deps.CategoryHandler != nil {
					pr.Route("/categories", func(cr chi.Router) {
						cr.Get("/", deps.CategoryHandler.GetCategories)
						cr.Post("/", deps.CategoryHandler.CreateCategory)
						cr.Patch("/{id}", deps.CategoryHandler.UpdateCategory)
						cr.Delete("/{id}", deps.CategoryHandler.DeleteCategory)
					})
				}
			})
		}
	})
}
