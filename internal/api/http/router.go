package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookstore-service/internal/api/http/handlers"
	"github.com/spec-kit/bookstore-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Books   *handlers.BooksHandler
	Orders  *handlers.OrdersHandler
	Reviews *handlers.ReviewsHandler
	Admin   *handlers.AdminHandler
	Gate    *auth.Gate
	Policy  *auth.Policy
}

// RegisterRoutes wires HTTP routes behind the authentication gate and the
// authorization policy. The gate classifies, the policy rejects; handlers
// never re-implement either decision.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)
	app.Use(cfg.Policy.Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	books := app.Group("/api/books")
	books.Get("/", cfg.Books.List)
	books.Get("/:id", cfg.Books.Get)
	books.Get("/:id/reviews", cfg.Books.ListReviews)

	users := app.Group("/api/users")
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Post("/password", cfg.Users.ChangePassword)

	orders := app.Group("/api/orders")
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Post("/:id/cancel", cfg.Orders.Cancel)

	reviews := app.Group("/api/reviews")
	reviews.Post("/books/:bookId", cfg.Reviews.Create)
	reviews.Put("/:id", cfg.Reviews.Update)
	reviews.Delete("/:id", cfg.Reviews.Delete)

	admin := app.Group("/api/admin")
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/orders", cfg.Admin.ListOrders)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Post("/books", cfg.Admin.CreateBook)
	admin.Put("/books/:id", cfg.Admin.UpdateBook)
	admin.Delete("/books/:id", cfg.Admin.DeleteBook)
}
