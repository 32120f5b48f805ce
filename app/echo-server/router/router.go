package router

import (
	"jabRental/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/api/health", handler.Health)
	e.HEAD("/api/health", handler.Head)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler, sessionRequired echo.MiddlewareFunc) {
	api.POST("/sessions", handler.Open)
	api.DELETE("/session", handler.Close, sessionRequired)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.GET("/email-verification", handler.VerifyEmail)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	api.GET("/categories", handler.GetAllCategories)
}

// SetupRentalRoutes registers the session-scoped store routes.
func SetupRentalRoutes(api *echo.Group, handler *rest.RentalHandler, sessionRequired echo.MiddlewareFunc) {
	api.GET("/state", handler.GetState, sessionRequired)

	api.GET("/cart", handler.GetCart, sessionRequired)
	api.POST("/cart/items", handler.AddToCart, sessionRequired)
	api.PATCH("/cart/items/:productId", handler.UpdateCartItem, sessionRequired)
	api.DELETE("/cart/items/:productId", handler.RemoveFromCart, sessionRequired)
	api.DELETE("/cart", handler.ClearCart, sessionRequired)
	api.PUT("/cart/open", handler.SetCartOpen, sessionRequired)

	api.POST("/auth/login", handler.Login, sessionRequired)
	api.POST("/auth/register", handler.Register, sessionRequired)
	api.POST("/auth/logout", handler.Logout, sessionRequired)

	api.POST("/orders", handler.CreateOrder, sessionRequired)
	api.GET("/orders", handler.GetOrders, sessionRequired)
	api.GET("/orders/history", handler.GetOrderHistory, sessionRequired)
	api.PATCH("/orders/:id/status", handler.UpdateOrderStatus, sessionRequired)
}
