package routes

import (
	"github.com/gin-gonic/gin"

	"delivery-chain/handlers"
	"delivery-chain/middleware"
	"delivery-chain/models"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, secret []byte, sessions middleware.SessionSource) {
	authRequired := middleware.AuthRequired(secret, sessions)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Rider quick-fill buttons
		public.GET("/status-presets", h.GetStatusPresets)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authRequired)
	{
		auth.POST("/auth/logout", h.Logout)
		auth.GET("/profile", h.GetProfile)

		auth.GET("/ledger", h.GetLedger)
		auth.GET("/ledger/orders/:id", h.GetOrderLedger)
		auth.GET("/stream", h.StreamState)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.GET("/tracking", h.TrackOrder)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/api/rider")
	rider.Use(authRequired, middleware.RoleRequired(models.RoleRider))
	{
		rider.GET("/orders", h.GetRiderOrders)
		rider.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authRequired, middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
		admin.GET("/users", h.AdminGetAllUsers)
	}
}
