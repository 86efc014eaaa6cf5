package routes

import (
	"net/http"

	"github.com/01moynul/flower-pricing-golang/internal/handlers"
	"github.com/01moynul/flower-pricing-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser that the configured frontend origin may call us.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Allow ONLY the configured frontend
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 2. "Authorization" carries the JWT
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// 3. Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.Default()
	handlers.UseJSONFieldNames()

	// This must be the very first thing the router uses
	router.Use(CORSMiddleware(corsOrigin))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware(h.Gate))
		{
			authed.GET("/me", h.Me)
		}

		// --- Restricted Routes (Allowlisted emails only) ---
		restricted := v1.Group("/")
		restricted.Use(middleware.AuthMiddleware(h.Gate))
		restricted.Use(middleware.RestrictedMiddleware())
		{
			restricted.GET("/flowers", h.GetFlowers)
			restricted.POST("/flowers", h.CreateFlowers)

			restricted.GET("/suppliers", h.GetSuppliers)
			restricted.POST("/suppliers", h.CreateSupplier)

			restricted.GET("/supplier-charges", h.GetSupplierCharges)
			restricted.POST("/supplier-charges", h.CreateSupplierCharge)

			// --- Pricing ---
			pricingRoutes := restricted.Group("/pricing")
			{
				pricingRoutes.GET("", h.GetPricing)
				pricingRoutes.PUT("/markup", h.SetGlobalMarkup)
				pricingRoutes.POST("/markup/apply-all", h.ApplyMarkupToAll)
				pricingRoutes.PUT("/items/:id/markup", h.SetItemMarkup)
				pricingRoutes.DELETE("/items/:id/markup", h.ResetItemMarkup)
				pricingRoutes.POST("/reload", h.ReloadPricing)
				pricingRoutes.POST("/assistant", h.AskAssistant)
			}

			restricted.GET("/price-sheet", h.GetPriceSheet)
		}
	}

	return router
}
