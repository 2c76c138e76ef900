package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/audiogear-golang/internal/handlers"
	"github.com/01moynul/audiogear-golang/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS for the local Vite frontend.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- Auth Routes (Public) ---
	router.POST("/auth/token", h.Login)
	router.POST("/auth/register", h.Register)

	// --- Public Catalog Routes ---
	router.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Audio Gear Catalog API. Go to /api/health"})
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/categories", h.GetCategories)
	router.GET("/api/gear", h.ListGear)
	router.GET("/api/gear/:id", h.GetGearItem)

	// --- Protected Routes (Login Required) ---
	authed := router.Group("/api")
	authed.Use(middleware.Auth(h.DB, h.Tokens))
	{
		authed.GET("/me", h.Me)

		authed.GET("/cart", h.GetCart)
		authed.POST("/cart", h.AddToCart)
		authed.PATCH("/cart/:id", h.UpdateCartItem)
		authed.DELETE("/cart/:id", h.RemoveCartItem)
		authed.DELETE("/cart", h.ClearCart)
	}

	// --- Admin-Only Routes ---
	admin := router.Group("/api")
	admin.Use(middleware.Auth(h.DB, h.Tokens))
	admin.Use(middleware.Admin())
	{
		admin.GET("/admin/gear", h.AdminListGear)
		admin.GET("/admin/users", h.AdminListUsers)
		admin.DELETE("/admin/users/:id", h.AdminDeleteUser)

		admin.POST("/gear", h.CreateGearItem)
		admin.PATCH("/gear/:id", h.UpdateGearItem)
		admin.DELETE("/gear/:id", h.DeleteGearItem)
	}

	registerFrontend(router)

	return router
}
