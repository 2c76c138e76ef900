package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerFrontend serves a built SPA from frontend/dist when present,
// with a history-API fallback that never shadows API or auth routes.
func registerFrontend(router *gin.Engine) {
	distDir := os.Getenv("FRONTEND_DIST")
	if distDir == "" {
		distDir = filepath.Join("frontend", "dist")
	}
	indexPath := filepath.Join(distDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		return
	}

	assetsDir := filepath.Join(distDir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		router.Static("/assets", assetsDir)
	}

	router.NoRoute(func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, "/")
		for _, blocked := range []string{"api", "auth", "assets"} {
			if path == blocked || strings.HasPrefix(path, blocked+"/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
				return
			}
		}
		c.File(indexPath)
	})
}
