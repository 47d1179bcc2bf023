// Package server exposes the storefront and admin HTTP surface.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the Gin engine with routes and middlewares.
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(slogMiddleware())

	api := r.Group("/api")
	{
		api.GET("/deals", h.ListDeals)
		api.GET("/deals/featured", h.FeaturedDeal)
		api.GET("/meta", h.Meta)
		api.GET("/status", h.Status)
		api.POST("/assistant", h.Assistant)
		api.POST("/auth/login", h.Login)

		adminGroup := api.Group("/admin", h.requireSession())
		{
			adminGroup.GET("/deals", h.AdminInventory)
			adminGroup.POST("/deals", h.CreateDeal)
			adminGroup.DELETE("/deals/:id", h.DeleteDeal)
		}
	}

	r.GET("/ws", h.Subscribe)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func slogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP())
	}
}
