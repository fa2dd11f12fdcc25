package server

import (
	"time"

	"auth-session-svc/src/internal/dependency"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS(deps))

	setupHealthEndpoints(deps)
	setupAuthRoutes(router, deps)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success": false,
			"error":   "Route not found",
		})
	})
}

func setupHealthEndpoints(deps *dependency.Manager) {
	router := deps.Router
	cfg := deps.Config

	router.GET("/health", deps.AuthHandler.Health)

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		components := gin.H{
			"session-store": cfg.Session.Store,
		}

		if deps.Redis != nil {
			components["redis"] = getStatus(deps.Redis.Client.Ping(c.Request.Context()).Err() == nil)
		}
		if deps.Mongodb != nil {
			components["mongodb"] = getStatus(deps.Mongodb.Client.Ping(c.Request.Context(), nil) == nil)
		}
		if deps.RabbitMQ != nil {
			components["rabbitmq"] = getStatus(!deps.RabbitMQ.Conn.IsClosed())
		}

		c.JSON(200, gin.H{
			"status":     "operational",
			"service":    cfg.App.Name,
			"version":    cfg.App.Version,
			"components": components,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func setupAuthRoutes(router *gin.Engine, deps *dependency.Manager) {
	handler := deps.AuthHandler
	sessionMiddleware := deps.SessionMiddleware

	router.POST("/login", handler.Login)
	router.GET("/check-auth", handler.CheckAuth)

	// Logout and preference updates require a live session.
	router.POST("/logout",
		sessionMiddleware.RequireSession(),
		handler.Logout)

	router.POST("/update-preferences",
		sessionMiddleware.RequireSession(),
		handler.UpdatePreferences)
}

func enableCORS(deps *dependency.Manager) gin.HandlerFunc {
	origins := deps.Config.Server.AllowedOrigins

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range origins {
			if origin == allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
