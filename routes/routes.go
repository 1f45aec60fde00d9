package routes

import (
	"net/http"
	"time"

	"matero/handlers"
	"matero/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/session", hb.StartSessionHandler)
		api.DELETE("/session", hb.EndSessionHandler)
		api.POST("/message", hb.MessageHandler)
		api.POST("/message/stream", hb.StreamMessageHandler)
	}
}

// RegisterCatalogRoutes registers the read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/materials", hb.ListMaterialsHandler)
		api.GET("/sites", hb.ListSitesHandler)
	}
}

// RegisterRequestRoutes registers endpoints for browsing submitted requests.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/mine", hb.ListMyRequestsHandler)
		api.GET("/id/:id", hb.GetRequestHandler)
		api.GET("/session/:sessionID/messages", hb.SessionMessagesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Matero"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterHealthRoute(r)
}
