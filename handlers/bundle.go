package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	StartSessionHandler  gin.HandlerFunc
	EndSessionHandler    gin.HandlerFunc
	MessageHandler       gin.HandlerFunc
	StreamMessageHandler gin.HandlerFunc

	// Catalog endpoints
	ListMaterialsHandler gin.HandlerFunc
	ListSitesHandler     gin.HandlerFunc

	// Request endpoints
	GetRequestHandler      gin.HandlerFunc
	ListMyRequestsHandler  gin.HandlerFunc
	SessionMessagesHandler gin.HandlerFunc
}
