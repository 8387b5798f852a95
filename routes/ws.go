package routes

import (
	"github.com/gin-gonic/gin"

	"kampung-service-server/middleware"
	ws "kampung-service-server/websocket"
)

// RegisterWebSocketRoutes registers the push channel. The token travels as
// a query parameter because browsers cannot set headers on WebSocket
// upgrades.
func RegisterWebSocketRoutes(router *gin.RouterGroup) {
	router.GET("/ws", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		ws.ServeWebSocket(hub, c.Writer, c.Request, c.GetString("user_id"), c.GetString("role"))
	})
}
