package handler

import (
	"strings"

	"main/services"
	"main/socket"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// SubscribeHandler upgrades to a websocket delivering full prompt snapshots
// for the authenticated owner. Browsers cannot set headers on websocket
// requests, so the access token may also arrive as a query parameter.
func SubscribeHandler(c *gin.Context, hub *socket.Hub) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if services.IsTokenBlacklisted(tokenString) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	ownerID, err := services.UserIDFromToken(tokenString)
	if err != nil {
		utils.Unauthorized(c, "Invalid token")
		return
	}

	socket.ServeWs(hub, c.Writer, c.Request, ownerID)
}
