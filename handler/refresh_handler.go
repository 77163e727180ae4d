package handler

import (
	"main/dto"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RefreshHandler exchanges a valid refresh token for a new access token.
func RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if services.IsTokenBlacklisted(req.Refresh) {
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	claims, err := services.ParseToken(req.Refresh)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != "refresh" {
		utils.Unauthorized(c, "Invalid token type")
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		utils.Unauthorized(c, "Invalid token claims")
		return
	}

	token, err := services.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, gin.H{"token": token})
}
