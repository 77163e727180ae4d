package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler revokes the caller's tokens and ends their sessions. Sign-out
// must always succeed from the caller's point of view; revocation failures
// are logged, not surfaced.
func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")
	accessToken := c.GetString("accessToken")

	var req dto.RefreshRequest
	// The refresh token is optional in the logout body.
	_ = c.ShouldBindJSON(&req)

	if err := services.BlacklistTokens(accessToken, req.Refresh); err != nil {
		log.Printf("Warning: failed to blacklist tokens for user %s: %v", userID, err)
	}

	if sessionRepo != nil {
		if err := sessionRepo.EndAllUserSessions(userID); err != nil {
			log.Printf("Warning: failed to end sessions for user %s: %v", userID, err)
		}
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
