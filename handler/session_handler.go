package handler

import (
	"log"
	"time"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")

	sessions, err := sessionRepo.GetUserActiveSessions(userID)
	if err != nil {
		log.Printf("Error fetching sessions for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch active sessions")
		return
	}

	utils.Success(c, sessions)
}

// LogoutSession ends a single session by id, for the "sign out that other
// device" action in the session list.
func LogoutSession(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")
	sessionID := c.Param("id")

	session, err := sessionRepo.GetSession(sessionID)
	if err != nil {
		log.Printf("Error fetching session %s: %v", sessionID, err)
		utils.InternalError(c, "Failed to fetch session")
		return
	}
	if session == nil || session.UserID != userID {
		// A foreign session id looks the same as a missing one.
		utils.NotFound(c, "Session not found")
		return
	}

	if err := sessionRepo.EndSession(sessionID); err != nil {
		log.Printf("Error ending session %s: %v", sessionID, err)
		utils.InternalError(c, "Failed to end session")
		return
	}

	utils.Success(c, gin.H{"message": "Session ended"})
}

// ExtendSession pushes a session's expiry forward and touches its activity
// timestamp. Used by long-lived clients to keep their session row current.
func ExtendSession(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")
	sessionID := c.Param("id")

	session, err := sessionRepo.GetSession(sessionID)
	if err != nil {
		log.Printf("Error fetching session %s: %v", sessionID, err)
		utils.InternalError(c, "Failed to fetch session")
		return
	}
	if session == nil || session.UserID != userID {
		utils.NotFound(c, "Session not found")
		return
	}
	if !session.IsActive {
		utils.BadRequest(c, "Session is no longer active")
		return
	}

	session.ExpiresAt = time.Now().Add(utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour))
	if err := sessionRepo.UpdateSession(session); err != nil {
		log.Printf("Error extending session %s: %v", sessionID, err)
		utils.InternalError(c, "Failed to extend session")
		return
	}

	utils.Success(c, session)
}

func LogoutAllSessions(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("userID")

	if err := sessionRepo.EndAllUserSessions(userID); err != nil {
		log.Printf("Error ending sessions for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	utils.Success(c, gin.H{"message": "All sessions ended"})
}
