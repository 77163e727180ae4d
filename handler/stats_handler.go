package handler

import (
	"log"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	userService    *usecase.UserService
	promptsService *usecase.PromptsService
}

func NewStatsHandler(userService *usecase.UserService, promptsService *usecase.PromptsService) *StatsHandler {
	return &StatsHandler{
		userService:    userService,
		promptsService: promptsService,
	}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.userService.UsersRepo.FindUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	total, err := h.promptsService.CountPrompts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error counting prompts: %v", err)
		utils.InternalError(c, "Failed to count prompts")
		return
	}

	stats := model.UserStats{
		Email:        user.Email,
		MemberSince:  user.CreatedAt,
		TotalPrompts: total,
		System:       utils.GetSystemStats(),
	}

	utils.Success(c, stats)
}
