package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("userID")

	user, err := userService.UsersRepo.FindUser(c.Request.Context(), userID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	links := map[string]dto.UserLink{
		"self":    {Href: "/api/user/profile", Method: "GET"},
		"prompts": {Href: "/api/prompts", Method: "GET"},
		"logout":  {Href: "/api/user/logout", Method: "POST"},
	}

	utils.Success(c, dto.ToUserProfileResponse(user, links))
}
