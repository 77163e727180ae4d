package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserPromptsHandler(c *gin.Context, promptsService *usecase.PromptsService) {
	ownerID := c.GetString("userID")

	prompts, err := promptsService.ListPrompts(c.Request.Context(), ownerID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, dto.ToPromptResponses(prompts))
}

func CreatePromptHandler(c *gin.Context, promptsService *usecase.PromptsService) {
	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	ownerID := c.GetString("userID")
	prompt := &model.Prompt{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	}

	if _, err := promptsService.CreatePrompt(c.Request.Context(), ownerID, prompt); err != nil {
		utils.FromError(c, err)
		return
	}

	// The store filled in the id and created_at during the insert.
	utils.Created(c, dto.ToPromptResponse(prompt))
}

func UpdatePromptHandler(c *gin.Context, promptsService *usecase.PromptsService) {
	promptID := c.Param("id")
	ownerID := c.GetString("userID")

	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updates := &model.Prompt{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	}

	if err := promptsService.UpdatePrompt(c.Request.Context(), promptID, ownerID, updates); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, dto.ToPromptResponse(updates))
}

func DeletePromptHandler(c *gin.Context, promptsService *usecase.PromptsService) {
	promptID := c.Param("id")
	ownerID := c.GetString("userID")

	if err := promptsService.DeletePrompt(c.Request.Context(), promptID, ownerID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Prompt deleted successfully"})
}
