package dto

import "main/model"

// PromptRequest is the create/update body. Tags arrive already parsed; the
// comma-joined raw text only exists inside the editor.
type PromptRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url"`
}

type PromptResponse struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"image_url"`
	CreatedAt int64    `json:"created_at"`
}

func ToPromptResponse(p *model.Prompt) PromptResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PromptResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Content:   p.Content,
		Tags:      tags,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func ToPromptResponses(prompts []*model.Prompt) []PromptResponse {
	out := make([]PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, ToPromptResponse(p))
	}
	return out
}
