package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/dto"
	"main/model"
	"main/pkg/apperrors"
	"main/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPromptsStore struct {
	prompts map[string]*model.Prompt
}

func (s *memoryPromptsStore) Create(_ context.Context, prompt *model.Prompt) (string, error) {
	prompt.ID = uuid.New().String()
	prompt.CreatedAt = time.Now().UnixMilli()
	stored := *prompt
	s.prompts[prompt.ID] = &stored
	return prompt.ID, nil
}

func (s *memoryPromptsStore) FindByOwner(_ context.Context, ownerID string) ([]*model.Prompt, error) {
	var out []*model.Prompt
	for _, p := range s.prompts {
		if p.OwnerID == ownerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memoryPromptsStore) FindByID(_ context.Context, id string) (*model.Prompt, error) {
	p, ok := s.prompts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *memoryPromptsStore) Replace(_ context.Context, id string, prompt *model.Prompt) error {
	stored := *prompt
	s.prompts[id] = &stored
	return nil
}

func (s *memoryPromptsStore) Delete(_ context.Context, id string) error {
	delete(s.prompts, id)
	return nil
}

func (s *memoryPromptsStore) CountByOwner(_ context.Context, ownerID string) (int, error) {
	count := 0
	for _, p := range s.prompts {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// promptsRouter wires the prompt routes behind a stub auth middleware that
// injects a fixed user id.
func promptsRouter(userID string) (*gin.Engine, *memoryPromptsStore) {
	gin.SetMode(gin.TestMode)

	store := &memoryPromptsStore{prompts: make(map[string]*model.Prompt)}
	svc := &usecase.PromptsService{PromptsRepo: store}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	router.GET("/api/prompts", func(c *gin.Context) { GetUserPromptsHandler(c, svc) })
	router.POST("/api/prompts", func(c *gin.Context) { CreatePromptHandler(c, svc) })
	router.PUT("/api/prompts/:id", func(c *gin.Context) { UpdatePromptHandler(c, svc) })
	router.DELETE("/api/prompts/:id", func(c *gin.Context) { DeletePromptHandler(c, svc) })
	return router, store
}

type responseBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed responseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestCreatePromptHandler(t *testing.T) {
	router, store := promptsRouter("user-1")

	w, body := doJSON(t, router, http.MethodPost, "/api/prompts", dto.PromptRequest{
		Title:   "Code Review",
		Content: "Review:\n{{code}}",
		Tags:    []string{"go"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.PromptResponse
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.NotZero(t, created.CreatedAt)
	assert.Contains(t, store.prompts, created.ID)
}

func TestCreatePromptHandlerInvalidBody(t *testing.T) {
	router, _ := promptsRouter("user-1")

	w, _ := doJSON(t, router, http.MethodPost, "/api/prompts", map[string]string{
		"title": "no content field",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePromptHandlerBlankTitle(t *testing.T) {
	router, _ := promptsRouter("user-1")

	w, body := doJSON(t, router, http.MethodPost, "/api/prompts", dto.PromptRequest{
		Title:   "   ",
		Content: "c",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty-title", body.Code)
}

func TestGetUserPromptsHandler(t *testing.T) {
	router, store := promptsRouter("user-1")

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "mine", Content: "c"}
	store.prompts["p2"] = &model.Prompt{ID: "p2", OwnerID: "user-2", Title: "theirs", Content: "c"}

	w, body := doJSON(t, router, http.MethodGet, "/api/prompts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var prompts []dto.PromptResponse
	require.NoError(t, json.Unmarshal(body.Data, &prompts))
	require.Len(t, prompts, 1)
	assert.Equal(t, "mine", prompts[0].Title)
}

func TestUpdatePromptHandlerForeignOwner(t *testing.T) {
	router, store := promptsRouter("user-2")

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}

	w, body := doJSON(t, router, http.MethodPut, "/api/prompts/p1", dto.PromptRequest{
		Title: "hijack", Content: "c",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrPermissionDenied.Code, body.Code)
	assert.Equal(t, "t", store.prompts["p1"].Title)
}

func TestUpdatePromptHandlerNotFound(t *testing.T) {
	router, _ := promptsRouter("user-1")

	w, body := doJSON(t, router, http.MethodPut, "/api/prompts/missing", dto.PromptRequest{
		Title: "t", Content: "c",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrNotFound.Code, body.Code)
}

func TestDeletePromptHandlerIdempotent(t *testing.T) {
	router, store := promptsRouter("user-1")

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}

	w, _ := doJSON(t, router, http.MethodDelete, "/api/prompts/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting the same id again still succeeds.
	w, _ = doJSON(t, router, http.MethodDelete, "/api/prompts/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
