package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"main/model"
	"main/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePromptsStore is an in-memory PromptsStore mirroring the real
// repository's contract: newest first, stable tie-break on id.
type fakePromptsStore struct {
	prompts map[string]*model.Prompt
	failAll bool
}

func newFakePromptsStore() *fakePromptsStore {
	return &fakePromptsStore{prompts: make(map[string]*model.Prompt)}
}

func (s *fakePromptsStore) Create(_ context.Context, prompt *model.Prompt) (string, error) {
	if s.failAll {
		return "", apperrors.ErrTransient
	}
	prompt.ID = uuid.New().String()
	prompt.CreatedAt = time.Now().UnixMilli()
	stored := *prompt
	s.prompts[prompt.ID] = &stored
	return prompt.ID, nil
}

func (s *fakePromptsStore) FindByOwner(_ context.Context, ownerID string) ([]*model.Prompt, error) {
	if s.failAll {
		return nil, apperrors.ErrTransient
	}
	var out []*model.Prompt
	for _, p := range s.prompts {
		if p.OwnerID == ownerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakePromptsStore) FindByID(_ context.Context, id string) (*model.Prompt, error) {
	if s.failAll {
		return nil, apperrors.ErrTransient
	}
	p, ok := s.prompts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakePromptsStore) Replace(_ context.Context, id string, prompt *model.Prompt) error {
	if _, ok := s.prompts[id]; !ok {
		return apperrors.ErrNotFound
	}
	stored := *prompt
	s.prompts[id] = &stored
	return nil
}

func (s *fakePromptsStore) Delete(_ context.Context, id string) error {
	delete(s.prompts, id)
	return nil
}

func (s *fakePromptsStore) CountByOwner(_ context.Context, ownerID string) (int, error) {
	count := 0
	for _, p := range s.prompts {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	owners []string
}

func (n *recordingNotifier) Notify(ownerID string) {
	n.owners = append(n.owners, ownerID)
}

func newTestService() (*PromptsService, *fakePromptsStore, *recordingNotifier) {
	store := newFakePromptsStore()
	notifier := &recordingNotifier{}
	return &PromptsService{PromptsRepo: store, Notifier: notifier}, store, notifier
}

func TestCreatePrompt(t *testing.T) {
	svc, store, notifier := newTestService()
	ctx := context.Background()

	before := time.Now().UnixMilli()
	prompt := &model.Prompt{
		Title:   "Code Review",
		Content: "Review the following code:\n\n{{code}}",
		Tags:    []string{" go ", "", "review"},
	}
	id, err := svc.CreatePrompt(ctx, "user-1", prompt)
	after := time.Now().UnixMilli()

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored := store.prompts[id]
	require.NotNil(t, stored)
	assert.Equal(t, "user-1", stored.OwnerID)
	assert.Equal(t, []string{"go", "review"}, stored.Tags, "tags should be trimmed with empties dropped")
	assert.Equal(t, "Review the following code:\n\n{{code}}", stored.Content, "newlines kept verbatim")
	assert.GreaterOrEqual(t, stored.CreatedAt, before)
	assert.LessOrEqual(t, stored.CreatedAt, after)
	assert.Equal(t, []string{"user-1"}, notifier.owners)
}

func TestCreatePromptValidation(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		prompt *model.Prompt
		code   string
	}{
		{"empty title", &model.Prompt{Title: "   ", Content: "body"}, "empty-title"},
		{"empty content", &model.Prompt{Title: "ok", Content: " \n "}, "empty-content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePrompt(ctx, "user-1", tt.prompt)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}

	assert.Empty(t, notifier.owners, "failed creates must not notify")
}

func TestCreatePromptDuplicateTagsKept(t *testing.T) {
	svc, store, _ := newTestService()

	prompt := &model.Prompt{Title: "t", Content: "c", Tags: []string{"a", "b", "a"}}
	id, err := svc.CreatePrompt(context.Background(), "user-1", prompt)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, store.prompts[id].Tags)
}

func TestCreatePromptUnauthenticated(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreatePrompt(context.Background(), "", &model.Prompt{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestListPromptsNewestFirst(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	store.prompts["a"] = &model.Prompt{ID: "a", OwnerID: "user-1", Title: "old", Content: "c", CreatedAt: 100}
	store.prompts["b"] = &model.Prompt{ID: "b", OwnerID: "user-1", Title: "new", Content: "c", CreatedAt: 300}
	store.prompts["c"] = &model.Prompt{ID: "c", OwnerID: "user-2", Title: "other", Content: "c", CreatedAt: 200}

	prompts, err := svc.ListPrompts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, "new", prompts[0].Title)
	assert.Equal(t, "old", prompts[1].Title)
}

func TestUpdatePromptPreservesImmutableFields(t *testing.T) {
	svc, store, notifier := newTestService()
	ctx := context.Background()

	store.prompts["p1"] = &model.Prompt{
		ID: "p1", OwnerID: "user-1", Title: "before", Content: "c", CreatedAt: 1234,
	}

	// The submitted body carries stale owner and timestamp values.
	updates := &model.Prompt{
		OwnerID: "attacker", Title: "after", Content: "c2", CreatedAt: 9999,
	}
	err := svc.UpdatePrompt(ctx, "p1", "user-1", updates)
	require.NoError(t, err)

	stored := store.prompts["p1"]
	assert.Equal(t, "after", stored.Title)
	assert.Equal(t, "user-1", stored.OwnerID, "owner must come from the stored record")
	assert.Equal(t, int64(1234), stored.CreatedAt, "creation time must come from the stored record")
	assert.Equal(t, []string{"user-1"}, notifier.owners)
}

func TestUpdatePromptNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.UpdatePrompt(context.Background(), "missing", "user-1",
		&model.Prompt{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdatePromptForeignOwner(t *testing.T) {
	svc, store, notifier := newTestService()

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}

	err := svc.UpdatePrompt(context.Background(), "p1", "user-2",
		&model.Prompt{Title: "changed", Content: "c"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "t", store.prompts["p1"].Title, "foreign update must not touch the record")
	assert.Empty(t, notifier.owners)
}

func TestDeletePromptIdempotent(t *testing.T) {
	svc, store, notifier := newTestService()
	ctx := context.Background()

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}

	require.NoError(t, svc.DeletePrompt(ctx, "p1", "user-1"))
	assert.NotContains(t, store.prompts, "p1")

	// Second delete of the same id succeeds without notifying again.
	require.NoError(t, svc.DeletePrompt(ctx, "p1", "user-1"))
	assert.Equal(t, []string{"user-1"}, notifier.owners)
}

func TestDeletePromptForeignOwner(t *testing.T) {
	svc, store, _ := newTestService()

	store.prompts["p1"] = &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}

	err := svc.DeletePrompt(context.Background(), "p1", "user-2")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, store.prompts, "p1")
}

func TestListPromptsStoreFailure(t *testing.T) {
	svc, store, _ := newTestService()
	store.failAll = true

	_, err := svc.ListPrompts(context.Background(), "user-1")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindTransient, appErr.Kind)
}

func TestCountPrompts(t *testing.T) {
	svc, store, _ := newTestService()

	store.prompts["a"] = &model.Prompt{ID: "a", OwnerID: "user-1", Title: "t", Content: "c"}
	store.prompts["b"] = &model.Prompt{ID: "b", OwnerID: "user-2", Title: "t", Content: "c"}

	count, err := svc.CountPrompts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
