package usecase

import (
	"context"
	"strings"

	"main/model"
	"main/pkg/apperrors"
	"main/utils"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// PromptsStore is the persistence boundary for prompts. Implemented by
// repository.PromptsRepo; tests swap in an in-memory fake.
type PromptsStore interface {
	Create(ctx context.Context, prompt *model.Prompt) (string, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Prompt, error)
	FindByID(ctx context.Context, id string) (*model.Prompt, error)
	Replace(ctx context.Context, id string, prompt *model.Prompt) error
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// ChangeNotifier receives a ping after every successful mutation so live
// subscribers get a fresh snapshot pushed.
type ChangeNotifier interface {
	Notify(ownerID string)
}

type PromptsService struct {
	PromptsRepo PromptsStore
	Notifier    ChangeNotifier
}

func (svc *PromptsService) validatePrompt(prompt *model.Prompt) error {
	prompt.Title = strings.TrimSpace(prompt.Title)
	if prompt.Title == "" {
		return apperrors.New(apperrors.KindValidation, "empty-title", "Title is required.")
	}
	if len(prompt.Title) > maxTitleLength {
		return apperrors.New(apperrors.KindValidation, "title-too-long", "Title exceeds maximum length.")
	}

	// Content keeps embedded newlines verbatim; only fully blank content is
	// rejected.
	if strings.TrimSpace(prompt.Content) == "" {
		return apperrors.New(apperrors.KindValidation, "empty-content", "Content is required.")
	}
	if len(prompt.Content) > maxContentLength {
		return apperrors.New(apperrors.KindValidation, "content-too-long", "Content exceeds maximum length.")
	}

	// Trim tags, drop empties, keep order and duplicates.
	normalized := make([]string, 0, len(prompt.Tags))
	for _, tag := range prompt.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	prompt.Tags = normalized

	return nil
}

func (svc *PromptsService) notify(ownerID string) {
	if svc.Notifier != nil {
		svc.Notifier.Notify(ownerID)
	}
}

// ListPrompts returns the owner's prompts, newest first.
func (svc *PromptsService) ListPrompts(ctx context.Context, ownerID string) ([]*model.Prompt, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return svc.PromptsRepo.FindByOwner(ctx, ownerID)
}

// CreatePrompt persists a new prompt for ownerID. The store assigns the id
// and creation timestamp; the returned id is the only way the caller learns
// it.
func (svc *PromptsService) CreatePrompt(ctx context.Context, ownerID string, prompt *model.Prompt) (string, error) {
	if ownerID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	if err := svc.validatePrompt(prompt); err != nil {
		return "", err
	}

	prompt.ID = ""
	prompt.OwnerID = ownerID

	id, err := svc.PromptsRepo.Create(ctx, prompt)
	if err != nil {
		return "", err
	}

	utils.TrackPromptOperation("create")
	svc.notify(ownerID)
	return id, nil
}

// UpdatePrompt replaces the full document. OwnerID and CreatedAt are echoed
// from the stored prompt, never from the caller, so they stay immutable even
// when the submitted body carries stale or forged values.
func (svc *PromptsService) UpdatePrompt(ctx context.Context, id, ownerID string, updates *model.Prompt) error {
	if ownerID == "" {
		return apperrors.ErrUnauthenticated
	}

	existing, err := svc.PromptsRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}
	if existing.OwnerID != ownerID {
		return apperrors.ErrPermissionDenied
	}

	if err := svc.validatePrompt(updates); err != nil {
		return err
	}

	updates.ID = existing.ID
	updates.OwnerID = existing.OwnerID
	updates.CreatedAt = existing.CreatedAt

	if err := svc.PromptsRepo.Replace(ctx, id, updates); err != nil {
		return err
	}

	utils.TrackPromptOperation("update")
	svc.notify(ownerID)
	return nil
}

// DeletePrompt removes a prompt. Deleting an id that no longer exists is a
// no-op success so a double-click on the delete button never surfaces an
// error. Deleting someone else's prompt is refused.
func (svc *PromptsService) DeletePrompt(ctx context.Context, id, ownerID string) error {
	if ownerID == "" {
		return apperrors.ErrUnauthenticated
	}

	existing, err := svc.PromptsRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.OwnerID != ownerID {
		return apperrors.ErrPermissionDenied
	}

	if err := svc.PromptsRepo.Delete(ctx, id); err != nil {
		return err
	}

	utils.TrackPromptOperation("delete")
	svc.notify(ownerID)
	return nil
}

// CountPrompts counts the prompts an owner has, for the stats endpoint.
func (svc *PromptsService) CountPrompts(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, apperrors.ErrUnauthenticated
	}
	return svc.PromptsRepo.CountByOwner(ctx, ownerID)
}
