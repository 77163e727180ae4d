package client

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/pkg/apperrors"
)

type EditorMode int

const (
	EditorCreate EditorMode = iota
	EditorEdit
)

// EditorViewModel backs both the create and edit form. Tags live as raw
// comma-joined text while editing; they are parsed only at submit, so typing
// "a, b ," never mangles the field under the user.
type EditorViewModel struct {
	gateway  PromptGateway
	identity IdentitySource

	mode EditorMode
	seed *model.Prompt

	Title    string
	Content  string
	TagsText string
	ImageURL string

	submitting bool
	lastErr    error
}

// NewEditorViewModel returns an editor in create mode with empty fields.
func NewEditorViewModel(gateway PromptGateway, identity IdentitySource) *EditorViewModel {
	return &EditorViewModel{
		gateway:  gateway,
		identity: identity,
		mode:     EditorCreate,
	}
}

// LoadSeed switches the editor to edit mode, prefilled from an existing
// record. The seed keeps the original owner and creation time so a later
// submit preserves them without a re-fetch.
func (vm *EditorViewModel) LoadSeed(p *model.Prompt) {
	seed := *p
	vm.mode = EditorEdit
	vm.seed = &seed
	vm.Title = p.Title
	vm.Content = p.Content
	vm.TagsText = strings.Join(p.Tags, ", ")
	vm.ImageURL = p.ImageURL
	vm.lastErr = nil
}

func (vm *EditorViewModel) Mode() EditorMode {
	return vm.mode
}

func (vm *EditorViewModel) Submitting() bool {
	return vm.submitting
}

func (vm *EditorViewModel) Err() error {
	return vm.lastErr
}

// ParseTags splits raw comma-joined input into tags: each piece trimmed,
// empty pieces dropped, order and duplicates preserved.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Submit validates and persists the form. It returns nil when the save
// succeeded and the caller should navigate back to the list. Every failure
// path clears the submitting flag, so the form is never stuck disabled.
func (vm *EditorViewModel) Submit(ctx context.Context) error {
	if vm.submitting {
		return nil
	}

	if strings.TrimSpace(vm.Title) == "" || strings.TrimSpace(vm.Content) == "" {
		vm.lastErr = apperrors.New(apperrors.KindValidation, "invalid-prompt",
			"Title and content are required.")
		return vm.lastErr
	}

	current := vm.identity.Current()
	if current == nil {
		// Fail locally, no network call on a signed-out submit.
		vm.lastErr = apperrors.ErrUnauthenticated
		return vm.lastErr
	}

	vm.submitting = true
	defer func() { vm.submitting = false }()

	prompt := &model.Prompt{
		OwnerID:  current.UserID,
		Title:    strings.TrimSpace(vm.Title),
		Content:  vm.Content,
		Tags:     ParseTags(vm.TagsText),
		ImageURL: strings.TrimSpace(vm.ImageURL),
	}

	var err error
	if vm.mode == EditorEdit {
		prompt.ID = vm.seed.ID
		prompt.OwnerID = vm.seed.OwnerID
		prompt.CreatedAt = vm.seed.CreatedAt
		err = vm.gateway.Update(ctx, vm.seed.ID, prompt)
	} else {
		prompt.CreatedAt = time.Now().UnixMilli()
		_, err = vm.gateway.Create(ctx, prompt)
	}

	if err != nil {
		vm.lastErr = err
		return err
	}
	vm.lastErr = nil
	return nil
}
