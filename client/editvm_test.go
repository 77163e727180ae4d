package client

import (
	"context"
	"testing"

	"main/model"
	"main/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records calls and serves snapshots from a test-owned channel.
type fakeGateway struct {
	created   []*model.Prompt
	updated   map[string]*model.Prompt
	deleted   []string
	failNext  error
	snapshots chan Snapshot

	subscribed []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		updated:   make(map[string]*model.Prompt),
		snapshots: make(chan Snapshot, 8),
	}
}

func (g *fakeGateway) Subscribe(ownerID string) (*Subscription, error) {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return nil, err
	}
	g.subscribed = append(g.subscribed, ownerID)
	g.snapshots = make(chan Snapshot, 8)
	return NewSubscription(g.snapshots, func() {}), nil
}

func (g *fakeGateway) Create(_ context.Context, prompt *model.Prompt) (*model.Prompt, error) {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return nil, err
	}
	copied := *prompt
	g.created = append(g.created, &copied)
	return &copied, nil
}

func (g *fakeGateway) Update(_ context.Context, id string, prompt *model.Prompt) error {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return err
	}
	copied := *prompt
	g.updated[id] = &copied
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, id string) error {
	if g.failNext != nil {
		err := g.failNext
		g.failNext = nil
		return err
	}
	g.deleted = append(g.deleted, id)
	return nil
}

type fixedIdentity struct {
	identity *Identity
}

func (f *fixedIdentity) Current() *Identity { return f.identity }

func TestParseTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"a, b ,, c", []string{"a", "b", "c"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"solo", []string{"solo"}},
		{"dup, dup", []string{"dup", "dup"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTags(tt.raw), "raw=%q", tt.raw)
	}
}

func TestEditorSubmitCreate(t *testing.T) {
	gw := newFakeGateway()
	vm := NewEditorViewModel(gw, &fixedIdentity{&Identity{UserID: "user-1"}})

	vm.Title = "  Summarize  "
	vm.Content = "Summarize this:\n{{text}}"
	vm.TagsText = "writing, summary ,"

	require.NoError(t, vm.Submit(context.Background()))
	require.Len(t, gw.created, 1)

	created := gw.created[0]
	assert.Equal(t, "Summarize", created.Title)
	assert.Equal(t, "Summarize this:\n{{text}}", created.Content)
	assert.Equal(t, []string{"writing", "summary"}, created.Tags)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.False(t, vm.Submitting(), "flag cleared after a successful save")
}

func TestEditorSubmitRequiresFields(t *testing.T) {
	gw := newFakeGateway()
	vm := NewEditorViewModel(gw, &fixedIdentity{&Identity{UserID: "user-1"}})

	vm.Title = "   "
	vm.Content = "body"

	err := vm.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, gw.created, "invalid form must not reach the gateway")
}

func TestEditorSubmitUnauthenticated(t *testing.T) {
	gw := newFakeGateway()
	vm := NewEditorViewModel(gw, &fixedIdentity{nil})

	vm.Title = "t"
	vm.Content = "c"

	err := vm.Submit(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Empty(t, gw.created, "signed-out submit fails locally, no network call")
}

func TestEditorEditPreservesSeedFields(t *testing.T) {
	gw := newFakeGateway()
	vm := NewEditorViewModel(gw, &fixedIdentity{&Identity{UserID: "user-1"}})

	vm.LoadSeed(&model.Prompt{
		ID: "p1", OwnerID: "user-1", Title: "before", Content: "c",
		Tags: []string{"a", "b"}, CreatedAt: 1234,
	})
	assert.Equal(t, EditorEdit, vm.Mode())
	assert.Equal(t, "a, b", vm.TagsText)

	vm.Title = "after"
	require.NoError(t, vm.Submit(context.Background()))

	updated := gw.updated["p1"]
	require.NotNil(t, updated)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, int64(1234), updated.CreatedAt, "creation time carried from the seed, no re-fetch")
	assert.Equal(t, "user-1", updated.OwnerID)
}

func TestEditorSubmitFailureKeepsFormEditable(t *testing.T) {
	gw := newFakeGateway()
	gw.failNext = apperrors.ErrTransient
	vm := NewEditorViewModel(gw, &fixedIdentity{&Identity{UserID: "user-1"}})

	vm.Title = "t"
	vm.Content = "c"

	err := vm.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, vm.Submitting(), "a failed save must re-enable the form")
	assert.Equal(t, "t", vm.Title, "field values survive the failure")

	// A retry after the transient failure goes through.
	require.NoError(t, vm.Submit(context.Background()))
	assert.Len(t, gw.created, 1)
	assert.NoError(t, vm.Err())
}
