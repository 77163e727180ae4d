package client

import (
	"path/filepath"
	"testing"

	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*Shell, *SessionManager) {
	t.Helper()
	session := NewSessionManager(NewAPIClient("http://localhost:0"))
	store := NewThemeStore(filepath.Join(t.TempDir(), "preferences.json"))
	return NewShell(session, store, ThemeLight), session
}

func TestShellResolvingThenAuth(t *testing.T) {
	shell, session := newTestShell(t)

	assert.Equal(t, ViewResolving, shell.CurrentView(), "nothing renders before the auth check settles")

	session.Resolve()
	assert.Equal(t, ViewAuth, shell.CurrentView(), "no restored identity lands on the auth screen")
}

func TestShellNavigation(t *testing.T) {
	shell, session := newTestShell(t)
	session.setCurrent(&Identity{UserID: "user-1"})

	assert.Equal(t, ViewList, shell.CurrentView())

	shell.NewPrompt()
	assert.Equal(t, ViewCreate, shell.CurrentView())
	assert.Nil(t, shell.Editing())

	seed := &model.Prompt{ID: "p1", OwnerID: "user-1", Title: "t", Content: "c"}
	shell.EditPrompt(seed)
	assert.Equal(t, ViewEdit, shell.CurrentView())
	require.NotNil(t, shell.Editing())
	assert.Equal(t, "p1", shell.Editing().ID)

	shell.BackToList()
	assert.Equal(t, ViewList, shell.CurrentView())
	assert.Nil(t, shell.Editing())
}

func TestShellSignOutOverridesNavigation(t *testing.T) {
	shell, session := newTestShell(t)
	session.setCurrent(&Identity{UserID: "user-1"})

	shell.NewPrompt()
	session.setCurrent(nil)
	assert.Equal(t, ViewAuth, shell.CurrentView(), "signed out always shows auth")

	// The navigation target itself survived the sign-out.
	session.setCurrent(&Identity{UserID: "user-1"})
	assert.Equal(t, ViewCreate, shell.CurrentView())
}

func TestShellThemeToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	session := NewSessionManager(NewAPIClient("http://localhost:0"))
	store := NewThemeStore(path)

	shell := NewShell(session, store, ThemeLight)
	assert.Equal(t, ThemeLight, shell.Theme())

	assert.Equal(t, ThemeDark, shell.ToggleTheme())
	assert.Equal(t, ThemeDark, shell.Theme())

	// A new shell over the same store picks up the persisted choice even when
	// the ambient default says otherwise.
	again := NewShell(NewSessionManager(NewAPIClient("http://localhost:0")), NewThemeStore(path), ThemeLight)
	assert.Equal(t, ThemeDark, again.Theme())
}

func TestShellAmbientThemeDefault(t *testing.T) {
	store := NewThemeStore(filepath.Join(t.TempDir(), "preferences.json"))
	session := NewSessionManager(NewAPIClient("http://localhost:0"))

	shell := NewShell(session, store, ThemeDark)
	assert.Equal(t, ThemeDark, shell.Theme(), "no saved choice falls back to the ambient preference")
}
