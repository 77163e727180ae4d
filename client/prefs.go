package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"main/pkg/apperrors"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type preferences struct {
	Theme string `json:"theme"`
}

// ThemeStore persists the theme choice to a small JSON file, the desktop
// analogue of browser local storage. A missing or unreadable file falls back
// to the ambient default rather than failing.
type ThemeStore struct {
	path string
}

func NewThemeStore(path string) *ThemeStore {
	return &ThemeStore{path: path}
}

// DefaultThemePath is ~/.config/promptmaster/preferences.json, or a path
// relative to the working directory when no home is available.
func DefaultThemePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "preferences.json"
	}
	return filepath.Join(home, ".config", "promptmaster", "preferences.json")
}

// Load returns the saved theme, or fallback when nothing valid was saved.
func (s *ThemeStore) Load(fallback string) string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fallback
	}
	var prefs preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fallback
	}
	switch prefs.Theme {
	case ThemeLight, ThemeDark:
		return prefs.Theme
	default:
		return fallback
	}
}

func (s *ThemeStore) Save(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return apperrors.New(apperrors.KindValidation, "invalid-theme", "Unknown theme.")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.Wrap(apperrors.ErrTransient, err)
		}
	}
	data, err := json.MarshalIndent(preferences{Theme: theme}, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrTransient, err)
	}
	return nil
}
