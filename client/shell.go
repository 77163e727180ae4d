package client

import (
	"sync"

	"main/model"
	"main/pkg/logger"
)

// View is what the shell should render right now. Auth and Resolving are
// derived from session state and override the navigation target; the
// navigation target itself survives a sign-out untouched.
type View int

const (
	ViewResolving View = iota
	ViewAuth
	ViewList
	ViewCreate
	ViewEdit
)

type navTarget int

const (
	navList navTarget = iota
	navCreate
	navEdit
)

// Shell owns top-level navigation and the theme. Navigation is a three-state
// machine (list, create form, edit form); which of those is actually shown is
// gated behind the session being resolved and signed in.
type Shell struct {
	session *SessionManager
	themes  *ThemeStore

	mu      sync.Mutex
	nav     navTarget
	editing *model.Prompt
	theme   string
}

// NewShell builds the shell. ambientTheme is the OS-level preference used
// when the user never picked a theme explicitly.
func NewShell(session *SessionManager, themes *ThemeStore, ambientTheme string) *Shell {
	if ambientTheme != ThemeDark {
		ambientTheme = ThemeLight
	}
	return &Shell{
		session: session,
		themes:  themes,
		nav:     navList,
		theme:   themes.Load(ambientTheme),
	}
}

// CurrentView derives the visible screen. While the session is resolving
// nothing content-bearing is shown; without an identity the auth screen is
// shown regardless of the navigation target.
func (s *Shell) CurrentView() View {
	if s.session.Resolving() {
		return ViewResolving
	}
	if s.session.Current() == nil {
		return ViewAuth
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.nav {
	case navCreate:
		return ViewCreate
	case navEdit:
		return ViewEdit
	default:
		return ViewList
	}
}

// NewPrompt navigates to the create form.
func (s *Shell) NewPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = navCreate
	s.editing = nil
}

// EditPrompt navigates to the edit form seeded with an existing record.
func (s *Shell) EditPrompt(p *model.Prompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = navEdit
	seed := *p
	s.editing = &seed
}

// BackToList returns to the list and drops any edit seed.
func (s *Shell) BackToList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = navList
	s.editing = nil
}

// Editing returns the record the edit form was opened with, nil outside
// edit navigation.
func (s *Shell) Editing() *model.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

func (s *Shell) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips light/dark, applies it immediately, and persists it.
// A failed save keeps the new theme for this run.
func (s *Shell) ToggleTheme() string {
	s.mu.Lock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	theme := s.theme
	s.mu.Unlock()

	if err := s.themes.Save(theme); err != nil {
		logger.Sugar.Warnw("theme preference not persisted", "error", err)
	}
	return theme
}
