package client

import (
	"context"
	"sync"

	"main/pkg/logger"
)

// IdentitySource is the read side of the session manager. View-models that
// only need to know who is signed in depend on this instead of the full
// manager.
type IdentitySource interface {
	Current() *Identity
}

// SessionManager owns authentication state. It starts in a resolving state
// so the shell can show nothing instead of flashing the sign-in screen, and
// every subscriber receives the current identity (possibly nil) exactly once
// before any later change.
type SessionManager struct {
	api *APIClient

	mu        sync.Mutex
	current   *Identity
	resolving bool
	subs      map[int]chan *Identity
	nextSub   int
}

func NewSessionManager(api *APIClient) *SessionManager {
	return &SessionManager{
		api:       api,
		resolving: true,
		subs:      make(map[int]chan *Identity),
	}
}

// Resolve finishes the initial auth check. With no persisted credentials the
// restored identity is always nil; the call still publishes that nil so
// subscribers can leave their loading state.
func (m *SessionManager) Resolve() {
	m.mu.Lock()
	if !m.resolving {
		m.mu.Unlock()
		return
	}
	m.resolving = false
	m.mu.Unlock()
	m.publish(m.Current())
}

func (m *SessionManager) Resolving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolving
}

func (m *SessionManager) Current() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe returns a stream of identity changes and a cancel func. If the
// initial resolution already happened the current value is delivered
// immediately, so a late subscriber never waits for the next sign-in to
// learn the state.
func (m *SessionManager) Subscribe() (<-chan *Identity, func()) {
	m.mu.Lock()
	ch := make(chan *Identity, 8)
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	if !m.resolving {
		ch <- m.current
	}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// Close drops all subscribers. Used at shutdown; individual cancel funcs
// remain safe to call afterwards.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *SessionManager) publish(identity *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- identity:
		default:
			logger.Sugar.Warnw("session subscriber lagging, identity update dropped")
		}
	}
}

func (m *SessionManager) setCurrent(identity *Identity) {
	m.mu.Lock()
	m.current = identity
	m.resolving = false
	m.mu.Unlock()
	m.publish(identity)
}

func (m *SessionManager) SignUp(ctx context.Context, email, password string) error {
	identity, err := m.api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	m.setCurrent(identity)
	return nil
}

func (m *SessionManager) SignIn(ctx context.Context, email, password string) error {
	identity, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.setCurrent(identity)
	return nil
}

// SignOut always clears the local identity. A failed revocation call is
// reported but never leaves the user signed in.
func (m *SessionManager) SignOut(ctx context.Context) error {
	err := m.api.Logout(ctx)
	m.setCurrent(nil)
	return err
}
