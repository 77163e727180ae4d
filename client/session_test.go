package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/dto"
	"main/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvIdentity(t *testing.T, ch <-chan *Identity) *Identity {
	t.Helper()
	select {
	case identity := <-ch:
		return identity
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for identity update")
		return nil
	}
}

func TestSessionStartsResolving(t *testing.T) {
	m := NewSessionManager(NewAPIClient("http://localhost:0"))

	assert.True(t, m.Resolving())
	assert.Nil(t, m.Current())

	ch, cancel := m.Subscribe()
	defer cancel()

	// Nothing is delivered until resolution; then the nil identity arrives
	// exactly once.
	select {
	case <-ch:
		t.Fatal("subscriber must not receive anything while resolving")
	case <-time.After(50 * time.Millisecond):
	}

	m.Resolve()
	assert.Nil(t, recvIdentity(t, ch))
	assert.False(t, m.Resolving())
}

func TestSessionLateSubscriberGetsCurrentValue(t *testing.T) {
	m := NewSessionManager(NewAPIClient("http://localhost:0"))
	m.Resolve()

	ch, cancel := m.Subscribe()
	defer cancel()
	assert.Nil(t, recvIdentity(t, ch), "post-resolution subscriber still gets the current value")
}

func TestSessionPublishesChanges(t *testing.T) {
	m := NewSessionManager(NewAPIClient("http://localhost:0"))
	m.Resolve()

	ch, cancel := m.Subscribe()
	defer cancel()
	recvIdentity(t, ch) // initial nil

	m.setCurrent(&Identity{UserID: "user-1", Email: "a@b.com"})
	identity := recvIdentity(t, ch)
	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.UserID)

	m.setCurrent(nil)
	assert.Nil(t, recvIdentity(t, ch))
}

// authServer fakes the register/login/logout surface with the production
// response envelope.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if len(req.Password) < 6 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "weak password",
				"code":  "weak-password",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": dto.AuthResponse{
				UserID: "user-1", Email: req.Email, Token: "tok", Refresh: "ref",
			},
		})
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "invalid credentials",
			"code":  "invalid-credential",
		})
	})
	mux.HandleFunc("/api/user/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionSignUpAndSignOut(t *testing.T) {
	srv := authServer(t)
	api := NewAPIClient(srv.URL)
	m := NewSessionManager(api)
	m.Resolve()

	require.NoError(t, m.SignUp(context.Background(), "a@b.com", "abcdef"))
	require.NotNil(t, m.Current())
	assert.Equal(t, "user-1", m.Current().UserID)
	assert.Equal(t, "tok", api.Token())

	require.NoError(t, m.SignOut(context.Background()))
	assert.Nil(t, m.Current())
	assert.Empty(t, api.Token(), "tokens dropped on sign-out")
}

func TestSessionSignUpWeakPassword(t *testing.T) {
	srv := authServer(t)
	m := NewSessionManager(NewAPIClient(srv.URL))
	m.Resolve()

	err := m.SignUp(context.Background(), "a@b.com", "abc")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "wire code maps back to the sentinel")
	assert.Nil(t, m.Current())
}

func TestSessionSignInInvalidCredential(t *testing.T) {
	srv := authServer(t)
	m := NewSessionManager(NewAPIClient(srv.URL))
	m.Resolve()

	err := m.SignIn(context.Background(), "a@b.com", "wrong1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	assert.Nil(t, m.Current())
}
