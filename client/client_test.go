package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authStub scripts the server side of the session protocol and counts
// calls so tests can assert on retry behavior.
type authStub struct {
	mu           sync.Mutex
	meCalls      int
	refreshCalls int
	logoutCalls  int

	meFailuresLeft int
	refreshOK      bool
	logoutStatus   int
	user           User
}

func newAuthStub() *authStub {
	return &authStub{
		logoutStatus: http.StatusOK,
		user: User{
			ID:         "7f1d6a0e-0000-0000-0000-000000000001",
			Email:      "asha@example.com",
			Name:       "Asha Verma",
			Role:       "student",
			IsVerified: true,
		},
	}
}

func (s *authStub) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.meCalls++
		fail := s.meFailuresLeft > 0
		if fail {
			s.meFailuresLeft--
		}
		s.mu.Unlock()

		if fail {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "token expired", "code": "AUTHENTICATION_ERROR",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": s.user})
	})

	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.refreshCalls++
		ok := s.refreshOK
		s.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "token has been revoked", "code": "AUTHENTICATION_ERROR",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": s.user})
	})

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "Sup3rSecret!" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "error": "invalid credentials", "code": "AUTHENTICATION_ERROR",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": s.user})
	})

	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.logoutCalls++
		status := s.logoutStatus
		s.mu.Unlock()

		if status != http.StatusOK {
			writeJSON(w, status, map[string]interface{}{"success": false, "error": "internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "logged out successfully"})
	})

	mux.HandleFunc("/api/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "message": "if that email is registered, a reset link has been sent",
		})
	})

	return mux
}

func (s *authStub) counts() (me, refresh int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meCalls, s.refreshCalls
}

func newTestClient(t *testing.T, stub *authStub) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c, srv
}

func TestBootstrap_AuthenticatedFirstTry(t *testing.T) {
	stub := newAuthStub()
	c, _ := newTestClient(t, stub)

	assert.True(t, c.Loading())
	c.Bootstrap(context.Background())

	assert.False(t, c.Loading())
	session := c.Session()
	assert.True(t, session.IsAuthenticated)
	require.NotNil(t, session.User)
	assert.Equal(t, "asha@example.com", session.User.Email)

	me, refresh := stub.counts()
	assert.Equal(t, 1, me)
	assert.Equal(t, 0, refresh)
}

func TestBootstrap_SingleSilentRefresh(t *testing.T) {
	stub := newAuthStub()
	stub.meFailuresLeft = 1
	stub.refreshOK = true
	c, _ := newTestClient(t, stub)

	c.Bootstrap(context.Background())

	assert.True(t, c.Session().IsAuthenticated)
	me, refresh := stub.counts()
	assert.Equal(t, 2, me)
	assert.Equal(t, 1, refresh)
}

func TestBootstrap_RefreshFailureConcludesUnauthenticated(t *testing.T) {
	stub := newAuthStub()
	stub.meFailuresLeft = 10
	stub.refreshOK = false
	c, _ := newTestClient(t, stub)

	c.Bootstrap(context.Background())

	assert.False(t, c.Loading())
	assert.False(t, c.Session().IsAuthenticated)

	// Exactly one refresh attempt per failed check, no loop.
	me, refresh := stub.counts()
	assert.Equal(t, 1, me)
	assert.Equal(t, 1, refresh)
}

func TestBootstrap_RunsOnce(t *testing.T) {
	stub := newAuthStub()
	c, _ := newTestClient(t, stub)

	ctx := context.Background()
	c.Bootstrap(ctx)
	c.Bootstrap(ctx)

	me, _ := stub.counts()
	assert.Equal(t, 1, me)
}

func TestLogin_SurfacesServerMessageVerbatim(t *testing.T) {
	stub := newAuthStub()
	c, _ := newTestClient(t, stub)

	_, err := c.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, "AUTHENTICATION_ERROR", apiErr.Code)
	assert.False(t, c.Session().IsAuthenticated)
}

func TestLogin_AdoptsSession(t *testing.T) {
	stub := newAuthStub()
	c, _ := newTestClient(t, stub)

	user, err := c.Login(context.Background(), "asha@example.com", "Sup3rSecret!")
	require.NoError(t, err)
	assert.Equal(t, "student", user.Role)

	session := c.Session()
	assert.True(t, session.IsAuthenticated)
	assert.False(t, c.Loading())
}

func TestLogout_ClearsSessionOnServerError(t *testing.T) {
	stub := newAuthStub()
	stub.logoutStatus = http.StatusInternalServerError
	c, _ := newTestClient(t, stub)

	_, err := c.Login(context.Background(), "asha@example.com", "Sup3rSecret!")
	require.NoError(t, err)

	c.Logout(context.Background())
	assert.False(t, c.Session().IsAuthenticated)
}

func TestLogout_ClearsSessionWhenServerUnreachable(t *testing.T) {
	stub := newAuthStub()
	c, srv := newTestClient(t, stub)

	_, err := c.Login(context.Background(), "asha@example.com", "Sup3rSecret!")
	require.NoError(t, err)

	srv.Close()

	c.Logout(context.Background())
	assert.False(t, c.Session().IsAuthenticated)
	assert.Nil(t, c.Session().User)
}

func TestRequestPasswordReset_NoSessionMutation(t *testing.T) {
	stub := newAuthStub()
	c, _ := newTestClient(t, stub)

	_, err := c.Login(context.Background(), "asha@example.com", "Sup3rSecret!")
	require.NoError(t, err)

	require.NoError(t, c.RequestPasswordReset(context.Background(), "asha@example.com"))
	assert.True(t, c.Session().IsAuthenticated)
}
