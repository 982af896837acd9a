package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/infra/auth"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func newTestRouter(t *testing.T) (http.Handler, *crm.Store) {
	t.Helper()
	store := crm.New(crm.WithSeedDelay(time.Hour))
	t.Cleanup(store.Close)

	authn, err := auth.NewJWTAuthenticator("test-secret", time.Hour, "ops@ligue.com", "s3cret")
	require.NoError(t, err)

	sessions := handlers.NewSessionHandler(authn, nil)
	t.Cleanup(sessions.Close)

	h := Handlers{
		Contacts:  handlers.NewContactHandler(usecase.NewContactUseCase(store)),
		Leads:     handlers.NewLeadHandler(usecase.NewLeadUseCase(store)),
		Analytics: handlers.NewAnalyticsHandler(usecase.NewAnalyticsUseCase(store)),
		Sessions:  sessions,
		Health:    handlers.NewHealthHandler(store, nil, nil),
		Settings:  handlers.NewSettingsHandler(handlers.Settings{LoginEmail: "ops@ligue.com", SessionTTL: "1h0m0s"}),
	}
	return New(h, authn, []string{"http://localhost:5173"}), store
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ops@ligue.com","password":"s3cret"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/", "/contacts", "/leads", "/analytics", "/settings", "/contacts/1/leads", "/reports/unknown"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, LoginPath, w.Header().Get("Location"), path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/login", "/health", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAuthenticatedFlow(t *testing.T) {
	r, store := newTestRouter(t)
	cookie := login(t, r)

	// Before the seed fires the lists are empty and flagged as loading.
	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var out usecase.ListContactsOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Loading)
	assert.Empty(t, out.Contacts)

	req = httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{"name":"Ana","email":"ana@acme.com","status":"active"}`))
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.Contacts(), 1)
}

func TestLogoutThenRedirect(t *testing.T) {
	r, _ := newTestRouter(t)
	login(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestForgedTokenIsRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestUnknownPathAfterLogin(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/reports/unknown", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsHidesSecrets(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ops@ligue.com", got["login_email"])
	assert.NotContains(t, w.Body.String(), "test-secret")
	assert.NotContains(t, w.Body.String(), "s3cret")
}
