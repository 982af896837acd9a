package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/auth"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// Sessions issues session tokens for valid credentials.
type Sessions interface {
	Login(email, password string) (string, time.Time, error)
}

type SessionHandler struct {
	Sessions     Sessions
	SecureCookie bool
	rateLimiter  *RateLimiter
}

func NewSessionHandler(sessions Sessions, limiter *RateLimiter) *SessionHandler {
	if limiter == nil {
		limiter = NewRateLimiter(10, time.Minute) // 10 tentativas/min por IP
	}
	return &SessionHandler{Sessions: sessions, rateLimiter: limiter}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginInfo struct {
	Message string   `json:"message"`
	Method  string   `json:"method"`
	Fields  []string `json:"fields"`
}

// Form (GET /login) describes how to authenticate.
func (h *SessionHandler) Form(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LoginInfo{
		Message: "authentication required",
		Method:  http.MethodPost,
		Fields:  []string{"email", "password"},
	})
}

// Login (POST /login) sets the session cookie and also returns the token for
// API clients.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var req LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	token, expires, err := h.Sessions.Login(req.Email, req.Password)
	if err != nil {
		middleware.RecordLoginFailure()
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("⚠️ login recusado para %s (ip %s)", req.Email, clientIP)
			writeErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "email ou senha inválidos")
			return
		}
		log.Printf("❌ erro ao emitir sessão: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires})
}

// Logout (POST /logout) clears the session cookie.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Close releases the rate limiter.
func (h *SessionHandler) Close() {
	h.rateLimiter.Stop()
}
