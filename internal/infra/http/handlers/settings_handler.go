package handlers

import "net/http"

// Settings is the non-secret view of the running configuration.
type Settings struct {
	SeedDelay       string   `json:"seed_delay"`
	OverdueInterval string   `json:"overdue_interval"`
	SessionTTL      string   `json:"session_ttl"`
	SecureCookie    bool     `json:"secure_cookie"`
	AllowedOrigins  []string `json:"allowed_origins"`
	LoginEmail      string   `json:"login_email"`
	Database        bool     `json:"database_enabled"`
	RabbitMQ        bool     `json:"rabbitmq_enabled"`
	Mail            bool     `json:"mail_enabled"`
}

type SettingsHandler struct {
	Settings Settings
}

func NewSettingsHandler(s Settings) *SettingsHandler {
	if s.AllowedOrigins == nil {
		s.AllowedOrigins = []string{}
	}
	return &SettingsHandler{Settings: s}
}

// Get (GET /settings)
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings)
}

// NotFound answers unknown paths once the route gate has let them through.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "rota não encontrada: "+r.URL.Path)
}
