package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	SeedDelay      time.Duration

	// How often open leads are checked against their expected close date.
	OverdueInterval time.Duration

	JWTSecret     string
	SessionTTL    time.Duration
	LoginEmail    string
	LoginPassword string
	SecureCookie  bool

	// Optional integrations; empty disables them.
	DatabaseURL string
	RabbitMQURL string

	Mail Mail
}

type Mail struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	SalesInbox string
}

func (m Mail) Enabled() bool {
	return m.Host != "" && m.SalesInbox != ""
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env ignorado: %v", err)
	}
	return FromEnv()
}

const (
	defaultJWTSecret     = "dev-secret-change-me"
	defaultLoginEmail    = "demo@ligue.app"
	defaultLoginPassword = "demo"
)

func FromEnv() Config {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Printf("⚠️ config: JWT_SECRET não definido, usando segredo de desenvolvimento")
		jwtSecret = defaultJWTSecret
	}
	if os.Getenv("CRM_LOGIN_EMAIL") == "" || os.Getenv("CRM_LOGIN_PASSWORD") == "" {
		log.Printf("⚠️ config: CRM_LOGIN_EMAIL/CRM_LOGIN_PASSWORD incompletos, usando login de demonstração")
	}

	return Config{
		Addr:           getEnv("CRM_ADDR", ":8080"),
		AllowedOrigins: splitList(getEnv("CRM_ALLOWED_ORIGINS", "http://localhost:5173")),
		SeedDelay:      getDuration("CRM_SEED_DELAY", time.Second),

		OverdueInterval: getDuration("CRM_OVERDUE_INTERVAL", time.Hour),

		JWTSecret:     jwtSecret,
		SessionTTL:    getDuration("CRM_SESSION_TTL", 8*time.Hour),
		LoginEmail:    getEnv("CRM_LOGIN_EMAIL", defaultLoginEmail),
		LoginPassword: getEnv("CRM_LOGIN_PASSWORD", defaultLoginPassword),
		SecureCookie:  getBool("CRM_SECURE_COOKIE", false),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		Mail: Mail{
			Host:       os.Getenv("MAIL_HOST"),
			Port:       getInt("MAIL_PORT", 587),
			User:       os.Getenv("MAIL_USER"),
			Password:   os.Getenv("MAIL_PASS"),
			From:       getEnv("MAIL_FROM", "nao-responda@ligue.app"),
			SalesInbox: os.Getenv("CRM_SALES_INBOX"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s inválido (%q), usando %s", key, v, fallback)
		return fallback
	}
	if d <= 0 {
		log.Printf("config: %s deve ser positivo (%q), usando %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s inválido (%q), usando %t", key, v, fallback)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s inválido (%q), usando %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
