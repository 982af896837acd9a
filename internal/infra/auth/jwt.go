package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookie = "crm_session"
	issuer        = "ligue-crm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Authenticator is the only thing the route gate needs to know.
type Authenticator interface {
	IsAuthenticated(r *http.Request) bool
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuthenticator checks a single configured operator account and issues
// HS256 session tokens.
type JWTAuthenticator struct {
	signingKey   []byte
	ttl          time.Duration
	email        string
	passwordHash []byte
	now          func() time.Time
}

func NewJWTAuthenticator(secret string, ttl time.Duration, email, password string) (*JWTAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &JWTAuthenticator{
		signingKey:   []byte(secret),
		ttl:          ttl,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

// Login verifies the credentials and returns a signed token with its expiry.
func (a *JWTAuthenticator) Login(email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	if !emailOK || !passOK {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := a.now()
	expires := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (a *JWTAuthenticator) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return a.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(a.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (a *JWTAuthenticator) IsAuthenticated(r *http.Request) bool {
	token := TokenFromRequest(r)
	if token == "" {
		return false
	}
	_, err := a.Validate(token)
	return err == nil
}

// TokenFromRequest reads a bearer token first and falls back to the session
// cookie.
func TokenFromRequest(r *http.Request) string {
	const bearerPrefix = "Bearer "
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
