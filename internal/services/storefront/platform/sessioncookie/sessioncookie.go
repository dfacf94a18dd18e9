// Package sessioncookie signs, reads and writes the storefront session
// cookie. The cookie value is an HS256 JWT whose sid claim names a
// server-side session record.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

// Name is the canonical session cookie name.
const Name = "storefront_session"

const issuer = "storefront"

var (
	// ErrInvalid reports a cookie that fails signature or shape checks.
	ErrInvalid = errors.New("session cookie is invalid")
	// ErrExpired reports a well-signed cookie past its expiry.
	ErrExpired = errors.New("session cookie is expired")
)

type claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec builds a codec. Secrets shorter than 32 bytes are rejected.
func NewCodec(secret []byte, now func() time.Time) (Codec, error) {
	if len(secret) < 32 {
		return Codec{}, fmt.Errorf("session secret must be at least 32 bytes")
	}
	if now == nil {
		now = time.Now
	}
	return Codec{secret: append([]byte(nil), secret...), now: now}, nil
}

// Encode returns a signed token naming sessionID and expiring at expiresAt.
func (c Codec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	if len(c.secret) == 0 {
		return "", fmt.Errorf("session codec is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies raw and returns the session id it names.
func (c Codec) Decode(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(c.secret) == 0 {
		return "", ErrInvalid
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if parsed.Issuer != issuer || parsed.ExpiresAt == nil || strings.TrimSpace(parsed.SessionID) == "" {
		return "", ErrInvalid
	}
	if !parsed.ExpiresAt.Time.After(c.now()) {
		return "", ErrExpired
	}
	return parsed.SessionID, nil
}

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// Write sets the session cookie until expiresAt.
func Write(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time, policy requestmeta.SchemePolicy) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
