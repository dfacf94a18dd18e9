package sessioncookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

var (
	testSecret = []byte("0123456789abcdef0123456789abcdef")
	testNow    = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func newTestCodec(t *testing.T) Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Encode("sess-1", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "sess-1" {
		t.Fatalf("Decode() = %q, want %q", got, "sess-1")
	}
}

func TestCodecRejectsShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec([]byte("short"), nil); err == nil {
		t.Fatal("expected short secret error")
	}
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Encode("sess-1", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	parts := strings.Split(token, ".")
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
		SessionID:        "sess-admin",
	}).SignedString([]byte("ffffffffffffffffffffffffffffffff"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	forgedParts := strings.Split(forged, ".")

	for name, raw := range map[string]string{
		"swapped payload": parts[0] + "." + forgedParts[1] + "." + parts[2],
		"wrong key":       forged,
		"garbage":         "not-a-jwt",
		"empty":           "",
	} {
		if _, err := codec.Decode(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: Decode() error = %v, want %v", name, err, ErrInvalid)
		}
	}
}

func TestCodecRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
		SessionID:        "sess-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	if _, err := codec.Decode(unsigned); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Decode() error = %v, want %v", err, ErrInvalid)
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Encode("sess-1", testNow.Add(-time.Minute))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := codec.Decode(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("Decode() error = %v, want %v", err, ErrExpired)
	}
}

func TestWriteReadClear(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "https://shop.example/", nil)
	rr := httptest.NewRecorder()
	Write(rr, req, "token-value", testNow.Add(time.Hour), requestmeta.SchemePolicy{})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes = %+v", cookie)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	if value, ok := Read(next); !ok || value != "token-value" {
		t.Fatalf("Read() = %q, %v", value, ok)
	}

	rr = httptest.NewRecorder()
	Clear(rr, next, requestmeta.SchemePolicy{})
	cleared := rr.Result().Cookies()[0]
	if cleared.MaxAge >= 0 {
		t.Fatalf("cleared MaxAge = %d, want negative", cleared.MaxAge)
	}
	if _, ok := Read(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("Read() without cookie should report false")
	}
}
