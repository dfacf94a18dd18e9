package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "not found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "wrapped typed", err: fmt.Errorf("ctx: %w", NotFound("missing")), want: http.StatusNotFound},
		{name: "untyped", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := Wrap(KindUnavailable, "try later", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to match")
	}
	if err.Error() != "try later" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "try later")
	}
}

func TestPublicMessageHidesUntypedDetails(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(stderrors.New("sql: connection refused")); got != "Internal Server Error" {
		t.Fatalf("PublicMessage() = %q, want status text", got)
	}
	if got := PublicMessage(E(KindInvalidInput, "unknown cart action")); got != "unknown cart action" {
		t.Fatalf("PublicMessage() = %q, want typed message", got)
	}
	if got := PublicMessage(Error{Kind: KindForbidden}); got != "Forbidden" {
		t.Fatalf("PublicMessage() = %q, want status text", got)
	}
}
