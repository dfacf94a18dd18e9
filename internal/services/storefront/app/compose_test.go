package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
)

type stubModule struct {
	id     string
	prefix string
	err    error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount() (module.Mount, error) {
	if m.err != nil {
		return module.Mount{}, m.err
	}
	return module.Mount{
		Prefix: m.prefix,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(m.id + ":" + r.URL.Path))
		}),
	}, nil
}

func TestComposeRoutesModulesAndAliases(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "pages", prefix: "/"},
			stubModule{id: "products", prefix: "/products/"},
			stubModule{id: "cart", prefix: "cart"},
		},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	tests := map[string]string{
		"/":                        "pages:/",
		"/about":                   "pages:/about",
		"/products":                "products:/products",
		"/products/shirts/red-tee": "products:/products/shirts/red-tee",
		"/cart/checkout":           "cart:/cart/checkout",
	}
	for path, want := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Body.String() != want {
			t.Fatalf("GET %s = %q, want %q", path, rr.Body.String(), want)
		}
	}
}

func TestComposeRejectsInvalidModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ComposeInput
		want  string
	}{
		{name: "duplicate", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", prefix: "/x/"}, stubModule{id: "b", prefix: "/x"}}}, want: "duplicates prefix"},
		{name: "admin in public", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", prefix: "/admin/pages/"}}}, want: "admin prefix"},
		{name: "public in admin", input: ComposeInput{AdminModules: []module.Module{stubModule{id: "a", prefix: "/pages/"}}}, want: "must mount under"},
		{name: "mount error", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", err: errors.New("boom")}}}, want: "boom"},
		{name: "empty prefix", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a"}}}, want: "prefix is required"},
		{name: "nil", input: ComposeInput{PublicModules: []module.Module{nil}}, want: "nil"},
	}
	for _, tc := range tests {
		_, err := Compose(tc.input)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: err = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestAdminGuard(t *testing.T) {
	t.Parallel()

	admin := false
	h, err := Compose(ComposeInput{
		AdminModules: []module.Module{stubModule{id: "admin-pages", prefix: "/admin/pages/"}},
		IsAdmin:      func(*http.Request) bool { return admin },
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/pages", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/users/login" {
		t.Fatalf("guarded response = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flash.CookieName {
		t.Fatalf("cookies = %+v", cookies)
	}

	admin = true
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/pages/add", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "admin-pages:/admin/pages/add" {
		t.Fatalf("admin response = %d %q", rr.Code, rr.Body.String())
	}
}
