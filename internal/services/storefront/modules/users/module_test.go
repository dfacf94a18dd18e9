package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/module/moduletest"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"golang.org/x/crypto/bcrypt"
)

type userStore struct {
	mu    sync.Mutex
	users map[string]storage.User
}

func newUserStore() *userStore {
	return &userStore{users: map[string]storage.User{}}
}

func (s *userStore) CreateUser(_ context.Context, user storage.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return storage.ErrAlreadyExists
	}
	s.users[user.Username] = user
	return nil
}

func (s *userStore) FindUserByUsername(_ context.Context, username string) (storage.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	return user, ok, nil
}

func mountHandler(t *testing.T, store Store, sessions *moduletest.Sessions) http.Handler {
	t.Helper()
	runtime, _ := moduletest.Runtime(sessions)
	mount, err := New(store, runtime, WithBcryptCost(bcrypt.MinCost)).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return mount.Handler
}

func postForm(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func flashOf(t *testing.T, rr *httptest.ResponseRecorder) flash.Notice {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name != flash.CookieName {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(c)
		notice, _ := flash.ReadAndClear(httptest.NewRecorder(), req, requestmeta.SchemePolicy{})
		return notice
	}
	return flash.Notice{}
}

func registration() url.Values {
	return url.Values{
		"name":      {"Ada Lovelace"},
		"email":     {"ada@example.com"},
		"username":  {"ada"},
		"password":  {"engine"},
		"password2": {"engine"},
	}
}

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Registration
		want  []string
	}{
		{name: "valid", input: Registration{Name: "Ada", Email: "ada@example.com", Username: "ada", Password: "x", Password2: "x"}},
		{name: "empty", input: Registration{}, want: []string{"Name is required", "Email is required", "Username is required", "Password is required"}},
		{name: "bad email and mismatch", input: Registration{Name: "Ada", Email: "not-an-email", Username: "ada", Password: "x", Password2: "y"}, want: []string{"Email is not valid", "Passwords do not match"}},
		{name: "password over bcrypt limit", input: Registration{Name: "Ada", Email: "ada@example.com", Username: "ada", Password: strings.Repeat("p", 73), Password2: strings.Repeat("p", 73)}, want: []string{"Password must be at most 72 bytes"}},
		{name: "password at bcrypt limit", input: Registration{Name: "Ada", Email: "ada@example.com", Username: "ada", Password: strings.Repeat("p", 72), Password2: strings.Repeat("p", 72)}},
		{name: "display name email", input: Registration{Name: "Ada", Email: "Ada <ada@example.com>", Username: "ada", Password: "x", Password2: "x"}, want: []string{"Email is not valid"}},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, tc.input.Validate()); diff != "" {
			t.Fatalf("%s: problems mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	store := newUserStore()
	sessions := moduletest.NewSessions(module.Principal{})
	h := mountHandler(t, store, sessions)

	rr := postForm(h, "/users/register", registration())
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/users/login" {
		t.Fatalf("register = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if got := flashOf(t, rr); got != flash.Success(RegisteredMessage) {
		t.Fatalf("flash = %+v", got)
	}
	user := store.users["ada"]
	if user.Admin || user.Email != "ada@example.com" || string(user.PasswordHash) == "engine" {
		t.Fatalf("stored user = %+v", user)
	}

	rr = postForm(h, "/users/login", url.Values{"username": {"ada"}, "password": {"engine"}})
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/products" {
		t.Fatalf("login = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if diff := cmp.Diff([]string{"ada"}, sessions.SignedInAs); diff != "" {
		t.Fatalf("sign ins mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	store := newUserStore()
	store.users["ada"] = storage.User{ID: "u1", Username: "ada"}
	rr := postForm(mountHandler(t, store, moduletest.NewSessions(module.Principal{})), "/users/register", registration())
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/users/register" {
		t.Fatalf("register = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if got := flashOf(t, rr); got != flash.Error(UsernameTakenMessage) {
		t.Fatalf("flash = %+v", got)
	}
}

func TestRegisterInvalidFormRerenders(t *testing.T) {
	t.Parallel()

	values := registration()
	values.Set("password2", "other")
	values.Set("name", `<b>Ada</b>`)
	rr := postForm(mountHandler(t, newUserStore(), moduletest.NewSessions(module.Principal{})), "/users/register", values)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Passwords do not match") || !strings.Contains(body, "&lt;b&gt;Ada&lt;/b&gt;") {
		t.Fatalf("body = %s", body)
	}
}

func TestRegisterLongPasswordRerenders(t *testing.T) {
	t.Parallel()

	store := newUserStore()
	values := registration()
	values.Set("password", strings.Repeat("p", 80))
	values.Set("password2", strings.Repeat("p", 80))
	rr := postForm(mountHandler(t, store, moduletest.NewSessions(module.Principal{})), "/users/register", values)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Password must be at most 72 bytes") {
		t.Fatalf("body = %s", body)
	}
	if _, ok := store.users["ada"]; ok {
		t.Fatalf("user stored despite invalid password")
	}
}

func TestServiceRegisterMapsLongPassword(t *testing.T) {
	t.Parallel()

	input := Registration{Name: "Ada", Email: "ada@example.com", Username: "ada", Password: strings.Repeat("p", 80)}
	_, err := newService(newUserStore(), bcrypt.MinCost).register(context.Background(), input)
	if got := apperrors.HTTPStatus(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (err %v)", got, http.StatusBadRequest, err)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("engine"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store := newUserStore()
	store.users["ada"] = storage.User{ID: "u1", Username: "ada", PasswordHash: hash}
	sessions := moduletest.NewSessions(module.Principal{})
	h := mountHandler(t, store, sessions)

	for _, values := range []url.Values{
		{"username": {"ada"}, "password": {"wrong"}},
		{"username": {"grace"}, "password": {"engine"}},
		{},
	} {
		rr := postForm(h, "/users/login", values)
		if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/users/login" {
			t.Fatalf("login %v = %d %q", values, rr.Code, rr.Header().Get("Location"))
		}
		if got := flashOf(t, rr); got != flash.Error(WrongLoginMessage) {
			t.Fatalf("flash = %+v", got)
		}
	}
	if len(sessions.SignedInAs) != 0 {
		t.Fatalf("unexpected sign ins: %v", sessions.SignedInAs)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	sessions := moduletest.NewSessions(module.Principal{SessionID: "s1", UserID: "u1", Username: "ada"})
	rr := postForm(mountHandler(t, newUserStore(), sessions), "/users/logout", url.Values{})
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/users/login" {
		t.Fatalf("logout = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if got := flashOf(t, rr); got != flash.Success(LoggedOutMessage) {
		t.Fatalf("flash = %+v", got)
	}
	if sessions.SignOuts != 1 {
		t.Fatalf("sign outs = %d, want 1", sessions.SignOuts)
	}
}

func TestFormsRender(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, newUserStore(), moduletest.NewSessions(module.Principal{}))
	for target, want := range map[string]string{"/users/register": "<h1>Register</h1>", "/users/login": "<h1>Log in</h1>"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("GET %s = %d", target, rr.Code)
		}
	}
}
